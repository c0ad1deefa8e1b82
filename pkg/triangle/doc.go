// Package triangle solves triangles from a partial set of measures.
//
// A triangle has six measures: the sides a, b, c and the interior angles
// A, B, C (in degrees), each angle opposite the side with the same letter.
// Given three of them, picked by a [Mode], [Solve] derives the other three in
// closed form with the law of cosines and the law of sines, and records every
// formula application as a [Step].
//
// # Modes
//
//	SAS  a, b, C   two sides and their included angle
//	SSS  a, b, c   three sides
//	ASA  A, c, B   two angles and their included side
//	AAS  A, B, a   two angles and a non-included side
//
// [Mode.Given] returns the three keys a mode treats as authoritative; every
// other key is derived.
//
// # Solving
//
//	in := triangle.Defaults()
//	res := triangle.Solve(triangle.SAS, in)
//	if !res.Valid {
//	    fmt.Println(res.Steps[0].Detail)
//	}
//	fmt.Printf("c = %.2f\n", res.Measures.Get(triangle.SideC))
//
// Solve never returns a Go error. Geometric failures (a triangle-inequality
// violation in SSS, a non-positive third angle in ASA or AAS) set
// [Result.Valid] to false, keep the input measures untouched and replace the
// trace with a single failure step. [Result.Err] carries the coded error for
// callers that want to branch on it with pkg/errors.
//
// # Parsing
//
// Raw field text is converted at the boundary with [ParseMeasure], which
// returns a typed value or a [*ParseError]. The solver never sees unparsed
// input.
package triangle
