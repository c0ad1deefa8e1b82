// Package io reads and writes triangle input documents.
//
// # Overview
//
// An input document names a mode and the measures it is given, plus an
// optional viewport. TOML is the primary format:
//
//	mode = "SAS"
//
//	[inputs]
//	a = 150
//	b = "180"
//	C = "60°"
//
//	[viewport]
//	width = 800
//	height = 600
//	padding = 60
//
// JSON documents with the same shape are accepted too, selected by the
// ".json" file extension:
//
//	{"mode": "SAS", "inputs": {"a": 150, "b": 180, "C": 60}}
//
// # Inputs
//
// Keys are case-sensitive: "a" is a side and "A" is the angle opposite it.
// Values may be numbers or strings; strings go through the same parser as
// interactive input, so "60°" and " 60 " are both accepted. Measures the
// document leaves out start from the solver defaults. Every value present is
// validated whether or not the mode uses it, and a bad one fails the whole
// document with a [triangle.ParseError].
//
// # Import
//
// Use [ImportFile] to read a document from a path, or [ReadTOML] and
// [ReadJSON] to read from any io.Reader:
//
//	doc, err := io.ImportFile("triangle.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res := triangle.Solve(doc.Mode, doc.Inputs)
//
// # Export
//
// [WriteTOML] and [ExportFile] write a document back out. Only the mode's
// given measures are written to [inputs]; when a solve result is attached the
// derived measures are written to a [derived] table, which import ignores.
// A written document re-imports to the same mode and given measures.
package io
