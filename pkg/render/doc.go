// Package render draws solved triangles.
//
// # Overview
//
// Rendering runs in three stages, each in its own subpackage:
//
//   - [viewport]: fit the canonical frame into a pixel surface
//   - [scene]: place the polygon, vertex markers and labels in screen space
//   - [sink]: write a scene as SVG, PNG, PDF, JSON or a terminal rune grid
//
// # Format Conversion
//
// [ToPDF] converts SVG to PDF with the external rsvg-convert tool (from
// librsvg). PNG output is rasterised natively and does not need it.
//
//	svg := sink.RenderSVG(s)
//	pdf, err := render.ToPDF(svg)
//
// [viewport]: github.com/matzehuels/trisolve/pkg/render/viewport
// [scene]: github.com/matzehuels/trisolve/pkg/render/scene
// [sink]: github.com/matzehuels/trisolve/pkg/render/sink
package render
