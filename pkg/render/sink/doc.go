// Package sink writes a [scene.Scene] in a concrete output format.
//
// # Formats
//
//   - SVG: [RenderSVG], vector output mirroring the canvas drawing
//   - PNG: [RenderPNG], native rasterisation with golang.org/x/image
//   - PDF: [RenderPDF], SVG converted with rsvg-convert
//   - JSON: [RenderJSON], the result, transform and scene as data
//   - Text: [RenderText], a rune grid for terminals
//
// An empty scene (from an invalid solve) renders as a cleared canvas: the
// background only, with nothing drawn on it.
//
// # Themes
//
// Colours and font sizes come from a [Theme]. [DefaultTheme] is a violet
// triangle with pink vertex markers on a dark slate background.
//
//	svg := sink.RenderSVG(s, sink.WithTheme(t))
//	png, err := sink.RenderPNG(s, sink.WithPNGTheme(t))
//
// [scene.Scene]: github.com/matzehuels/trisolve/pkg/render/scene.Scene
package sink
