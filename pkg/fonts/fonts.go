// Package fonts provides the parsed fonts used for raster output.
//
// The Go font family is bundled with golang.org/x/image, so PNG rendering
// needs no system fonts. Fonts are parsed once on first use.
package fonts

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Family is the CSS font-family name of the bundled fonts.
const Family = "Go"

var (
	regular = sync.OnceValues(func() (*opentype.Font, error) { return opentype.Parse(goregular.TTF) })
	bold    = sync.OnceValues(func() (*opentype.Font, error) { return opentype.Parse(gobold.TTF) })
)

// Regular returns the Go Regular font.
func Regular() (*opentype.Font, error) { return regular() }

// Bold returns the Go Bold font.
func Bold() (*opentype.Font, error) { return bold() }

// Face returns a face of f at size pixels. Hinting is off because raster
// output is supersampled. Callers close the face.
func Face(f *opentype.Font, size float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}
