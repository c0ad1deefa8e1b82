// Package viewport maps canonical triangle coordinates into pixel space.
//
// [Fit] scales a frame uniformly so its bounding box fills the viewport minus
// padding, centres it, and flips the y-axis so the canonical "up" is drawn
// upward on screen.
package viewport

import (
	"math"

	"github.com/matzehuels/trisolve/pkg/errors"
	"github.com/matzehuels/trisolve/pkg/geometry"
)

const (
	DefaultWidth   = 800.0
	DefaultHeight  = 600.0
	DefaultPadding = 60.0

	// degenerate is the smallest bounding-box extent that takes part in the scale.
	degenerate = 1e-9
)

// Viewport is a drawing surface in pixels.
type Viewport struct {
	Width   float64 `json:"width" toml:"width"`
	Height  float64 `json:"height" toml:"height"`
	Padding float64 `json:"padding" toml:"padding"`
}

// Default returns an 800x600 viewport with 60px padding.
func Default() Viewport {
	return Viewport{Width: DefaultWidth, Height: DefaultHeight, Padding: DefaultPadding}
}

// WithDefaults fills a zero width or height from [Default]. Zero padding is a
// valid choice and is kept, except on the zero Viewport, which becomes
// [Default]. Decoders that read a partial viewport start from [Default] so an
// omitted padding still means 60.
func (v Viewport) WithDefaults() Viewport {
	if v == (Viewport{}) {
		return Default()
	}
	if v.Width == 0 {
		v.Width = DefaultWidth
	}
	if v.Height == 0 {
		v.Height = DefaultHeight
	}
	return v
}

// Validate checks that the viewport is finite and leaves room to draw after padding.
func (v Viewport) Validate() error {
	for _, f := range []float64{v.Width, v.Height, v.Padding} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return errors.New(errors.ErrCodeInvalidViewport, "viewport dimensions must be finite")
		}
	}
	if v.Width <= 0 || v.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidViewport, "viewport must be positive, got %gx%g", v.Width, v.Height)
	}
	if v.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidViewport, "padding must not be negative, got %g", v.Padding)
	}
	if 2*v.Padding >= v.Width || 2*v.Padding >= v.Height {
		return errors.New(errors.ErrCodeInvalidViewport, "padding %g leaves no room in a %gx%g viewport", v.Padding, v.Width, v.Height)
	}
	return nil
}

// Transform maps canonical points to screen points.
type Transform struct {
	Scale   float64 `json:"scale"`
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
	Height  float64 `json:"height"`
}

// Fit computes the transform that centres f in v at the largest uniform
// scale that keeps it inside the padding.
//
// An axis whose extent is below 1e-9 does not constrain the scale. If both
// axes are degenerate the scale is 1, so the result is always finite.
func Fit(f geometry.Frame, v Viewport) Transform {
	box := f.Bounds()
	w, h := box.Width(), box.Height()

	scale := math.Inf(1)
	if w >= degenerate {
		scale = (v.Width - 2*v.Padding) / w
	}
	if h >= degenerate {
		scale = math.Min(scale, (v.Height-2*v.Padding)/h)
	}
	if math.IsInf(scale, 0) || math.IsNaN(scale) {
		scale = 1
	}

	return Transform{
		Scale:   scale,
		OffsetX: (v.Width-w*scale)/2 - box.Min.X*scale,
		OffsetY: (v.Height-h*scale)/2 - box.Min.Y*scale,
		Height:  v.Height,
	}
}

// Apply maps a canonical point to screen space.
func (t Transform) Apply(p geometry.Point) geometry.Point {
	return geometry.Point{
		X: p.X*t.Scale + t.OffsetX,
		Y: t.Height - (p.Y*t.Scale + t.OffsetY),
	}
}

// ApplyFrame maps every vertex of f.
func (t Transform) ApplyFrame(f geometry.Frame) geometry.Frame {
	return geometry.Frame{A: t.Apply(f.A), B: t.Apply(f.B), C: t.Apply(f.C)}
}
