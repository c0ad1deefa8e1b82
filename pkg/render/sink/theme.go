package sink

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/trisolve/pkg/errors"
)

// Theme controls colours and type sizes. Colours are hex strings.
type Theme struct {
	Background  string  `toml:"background" json:"background"`
	Fill        string  `toml:"fill" json:"fill"`
	FillOpacity float64 `toml:"fill_opacity" json:"fill_opacity"`
	Stroke      string  `toml:"stroke" json:"stroke"`
	StrokeWidth float64 `toml:"stroke_width" json:"stroke_width"`
	Marker      string  `toml:"marker" json:"marker"`
	VertexLabel string  `toml:"vertex_label" json:"vertex_label"`
	SideLabel   string  `toml:"side_label" json:"side_label"`
	VertexSize  float64 `toml:"vertex_size" json:"vertex_size"`
	SideSize    float64 `toml:"side_size" json:"side_size"`
	FontFamily  string  `toml:"font_family" json:"font_family"`
}

// DefaultTheme returns the stock palette.
func DefaultTheme() Theme {
	return Theme{
		Background:  "#0f172a",
		Fill:        "#8b5cf6",
		FillOpacity: 0.1,
		Stroke:      "#8b5cf6",
		StrokeWidth: 4,
		Marker:      "#ec4899",
		VertexLabel: "#ffffff",
		SideLabel:   "#94a3b8",
		VertexSize:  16,
		SideSize:    14,
		FontFamily:  "Outfit, 'Go', sans-serif",
	}
}

// WithDefaults fills empty fields from [DefaultTheme].
func (t Theme) WithDefaults() Theme {
	d := DefaultTheme()
	if t.Background == "" {
		t.Background = d.Background
	}
	if t.Fill == "" {
		t.Fill = d.Fill
	}
	if t.FillOpacity == 0 {
		t.FillOpacity = d.FillOpacity
	}
	if t.Stroke == "" {
		t.Stroke = d.Stroke
	}
	if t.StrokeWidth == 0 {
		t.StrokeWidth = d.StrokeWidth
	}
	if t.Marker == "" {
		t.Marker = d.Marker
	}
	if t.VertexLabel == "" {
		t.VertexLabel = d.VertexLabel
	}
	if t.SideLabel == "" {
		t.SideLabel = d.SideLabel
	}
	if t.VertexSize == 0 {
		t.VertexSize = d.VertexSize
	}
	if t.SideSize == 0 {
		t.SideSize = d.SideSize
	}
	if t.FontFamily == "" {
		t.FontFamily = d.FontFamily
	}
	return t
}

// Validate checks that every colour parses and that sizes are sensible.
func (t Theme) Validate() error {
	for name, hex := range map[string]string{
		"background":   t.Background,
		"fill":         t.Fill,
		"stroke":       t.Stroke,
		"marker":       t.Marker,
		"vertex_label": t.VertexLabel,
		"side_label":   t.SideLabel,
	} {
		if _, err := colorful.Hex(hex); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "theme %s %q is not a hex colour", name, hex)
		}
	}
	if t.FillOpacity < 0 || t.FillOpacity > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "theme fill_opacity must be within [0, 1], got %g", t.FillOpacity)
	}
	if t.StrokeWidth < 0 || t.VertexSize <= 0 || t.SideSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "theme sizes must be positive")
	}
	return nil
}

// rgba parses hex with the given opacity. Unparseable colours fall back to
// opaque black; [Theme.Validate] catches them earlier.
func rgba(hex string, opacity float64) color.NRGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{A: 255}
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(opacity*255 + 0.5)}
}
