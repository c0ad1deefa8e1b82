package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/matzehuels/trisolve/pkg/render/scene"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	theme      Theme
	background bool
	title      string
}

// WithTheme sets the colour theme. Empty fields keep their defaults.
func WithTheme(t Theme) SVGOption { return func(r *svgRenderer) { r.theme = t.WithDefaults() } }

// WithTransparentBackground omits the background rectangle.
func WithTransparentBackground() SVGOption { return func(r *svgRenderer) { r.background = false } }

// WithTitle adds a <title> element for accessibility.
func WithTitle(s string) SVGOption { return func(r *svgRenderer) { r.title = s } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{theme: DefaultTheme(), background: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws s as a standalone SVG document.
func RenderSVG(s scene.Scene, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	t := r.theme

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.Width, s.Height, s.Width, s.Height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(r.title))
	}
	if r.background {
		fmt.Fprintf(&buf, `  <rect class="background" width="100%%" height="100%%" fill="%s"/>`+"\n", t.Background)
	}

	if !s.Empty() {
		renderTriangle(&buf, s, t)
		renderMarkers(&buf, s, t)
		renderLabels(&buf, s, t)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderTriangle(buf *bytes.Buffer, s scene.Scene, t Theme) {
	buf.WriteString(`  <path class="triangle" d="`)
	for i, p := range s.Polygon {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(buf, "%s %.2f %.2f ", cmd, p.X, p.Y)
	}
	fmt.Fprintf(buf, `Z" fill="%s" fill-opacity="%.2f" stroke="%s" stroke-width="%.1f" stroke-linejoin="round"/>`+"\n",
		t.Fill, t.FillOpacity, t.Stroke, t.StrokeWidth)
}

func renderMarkers(buf *bytes.Buffer, s scene.Scene, t Theme) {
	for _, m := range s.Markers {
		fmt.Fprintf(buf, `  <circle class="vertex" id="vertex-%s" cx="%.2f" cy="%.2f" r="%.1f" fill="%s"/>`+"\n",
			m.Key, m.Center.X, m.Center.Y, m.Radius, t.Marker)
	}
}

func renderLabels(buf *bytes.Buffer, s scene.Scene, t Theme) {
	for _, l := range s.Labels {
		fill, size, weight := t.SideLabel, t.SideSize, "normal"
		if l.Kind == scene.VertexLabel {
			fill, size, weight = t.VertexLabel, t.VertexSize, "bold"
		}
		fmt.Fprintf(buf, `  <text class="label-%s" x="%.2f" y="%.2f" font-family="%s" font-size="%.0f" font-weight="%s" fill="%s">%s</text>`+"\n",
			l.Kind, l.At.X, l.At.Y, html.EscapeString(t.FontFamily), size, weight, fill, html.EscapeString(l.Text))
	}
}
