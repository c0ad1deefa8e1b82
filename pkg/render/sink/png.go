package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/matzehuels/trisolve/pkg/fonts"
	"github.com/matzehuels/trisolve/pkg/geometry"
	"github.com/matzehuels/trisolve/pkg/render/scene"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	theme       Theme
	scale       float64
	supersample int
}

// WithPNGTheme sets the colour theme.
func WithPNGTheme(t Theme) PNGOption { return func(r *pngRenderer) { r.theme = t.WithDefaults() } }

// WithScale sets the output scale factor (default 1; 2.0 for 2x resolution).
func WithScale(s float64) PNGOption { return func(r *pngRenderer) { r.scale = s } }

// WithSupersample sets how many samples per output pixel are drawn along each axis (default 4).
func WithSupersample(n int) PNGOption { return func(r *pngRenderer) { r.supersample = n } }

// RenderPNG rasterises s. The drawing happens at supersample resolution and
// is downscaled with Catmull-Rom filtering for smooth edges.
func RenderPNG(s scene.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{theme: DefaultTheme(), scale: 1, supersample: 4}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 || r.supersample < 1 {
		return nil, fmt.Errorf("png: invalid scale %g or supersample %d", r.scale, r.supersample)
	}

	w := int(math.Ceil(s.Width * r.scale))
	h := int(math.Ceil(s.Height * r.scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("png: empty canvas %dx%d", w, h)
	}

	k := r.scale * float64(r.supersample)
	large := image.NewRGBA(image.Rect(0, 0, w*r.supersample, h*r.supersample))
	draw.Draw(large, large.Bounds(), image.NewUniform(rgba(r.theme.Background, 1)), image.Point{}, draw.Src)

	if !s.Empty() {
		if err := rasterize(large, s, r.theme, k); err != nil {
			return nil, err
		}
	}

	final := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(final, final.Bounds(), large, large.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, final); err != nil {
		return nil, fmt.Errorf("png: encode: %w", err)
	}
	return buf.Bytes(), nil
}

func rasterize(img *image.RGBA, s scene.Scene, t Theme, k float64) error {
	pts := make([]geometry.Point, len(s.Polygon))
	for i, p := range s.Polygon {
		pts[i] = geometry.Point{X: p.X * k, Y: p.Y * k}
	}

	fillPath(img, pts, rgba(t.Fill, t.FillOpacity))
	stroke := rgba(t.Stroke, 1)
	half := t.StrokeWidth * k / 2
	for i := range pts {
		thickLine(img, pts[i], pts[(i+1)%len(pts)], half, stroke)
		disc(img, pts[i], half, stroke)
	}

	marker := rgba(t.Marker, 1)
	for _, m := range s.Markers {
		disc(img, geometry.Point{X: m.Center.X * k, Y: m.Center.Y * k}, m.Radius*k, marker)
	}

	regular, err := fonts.Regular()
	if err != nil {
		return fmt.Errorf("png: load font: %w", err)
	}
	bold, err := fonts.Bold()
	if err != nil {
		return fmt.Errorf("png: load font: %w", err)
	}
	vertexFace, err := fonts.Face(bold, t.VertexSize*k)
	if err != nil {
		return fmt.Errorf("png: font face: %w", err)
	}
	defer vertexFace.Close()
	sideFace, err := fonts.Face(regular, t.SideSize*k)
	if err != nil {
		return fmt.Errorf("png: font face: %w", err)
	}
	defer sideFace.Close()

	for _, l := range s.Labels {
		face, col := sideFace, rgba(t.SideLabel, 1)
		if l.Kind == scene.VertexLabel {
			face, col = vertexFace, rgba(t.VertexLabel, 1)
		}
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(col),
			Face: face,
			Dot:  fixed.P(int(math.Round(l.At.X*k)), int(math.Round(l.At.Y*k))),
		}
		d.DrawString(l.Text)
	}
	return nil
}

func fillPath(img *image.RGBA, pts []geometry.Point, c color.Color) {
	if len(pts) < 3 {
		return
	}
	b := img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()
	z.Draw(img, b, image.NewUniform(c), image.Point{})
}

// thickLine fills the rectangle of half-width half around segment p-q.
func thickLine(img *image.RGBA, p, q geometry.Point, half float64, c color.Color) {
	dx, dy := q.X-p.X, q.Y-p.Y
	n := math.Hypot(dx, dy)
	if n == 0 {
		return
	}
	nx, ny := -dy/n*half, dx/n*half
	fillPath(img, []geometry.Point{
		{X: p.X + nx, Y: p.Y + ny},
		{X: q.X + nx, Y: q.Y + ny},
		{X: q.X - nx, Y: q.Y - ny},
		{X: p.X - nx, Y: p.Y - ny},
	}, c)
}

func disc(img *image.RGBA, center geometry.Point, radius float64, c color.Color) {
	const segments = 48
	pts := make([]geometry.Point, segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / segments
		pts[i] = geometry.Point{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)}
	}
	fillPath(img, pts, c)
}
