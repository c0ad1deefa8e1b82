package sink

import (
	"math"
	"strings"

	"github.com/matzehuels/trisolve/pkg/geometry"
	"github.com/matzehuels/trisolve/pkg/render/scene"
)

// TextOption configures terminal rendering.
type TextOption func(*textRenderer)

type textRenderer struct {
	labels bool
	vertex rune
}

// WithoutLabels draws only the outline and vertex markers.
func WithoutLabels() TextOption { return func(r *textRenderer) { r.labels = false } }

// WithVertexRune sets the rune drawn on each vertex (default '●').
func WithVertexRune(c rune) TextOption { return func(r *textRenderer) { r.vertex = c } }

// Grid is a fixed-size rune canvas. Origin is top-left; x grows rightward and y downward.
type Grid struct {
	cells [][]rune
	w, h  int
}

// NewGrid returns a blank grid of cols x rows, or nil if either is not positive.
func NewGrid(cols, rows int) *Grid {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	cells := make([][]rune, rows)
	for y := range cells {
		cells[y] = []rune(strings.Repeat(" ", cols))
	}
	return &Grid{cells: cells, w: cols, h: rows}
}

// Set writes c at (x, y). Out-of-bounds writes are dropped.
func (g *Grid) Set(x, y int, c rune) {
	if x < 0 || x >= g.w || y < 0 || y >= g.h {
		return
	}
	g.cells[y][x] = c
}

// Get returns the rune at (x, y), or a space when out of bounds.
func (g *Grid) Get(x, y int) rune {
	if x < 0 || x >= g.w || y < 0 || y >= g.h {
		return ' '
	}
	return g.cells[y][x]
}

// Text writes s starting at (x, y). The start is pulled back inside the grid
// so the text stays visible when it fits.
func (g *Grid) Text(x, y int, s string) {
	y = min(max(y, 0), g.h-1)
	rs := []rune(s)
	if over := x + len(rs) - g.w; over > 0 {
		x -= over
	}
	x = max(x, 0)
	for i, c := range rs {
		g.Set(x+i, y, c)
	}
}

// Line draws from (x0, y0) to (x1, y1) with Bresenham's algorithm.
func (g *Grid) Line(x0, y0, x1, y1 int, c rune) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy
	for {
		g.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// String joins the rows with newlines, trimming trailing blanks.
func (g *Grid) String() string {
	lines := make([]string, g.h)
	for y, row := range g.cells {
		lines[y] = strings.TrimRight(string(row), " ")
	}
	return strings.Join(lines, "\n")
}

// RenderText draws s on a cols x rows grid. Scene coordinates are scaled
// independently per axis, so a scene built for a cols x 2·rows viewport keeps
// the proportions of a terminal with cells twice as tall as they are wide.
func RenderText(s scene.Scene, cols, rows int, opts ...TextOption) string {
	r := textRenderer{labels: true, vertex: '●'}
	for _, opt := range opts {
		opt(&r)
	}

	g := NewGrid(cols, rows)
	if g == nil {
		return ""
	}
	if s.Empty() || s.Width <= 0 || s.Height <= 0 {
		return g.String()
	}

	cell := func(p geometry.Point) (int, int) {
		return int(math.Round(p.X * float64(cols-1) / s.Width)), int(math.Round(p.Y * float64(rows-1) / s.Height))
	}

	n := len(s.Polygon)
	for i := range s.Polygon {
		x0, y0 := cell(s.Polygon[i])
		x1, y1 := cell(s.Polygon[(i+1)%n])
		g.Line(x0, y0, x1, y1, edgeRune(x1-x0, y1-y0))
	}
	for _, m := range s.Markers {
		x, y := cell(m.Center)
		g.Set(x, y, r.vertex)
	}
	if r.labels {
		// Pixel offsets are meaningless at cell size; keep only their direction.
		for _, l := range s.Labels {
			x, y := cell(l.Anchor)
			g.Text(x+sign(int(l.At.X-l.Anchor.X)), y+sign(int(l.At.Y-l.Anchor.Y)), l.Text)
		}
	}
	return g.String()
}

// edgeRune picks an ASCII stroke matching the slope of a segment in cell space.
func edgeRune(dx, dy int) rune {
	ax, ay := abs(dx), abs(dy)
	switch {
	case ax >= 3*ay:
		return '-'
	case ay >= 3*ax:
		return '|'
	case (dx > 0) == (dy < 0):
		return '/'
	default:
		return '\\'
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
