// Package geometry places a solved triangle in a canonical 2-D frame.
//
// The frame puts vertex C at the origin and vertex B on the positive x-axis,
// with A above it. Only b, a and angle C are read, so every solve mode lays
// out the same way once its measures are complete.
package geometry

import (
	"math"

	"github.com/matzehuels/trisolve/pkg/triangle"
)

// Point is a position in the canonical frame or in screen space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Midpoint returns the point halfway between p and q.
func (p Point) Midpoint(q Point) Point {
	return Point{X: (p.X + q.X) / 2, Y: (p.Y + q.Y) / 2}
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Frame holds the three vertices of a triangle.
type Frame struct {
	A Point `json:"A"`
	B Point `json:"B"`
	C Point `json:"C"`
}

// Canonical lays out m with C = (0,0), B = (a,0) and A = (b·cos C, b·sin C).
func Canonical(m triangle.Measures) Frame {
	rad := m.AngleC * math.Pi / 180
	return Frame{
		A: Point{X: m.SideB * math.Cos(rad), Y: m.SideB * math.Sin(rad)},
		B: Point{X: m.SideA, Y: 0},
		C: Point{X: 0, Y: 0},
	}
}

// Vertices returns the points in drawing order C, B, A.
func (f Frame) Vertices() [3]Point {
	return [3]Point{f.C, f.B, f.A}
}

// Vertex returns the vertex named by an angle key. Side keys return the zero point.
func (f Frame) Vertex(k triangle.Key) Point {
	switch k {
	case triangle.AngleA:
		return f.A
	case triangle.AngleB:
		return f.B
	case triangle.AngleC:
		return f.C
	}
	return Point{}
}

// Edge returns the endpoints of the side named by k: a is B-C, b is C-A and c is A-B.
func (f Frame) Edge(k triangle.Key) (Point, Point) {
	switch k {
	case triangle.SideA:
		return f.B, f.C
	case triangle.SideB:
		return f.C, f.A
	case triangle.SideC:
		return f.A, f.B
	}
	return Point{}, Point{}
}

// Bounds returns the axis-aligned bounding box of the frame.
func (f Frame) Bounds() Box {
	v := f.Vertices()
	b := Box{Min: v[0], Max: v[0]}
	for _, p := range v[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
	}
	return b
}

// Box is an axis-aligned rectangle.
type Box struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// Width returns the horizontal extent.
func (b Box) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the vertical extent.
func (b Box) Height() float64 { return b.Max.Y - b.Min.Y }
