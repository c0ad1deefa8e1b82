// Package scene turns a solve result into format-independent drawing
// primitives in screen space.
//
// Every sink in pkg/render/sink draws from a [Scene], so the SVG, PNG and
// terminal outputs agree on where the polygon, markers and labels go.
package scene

import (
	"fmt"
	"math"

	"github.com/matzehuels/trisolve/pkg/geometry"
	"github.com/matzehuels/trisolve/pkg/render/viewport"
	"github.com/matzehuels/trisolve/pkg/triangle"
)

// Layout constants for markers and labels, in pixels.
const (
	MarkerRadius = 6.0

	vertexLabelDX = 15.0
	vertexLabelDY = -15.0
	sideLabelDX   = 10.0
	sideLabelDY   = 10.0
)

// LabelKind distinguishes vertex labels from side labels.
type LabelKind string

const (
	VertexLabel LabelKind = "vertex"
	SideLabel   LabelKind = "side"
)

// Label is a piece of text. At is its baseline start; Anchor is the vertex or
// edge midpoint it annotates.
type Label struct {
	Kind   LabelKind      `json:"kind"`
	Key    triangle.Key   `json:"key"`
	Text   string         `json:"text"`
	At     geometry.Point `json:"at"`
	Anchor geometry.Point `json:"anchor"`
}

// Marker is a filled dot on a vertex.
type Marker struct {
	Key    triangle.Key   `json:"key"`
	Center geometry.Point `json:"center"`
	Radius float64        `json:"radius"`
}

// Scene is everything needed to draw one solved triangle.
// A scene built from an invalid result is empty and draws as a cleared canvas.
type Scene struct {
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
	Valid     bool               `json:"valid"`
	Transform viewport.Transform `json:"transform"`
	Polygon   []geometry.Point   `json:"polygon,omitempty"`
	Markers   []Marker           `json:"markers,omitempty"`
	Labels    []Label            `json:"labels,omitempty"`
}

// Empty reports whether the scene has nothing to draw.
func (s Scene) Empty() bool {
	return len(s.Polygon) == 0
}

var (
	vertexKeys = [3]triangle.Key{triangle.AngleA, triangle.AngleB, triangle.AngleC}
	sideKeys   = [3]triangle.Key{triangle.SideA, triangle.SideB, triangle.SideC}
)

// Build lays out res in vp. The polygon runs C, B, A; markers and vertex
// labels run A, B, C; side labels run a, b, c.
func Build(res triangle.Result, vp viewport.Viewport) Scene {
	s := Scene{Width: vp.Width, Height: vp.Height, Valid: res.Valid}
	if !res.Valid {
		return s
	}

	frame := geometry.Canonical(res.Measures)
	s.Transform = viewport.Fit(frame, vp)
	screen := s.Transform.ApplyFrame(frame)

	v := screen.Vertices()
	s.Polygon = v[:]
	for _, k := range vertexKeys {
		p := screen.Vertex(k)
		s.Markers = append(s.Markers, Marker{Key: k, Center: p, Radius: MarkerRadius})
		s.Labels = append(s.Labels, Label{
			Kind:   VertexLabel,
			Key:    k,
			Text:   fmt.Sprintf("%s (%s°)", k, whole(res.Measures.Get(k))),
			At:     p.Add(vertexLabelDX, vertexLabelDY),
			Anchor: p,
		})
	}
	for _, k := range sideKeys {
		p, q := screen.Edge(k)
		mid := p.Midpoint(q)
		s.Labels = append(s.Labels, Label{
			Kind:   SideLabel,
			Key:    k,
			Text:   fmt.Sprintf("%s = %s", k, whole(res.Measures.Get(k))),
			At:     mid.Add(sideLabelDX, sideLabelDY),
			Anchor: mid,
		})
	}
	return s
}

// whole rounds half away from zero, the way drawing labels have always shown values.
func whole(v float64) string {
	return fmt.Sprintf("%.0f", math.Round(v))
}
