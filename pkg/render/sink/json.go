package sink

import (
	"encoding/json"

	"github.com/matzehuels/trisolve/pkg/render/scene"
	"github.com/matzehuels/trisolve/pkg/triangle"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	compact bool
	steps   bool
}

// WithCompactJSON disables indentation.
func WithCompactJSON() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

// WithoutSteps leaves the derivation trace out of the output.
func WithoutSteps() JSONOption { return func(r *jsonRenderer) { r.steps = false } }

// Document is the JSON shape written by [RenderJSON].
type Document struct {
	Mode     triangle.Mode     `json:"mode"`
	Valid    bool              `json:"valid"`
	Measures triangle.Measures `json:"measures"`
	Steps    []triangle.Step   `json:"steps,omitempty"`
	Error    string            `json:"error,omitempty"`
	Scene    scene.Scene       `json:"scene"`
}

// NewDocument pairs a result with its scene.
func NewDocument(res triangle.Result, s scene.Scene) Document {
	return Document{
		Mode:     res.Mode,
		Valid:    res.Valid,
		Measures: res.Measures,
		Steps:    res.Steps,
		Error:    res.Error,
		Scene:    s,
	}
}

// RenderJSON exports the result, its trace and the scene it draws as.
func RenderJSON(res triangle.Result, s scene.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{steps: true}
	for _, opt := range opts {
		opt(&r)
	}

	doc := NewDocument(res, s)
	if !r.steps {
		doc.Steps = nil
	}
	if r.compact {
		return json.Marshal(doc)
	}
	return json.MarshalIndent(doc, "", "  ")
}
