package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/trisolve/pkg/errors"
	"github.com/matzehuels/trisolve/pkg/render/viewport"
	"github.com/matzehuels/trisolve/pkg/triangle"
)

// Document is a decoded input document.
type Document struct {
	Mode   triangle.Mode
	Inputs triangle.Measures

	// Present lists the measures the document set explicitly.
	Present []triangle.Key

	// Viewport is nil when the document has no [viewport] table.
	Viewport *viewport.Viewport

	// Result, when set, is written as the [derived] table on export.
	Result *triangle.Result
}

// rawDocument is the wire shape shared by TOML and JSON.
type rawDocument struct {
	Mode     string         `toml:"mode" json:"mode"`
	Inputs   map[string]any `toml:"inputs" json:"inputs"`
	Viewport *rawViewport   `toml:"viewport" json:"viewport,omitempty"`
	Derived  map[string]any `toml:"derived" json:"derived,omitempty"`
}

// rawViewport tells an omitted dimension apart from an explicit zero.
type rawViewport struct {
	Width   *float64 `toml:"width" json:"width"`
	Height  *float64 `toml:"height" json:"height"`
	Padding *float64 `toml:"padding" json:"padding"`
}

// viewport overlays the dimensions the document set on [viewport.Default].
func (r rawViewport) viewport() viewport.Viewport {
	vp := viewport.Default()
	for _, d := range []struct {
		src *float64
		dst *float64
	}{
		{r.Width, &vp.Width},
		{r.Height, &vp.Height},
		{r.Padding, &vp.Padding},
	} {
		if d.src != nil {
			*d.dst = *d.src
		}
	}
	return vp
}

// ReadTOML decodes a TOML input document from r.
// Unknown keys are rejected so typos do not silently fall back to defaults.
// ReadTOML does not close r.
func ReadTOML(r io.Reader) (Document, error) {
	var raw rawDocument
	md, err := toml.NewDecoder(r).Decode(&raw)
	if err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Document{}, errors.New(errors.ErrCodeInvalidInput, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return raw.document()
}

// ReadJSON decodes a JSON input document from r.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (Document, error) {
	var raw rawDocument
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
	}
	return raw.document()
}

// ImportFile reads the document at path, choosing the decoder by extension:
// ".json" is read as JSON and anything else as TOML.
func ImportFile(path string) (Document, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var doc Document
	if strings.EqualFold(filepath.Ext(path), ".json") {
		doc, err = ReadJSON(f)
	} else {
		doc, err = ReadTOML(f)
	}
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func (raw rawDocument) document() (Document, error) {
	doc := Document{
		Mode:   triangle.DefaultMode,
		Inputs: triangle.Defaults(),
	}

	if raw.Mode != "" {
		m, err := triangle.ParseMode(raw.Mode)
		if err != nil {
			return Document{}, err
		}
		doc.Mode = m
	}

	names := make([]string, 0, len(raw.Inputs))
	for name := range raw.Inputs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		k, err := triangle.ParseKey(name)
		if err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "inputs")
		}
		v, err := measureValue(k, raw.Inputs[name])
		if err != nil {
			return Document{}, err
		}
		doc.Inputs = doc.Inputs.Set(k, v)
		doc.Present = append(doc.Present, k)
	}

	if raw.Viewport != nil {
		vp := raw.Viewport.viewport()
		if err := vp.Validate(); err != nil {
			return Document{}, err
		}
		doc.Viewport = &vp
	}
	return doc, nil
}

// measureValue converts one decoded input value. TOML yields int64 and
// float64, JSON yields float64, and either may hold a string.
func measureValue(k triangle.Key, v any) (float64, error) {
	switch x := v.(type) {
	case string:
		return triangle.ParseMeasure(k, x)
	case int64:
		return validated(k, float64(x))
	case float64:
		return validated(k, x)
	}
	return 0, &triangle.ParseError{
		Key:    k,
		Input:  fmt.Sprint(v),
		Reason: fmt.Sprintf("must be a number or string, got %T", v),
	}
}

func validated(k triangle.Key, v float64) (float64, error) {
	if err := triangle.ValidateMeasure(k, v); err != nil {
		return 0, err
	}
	return v, nil
}

// HasKey reports whether the document set k explicitly.
func (d Document) HasKey(k triangle.Key) bool {
	for _, p := range d.Present {
		if p == k {
			return true
		}
	}
	return false
}

// Missing returns the mode's given measures that the document left out.
func (d Document) Missing() []triangle.Key {
	var out []triangle.Key
	for _, k := range d.Mode.Given() {
		if !d.HasKey(k) {
			out = append(out, k)
		}
	}
	return out
}
