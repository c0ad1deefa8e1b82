package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/trisolve/pkg/render/viewport"
	"github.com/matzehuels/trisolve/pkg/triangle"
)

type outDocument struct {
	Mode     string             `toml:"mode" json:"mode"`
	Inputs   map[string]float64 `toml:"inputs" json:"inputs"`
	Viewport *viewport.Viewport `toml:"viewport,omitempty" json:"viewport,omitempty"`
	Derived  map[string]float64 `toml:"derived,omitempty" json:"derived,omitempty"`
}

func (d Document) out() outDocument {
	out := outDocument{
		Mode:     d.Mode.String(),
		Inputs:   make(map[string]float64, 3),
		Viewport: d.Viewport,
	}
	for _, k := range d.Mode.Given() {
		out.Inputs[string(k)] = d.Inputs.Get(k)
	}
	if d.Result != nil && d.Result.Valid {
		out.Derived = make(map[string]float64, 3)
		for k, v := range d.Result.Derived() {
			out.Derived[string(k)] = v
		}
	}
	return out
}

// WriteTOML encodes d as TOML and writes it to w.
func WriteTOML(d Document, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(d.out()); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteJSON encodes d as indented JSON and writes it to w.
func WriteJSON(d Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d.out()); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportFile writes d to path, as JSON for a ".json" extension and TOML
// otherwise.
func ExportFile(d Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return WriteJSON(d, f)
	}
	return WriteTOML(d, f)
}

// Template returns a commented starter document for mode m with the
// default measures.
func Template(m triangle.Mode) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s: %s\n", m, m.Description())
	fmt.Fprintf(&b, "mode = %q\n\n[inputs]\n", m.String())
	d := triangle.Defaults()
	for _, k := range m.Given() {
		fmt.Fprintf(&b, "%s = %s\n", k, formatFloat(d.Get(k)))
	}
	vp := viewport.Default()
	fmt.Fprintf(&b, "\n[viewport]\nwidth = %s\nheight = %s\npadding = %s\n",
		formatFloat(vp.Width), formatFloat(vp.Height), formatFloat(vp.Padding))
	return b.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
