package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/trisolve/pkg/cache"
	"github.com/matzehuels/trisolve/pkg/errors"
	"github.com/matzehuels/trisolve/pkg/render"
	"github.com/matzehuels/trisolve/pkg/render/viewport"
	"github.com/matzehuels/trisolve/pkg/triangle"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"txt", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want INVALID_FORMAT", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestFormatNames(t *testing.T) {
	got := strings.Join(FormatNames(), ",")
	if got != "json,pdf,png,svg,txt" {
		t.Errorf("FormatNames() = %s", got)
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()

	if opts.Viewport != viewport.Default() {
		t.Errorf("Viewport should default to %+v, got %+v", viewport.Default(), opts.Viewport)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discarding logger")
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.PNGScale != DefaultPNGScale {
		t.Errorf("PNGScale should be %g, got %g", DefaultPNGScale, opts.PNGScale)
	}
	if opts.Theme.Stroke == "" {
		t.Error("Theme should be filled from defaults")
	}
}

func TestValidateForRender(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"defaults", Options{}, ""},
		{"bad mode", Options{Mode: triangle.Mode(9)}, errors.ErrCodeInvalidMode},
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"bad viewport", Options{Viewport: viewport.Viewport{Width: 100, Height: 100, Padding: 60}}, errors.ErrCodeInvalidViewport},
		{"negative scale", Options{PNGScale: -1}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForRender()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()

	svg := opts.ArtifactKeyOpts(FormatSVG)
	png := opts.ArtifactKeyOpts(FormatPNG)
	if svg.Scale != 0 {
		t.Error("scale should only key PNG artifacts")
	}
	if png.Scale != DefaultPNGScale {
		t.Errorf("png scale = %g", png.Scale)
	}
	if svg.ThemeHash == "" || svg.ThemeHash != png.ThemeHash {
		t.Error("theme hash should be set and shared across formats")
	}

	opts.Theme.Stroke = "#ff0000"
	if opts.ArtifactKeyOpts(FormatSVG).ThemeHash == svg.ThemeHash {
		t.Error("theme change should change the key")
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Mode:    triangle.SSS,
		Inputs:  triangle.Measures{SideA: 3, SideB: 4, SideC: 5},
		Formats: []string{FormatSVG, FormatJSON, FormatText},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if !res.Solve.Valid {
		t.Fatalf("3-4-5 should be valid: %s", res.Solve.Error)
	}
	if res.Scene.Empty() {
		t.Error("valid solve should produce a scene")
	}
	if !bytes.Contains(res.Artifacts[FormatSVG], []byte(`class="triangle"`)) {
		t.Error("svg should contain the triangle path")
	}
	if !bytes.Contains(res.Artifacts[FormatSVG], []byte("<title>SSS triangle a=3 b=4 c=5</title>")) {
		t.Errorf("svg title missing side lengths:\n%s", res.Artifacts[FormatSVG])
	}

	var doc struct {
		Mode  string `json:"mode"`
		Valid bool   `json:"valid"`
	}
	if err := json.Unmarshal(res.Artifacts[FormatJSON], &doc); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if doc.Mode != "SSS" || !doc.Valid {
		t.Errorf("json doc = %+v", doc)
	}
	if len(res.Artifacts[FormatText]) == 0 {
		t.Error("text artifact should not be empty")
	}
	if res.CacheInfo.RenderHit {
		t.Error("null cache should never hit")
	}
}

func TestExecuteInvalidTriangle(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Mode:   triangle.SSS,
		Inputs: triangle.Measures{SideA: 1, SideB: 1, SideC: 3},
	})
	if err != nil {
		t.Fatalf("invalid triangle should not be an error: %v", err)
	}
	if res.Solve.Valid {
		t.Fatal("1-1-3 should be invalid")
	}
	if !res.Scene.Empty() {
		t.Error("invalid solve should produce an empty scene")
	}
	svg := res.Artifacts[FormatSVG]
	if bytes.Contains(svg, []byte(`class="triangle"`)) {
		t.Error("invalid solve should render no polygon")
	}
	if !bytes.Contains(svg, []byte(`class="background"`)) {
		t.Error("invalid solve should still clear the canvas")
	}
	if !bytes.Contains(svg, []byte("<title>SSS: no triangle</title>")) {
		t.Error("invalid solve should say so in the svg title")
	}
}

func TestExecuteLargeSides(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Mode:    triangle.SSS,
		Inputs:  triangle.Measures{SideA: 1e200, SideB: 1e200, SideC: 1e200},
		Formats: []string{FormatSVG, FormatPNG, FormatText, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !res.Solve.Valid {
		t.Fatalf("equilateral triangle should be valid: %s", res.Solve.Error)
	}
	var doc struct {
		Valid bool `json:"valid"`
	}
	if err := json.Unmarshal(res.Artifacts[FormatJSON], &doc); err != nil || !doc.Valid {
		t.Errorf("json artifact = %+v, err %v", doc, err)
	}
}

func TestExecuteInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{Formats: []string{"bmp"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestExecuteCaches(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	defer r.Close()

	opts := Options{
		Mode:    triangle.SAS,
		Inputs:  triangle.Defaults(),
		Formats: []string{FormatSVG, FormatJSON},
	}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first run should miss")
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit")
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from rendered svg")
	}

	// Derived fields do not take part in the key.
	edited := opts
	edited.Inputs.SideC = 999
	third, err := r.Execute(context.Background(), edited)
	if err != nil {
		t.Fatal(err)
	}
	if !third.CacheInfo.RenderHit {
		t.Error("editing a derived measure should still hit")
	}

	refresh := opts
	refresh.Refresh = true
	fourth, err := r.Execute(context.Background(), refresh)
	if err != nil {
		t.Fatal(err)
	}
	if fourth.CacheInfo.RenderHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestRenderUnsupportedPDF(t *testing.T) {
	if render.HasConverter() {
		t.Skip("rsvg-convert installed")
	}
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{Formats: []string{FormatPDF}})
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("error = %v, want UNSUPPORTED", err)
	}
}
