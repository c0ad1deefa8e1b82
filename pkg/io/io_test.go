package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/trisolve/pkg/errors"
	"github.com/matzehuels/trisolve/pkg/triangle"
)

func TestReadTOML(t *testing.T) {
	doc, err := ReadTOML(strings.NewReader(`
mode = "sss"

[inputs]
a = 3
b = 4.0
c = " 5 "

[viewport]
width = 400
height = 300
`))
	if err != nil {
		t.Fatalf("ReadTOML: %v", err)
	}

	if doc.Mode != triangle.SSS {
		t.Errorf("Mode = %v, want SSS", doc.Mode)
	}
	if doc.Inputs.SideA != 3 || doc.Inputs.SideB != 4 || doc.Inputs.SideC != 5 {
		t.Errorf("Inputs = %+v", doc.Inputs)
	}
	if doc.Inputs.AngleA != 60 {
		t.Errorf("unset measures should keep defaults, A = %v", doc.Inputs.AngleA)
	}
	if doc.Viewport == nil || doc.Viewport.Width != 400 || doc.Viewport.Padding != 60 {
		t.Errorf("Viewport = %+v, want 400 wide with default padding", doc.Viewport)
	}
	if len(doc.Missing()) != 0 {
		t.Errorf("Missing() = %v", doc.Missing())
	}
}

func TestReadZeroPadding(t *testing.T) {
	docs := map[string]func() (Document, error){
		"toml": func() (Document, error) {
			return ReadTOML(strings.NewReader("[viewport]\npadding = 0\n"))
		},
		"json": func() (Document, error) {
			return ReadJSON(strings.NewReader(`{"viewport": {"padding": 0}}`))
		},
	}
	for name, read := range docs {
		t.Run(name, func(t *testing.T) {
			doc, err := read()
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if doc.Viewport == nil || doc.Viewport.Padding != 0 || doc.Viewport.Width != 800 {
				t.Errorf("Viewport = %+v, want 800 wide with no padding", doc.Viewport)
			}
		})
	}
}

func TestReadTOMLDefaults(t *testing.T) {
	doc, err := ReadTOML(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Mode != triangle.SAS || doc.Inputs != triangle.Defaults() || doc.Viewport != nil {
		t.Errorf("empty document = %+v", doc)
	}
	if got := len(doc.Missing()); got != 3 {
		t.Errorf("Missing() has %d keys, want 3", got)
	}
}

func TestReadTOMLDegreeSign(t *testing.T) {
	doc, err := ReadTOML(strings.NewReader("[inputs]\nC = \"75°\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Inputs.AngleC != 75 || !doc.HasKey(triangle.AngleC) {
		t.Errorf("C = %v", doc.Inputs.AngleC)
	}
}

func TestReadTOMLErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code errors.Code
	}{
		{"syntax", "mode = ", errors.ErrCodeInvalidInput},
		{"unknown top-level key", "shape = 1", errors.ErrCodeInvalidInput},
		{"unknown measure", "[inputs]\nd = 1", errors.ErrCodeInvalidInput},
		{"bad mode", `mode = "SSA"`, errors.ErrCodeInvalidMode},
		{"negative side", "[inputs]\na = -1", errors.ErrCodeInvalidMeasure},
		{"straight angle", "[inputs]\nA = 180", errors.ErrCodeInvalidMeasure},
		{"not a number", "[inputs]\nb = \"abc\"", errors.ErrCodeInvalidMeasure},
		{"wrong type", "[inputs]\nb = true", errors.ErrCodeInvalidMeasure},
		{"nan", "[inputs]\nb = nan", errors.ErrCodeInvalidMeasure},
		{"bad viewport", "[viewport]\nwidth = 100\nheight = 100", errors.ErrCodeInvalidViewport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTOML(strings.NewReader(tt.in))
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestReadJSON(t *testing.T) {
	doc, err := ReadJSON(strings.NewReader(`{"mode":"ASA","inputs":{"A":45,"B":"45","c":10}}`))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if doc.Mode != triangle.ASA || doc.Inputs.AngleB != 45 || doc.Inputs.SideC != 10 {
		t.Errorf("doc = %+v", doc)
	}

	if _, err := ReadJSON(strings.NewReader(`{"mode":"ASA","extra":1}`)); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("unknown field error = %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	in := Document{
		Mode:   triangle.SAS,
		Inputs: triangle.Measures{SideA: 150, SideB: 180, AngleC: 60},
	}
	res := triangle.Solve(in.Mode, in.Inputs)
	in.Result = &res

	for _, name := range []string{"t.toml", "t.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := ExportFile(in, path); err != nil {
				t.Fatalf("ExportFile: %v", err)
			}
			data, _ := os.ReadFile(path)
			if !bytes.Contains(data, []byte("derived")) {
				t.Errorf("export should include the derived table:\n%s", data)
			}

			out, err := ImportFile(path)
			if err != nil {
				t.Fatalf("ImportFile: %v\n%s", err, data)
			}
			if out.Mode != in.Mode {
				t.Errorf("Mode = %v, want %v", out.Mode, in.Mode)
			}
			for _, k := range in.Mode.Given() {
				if out.Inputs.Get(k) != in.Inputs.Get(k) {
					t.Errorf("%s = %v, want %v", k, out.Inputs.Get(k), in.Inputs.Get(k))
				}
			}
		})
	}
}

func TestImportFileNotFound(t *testing.T) {
	_, err := ImportFile(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestTemplate(t *testing.T) {
	for _, m := range triangle.Modes() {
		t.Run(m.String(), func(t *testing.T) {
			doc, err := ReadTOML(strings.NewReader(Template(m)))
			if err != nil {
				t.Fatalf("template does not parse: %v\n%s", err, Template(m))
			}
			if doc.Mode != m {
				t.Errorf("Mode = %v, want %v", doc.Mode, m)
			}
			if len(doc.Missing()) != 0 {
				t.Errorf("template misses %v", doc.Missing())
			}
		})
	}
}
