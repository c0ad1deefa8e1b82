// Package pipeline provides the solve → layout → render pipeline for trisolve.
//
// The CLI, the TUI and the HTTP server all go through this package so that
// defaults, validation and caching behave the same at every entry point.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Solve: Derive the missing measures with [triangle.Solve]
//  2. Layout: Place the canonical frame in the viewport with [scene.Build]
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON, text)
//
// Solving never fails with a Go error: an impossible triangle comes back as an
// invalid result whose scene is empty. Only bad options and render failures
// are returned as errors.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Mode:    triangle.SAS,
//	    Inputs:  triangle.Defaults(),
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"encoding/json"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/trisolve/pkg/cache"
	"github.com/matzehuels/trisolve/pkg/errors"
	"github.com/matzehuels/trisolve/pkg/render/scene"
	"github.com/matzehuels/trisolve/pkg/render/sink"
	"github.com/matzehuels/trisolve/pkg/render/viewport"
	"github.com/matzehuels/trisolve/pkg/triangle"
)

// DefaultPNGScale is the pixel density multiplier for PNG output.
const DefaultPNGScale = 2.0

// TextCellWidth and TextCellHeight are the viewport pixels covered by one
// character cell of text output.
const (
	TextCellWidth  = 10
	TextCellHeight = 20
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatText = "txt"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatText: true,
}

// FormatNames returns the supported formats in sorted order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	sort.Strings(names)
	return names
}

// Options contains all configuration for one pipeline run.
type Options struct {
	Mode     triangle.Mode     `json:"mode"`
	Inputs   triangle.Measures `json:"inputs"`
	Viewport viewport.Viewport `json:"viewport"`

	Formats  []string   `json:"formats,omitempty"`
	Theme    sink.Theme `json:"theme"`
	PNGScale float64    `json:"png_scale,omitempty"`
	Refresh  bool       `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Solve is the solver output, valid or not.
	Solve triangle.Result

	// Scene is the projected drawing; empty when Solve is invalid.
	Scene scene.Scene

	// InputKey identifies the solve request in the cache.
	InputKey string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SolveTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateMode checks that the mode is one of the four solving modes.
func ValidateMode(m triangle.Mode) error {
	if !m.Valid() {
		return errors.New(errors.ErrCodeInvalidMode, "invalid mode: %d", int(m))
	}
	return nil
}

// SetLayoutDefaults fills an unset viewport.
func (o *Options) SetLayoutDefaults() {
	o.Viewport = o.Viewport.WithDefaults()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	o.Theme = o.Theme.WithDefaults()
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	if err := ValidateMode(o.Mode); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	return o.Viewport.Validate()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.PNGScale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %g", o.PNGScale)
	}
	return o.Theme.Validate()
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:    format,
		Viewport:  o.Viewport,
		ThemeHash: themeHash(o.Theme),
	}
	if format == FormatPNG {
		opts.Scale = o.PNGScale
	}
	return opts
}

func themeHash(t sink.Theme) string {
	data, err := json.Marshal(t)
	if err != nil {
		return ""
	}
	return cache.ShortHash(data)
}
