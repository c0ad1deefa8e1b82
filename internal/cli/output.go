package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trisolve/pkg/config"
	"github.com/matzehuels/trisolve/pkg/pipeline"
	"github.com/matzehuels/trisolve/pkg/render/viewport"
)

// renderFlags holds the output flags shared by solve, render and watch.
type renderFlags struct {
	output  string  // output file (single format) or base path (multiple)
	formats string  // comma-separated formats
	width   float64 // viewport width in pixels
	height  float64 // viewport height in pixels
	padding float64 // viewport padding in pixels
	scale   float64 // PNG pixel density
	noCache bool    // bypass the artifact cache
}

// register adds the flags to cmd.
func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): "+strings.Join(pipeline.FormatNames(), ", ")+" (comma-separated)")
	cmd.Flags().Float64Var(&f.width, "width", viewport.DefaultWidth, "viewport width in pixels")
	cmd.Flags().Float64Var(&f.height, "height", viewport.DefaultHeight, "viewport height in pixels")
	cmd.Flags().Float64Var(&f.padding, "padding", viewport.DefaultPadding, "viewport padding in pixels")
	cmd.Flags().Float64Var(&f.scale, "scale", pipeline.DefaultPNGScale, "PNG pixel density")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
}

// options layers the flags over cfg and an optional document viewport.
// Flags the user set win over the document, which wins over the config file.
func (f *renderFlags) options(cmd *cobra.Command, cfg config.Config, doc *viewport.Viewport) pipeline.Options {
	vp := cfg.Viewport
	if doc != nil {
		vp = doc.WithDefaults()
	}
	if cmd.Flags().Changed("width") {
		vp.Width = f.width
	}
	if cmd.Flags().Changed("height") {
		vp.Height = f.height
	}
	if cmd.Flags().Changed("padding") {
		vp.Padding = f.padding
	}

	opts := pipeline.Options{
		Viewport: vp,
		Formats:  parseFormats(f.formats, cfg.Formats),
		Theme:    cfg.Theme,
		PNGScale: f.scale,
	}
	// A single-format output without -f takes its format from the extension.
	if f.formats == "" && f.output != "" {
		if ext := strings.TrimPrefix(filepath.Ext(f.output), "."); pipeline.ValidFormats[ext] {
			opts.Formats = []string{ext}
		}
	}
	return opts
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps each format to the file it is written to.
// A single format with an explicit output path is written to exactly that path.
func outputPaths(formats []string, output, input string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" && filepath.Ext(output) != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// writeArtifacts writes rendered artifacts and returns the paths in format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, input string) ([]string, error) {
	paths := outputPaths(formats, output, input)
	written := make([]string, 0, len(paths))

	sorted := append([]string(nil), formats...)
	sort.Strings(sorted)
	for _, f := range sorted {
		data, ok := artifacts[f]
		if !ok {
			continue
		}
		path := paths[f]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return written, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
