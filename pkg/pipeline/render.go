package pipeline

import (
	"context"
	"fmt"
	"math"

	"github.com/matzehuels/trisolve/pkg/render/scene"
	"github.com/matzehuels/trisolve/pkg/render/sink"
	"github.com/matzehuels/trisolve/pkg/triangle"
)

// Layout projects a solve result into the viewport.
func Layout(res triangle.Result, opts Options) (scene.Scene, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return scene.Scene{}, err
	}
	return scene.Build(res, opts.Viewport), nil
}

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, res triangle.Result, s scene.Scene, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	svgOpts := []sink.SVGOption{
		sink.WithTheme(opts.Theme),
		sink.WithTitle(title(res)),
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(s, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(s, sink.WithPNGTheme(opts.Theme), sink.WithScale(opts.PNGScale))
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, s, svgOpts...)
		case FormatJSON:
			data, err = sink.RenderJSON(res, s)
		case FormatText:
			cols := int(s.Width / TextCellWidth)
			rows := int(s.Height / TextCellHeight)
			data = []byte(sink.RenderText(s, cols, rows) + "\n")
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// title describes the triangle for the SVG <title> element.
func title(res triangle.Result) string {
	if !res.Valid {
		return fmt.Sprintf("%s: no triangle", res.Mode)
	}
	m := res.Measures
	return fmt.Sprintf("%s triangle a=%g b=%g c=%g", res.Mode, round2(m.SideA), round2(m.SideB), round2(m.SideC))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
