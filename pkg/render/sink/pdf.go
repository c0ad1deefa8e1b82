package sink

import (
	"context"

	"github.com/matzehuels/trisolve/pkg/render"
	"github.com/matzehuels/trisolve/pkg/render/scene"
)

// RenderPDF renders s as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, s scene.Scene, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(ctx, RenderSVG(s, opts...))
}
