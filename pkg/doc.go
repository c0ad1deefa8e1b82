// Package pkg provides the core libraries for trisolve.
//
// # Overview
//
// Trisolve derives the three unknown measures of a triangle from three known
// ones and draws the result. The pkg directory is organized into three areas:
//
//  1. Domain: [triangle] (modes, measures, solver) and [geometry]
//  2. Rendering: [render/viewport], [render/scene] and [render/sink]
//  3. Orchestration: [pipeline], [session], [io], [config] and [cache]
//
// # Architecture
//
// The typical data flow through trisolve:
//
//	mode + three measures
//	         ↓
//	    [triangle] package (solve, record steps)
//	         ↓
//	    [geometry] package (canonical frame: A at origin, c along +x)
//	         ↓
//	    [render/viewport] + [render/scene] (fit, flip y, place labels)
//	         ↓
//	    SVG/PNG/PDF/JSON/text output
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/trisolve/pkg/render/scene"
//	    "github.com/matzehuels/trisolve/pkg/render/sink"
//	    "github.com/matzehuels/trisolve/pkg/render/viewport"
//	    "github.com/matzehuels/trisolve/pkg/triangle"
//	)
//
//	res := triangle.Solve(triangle.SAS, triangle.Measures{SideA: 150, SideB: 180, AngleC: 60})
//	s := scene.Build(res, viewport.Default())
//	svg := sink.RenderSVG(s)
//
// Most callers go through [pipeline.Runner], which adds validation, caching,
// hooks and trace spans around the same three stages.
//
// # Supporting Packages
//
// [errors] - Coded errors shared by every entry point.
//
// [observability] - Hook registry with Prometheus and OpenTelemetry backends.
//
// [watcher] - Debounced file watching for live re-rendering.
//
// [fonts] - Bundled Go fonts for raster output.
//
// [buildinfo] - Version information injected at build time.
//
// [triangle]: https://pkg.go.dev/github.com/matzehuels/trisolve/pkg/triangle
// [geometry]: https://pkg.go.dev/github.com/matzehuels/trisolve/pkg/geometry
// [render/viewport]: https://pkg.go.dev/github.com/matzehuels/trisolve/pkg/render/viewport
// [render/scene]: https://pkg.go.dev/github.com/matzehuels/trisolve/pkg/render/scene
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/trisolve/pkg/render/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/trisolve/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/trisolve/pkg/pipeline#Runner
// [session]: https://pkg.go.dev/github.com/matzehuels/trisolve/pkg/session
// [io]: https://pkg.go.dev/github.com/matzehuels/trisolve/pkg/io
// [config]: https://pkg.go.dev/github.com/matzehuels/trisolve/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/trisolve/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/trisolve/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/trisolve/pkg/observability
// [watcher]: https://pkg.go.dev/github.com/matzehuels/trisolve/pkg/watcher
// [fonts]: https://pkg.go.dev/github.com/matzehuels/trisolve/pkg/fonts
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/trisolve/pkg/buildinfo
package pkg
