// Package server exposes the triangle solver over HTTP.
//
// Routes:
//
//	GET  /health           liveness probe, returns "ok"
//	GET  /metrics          Prometheus exposition
//	GET  /api/modes        the four modes with their given and derived keys
//	POST /api/solve        solve a JSON input document, returns result and scene
//	GET  /api/render.{ext} render from query parameters (svg, png, pdf, json, txt)
//
// An impossible triangle is a normal outcome, reported with status 200 and
// "valid": false. Malformed input is a 400 carrying the error code.
package server

import (
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/trisolve/pkg/pipeline"
	"github.com/matzehuels/trisolve/pkg/render/sink"
	"github.com/matzehuels/trisolve/pkg/render/viewport"
)

// maxBodyBytes bounds POST bodies; an input document is a few hundred bytes.
const maxBodyBytes = 64 << 10

// Options configures a [Server].
type Options struct {
	Runner   *pipeline.Runner
	Logger   *log.Logger
	Metrics  http.Handler // nil leaves /metrics unmounted
	Viewport viewport.Viewport
	Theme    sink.Theme
}

// Server holds the dependencies shared by all handlers. Requests share no
// mutable state: each one solves into its own session.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	metrics  http.Handler
	viewport viewport.Viewport
	theme    sink.Theme
}

// New creates a server, filling unset options with defaults.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.Runner == nil {
		opts.Runner = pipeline.NewRunner(nil, nil, opts.Logger)
	}
	return &Server{
		runner:   opts.Runner,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
		viewport: opts.Viewport.WithDefaults(),
		theme:    opts.Theme.WithDefaults(),
	}
}

// Handler returns the routed handler with the middleware stack applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(TracingMiddleware)
	r.Use(MetricsMiddleware)
	r.Use(LoggingMiddleware(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/modes", s.handleModes)
		r.Post("/solve", s.handleSolve)
		for _, format := range pipeline.FormatNames() {
			r.Get("/render."+format, s.handleRender(format))
		}
	})

	return r
}
