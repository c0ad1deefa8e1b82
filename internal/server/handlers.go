package server

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/matzehuels/trisolve/pkg/buildinfo"
	"github.com/matzehuels/trisolve/pkg/errors"
	tio "github.com/matzehuels/trisolve/pkg/io"
	"github.com/matzehuels/trisolve/pkg/pipeline"
	"github.com/matzehuels/trisolve/pkg/render/sink"
	"github.com/matzehuels/trisolve/pkg/session"
	"github.com/matzehuels/trisolve/pkg/triangle"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatText: "text/plain; charset=utf-8",
}

// VersionHeader carries the running build's version on /health.
const VersionHeader = "X-Trisolve-Version"

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set(VersionHeader, buildinfo.Get().Version)
	_, _ = w.Write([]byte("ok"))
}

type modeInfo struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Given       []triangle.Key `json:"given"`
	Derived     []triangle.Key `json:"derived"`
	Interactive bool           `json:"interactive"`
}

func (s *Server) handleModes(w http.ResponseWriter, _ *http.Request) {
	interactive := make(map[triangle.Mode]bool)
	for _, m := range triangle.InteractiveModes() {
		interactive[m] = true
	}

	modes := make([]modeInfo, 0, 4)
	for _, m := range triangle.Modes() {
		given, derived := m.Given(), m.Derived()
		modes = append(modes, modeInfo{
			Name:        m.String(),
			Description: m.Description(),
			Given:       given[:],
			Derived:     derived[:],
			Interactive: interactive[m],
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"modes": modes})
}

// solveResponse is the document the JSON sink writes, plus live readouts.
type solveResponse struct {
	sink.Document
	Code     errors.Code       `json:"code,omitempty"`
	Readouts map[string]string `json:"readouts"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	doc, err := tio.ReadJSON(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	vp := s.viewport
	if doc.Viewport != nil {
		vp = *doc.Viewport
	}

	c := session.New(
		session.WithMode(doc.Mode),
		session.WithInputs(doc.Inputs),
		session.WithViewport(vp),
		session.WithRunner(s.runner),
	)
	st := c.State()

	resp := solveResponse{
		Document: sink.NewDocument(st.Result, st.Scene),
		Code:     errors.GetCode(st.Result.Err),
		Readouts: make(map[string]string, len(triangle.Keys)),
	}
	for _, ro := range st.Readouts() {
		resp.Readouts[string(ro.Key)] = ro.Text
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRender(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := s.renderOptions(r.URL.Query(), format)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		res, err := s.runner.Execute(r.Context(), opts)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", contentTypes[format])
		w.Header().Set("X-Triangle-Valid", strconv.FormatBool(res.Solve.Valid))
		if res.CacheInfo.RenderHit {
			w.Header().Set("X-Cache", "hit")
		} else {
			w.Header().Set("X-Cache", "miss")
		}
		_, _ = w.Write(res.Artifacts[format])
	}
}

// renderOptions reads mode, measures and viewport from query parameters.
// Measure names are case-sensitive: "a" is a side, "A" an angle.
func (s *Server) renderOptions(q url.Values, format string) (pipeline.Options, error) {
	opts := pipeline.Options{
		Mode:     triangle.DefaultMode,
		Inputs:   triangle.Defaults(),
		Viewport: s.viewport,
		Theme:    s.theme,
		Formats:  []string{format},
	}

	if raw := q.Get("mode"); raw != "" {
		m, err := triangle.ParseMode(raw)
		if err != nil {
			return opts, err
		}
		opts.Mode = m
	}

	for _, k := range triangle.Keys {
		raw, ok := q[string(k)]
		if !ok || len(raw) == 0 {
			continue
		}
		v, err := triangle.ParseMeasure(k, raw[0])
		if err != nil {
			return opts, err
		}
		opts.Inputs = opts.Inputs.Set(k, v)
	}

	dims := []struct {
		name string
		dst  *float64
	}{
		{"width", &opts.Viewport.Width},
		{"height", &opts.Viewport.Height},
		{"padding", &opts.Viewport.Padding},
	}
	for _, d := range dims {
		raw := q.Get(d.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidViewport, err, "%s %q is not a number", d.name, raw)
		}
		*d.dst = v
	}
	if err := opts.Viewport.Validate(); err != nil {
		return opts, err
	}

	if raw := q.Get("scale"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "scale %q must be a positive number", raw)
		}
		opts.PNGScale = v
	}
	return opts, nil
}

