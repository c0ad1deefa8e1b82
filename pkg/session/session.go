// Package session holds the state of one interactive solve and the
// controller that mutates it.
//
// A [Controller] owns a single [State] record: the current mode, the six
// measures, the last solve result and the scene drawn from it. Every event
// runs to completion before the next one starts:
//
//   - [Controller.SetInput] parses one field, solves and redraws
//   - [Controller.SelectMode] switches mode, solves and redraws
//   - [Controller.Resize] redraws for a new viewport without solving
//
// A rejected input leaves the previous measures in place and is reported both
// as the returned error and in [State.Err], so a UI can show it next to the
// field. The controller is not safe for concurrent use; callers that share one
// (the TUI's update loop) serialise events themselves.
//
// # Usage
//
//	c := session.New(session.WithOnChange(func(s session.State) {
//	    fmt.Println(s.Result.Valid)
//	}))
//	if err := c.SetInput(ctx, triangle.SideA, "120"); err != nil {
//	    // show err next to the field
//	}
package session

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/trisolve/pkg/pipeline"
	"github.com/matzehuels/trisolve/pkg/render/scene"
	"github.com/matzehuels/trisolve/pkg/render/viewport"
	"github.com/matzehuels/trisolve/pkg/triangle"
)

// State is the full state of an interactive solve.
type State struct {
	Mode     triangle.Mode
	Inputs   triangle.Measures
	Raw      map[triangle.Key]string // text last entered per field, valid or not
	Result   triangle.Result
	Scene    scene.Scene
	Viewport viewport.Viewport

	// Err is the last rejected input, cleared by the next accepted event.
	Err error
}

// Readout is the live display value of one measure.
type Readout struct {
	Key   triangle.Key
	Text  string
	Given bool
}

// Readouts returns one display value per measure in [triangle.Keys] order.
// Given measures show the entered value; derived ones show the solve result,
// or "—" when there is no triangle.
func (s State) Readouts() []Readout {
	out := make([]Readout, 0, len(triangle.Keys))
	for _, k := range triangle.Keys {
		r := Readout{Key: k, Given: s.Mode.IsGiven(k)}
		switch {
		case r.Given:
			r.Text = k.Format(s.Inputs.Get(k))
		case s.Result.Valid:
			r.Text = k.Format(s.Result.Measures.Get(k))
		default:
			r.Text = "—"
		}
		out = append(out, r)
	}
	return out
}

// Option configures a [Controller].
type Option func(*Controller)

// WithMode sets the starting mode.
func WithMode(m triangle.Mode) Option { return func(c *Controller) { c.state.Mode = m } }

// WithInputs sets the starting measures.
func WithInputs(in triangle.Measures) Option { return func(c *Controller) { c.state.Inputs = in } }

// WithViewport sets the starting viewport.
func WithViewport(vp viewport.Viewport) Option {
	return func(c *Controller) { c.state.Viewport = vp.WithDefaults() }
}

// WithRunner solves through r, so hooks and spans fire for each event.
func WithRunner(r *pipeline.Runner) Option { return func(c *Controller) { c.runner = r } }

// WithLogger sets the logger for event tracing.
func WithLogger(l *log.Logger) Option { return func(c *Controller) { c.logger = l } }

// WithOnChange registers fn to run after every redraw.
func WithOnChange(fn func(State)) Option { return func(c *Controller) { c.onChange = fn } }

// Controller applies events to a [State].
type Controller struct {
	state    State
	runner   *pipeline.Runner
	logger   *log.Logger
	onChange func(State)
}

// New returns a controller in the initial state (SAS, default measures,
// default viewport), already solved and drawn.
func New(opts ...Option) *Controller {
	c := &Controller{
		state: State{
			Mode:     triangle.DefaultMode,
			Inputs:   triangle.Defaults(),
			Raw:      make(map[triangle.Key]string, len(triangle.Keys)),
			Viewport: viewport.Default(),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if !c.state.Mode.Valid() {
		c.state.Mode = triangle.DefaultMode
	}
	c.solve(context.Background())
	return c
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	s := c.state
	s.Raw = make(map[triangle.Key]string, len(c.state.Raw))
	for k, v := range c.state.Raw {
		s.Raw[k] = v
	}
	return s
}

// SetInput parses raw as the measure k and re-solves. On a parse error the
// previous value is kept, the error is recorded in the state and returned,
// and nothing is redrawn.
func (c *Controller) SetInput(ctx context.Context, k triangle.Key, raw string) error {
	c.state.Raw[k] = raw
	v, err := triangle.ParseMeasure(k, raw)
	if err != nil {
		c.state.Err = err
		c.logger.Debug("rejected input", "key", k, "raw", raw, "err", err)
		c.notify()
		return err
	}
	c.state.Inputs = c.state.Inputs.Set(k, v)
	c.state.Err = nil
	c.logger.Debug("accepted input", "key", k, "value", v)
	c.solve(ctx)
	return nil
}

// SelectMode switches the mode and re-solves.
func (c *Controller) SelectMode(ctx context.Context, m triangle.Mode) error {
	if err := pipeline.ValidateMode(m); err != nil {
		return err
	}
	c.state.Mode = m
	c.state.Err = nil
	c.logger.Debug("selected mode", "mode", m)
	c.solve(ctx)
	return nil
}

// CycleMode advances to the next interactive mode, wrapping around. From a
// mode outside the interactive set it starts at the first one.
func (c *Controller) CycleMode(ctx context.Context, step int) {
	modes := triangle.InteractiveModes()
	next := 0
	for i, m := range modes {
		if m == c.state.Mode {
			next = ((i+step)%len(modes) + len(modes)) % len(modes)
			break
		}
	}
	_ = c.SelectMode(ctx, modes[next])
}

// Resize changes the viewport and redraws without solving again.
func (c *Controller) Resize(width, height float64) error {
	vp := c.state.Viewport
	vp.Width, vp.Height = width, height
	if err := vp.Validate(); err != nil {
		return err
	}
	c.state.Viewport = vp
	c.redraw()
	return nil
}

func (c *Controller) solve(ctx context.Context) {
	if c.runner != nil {
		c.state.Result = c.runner.Solve(ctx, c.state.Mode, c.state.Inputs)
	} else {
		c.state.Result = triangle.Solve(c.state.Mode, c.state.Inputs)
	}
	c.redraw()
}

func (c *Controller) redraw() {
	c.state.Scene = scene.Build(c.state.Result, c.state.Viewport)
	c.notify()
}

func (c *Controller) notify() {
	if c.onChange != nil {
		c.onChange(c.State())
	}
}
