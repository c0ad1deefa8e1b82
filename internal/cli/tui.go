package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/trisolve/pkg/errors"
	tio "github.com/matzehuels/trisolve/pkg/io"
	"github.com/matzehuels/trisolve/pkg/pipeline"
	"github.com/matzehuels/trisolve/pkg/render/sink"
	"github.com/matzehuels/trisolve/pkg/session"
	"github.com/matzehuels/trisolve/pkg/triangle"
)

const (
	sidebarWidth = 34
	minCanvas    = 20
)

// Solver styles
var (
	tabActiveStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Underline(true)
	tabInactiveStyle  = lipgloss.NewStyle().Foreground(colorDim)
	fieldFocusStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	fieldGivenStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	fieldDerivedStyle = lipgloss.NewStyle().Foreground(colorGray)
	canvasStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
)

// tuiCommand creates the tui command for interactive solving.
func (c *CLI) tuiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui [input.toml]",
		Short: "Solve a triangle interactively",
		Long: `Open an interactive solver in the terminal.

  tab / shift+tab   cycle mode
  ↑ / ↓             move between the given fields
  0-9 . backspace   edit the focused field
  esc / ctrl+c      quit

Every edit solves and redraws immediately. An optional input document sets the
starting mode and measures.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			runner, err := c.newRunner(true)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			opts := []session.Option{
				session.WithRunner(runner),
				session.WithLogger(c.Logger),
				session.WithViewport(cfg.Viewport),
			}
			if len(args) == 1 {
				doc, err := tio.ImportFile(args[0])
				if err != nil {
					return err
				}
				opts = append(opts, session.WithMode(doc.Mode), session.WithInputs(doc.Inputs))
			}

			m := newSolverModel(ctx, session.New(opts...))
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err != nil {
				return fmt.Errorf("tui: %w", err)
			}
			return nil
		},
	}
}

// =============================================================================
// SolverModel - Interactive triangle editor
// =============================================================================

// SolverModel is the bubbletea model for the interactive solver. All events
// go through the session controller, one at a time on bubbletea's update loop.
type SolverModel struct {
	ctx    context.Context
	ctrl   *session.Controller
	state  session.State
	focus  int    // index into the mode's given keys
	buffer string // text of the focused field
	cols   int    // canvas width in cells
	rows   int    // canvas height in cells
}

func newSolverModel(ctx context.Context, ctrl *session.Controller) SolverModel {
	m := SolverModel{ctx: ctx, ctrl: ctrl, cols: 60, rows: 20}
	_ = ctrl.Resize(float64(m.cols*pipeline.TextCellWidth), float64(m.rows*pipeline.TextCellHeight))
	m.state = ctrl.State()
	m.resetBuffer()
	return m
}

func (m SolverModel) Init() tea.Cmd {
	return nil
}

func (m SolverModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit
		case "tab":
			m.ctrl.CycleMode(m.ctx, 1)
			m.focus = 0
			m.sync()
			m.resetBuffer()
		case "shift+tab":
			m.ctrl.CycleMode(m.ctx, -1)
			m.focus = 0
			m.sync()
			m.resetBuffer()
		case "up", "k":
			m.focus = (m.focus + 2) % 3
			m.resetBuffer()
		case "down", "j", "enter":
			m.focus = (m.focus + 1) % 3
			m.resetBuffer()
		case "backspace":
			if len(m.buffer) > 0 {
				m.buffer = m.buffer[:len(m.buffer)-1]
			}
			m.apply()
		default:
			if isNumeric(key) {
				m.buffer += key
				m.apply()
			}
		}

	case tea.WindowSizeMsg:
		m.cols = max(msg.Width-sidebarWidth-2, minCanvas)
		m.rows = max(msg.Height-2, minCanvas/2)
		// Resize rejects viewports too small for the padding; keep the last one.
		_ = m.ctrl.Resize(float64(m.cols*pipeline.TextCellWidth), float64(m.rows*pipeline.TextCellHeight))
		m.sync()
	}
	return m, nil
}

// focused returns the measure the cursor is on.
func (m SolverModel) focused() triangle.Key {
	return m.state.Mode.Given()[m.focus]
}

// apply sends the buffer to the controller as the focused measure.
func (m *SolverModel) apply() {
	_ = m.ctrl.SetInput(m.ctx, m.focused(), m.buffer)
	m.sync()
}

func (m *SolverModel) sync() {
	m.state = m.ctrl.State()
}

func (m *SolverModel) resetBuffer() {
	k := m.focused()
	if raw, ok := m.state.Raw[k]; ok {
		m.buffer = raw
		return
	}
	m.buffer = strconv.FormatFloat(m.state.Inputs.Get(k), 'f', -1, 64)
}

func isNumeric(key string) bool {
	if len(key) != 1 {
		return false
	}
	ch := key[0]
	return (ch >= '0' && ch <= '9') || ch == '.'
}

func (m SolverModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("trisolve"))
	b.WriteString("\n")
	for i, mode := range triangle.InteractiveModes() {
		if i > 0 {
			b.WriteString(" ")
		}
		if mode == m.state.Mode {
			b.WriteString(tabActiveStyle.Render(mode.String()))
		} else {
			b.WriteString(tabInactiveStyle.Render(mode.String()))
		}
	}
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(m.state.Mode.Description()))
	b.WriteString("\n\n")

	for _, r := range m.state.Readouts() {
		label := lipgloss.NewStyle().Width(9).Render(r.Key.Label())
		switch {
		case r.Given && r.Key == m.focused():
			b.WriteString(fieldFocusStyle.Render("▸ " + label + " " + m.buffer + "█"))
		case r.Given:
			b.WriteString(fieldGivenStyle.Render("  " + label + " " + r.Text))
		default:
			b.WriteString(fieldDerivedStyle.Render("  " + label + " " + r.Text))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.state.Err != nil:
		b.WriteString(StyleWarning.Render(errors.UserMessage(m.state.Err)))
	case !m.state.Result.Valid:
		b.WriteString(styleIconError.Render(m.state.Result.Error))
	default:
		b.WriteString(StyleSuccess.Render(fmt.Sprintf("solved in %d steps", len(m.state.Result.Steps))))
	}
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render("tab mode  ↑/↓ field  esc quit"))

	sidebar := lipgloss.NewStyle().Width(sidebarWidth).Render(b.String())
	canvas := canvasStyle.Render(sink.RenderText(m.state.Scene, m.cols, m.rows))
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", canvas)
}
