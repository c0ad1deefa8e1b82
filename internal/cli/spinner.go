package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/trisolve/pkg/pipeline"
)

const (
	spinnerDelay = 150 * time.Millisecond
	spinnerTick  = 80 * time.Millisecond
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner shows render progress on a terminal line. Solving and vector output
// finish in well under the delay, so the spinner only appears when png
// rasterising or rsvg-convert take long enough to notice.
type Spinner struct {
	w       io.Writer
	message string
	delay   time.Duration

	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	once    sync.Once

	mu    sync.Mutex
	drawn int // width of the last frame written, 0 if none
}

// newRenderSpinner creates a spinner describing the slowest stage of
// rendering formats. It stops by itself when ctx is cancelled.
func newRenderSpinner(ctx context.Context, formats []string) *Spinner {
	return newSpinnerTo(ctx, os.Stderr, renderMessage(formats), spinnerDelay)
}

func newSpinnerTo(ctx context.Context, w io.Writer, message string, delay time.Duration) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:       w,
		message: message,
		delay:   delay,
		ctx:     sctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

// renderMessage names the stage that dominates rendering formats.
func renderMessage(formats []string) string {
	switch {
	case slices.Contains(formats, pipeline.FormatPDF):
		return "Converting pdf with rsvg-convert..."
	case slices.Contains(formats, pipeline.FormatPNG):
		return "Rasterising png..."
	}
	return fmt.Sprintf("Rendering %s...", strings.Join(formats, ", "))
}

// Start begins the animation after the spinner's delay.
func (s *Spinner) Start() {
	go func() {
		defer close(s.stopped)

		select {
		case <-s.ctx.Done():
			return
		case <-time.After(s.delay):
		}

		ticker := time.NewTicker(spinnerTick)
		defer ticker.Stop()
		for i := 0; ; i++ {
			s.draw(spinnerFrames[i%len(spinnerFrames)])
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop ends the animation and clears the line. It is safe to call twice.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.cancel()
		<-s.stopped
		s.clear()
	})
}

// StopWithError stops the spinner and prints message as a failure.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := frame + " " + s.message
	fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
	s.drawn = len([]rune(line))
}

func (s *Spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drawn == 0 {
		return
	}
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.drawn))
	s.drawn = 0
}
