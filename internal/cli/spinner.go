package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/svgtween/pkg/observability"
)

// Spinner provides a progress indicator for the build stages, with context
// cancellation support. The message can change while it spins.
type Spinner struct {
	out     io.Writer
	message string
	width   int
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}
	frames  []string
	mu      sync.Mutex
}

// newSpinner creates a spinner that writes to stderr.
func newSpinner(ctx context.Context, message string) *Spinner {
	return newSpinnerTo(ctx, os.Stderr, message)
}

// newSpinnerTo creates a spinner writing to out that stops when ctx is
// cancelled.
func newSpinnerTo(ctx context.Context, out io.Writer, message string) *Spinner {
	if ctx == nil {
		ctx = context.Background()
	}
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		out:     out,
		message: message,
		width:   len(message),
		ctx:     spinnerCtx,
		cancel:  cancel,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		frames:  []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	}
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		i := 0
		for {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				frame := s.frames[i%len(s.frames)]
				s.mu.Lock()
				fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
				s.mu.Unlock()
				i++
			}
		}
	}()
}

// SetMessage replaces the message shown next to the spinner.
func (s *Spinner) SetMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = msg
	if len(msg) > s.width {
		s.width = len(msg)
	}
}

// Message returns the current message.
func (s *Spinner) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Stop stops the spinner and clears the line. It is safe to call more than once.
func (s *Spinner) Stop() {
	s.cancel()
	s.mu.Lock()
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	s.mu.Unlock()
	<-s.stopped
	s.clearLine()
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.width+4))
}

// StopWithError stops the spinner and shows an error message.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled returns true if the spinner was stopped due to context cancellation.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}

// Hooks returns pipeline hooks that keep the spinner message in step with
// the running stage.
func (s *Spinner) Hooks() observability.PipelineHooks {
	return spinnerHooks{s}
}

type spinnerHooks struct {
	s *Spinner
}

func (h spinnerHooks) OnLoadStart(_ context.Context, keyframes int) {
	h.s.SetMessage(fmt.Sprintf("Loading %d keyframes...", keyframes))
}

func (h spinnerHooks) OnLoadComplete(context.Context, int, time.Duration, error) {}

func (h spinnerHooks) OnSequenceStart(_ context.Context, frames int) {
	h.s.SetMessage(fmt.Sprintf("Interpolating %d frames...", frames))
}

func (h spinnerHooks) OnSequenceComplete(context.Context, int, bool, time.Duration, error) {}

func (h spinnerHooks) OnEmitStart(context.Context, int) {
	h.s.SetMessage("Encoding Lottie envelope...")
}

func (h spinnerHooks) OnEmitComplete(context.Context, int, time.Duration, error) {}
