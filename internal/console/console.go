package console

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/indaco/podsrc/internal/printer"
	"github.com/muesli/termenv"
)

// SetNoColor switches every lipgloss renderer to plain ASCII output when
// disabled is true, and back to the detected terminal profile otherwise.
func SetNoColor(disabled bool) {
	if disabled {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.EnvColorProfile())
}

// NoColorFromEnv reports whether the NO_COLOR convention asks for plain output.
func NoColorFromEnv() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

// Reporter writes warnings to a stream, styled as printer warnings.
type Reporter struct {
	mu  sync.Mutex
	out io.Writer
}

// NewReporter creates a Reporter writing to w, or to stderr when w is nil.
func NewReporter(w io.Writer) *Reporter {
	if w == nil {
		w = os.Stderr
	}
	return &Reporter{out: w}
}

// Warn prints a warning line.
func (r *Reporter) Warn(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintln(r.out, printer.Warning("[!] "+message))
}

// Collector records warnings in memory.
type Collector struct {
	mu       sync.Mutex
	messages []string
}

// Warn records message.
func (c *Collector) Warn(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, message)
}

// Messages returns the recorded warnings in order.
func (c *Collector) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.messages...)
}
