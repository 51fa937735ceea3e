package stream

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// TextDisplay writes every render to a writer as a block of lines followed
// by a blank line. Forwarded command events are written one per line to a
// separate writer, if one is set.
type TextDisplay struct {
	out        io.Writer
	forward    io.Writer
	logger     *log.Logger
	renders    int
	clean      bool
	terminated bool
}

// NewTextDisplay creates a display writing to out. forward may be nil, in
// which case command events are only logged.
func NewTextDisplay(out, forward io.Writer, logger *log.Logger) *TextDisplay {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &TextDisplay{out: out, forward: forward, logger: logger}
}

// Render writes lines as one block.
func (d *TextDisplay) Render(lines []string) error {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')

	if _, err := io.WriteString(d.out, sb.String()); err != nil {
		return fmt.Errorf("stream: write render: %w", err)
	}
	d.renders++
	d.clean = false
	return nil
}

// MarkClean records that the last render is the current state.
func (d *TextDisplay) MarkClean() error {
	d.clean = true
	return nil
}

// ForwardRawEvent passes a command event on.
func (d *TextDisplay) ForwardRawEvent(s string) error {
	d.logger.Debug("forward command event", "event", s)
	if d.forward == nil {
		return nil
	}
	if _, err := fmt.Fprintln(d.forward, s); err != nil {
		return fmt.Errorf("stream: forward event: %w", err)
	}
	return nil
}

// RequestTerminate records that the match is over.
func (d *TextDisplay) RequestTerminate() error {
	d.terminated = true
	return nil
}

// Renders returns how many times Render succeeded.
func (d *TextDisplay) Renders() int {
	return d.renders
}

// Clean reports whether the last render was marked clean.
func (d *TextDisplay) Clean() bool {
	return d.clean
}

// Terminated reports whether the match asked to terminate.
func (d *TextDisplay) Terminated() bool {
	return d.terminated
}
