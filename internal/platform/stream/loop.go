// Package stream drives a match from a stream of event lines, such as the
// output of plan9port's acmeevent, and renders it as plain text.
package stream

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/seabattle/internal/games/seabattle"
	"github.com/vovakirdan/seabattle/internal/protocol"
)

// ErrSourceClosed is returned when the event source ends before the match
// finishes.
var ErrSourceClosed = errors.New("stream: event source closed before the match finished")

// eventPrefix starts every event line. A malformed event line is never
// read as shorthand.
const eventPrefix = "event "

// Option configures Run.
type Option func(*runner)

type runner struct {
	logger    *log.Logger
	shorthand bool
}

// WithLogger sets the logger for dropped and ignored lines.
func WithLogger(l *log.Logger) Option {
	return func(r *runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithShorthand lets a person type clicks directly: a line that is not an
// event line is split into characters and each becomes a selection click.
// "B3" is the same as clicking B and then 3.
func WithShorthand() Option {
	return func(r *runner) {
		r.shorthand = true
	}
}

// Run reads event lines from src and feeds them to m until it finishes.
// It returns nil once the match is over, ErrSourceClosed if src ends first,
// ctx.Err() if ctx is done first, or the first display or read error.
//
// Reading happens on a separate goroutine so a cancel is seen even while
// src blocks. That goroutine exits once src returns from its pending Read.
func Run(ctx context.Context, src io.Reader, m *seabattle.Match, opts ...Option) error {
	r := &runner{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(r)
	}

	done := make(chan struct{})
	defer close(done)
	lines := readLines(src, done)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var res readResult
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res = <-lines:
		}

		if len(res.line) > 0 {
			if err := r.handleLine(m, res.line); err != nil {
				return err
			}
			if m.Finished() {
				return nil
			}
		}

		if res.err != nil {
			if errors.Is(res.err, io.EOF) {
				return ErrSourceClosed
			}
			return fmt.Errorf("stream: read events: %w", res.err)
		}
	}
}

type readResult struct {
	line []byte
	err  error
}

// readLines sends every line of src, the last one carrying the read error.
// It stops early when done is closed.
func readLines(src io.Reader, done <-chan struct{}) <-chan readResult {
	out := make(chan readResult)
	go func() {
		br := bufio.NewReader(src)
		for {
			line, err := br.ReadBytes('\n')
			select {
			case out <- readResult{line: line, err: err}:
			case <-done:
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return out
}

func (r *runner) handleLine(m *seabattle.Match, line []byte) error {
	ev := protocol.Decode(line)
	if ev.Valid {
		if ev.Class == protocol.ClassOther {
			r.logger.Debug("ignored event", "origin", ev.Origin, "type", ev.Type)
		}
		return m.Handle(ev)
	}

	text := string(bytes.TrimRight(line, "\r\n"))
	if !r.shorthand || strings.HasPrefix(text, eventPrefix) {
		r.logger.Debug("dropped malformed line", "line", text)
		return nil
	}

	for _, ch := range strings.TrimSpace(text) {
		if unicode.IsSpace(ch) {
			continue
		}
		if err := m.Handle(protocol.Selection(string(ch))); err != nil {
			return err
		}
		if m.Finished() {
			return nil
		}
	}
	return nil
}
