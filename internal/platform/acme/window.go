// Package acme runs a match inside an acme window: the board is the window
// body and clicks in the window are the game's input.
package acme

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"9fans.net/go/acme"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/seabattle/internal/protocol"
)

// window is the part of *acme.Win the display uses.
type window interface {
	Addr(format string, args ...interface{}) error
	Write(file string, b []byte) (int, error)
	Ctl(format string, args ...interface{}) error
	EventChan() <-chan *acme.Event
	CloseFiles()
}

// Window is a match display backed by an acme window.
type Window struct {
	win    window
	logger *log.Logger

	once sync.Once
	done chan struct{}
}

// Open creates a new acme window with the given name.
func Open(name string, logger *log.Logger) (*Window, error) {
	win, err := acme.New()
	if err != nil {
		return nil, fmt.Errorf("acme: cannot create window: %w", err)
	}
	if err := win.Name("%s", name); err != nil {
		win.CloseFiles()
		return nil, fmt.Errorf("acme: cannot name window: %w", err)
	}
	return newWindow(win, logger), nil
}

func newWindow(win window, logger *log.Logger) *Window {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Window{win: win, logger: logger, done: make(chan struct{})}
}

// Render replaces the window body.
func (w *Window) Render(lines []string) error {
	if err := w.win.Addr(","); err != nil {
		return fmt.Errorf("acme: set address: %w", err)
	}
	body := strings.Join(lines, "\n") + "\n"
	if _, err := w.win.Write("data", []byte(body)); err != nil {
		return fmt.Errorf("acme: write body: %w", err)
	}
	return nil
}

// MarkClean clears the window's dirty flag so Del does not complain.
func (w *Window) MarkClean() error {
	if err := w.win.Ctl("clean"); err != nil {
		return fmt.Errorf("acme: mark clean: %w", err)
	}
	return nil
}

// ForwardRawEvent hands a command click back to acme for execution.
func (w *Window) ForwardRawEvent(s string) error {
	if _, err := w.win.Write("event", []byte(s+"\n")); err != nil {
		return fmt.Errorf("acme: forward event: %w", err)
	}
	return nil
}

// RequestTerminate closes Done. The window stays open showing the result.
func (w *Window) RequestTerminate() error {
	w.once.Do(func() { close(w.done) })
	return nil
}

// Done is closed once the match has asked to terminate.
func (w *Window) Done() <-chan struct{} {
	return w.done
}

// Close releases the window's control files.
func (w *Window) Close() {
	w.win.CloseFiles()
}

// Pump copies window events to out as event lines until the window closes
// or ctx is done. It closes out when it returns.
func (w *Window) Pump(ctx context.Context, out *io.PipeWriter) error {
	events := w.win.EventChan()
	for {
		select {
		case <-ctx.Done():
			out.CloseWithError(ctx.Err())
			return nil

		case e, ok := <-events:
			if !ok {
				w.logger.Debug("acme window event stream closed")
				out.Close()
				return nil
			}
			line := protocol.Encode(FromAcme(e)) + "\n"
			if _, err := io.WriteString(out, line); err != nil {
				if errors.Is(err, io.ErrClosedPipe) {
					return nil
				}
				return fmt.Errorf("acme: pump event: %w", err)
			}
		}
	}
}

// FromAcme converts a window event to its protocol form, with the fields
// in the order acmeevent prints them.
func FromAcme(e *acme.Event) protocol.Event {
	origin, typ := string(e.C1), string(e.C2)
	return protocol.Event{
		Valid:  true,
		Origin: origin,
		Type:   typ,
		Q0:     e.Q0,
		Q1:     e.Q1,
		Flags:  [4]int{e.OrigQ0, e.OrigQ1, e.Flag, e.Nr},
		Text:   string(e.Text),
		Class:  protocol.Classify(origin, typ),
	}
}
