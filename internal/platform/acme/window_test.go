package acme

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"9fans.net/go/acme"

	"github.com/vovakirdan/seabattle/internal/games/seabattle"
	"github.com/vovakirdan/seabattle/internal/platform/stream"
	"github.com/vovakirdan/seabattle/internal/protocol"
)

// fakeWin records what the display writes to each window file.
type fakeWin struct {
	mu     sync.Mutex
	addr   []string
	writes map[string][]string
	ctl    []string
	events chan *acme.Event
	closed bool
	failOn string
}

func newFakeWin() *fakeWin {
	return &fakeWin{writes: make(map[string][]string), events: make(chan *acme.Event, 64)}
}

func (f *fakeWin) Addr(format string, args ...interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addr = append(f.addr, fmt.Sprintf(format, args...))
	return nil
}

func (f *fakeWin) Write(file string, b []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if file == f.failOn {
		return 0, errors.New("window gone")
	}
	f.writes[file] = append(f.writes[file], string(b))
	return len(b), nil
}

func (f *fakeWin) Ctl(format string, args ...interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ctl = append(f.ctl, fmt.Sprintf(format, args...))
	return nil
}

func (f *fakeWin) EventChan() <-chan *acme.Event { return f.events }

func (f *fakeWin) CloseFiles() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func (f *fakeWin) written(file string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.writes[file]...)
}

func look(text string) *acme.Event {
	return &acme.Event{C1: 'M', C2: 'L', Q0: 3, Q1: 4, Flag: 1, Nr: 1, Text: []byte(text)}
}

func TestFromAcme(t *testing.T) {
	e := &acme.Event{C1: 'M', C2: 'x', Q0: 30, Q1: 33, OrigQ0: 30, OrigQ1: 33, Flag: 0, Nr: 3, Text: []byte("Del")}
	ev := FromAcme(e)
	if !ev.IsCommand() || ev.Passthrough() != "Mx30 33" {
		t.Errorf("FromAcme() = %+v", ev)
	}
	if ev.Flags != [4]int{30, 33, 0, 3} {
		t.Errorf("Flags = %v, expected [30 33 0 3]", ev.Flags)
	}

	line := protocol.Encode(ev)
	if line != "event M x 30 33 30 33 0 3 Del '' ''" {
		t.Errorf("Encode(FromAcme()) = %q", line)
	}
}

func TestWindowDisplay(t *testing.T) {
	f := newFakeWin()
	w := newWindow(f, nil)

	if err := w.Render([]string{"a", "b"}); err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	w.MarkClean()
	w.ForwardRawEvent("Mx30 33")

	if got := f.written("data"); len(got) != 1 || got[0] != "a\nb\n" {
		t.Errorf("data writes = %q", got)
	}
	if len(f.addr) != 1 || f.addr[0] != "," {
		t.Errorf("addr = %q, expected the whole body", f.addr)
	}
	if len(f.ctl) != 1 || f.ctl[0] != "clean" {
		t.Errorf("ctl = %q, expected clean", f.ctl)
	}
	if got := f.written("event"); len(got) != 1 || got[0] != "Mx30 33\n" {
		t.Errorf("event writes = %q", got)
	}

	w.RequestTerminate()
	w.RequestTerminate()
	select {
	case <-w.Done():
	default:
		t.Error("Done() should be closed after RequestTerminate")
	}
}

func TestWindowRenderError(t *testing.T) {
	f := newFakeWin()
	f.failOn = "data"
	w := newWindow(f, nil)

	if err := w.Render([]string{"x"}); err == nil || !strings.Contains(err.Error(), "window gone") {
		t.Errorf("Render() = %v, expected the write error", err)
	}
}

func TestPlayToFinish(t *testing.T) {
	f := newFakeWin()
	w := newWindow(f, nil)
	m := seabattle.NewMatch(w, seabattle.NewSeededBot(3), seabattle.DefaultLayout())

	send := func(coords ...string) {
		for _, c := range coords {
			f.events <- look(c[:1])
			f.events <- look(c[1:])
		}
	}
	f.events <- &acme.Event{C1: 'M', C2: 'x', Q0: 30, Q1: 33, Nr: 3, Text: []byte("Put")}
	send("A1", "B1", "C1", "D1")
	for _, c := range seabattle.AllCoords() {
		if m.BotBoard().Square(c) == seabattle.SquareShip {
			send(c.String())
		}
	}

	done := make(chan error, 1)
	go func() { done <- Play(context.Background(), w, m, nil) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Play() = %v, expected nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Play() did not return after the match finished")
	}

	if m.Outcome() != seabattle.OutcomeHumanWon {
		t.Errorf("Outcome() = %v, expected human", m.Outcome())
	}
	if got := f.written("event"); len(got) != 1 || got[0] != "Mx30 33\n" {
		t.Errorf("forwarded events = %q", got)
	}
	data := f.written("data")
	if len(data) == 0 || !strings.Contains(data[len(data)-1], "You won!") {
		t.Errorf("last render should carry the outcome, got %q", data)
	}
}

func TestPlayWindowClosed(t *testing.T) {
	f := newFakeWin()
	w := newWindow(f, nil)
	m := seabattle.NewMatch(w, seabattle.NewSeededBot(3), seabattle.DefaultLayout())

	f.events <- look("A")
	f.events <- look("1")
	close(f.events)

	err := Play(context.Background(), w, m, nil)
	if !errors.Is(err, stream.ErrSourceClosed) {
		t.Fatalf("Play() = %v, expected ErrSourceClosed", err)
	}
	if m.PlayerBoard().Ships() != 1 {
		t.Errorf("Ships() = %d, expected 1", m.PlayerBoard().Ships())
	}
}
