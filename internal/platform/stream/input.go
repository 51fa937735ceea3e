package stream

import (
	"io"
	"os"

	"golang.org/x/term"
)

// OpenSource returns the event source for path. An empty path or "-"
// means stdin. The returned close function is always safe to call.
func OpenSource(path string) (io.Reader, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// IsInteractive reports whether r is a terminal a person is typing into.
func IsInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
