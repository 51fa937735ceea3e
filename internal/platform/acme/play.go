package acme

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/seabattle/internal/games/seabattle"
	"github.com/vovakirdan/seabattle/internal/platform/stream"
)

// Play runs m against the window's events. The match must have been
// created with w as its display. Only the stream loop touches the match;
// the pump goroutine just moves bytes.
func Play(ctx context.Context, w *Window, m *seabattle.Match, logger *log.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pr, pw := io.Pipe()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return w.Pump(ctx, pw)
	})

	g.Go(func() error {
		defer cancel()
		defer pr.Close()
		if err := m.Start(); err != nil {
			return err
		}
		return stream.Run(ctx, pr, m, stream.WithLogger(logger))
	})

	return g.Wait()
}
