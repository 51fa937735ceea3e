package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/seabattle/internal/config"
	"github.com/vovakirdan/seabattle/internal/core"
	"github.com/vovakirdan/seabattle/internal/games/seabattle"
	"github.com/vovakirdan/seabattle/internal/platform/acme"
	"github.com/vovakirdan/seabattle/internal/platform/stream"
	"github.com/vovakirdan/seabattle/internal/platform/tui"
	"github.com/vovakirdan/seabattle/internal/storage"
)

var (
	flagUI     string
	flagEvents string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a match against the bot",
	Long: `Play one match against the bot.

Front-ends (--ui):
  text  - Read acme event lines from --events or stdin, print boards to stdout.
          Typing at a terminal, plain input like "B3" also works.
  acme  - Open an acme window and play by clicking in it.
  tui   - Full-screen terminal UI. Keys a-d pick a row, 1-4 a column.

Finished matches are saved to the results database.

Examples:
  acmeevent < /mnt/acme/42/event | seabattle play
  seabattle play --events ./recorded.log
  seabattle play --ui acme
  seabattle play --ui tui --seed 7`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagUI, "ui", "text", "Front-end: text, acme, tui")
	playCmd.Flags().StringVar(&flagEvents, "events", "", "Event log to read in text mode (default stdin)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	switch flagUI {
	case "text", "acme", "tui":
	default:
		return fmt.Errorf("unknown front-end %q (use text, acme or tui)", flagUI)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Log.Level)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		logger.Warn("could not open results database", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flagUI == "tui" {
		err = playTUI(cfg, store, logger, seed)
	} else {
		var sum seabattle.Summary
		started := time.Now()
		sum, err = playStream(ctx, flagUI, cfg, logger, seed)
		if err == nil {
			saveSummary(store, logger, sum, flagUI, seed, time.Since(started))
		}
	}

	if errors.Is(err, stream.ErrSourceClosed) || errors.Is(err, context.Canceled) {
		logger.Info("event source ended before the match finished")
		return nil
	}
	return err
}

// playStream runs a match fed by event lines, either from a file or stdin
// or from an acme window.
func playStream(ctx context.Context, ui string, cfg config.Config, logger *log.Logger, seed int64) (seabattle.Summary, error) {
	bot := seabattle.NewSeededBot(seed)
	logger.Debug("starting match", "ui", ui, "seed", seed)

	if ui == "acme" {
		w, err := acme.Open(cfg.Window.Name, logger)
		if err != nil {
			return seabattle.Summary{}, err
		}
		defer w.Close()

		m := seabattle.NewMatch(w, bot, cfg.Layout())
		if err := acme.Play(ctx, w, m, logger); err != nil {
			return m.Summary(), err
		}
		return m.Summary(), nil
	}

	src, closeSrc, err := stream.OpenSource(flagEvents)
	if err != nil {
		return seabattle.Summary{}, fmt.Errorf("cannot open events: %w", err)
	}
	defer closeSrc()

	opts := []stream.Option{stream.WithLogger(logger)}
	if stream.IsInteractive(src) {
		opts = append(opts, stream.WithShorthand())
		fmt.Fprintln(os.Stderr, "Type a row letter and a column digit (e.g. B3) and press Enter. Ctrl+D quits.")
	}

	display := stream.NewTextDisplay(os.Stdout, nil, logger)
	m := seabattle.NewMatch(display, bot, cfg.Layout())
	if err := m.Start(); err != nil {
		return m.Summary(), err
	}
	if err := stream.Run(ctx, src, m, opts...); err != nil {
		return m.Summary(), err
	}
	return m.Summary(), nil
}

// playTUI runs the full-screen front-end. It saves its own results.
func playTUI(cfg config.Config, store *storage.Store, logger *log.Logger, seed int64) error {
	runtime := core.DefaultConfig()
	runtime.Seed = seed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		runtime.ScreenW = w
		runtime.ScreenH = h
	}

	return tui.Run(tui.Options{
		Layout:   cfg.Layout(),
		Store:    store,
		Logger:   logger,
		Runtime:  runtime,
		Frontend: "tui",
	})
}

func saveSummary(store *storage.Store, logger *log.Logger, sum seabattle.Summary, ui string, seed int64, elapsed time.Duration) {
	logger.Info("match finished", "outcome", sum.Outcome, "human_shots", sum.HumanShots, "bot_shots", sum.BotShots)
	if store == nil {
		return
	}
	if _, err := store.SaveSummary(sum, ui, seed, elapsed); err != nil {
		logger.Warn("could not save match result", "error", err)
	}
}
