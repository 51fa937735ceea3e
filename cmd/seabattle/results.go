package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/seabattle/internal/platform/tui"
	"github.com/vovakirdan/seabattle/internal/storage"
)

var (
	flagLimit       int
	flagInteractive bool
	flagClear       bool
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show finished matches",
	Long: `Display the most recent finished matches and win/loss totals.

Examples:
  seabattle results
  seabattle results --limit 50
  seabattle results --interactive
  seabattle results --clear`,
	Args: cobra.NoArgs,
	RunE: runResults,
}

func init() {
	resultsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of matches to show")
	resultsCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse results in a scrollable table")
	resultsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the whole match history")
}

func runResults(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening results database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if flagClear {
		if err := store.ClearMatches(); err != nil {
			return err
		}
		fmt.Fprintln(out, "Match history cleared.")
		return nil
	}

	if flagInteractive {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if err := tui.RunResults(store, flagLimit, width, height); err != nil {
			return err
		}
		return nil
	}

	records, err := store.RecentMatches(flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving results: %w", err)
	}
	totals, err := store.Totals()
	if err != nil {
		return fmt.Errorf("retrieving totals: %w", err)
	}

	fmt.Fprintln(out, "Sea Battle - Recent Matches")
	fmt.Fprintln(out)

	if len(records) == 0 {
		fmt.Fprintln(out, "No matches recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'seabattle play' to start the history!")
		return nil
	}

	// Print header
	fmt.Fprintf(out, "  %-16s  %-6s  %-5s  %-4s  %-7s  %-5s  %s\n", "Date", "Winner", "Shots", "Hits", "Bot", "Via", "Time")
	fmt.Fprintf(out, "  %-16s  %-6s  %-5s  %-4s  %-7s  %-5s  %s\n", "----", "------", "-----", "----", "---", "---", "----")

	for _, r := range records {
		fmt.Fprintf(out, "  %-16s  %-6s  %-5d  %-4d  %-7s  %-5s  %ds\n",
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.Outcome,
			r.HumanShots,
			r.HumanHits,
			fmt.Sprintf("%d/%d", r.BotHits, r.BotShots),
			r.Frontend,
			r.Duration,
		)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Played: %d  You: %d  Bot: %d\n", totals.Played, totals.HumanWins, totals.BotWins)
	if totals.HumanWins > 0 {
		fmt.Fprintf(out, "Average shots to win: %.1f\n", totals.AvgShotsToWin)
	}
	return nil
}
