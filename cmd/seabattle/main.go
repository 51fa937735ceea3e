// seabattle is a 4x4 sea battle against a bot, played by clicking row
// letters and column digits in an acme window, a terminal or over SSH.
//
// Usage:
//
//	seabattle play              - Play a match (text, acme or tui front-end)
//	seabattle serve             - Start SSH server for remote play
//	seabattle results           - Show finished matches and totals
//	seabattle config            - Print the default configuration
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for a reproducible bot
//	--db <path>          - Set database path (default: from config, ~/.seabattle/results.db)
//	--config <path>      - Use a specific config file
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/seabattle/internal/config"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "seabattle",
	Short: "Sea battle - sink the bot's fleet on a 4x4 grid",
	Long: `Sea battle is a turn-based game against a bot on two 4x4 grids.

Place four ships by clicking a row letter (A-D) and then a column
digit (1-4), then fire at the bot's grid the same way. A hit gives
another shot, for you and for the bot alike.

Available commands:
  play     - Play a match
  serve    - Start SSH server for remote play
  results  - View finished matches
  config   - Print the default configuration

Examples:
  acmeevent < /mnt/acme/42/event | seabattle play
  seabattle play --ui acme
  seabattle play --ui tui --seed 7
  seabattle serve --ssh :2222
  seabattle results --limit 20`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to results database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the built-in configuration as YAML. Save it to
~/.seabattle/config.yaml or ./configs/seabattle.yaml and edit it to
change glyphs, messages, the acme window name or the database path.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := cmd.OutOrStdout().Write(config.DefaultYAML())
		return err
	},
}

// loadConfig loads the config and applies the global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg, nil
}

// newLogger creates the stderr logger every command shares.
func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "seabattle",
	})
	if lvl, err := log.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	} else if level != "" {
		logger.Warn("unknown log level, using info", "level", level)
	}
	return logger
}
