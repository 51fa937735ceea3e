package config

import (
	_ "embed"
)

//go:embed defaults/seabattle.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Name: "/mini-sea-battle/",
		},
		Glyphs: GlyphsConfig{
			Empty: ".",
			Ship:  "#",
			Hit:   "X",
			Miss:  "o",
		},
		Messages: MessagesConfig{
			Placement: "Place your ships: {left} left. Click a row letter, then a column digit.",
			Shooting:  "Fire at the bot's grid: click a row letter, then a column digit.",
			HumanWon:  "You won!",
			BotWon:    "The bot won.",
		},
		Storage: StorageConfig{
			Path: "~/.seabattle/results.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
