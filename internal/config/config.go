// Package config provides YAML-based configuration loading for sea battle,
// with environment variable overrides.
package config

// Config contains all configuration for the game and its front-ends.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Glyphs   GlyphsConfig   `yaml:"glyphs"`
	Messages MessagesConfig `yaml:"messages"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
}

// WindowConfig configures the acme window.
type WindowConfig struct {
	Name string `yaml:"name" env:"SEABATTLE_WINDOW_NAME"`
}

// GlyphsConfig defines the character drawn for each square state.
// Each value must be a single character.
type GlyphsConfig struct {
	Empty string `yaml:"empty"`
	Ship  string `yaml:"ship"`
	Hit   string `yaml:"hit"`
	Miss  string `yaml:"miss"`
}

// MessagesConfig defines the status lines. "{left}" in Placement is
// replaced by the number of ships still to place.
type MessagesConfig struct {
	Placement string `yaml:"placement"`
	Shooting  string `yaml:"shooting"`
	HumanWon  string `yaml:"human_won"`
	BotWon    string `yaml:"bot_won"`
}

// StorageConfig locates the match history database.
type StorageConfig struct {
	Path string `yaml:"path" env:"SEABATTLE_DB"`
}

// LogConfig sets the log level (debug, info, warn, error).
type LogConfig struct {
	Level string `yaml:"level" env:"SEABATTLE_LOG_LEVEL"`
}
