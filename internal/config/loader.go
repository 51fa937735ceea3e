package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/seabattle/internal/games/seabattle"
)

// Load loads the configuration.
// Search order: customPath -> ~/.seabattle/config.yaml -> ./configs/seabattle.yaml -> embedded default.
// Values missing from the file keep their defaults. SEABATTLE_* environment
// variables are applied last.
func Load(customPath string) (Config, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("config: failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(customPath string) (Config, error) {
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = Default()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "seabattle.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = Default()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".seabattle", filename)
}

// Validate checks that every glyph is a single character that cannot be
// mistaken for a row letter or column digit when clicked, and that no two
// square states share a glyph.
func (c Config) Validate() error {
	glyphs := []struct{ name, value string }{
		{"empty", c.Glyphs.Empty},
		{"ship", c.Glyphs.Ship},
		{"hit", c.Glyphs.Hit},
		{"miss", c.Glyphs.Miss},
	}
	seen := make(map[string]string, len(glyphs))
	for _, g := range glyphs {
		if utf8.RuneCountInString(g.value) != 1 {
			return fmt.Errorf("config: glyph %s must be a single character, got %q", g.name, g.value)
		}
		if strings.Contains("ABCD1234", g.value) {
			return fmt.Errorf("config: glyph %s %q collides with a board label", g.name, g.value)
		}
		if other, ok := seen[g.value]; ok {
			return fmt.Errorf("config: glyphs %s and %s are both %q", other, g.name, g.value)
		}
		seen[g.value] = g.name
	}
	return nil
}

// Layout converts the glyphs and messages for the game.
// Call Validate first; bad glyphs fall back to the defaults.
func (c Config) Layout() seabattle.Layout {
	def := seabattle.DefaultLayout()
	return seabattle.Layout{
		Glyphs: seabattle.Glyphs{
			Empty: glyph(c.Glyphs.Empty, def.Glyphs.Empty),
			Ship:  glyph(c.Glyphs.Ship, def.Glyphs.Ship),
			Hit:   glyph(c.Glyphs.Hit, def.Glyphs.Hit),
			Miss:  glyph(c.Glyphs.Miss, def.Glyphs.Miss),
		},
		Messages: seabattle.Messages{
			Placement: orDefault(c.Messages.Placement, def.Messages.Placement),
			Shooting:  orDefault(c.Messages.Shooting, def.Messages.Shooting),
			HumanWon:  orDefault(c.Messages.HumanWon, def.Messages.HumanWon),
			BotWon:    orDefault(c.Messages.BotWon, def.Messages.BotWon),
		},
	}
}

func glyph(s string, fallback rune) rune {
	if utf8.RuneCountInString(s) != 1 {
		return fallback
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
