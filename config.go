package trellis

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	golocale "github.com/jeandeaual/go-locale"
	"github.com/pelletier/go-toml/v2"
)

// Config holds application settings. Zero fields take their DefaultConfig
// value in NewApp.
type Config struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	// TPS is the host's update rate in ticks per second.
	TPS int `toml:"tps"`

	// ForceSingleEnterLeave applies the force-single enter/leave policy to
	// the root registry.
	ForceSingleEnterLeave bool `toml:"force_single_enter_leave"`
	Debug                 bool `toml:"debug"`

	// ThemeFile, when set, is watched for theme changes (see WatchTheme).
	ThemeFile string `toml:"theme_file"`
	Theme     string `toml:"theme"`
	// Locale defaults to the user's system locale.
	Locale string `toml:"locale"`

	// DragWindow lets the host move the window when the pointer drags over
	// nothing but the background.
	DragWindow bool `toml:"drag_window"`

	Logger *slog.Logger `toml:"-"`
}

// DefaultConfig returns the default settings.
func DefaultConfig() Config {
	return Config{
		Title:  "trellis",
		Width:  1280,
		Height: 720,
		TPS:    60,
		Theme:  "light",
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Title == "" {
		c.Title = def.Title
	}
	if c.Width <= 0 {
		c.Width = def.Width
	}
	if c.Height <= 0 {
		c.Height = def.Height
	}
	if c.TPS <= 0 {
		c.TPS = def.TPS
	}
	if c.Theme == "" {
		c.Theme = def.Theme
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Locale == "" {
		loc, err := golocale.GetLocale()
		if err != nil || loc == "" {
			c.Logger.Debug("system locale unavailable", slog.Any("err", err))
			loc = "en-US"
		}
		c.Locale = loc
	}
	return c
}

// ParseConfig decodes TOML settings on top of DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Config{}, fmt.Errorf("parse config: line %d column %d: %w", row, col, err)
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads and decodes a TOML settings file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}
