package config

import (
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Config is read from ARTSTAMPS_* environment variables.
type Config struct {
	Width         int     `envconfig:"WIDTH" default:"800"`
	Height        int     `envconfig:"HEIGHT" default:"600"`
	Title         string  `envconfig:"TITLE" default:"artstamps"`
	AssetDir      string  `envconfig:"ASSET_DIR" default:"assets"`
	LevelFile     string  `envconfig:"LEVEL_FILE" default:"level.svg"`
	HeroImage     string  `envconfig:"HERO_IMAGE" default:"mouse.bmp"`
	CursorImage   string  `envconfig:"CURSOR_IMAGE" default:"cursor.bmp"`
	StampDir      string  `envconfig:"STAMP_DIR" default:"stamps"`
	HeroSize      float64 `envconfig:"HERO_SIZE" default:"32"`
	HeroSpeed     float64 `envconfig:"HERO_SPEED" default:"1"`
	LogLevel      string  `envconfig:"LOG_LEVEL" default:"info"`
	Debug         bool    `envconfig:"DEBUG" default:"false"`
	ShowFPS       bool    `envconfig:"SHOW_FPS" default:"false"`
	ScreenshotDir string  `envconfig:"SCREENSHOT_DIR" default:"screenshots"`
	Script        string  `envconfig:"SCRIPT"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("ARTSTAMPS", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Asset resolves a name relative to AssetDir unless it is absolute.
func (c *Config) Asset(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.AssetDir, name)
}
