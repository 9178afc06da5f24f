package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/termdeck/termdeck/pkg/errors"
	"github.com/termdeck/termdeck/pkg/render"
)

// fileConfig is the optional user config file. Every field is optional;
// set fields override built-in defaults, and flags override both.
type fileConfig struct {
	Unicode    *bool  `toml:"unicode"`
	Italic     *bool  `toml:"italic"`
	Color      *bool  `toml:"color"`
	Columns    *int   `toml:"columns"`
	Rows       *int   `toml:"rows"`
	SlideLevel *int   `toml:"slide_level"`
	Theme      string `toml:"theme"`
	Font       string `toml:"font"`
}

// configPath returns the config file location using XDG standard
// (~/.config/termdeck/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads the user config file. A missing file is not an error;
// a malformed one is.
func loadConfig() (fileConfig, error) {
	var cfg fileConfig
	path, err := configPath()
	if err != nil {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeIO, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	return cfg, nil
}

// apply overlays the config file's set fields onto opts.
func (c fileConfig) apply(opts render.Options) render.Options {
	if c.Unicode != nil {
		opts.Unicode = *c.Unicode
	}
	if c.Italic != nil {
		opts.Italic = *c.Italic
	}
	if c.Color != nil {
		opts.Color = *c.Color
	}
	if c.Columns != nil {
		opts.Columns = *c.Columns
	}
	if c.Rows != nil {
		opts.Rows = *c.Rows
	}
	if c.SlideLevel != nil {
		opts.SlideLevel = *c.SlideLevel
	}
	if c.Theme != "" {
		opts.Theme = c.Theme
	}
	if c.Font != "" {
		opts.Font = c.Font
	}
	return opts
}
