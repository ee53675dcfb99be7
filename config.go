package welstory

import (
	"errors"
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures client settings loadable from a TOML file, for programs
// that prefer file configuration over wiring options by hand. Credentials
// are caller-side convenience; the library itself never persists them.
type Config struct {
	BaseURL  string `toml:"base_url"`
	DeviceID string `toml:"device_id"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	Debug    bool   `toml:"debug"`
}

// LoadConfig parses a TOML config file, falling back to defaults when the
// file is missing.
func LoadConfig(path string) (Config, error) {
	cfg := Config{BaseURL: DefaultBaseURL}

	bytes, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	if err := toml.Unmarshal(bytes, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return cfg, nil
}

// Options converts the config into client options.
func (c Config) Options() []Option {
	options := []Option{WithBaseURL(c.BaseURL)}
	if c.DeviceID != "" {
		options = append(options, WithDeviceID(c.DeviceID))
	}
	if c.Debug {
		options = append(options, WithSimpleLogger())
	}
	return options
}
