// Package config resolves client configuration for the clinic API.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the fallback API endpoint when nothing else is configured.
const DefaultBaseURL = "http://localhost:7070/api"

// Config holds client configuration.
type Config struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: 30 * time.Second,
	}
}

// DefaultDir returns the clinicdesk state directory (~/.clinicdesk).
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".clinicdesk"), nil
}

// Load reads a YAML config file and overlays it on the defaults. A missing
// file is not an error; a file that fails to parse is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	var overlay Config
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if overlay.BaseURL != "" {
		cfg.BaseURL = overlay.BaseURL
	}
	if overlay.Timeout != 0 {
		cfg.Timeout = overlay.Timeout
	}

	log.Debug().Str("path", path).Str("base_url", cfg.BaseURL).Msg("loaded config file")

	return cfg, nil
}

// Resolve applies precedence: explicit override > environment > config file
// > built-in default. override usually comes from a command-line flag.
func Resolve(override string) (Config, error) {
	dir, err := DefaultDir()
	if err != nil {
		return Default(), err
	}

	cfg, err := Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		return cfg, err
	}

	if env := os.Getenv("CLINICDESK_API_BASE_URL"); env != "" {
		cfg.BaseURL = env
	}
	if override != "" {
		cfg.BaseURL = override
	}

	return cfg, nil
}
