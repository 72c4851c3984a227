// Package config loads server configuration from a TOML file, falling back
// to built-in defaults when the file is absent.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Port            int    `toml:"port"`
	DataDir         string `toml:"data_dir"`
	BaseURL         string `toml:"base_url"`
	DefaultLanguage string `toml:"default_language"`

	GitHub GitHubConfig `toml:"github"`
}

// GitHubConfig points the webhook sync at a content repository. Leaving
// Owner or Repo empty disables the webhook entirely.
type GitHubConfig struct {
	Owner         string `toml:"owner"`
	Repo          string `toml:"repo"`
	ContentPrefix string `toml:"content_prefix"`
}

func defaults() *Config {
	return &Config{
		Port:            8080,
		DataDir:         "./data",
		BaseURL:         "http://localhost:8080",
		DefaultLanguage: "en",
		GitHub: GitHubConfig{
			ContentPrefix: "content/",
		},
	}
}

// Load reads the config file at path. A missing file is not an error; the
// defaults apply.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d in %s", cfg.Port, path)
	}
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = "en"
	}

	return cfg, nil
}
