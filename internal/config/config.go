package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// It contains settings for the environment, the download destination, and the
// HTTP fetcher behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// Downloads contains settings for where downloaded files are stored
	Downloads struct {
		// Directory is the destination directory for downloaded files; created if absent
		Directory string `env:"DOWNLOADS_DIRECTORY" env-default:"downloads" yaml:"directory"`
	} `yaml:"downloads"`

	// Fetcher contains all HTTP client related configurations
	Fetcher struct {
		// ConnectTimeout is the maximum duration for establishing a TCP connection
		ConnectTimeout time.Duration `env:"FETCHER_CONNECT_TIMEOUT" env-default:"30s" yaml:"connectTimeout"`
		// RequestTimeout bounds a whole request including reading the body;
		// a single unresponsive server can never hang the run longer than this
		RequestTimeout time.Duration `env:"FETCHER_REQUEST_TIMEOUT" env-default:"5m" yaml:"requestTimeout"`
		// UserAgent is sent with every request
		UserAgent string `env:"FETCHER_USER_AGENT" env-default:"gimmie/1.0" yaml:"userAgent"`
	} `yaml:"fetcher"`
}

// Load receives the path for a yaml config file and returns a filled Config
// struct. A missing config file is not an error: the CLI must work with zero
// setup, so in that case only environment variables and defaults apply.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("could not read config from environment: %w", err)
		}

		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}
