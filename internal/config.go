package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/harrylevesque/freqgraphs/internal/utils"
)

// SiteConfig holds the test site settings.
type SiteConfig struct {
	Addr            string        `yaml:"addr"`
	Env             string        `yaml:"env"`
	LogLevel        string        `yaml:"log_level"`
	LogFile         string        `yaml:"log_file"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Development reports whether logs should use the console encoder.
func (c SiteConfig) Development() bool {
	return c.Env == "development"
}

// Validate checks the loaded values.
func (c SiteConfig) Validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if _, err := utils.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}

func defaultConfig() SiteConfig {
	return SiteConfig{
		Addr:            ":8080",
		Env:             "test",
		LogLevel:        "info",
		ShutdownTimeout: 5 * time.Second,
	}
}

var (
	config     SiteConfig
	configErr  error
	configOnce sync.Once
)

// DefaultConfigPath is config.yaml under the project root.
func DefaultConfigPath() string {
	return filepath.Join(utils.GetProjectRoot(), "config.yaml")
}

// LoadConfig loads the site config once per process. Later calls return the
// first result regardless of path.
func LoadConfig(path string) (SiteConfig, error) {
	configOnce.Do(func() {
		config, configErr = loadConfig(path)
	})
	return config, configErr
}

// loadConfig applies defaults, then the YAML file if it exists, then .env,
// then FREQGRAPHS_* environment variables.
func loadConfig(path string) (SiteConfig, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
			// defaults only
		default:
			return cfg, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg.Addr = utils.GetEnv("FREQGRAPHS_ADDR", cfg.Addr)
	cfg.Env = utils.GetEnv("FREQGRAPHS_ENV", cfg.Env)
	cfg.LogLevel = utils.GetEnv("FREQGRAPHS_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = utils.GetEnv("FREQGRAPHS_LOG_FILE", cfg.LogFile)
	if v := os.Getenv("FREQGRAPHS_SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid FREQGRAPHS_SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownTimeout = d
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
