package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the Argus rule editor.
type Config struct {
	API struct {
		// BaseURL is the Argus backend root, e.g. http://localhost:8080/api
		BaseURL string `mapstructure:"base_url"`
		// Timeout bounds every backend request
		Timeout time.Duration `mapstructure:"timeout"`
		// SuggestRate throttles field value suggestion requests (req/s)
		SuggestRate  float64 `mapstructure:"suggest_rate"`
		SuggestBurst int     `mapstructure:"suggest_burst"`
	} `mapstructure:"api"`

	Preview struct {
		// Timeout bounds preview, lookup and profiling requests separately
		// from the general API timeout; evaluations can run long.
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"preview"`

	Attack struct {
		// Matrix selects the ATT&CK matrix served by the backend
		Matrix string `mapstructure:"matrix"`
	} `mapstructure:"attack"`

	Session struct {
		// Path is the editor preference file. Empty keeps preferences
		// in memory only.
		Path string `mapstructure:"path"`
	} `mapstructure:"session"`

	Logging struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"` // "console" or "json"
	} `mapstructure:"logging"`
}

func setDefaults() {
	viper.SetDefault("api.base_url", "http://localhost:8080/api")
	viper.SetDefault("api.timeout", 30*time.Second)
	viper.SetDefault("api.suggest_rate", 5.0)
	viper.SetDefault("api.suggest_burst", 5)

	viper.SetDefault("preview.timeout", 60*time.Second)

	viper.SetDefault("attack.matrix", "ics")

	viper.SetDefault("session.path", "")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
}

// loadFromEnv sets up environment variable loading
func loadFromEnv() {
	viper.SetEnvPrefix("ARGUS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Explicit bindings for the settings most often overridden
	_ = viper.BindEnv("api.base_url", "ARGUS_API_URL")
	_ = viper.BindEnv("attack.matrix", "ARGUS_ATTACK_MATRIX")
	_ = viper.BindEnv("session.path", "ARGUS_SESSION_PATH")
}

func validateConfig(config *Config) error {
	parsed, err := url.Parse(config.API.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("api.base_url %q is not a valid URL", config.API.BaseURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("api.base_url scheme must be http or https, got %q", parsed.Scheme)
	}

	if config.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", config.API.Timeout)
	}
	if config.Preview.Timeout <= 0 {
		return fmt.Errorf("preview.timeout must be positive, got %s", config.Preview.Timeout)
	}
	if config.API.SuggestRate <= 0 {
		return fmt.Errorf("api.suggest_rate must be positive, got %v", config.API.SuggestRate)
	}
	if config.API.SuggestBurst < 1 {
		return fmt.Errorf("api.suggest_burst must be at least 1, got %d", config.API.SuggestBurst)
	}

	switch config.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", config.Logging.Format)
	}

	return nil
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("$HOME/.argus")

	setDefaults()
	loadFromEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found, will use defaults and env vars
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}
