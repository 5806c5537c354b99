package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/rgehrsitz/calcform/internal/client"
	"github.com/rgehrsitz/calcform/internal/logging"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. CALCFORM_BASEURL
	EnvPrefix = "CALCFORM"

	DefaultBaseURL = "http://localhost:8080/"
)

// Config holds the runtime settings for calcform
type Config struct {
	BaseURL  string         `mapstructure:"baseURL" yaml:"baseURL"`
	Endpoint string         `mapstructure:"endpoint" yaml:"endpoint"`
	Logging  logging.Config `mapstructure:"logging" yaml:"logging,omitempty"`
}

// Load reads configuration from path (optional) and the environment.
// An empty path yields the defaults plus any environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("baseURL", DefaultBaseURL)
	v.SetDefault("endpoint", client.DefaultEndpoint)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.outputFile", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the endpoint can be resolved
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("baseURL is required")
	}
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid baseURL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return fmt.Errorf("baseURL must be http or https, got %q", c.BaseURL)
	}
	if base.Host == "" {
		return fmt.Errorf("baseURL %q has no host", c.BaseURL)
	}

	if c.Endpoint == "" {
		return errors.New("endpoint is required")
	}
	ref, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint: %w", err)
	}
	if ref.IsAbs() || ref.Host != "" {
		return fmt.Errorf("endpoint %q must be a relative path", c.Endpoint)
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// YAML renders the effective configuration
func (c *Config) YAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to render config: %w", err)
	}
	return string(data), nil
}
