// Package config loads the service-info runtime configuration.
package config

import (
	"fmt"
	"time"
)

// Source kinds the detail pipeline can read services from.
const (
	SourceAPI       = "api"
	SourceFirestore = "firestore"
	SourceMemory    = "memory"
)

// Config represents the complete application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Source    SourceConfig    `mapstructure:"source"`
	Firestore FirestoreConfig `mapstructure:"firestore"`
	PubSub    PubSubConfig    `mapstructure:"pubsub"`
	I18n      I18nConfig      `mapstructure:"i18n"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig is the HTTP listener.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns host:port for net/http.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SourceConfig selects where services come from.
type SourceConfig struct {
	Kind    string        `mapstructure:"kind"`     // api, firestore or memory
	BaseURL string        `mapstructure:"base_url"` // REST backend, kind=api
	Token   string        `mapstructure:"token"`    // optional "Authorization: Token" value
	Timeout time.Duration `mapstructure:"timeout"`
}

// FirestoreConfig is used when Source.Kind is firestore.
type FirestoreConfig struct {
	ProjectID string `mapstructure:"project_id"`
}

// PubSubConfig enables publishing notifications when Topic is set.
type PubSubConfig struct {
	ProjectID string `mapstructure:"project_id"`
	Topic     string `mapstructure:"topic"`
}

// Enabled reports whether notifications are published.
func (c PubSubConfig) Enabled() bool { return c.Topic != "" }

// I18nConfig points at locale files. An empty LocalesDir uses the embedded catalog.
type I18nConfig struct {
	DefaultLanguage string `mapstructure:"default_language"`
	LocalesDir      string `mapstructure:"locales_dir"`
}

// LoggingConfig configures the root zerolog logger.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`      // json or console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr or a file path
}

// Validate validates the complete configuration.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	if err := c.Source.Validate(); err != nil {
		return fmt.Errorf("source config: %w", err)
	}
	if c.Source.Kind == SourceFirestore && c.Firestore.ProjectID == "" {
		return fmt.Errorf("firestore config: project_id is required for source kind %q", SourceFirestore)
	}
	if c.PubSub.Enabled() && c.PubSub.ProjectID == "" {
		return fmt.Errorf("pubsub config: project_id is required when a topic is set")
	}
	if c.I18n.DefaultLanguage == "" {
		return fmt.Errorf("i18n config: default_language is required")
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}
	return nil
}

// Validate validates server configuration.
func (c *ServerConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	return nil
}

// Validate validates source configuration.
func (c *SourceConfig) Validate() error {
	switch c.Kind {
	case SourceAPI:
		if c.BaseURL == "" {
			return fmt.Errorf("base_url is required for source kind %q", SourceAPI)
		}
	case SourceFirestore, SourceMemory:
	default:
		return fmt.Errorf("unknown source kind %q", c.Kind)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}
	return nil
}

// Validate validates logging configuration.
func (c *LoggingConfig) Validate() error {
	switch c.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid format %q (must be json or console)", c.Format)
	}
	return nil
}
