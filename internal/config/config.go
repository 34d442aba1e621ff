package config

import (
	"github.com/vyrodovalexey/ariproxy/internal/observability"
)

// Default values.
const (
	DefaultPathPrefix  = "/ari"
	DefaultMaxBodySize = Mebibyte
	DefaultIDHeader    = "X-Ari-Correlation-Id"
	DefaultTypeHeader  = "X-Ari-Command-Type"
	DefaultNamespace   = "ariproxy"
)

// Config is the root configuration of the classifier and its middleware.
type Config struct {
	Logging     LoggingConfig     `yaml:"logging" json:"logging"`
	Metrics     MetricsConfig     `yaml:"metrics" json:"metrics"`
	Correlation CorrelationConfig `yaml:"correlation" json:"correlation"`
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty" json:"level,omitempty"`
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
	Output string `yaml:"output,omitempty" json:"output,omitempty"`
}

// MetricsConfig represents metrics configuration.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled" json:"enabled"`
	Namespace string `yaml:"namespace,omitempty" json:"namespace,omitempty"`
}

// CorrelationConfig controls how requests are classified and correlated.
type CorrelationConfig struct {
	// PathPrefix is stripped from request paths before classification.
	PathPrefix string `yaml:"pathPrefix" json:"pathPrefix"`

	// MaxBodySize bounds the request body buffered for id extraction.
	MaxBodySize ByteSize `yaml:"maxBodySize,omitempty" json:"maxBodySize,omitempty"`

	// Header receives the resolved correlation id on the response.
	Header string `yaml:"header,omitempty" json:"header,omitempty"`

	// TypeHeader receives the command type name on the response.
	TypeHeader string `yaml:"typeHeader,omitempty" json:"typeHeader,omitempty"`

	// CaptureResponse reads the id of resource creation commands from the
	// response body when the request carried none.
	CaptureResponse bool `yaml:"captureResponse" json:"captureResponse"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	logging := observability.DefaultLogConfig()
	return &Config{
		Logging: LoggingConfig{
			Level:  logging.Level,
			Format: logging.Format,
			Output: logging.Output,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultNamespace,
		},
		Correlation: CorrelationConfig{
			PathPrefix:      DefaultPathPrefix,
			MaxBodySize:     DefaultMaxBodySize,
			Header:          DefaultIDHeader,
			TypeHeader:      DefaultTypeHeader,
			CaptureResponse: true,
		},
	}
}

// LogConfig converts the logging section for observability.NewLogger.
func (c LoggingConfig) LogConfig() observability.LogConfig {
	return observability.LogConfig{
		Level:  c.Level,
		Format: c.Format,
		Output: c.Output,
	}
}
