package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vyrodovalexey/ariproxy/internal/util"
)

// metricNamespaceRegex matches a valid Prometheus metric name prefix.
var metricNamespaceRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Path    string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Is reports ValidationErrors as invalid configuration.
func (e ValidationErrors) Is(target error) bool {
	return target == util.ErrConfigInvalid
}

// HasErrors returns true if there are validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validator validates configuration.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new configuration validator.
func NewValidator() *Validator {
	return &Validator{
		errors: make(ValidationErrors, 0),
	}
}

// ValidateConfig validates a configuration.
func ValidateConfig(config *Config) error {
	v := NewValidator()
	return v.Validate(config)
}

// Validate validates the configuration and returns any errors.
func (v *Validator) Validate(config *Config) error {
	v.errors = make(ValidationErrors, 0)

	if config == nil {
		v.addError("", "configuration is nil")
		return v.errors
	}

	v.validateLogging(&config.Logging)
	v.validateMetrics(&config.Metrics)
	v.validateCorrelation(&config.Correlation)

	if v.errors.HasErrors() {
		return v.errors
	}
	return nil
}

// validateLogging validates logging configuration.
func (v *Validator) validateLogging(logging *LoggingConfig) {
	validLevels := map[string]bool{
		"":      true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(logging.Level)] {
		v.addError("logging.level", "level must be debug, info, warn, or error")
	}

	switch logging.Format {
	case "", "json", "console":
	default:
		v.addError("logging.format", "format must be json or console")
	}

	if logging.Output != "" && strings.TrimSpace(logging.Output) == "" {
		v.addError("logging.output", "output cannot be blank")
	}
}

// validateMetrics validates metrics configuration.
func (v *Validator) validateMetrics(metrics *MetricsConfig) {
	if !metrics.Enabled {
		return
	}
	if err := util.ValidateNonEmpty(metrics.Namespace, "namespace"); err != nil {
		v.addError("metrics.namespace", err.Error())
		return
	}
	if !metricNamespaceRegex.MatchString(metrics.Namespace) {
		v.addError("metrics.namespace", fmt.Sprintf("invalid metric namespace: %s", metrics.Namespace))
	}
}

// validateCorrelation validates correlation configuration.
func (v *Validator) validateCorrelation(correlation *CorrelationConfig) {
	if err := util.ValidatePathPrefix(correlation.PathPrefix); err != nil {
		v.addError("correlation.pathPrefix", err.Error())
	}

	if err := util.ValidatePositiveSize(correlation.MaxBodySize.Bytes(), "maxBodySize"); err != nil {
		v.addError("correlation.maxBodySize", err.Error())
	}

	if correlation.Header != "" {
		if err := util.ValidateHeaderName(correlation.Header); err != nil {
			v.addError("correlation.header", err.Error())
		}
	}

	if correlation.TypeHeader != "" {
		if err := util.ValidateHeaderName(correlation.TypeHeader); err != nil {
			v.addError("correlation.typeHeader", err.Error())
		}
	}

	if correlation.Header != "" && strings.EqualFold(correlation.Header, correlation.TypeHeader) {
		v.addError("correlation.typeHeader", "typeHeader must differ from header")
	}
}

// addError adds a validation error.
func (v *Validator) addError(path, message string) {
	v.errors = append(v.errors, ValidationError{Path: path, Message: message})
}
