package config

import (
	"fmt"
	"strings"

	"github.com/wesleyorama2/framelog/internal/logging"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors struct {
	Errors []*ValidationError
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Add adds an error to the collection.
func (e *ValidationErrors) Add(field, message string) {
	e.Errors = append(e.Errors, &ValidationError{Field: field, Message: message})
}

// HasErrors returns true if there are any errors.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// Validate validates the configuration.
//
// Returns nil if valid, or a ValidationErrors containing all validation errors.
func (c *Config) Validate() error {
	errs := &ValidationErrors{}

	if strings.ContainsAny(c.Output.RowPrefix, `/\`) {
		errs.Add("output.rowPrefix", "must not contain path separators")
	}
	if strings.ContainsAny(c.Output.SummaryPrefix, `/\`) {
		errs.Add("output.summaryPrefix", "must not contain path separators")
	}

	if c.Output.RowPrefix != "" && c.Output.RowPrefix == c.Output.SummaryPrefix {
		errs.Add("output.summaryPrefix", "must differ from output.rowPrefix")
	}

	switch strings.ToUpper(c.Logging.Level) {
	case "", logging.LevelDebug, logging.LevelInfo, logging.LevelWarn, logging.LevelError:
	default:
		errs.Add("logging.level", fmt.Sprintf("unknown level %q (want debug, info, warn or error)", c.Logging.Level))
	}

	validateSimulate(&c.Simulate, errs)

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func validateSimulate(s *SimulateConfig, errs *ValidationErrors) {
	if s.FPS < 0 {
		errs.Add("simulate.fps", "must be positive")
	} else if s.FPS > 10000 {
		errs.Add("simulate.fps", "must not exceed 10000")
	}

	if s.Jitter < 0 || s.Jitter >= 1 {
		errs.Add("simulate.jitter", "must be in [0, 1)")
	}

	if s.StutterEvery < 0 {
		errs.Add("simulate.stutterEvery", "must not be negative")
	}

	if s.Duration < 0 {
		errs.Add("simulate.duration", "must not be negative")
	}

	if s.ToggleEvery < 0 {
		errs.Add("simulate.toggleEvery", "must not be negative")
	}
}
