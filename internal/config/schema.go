// Package config provides configuration loading and validation for framelog.
package config

import (
	"time"
)

// Config is the root framelog configuration.
//
// Example YAML:
//
//	output:
//	  dir: frame_logs
//	  summaryJson: true
//	logging:
//	  level: debug
//	  file: frame_logs/framelog.log
//	simulate:
//	  fps: 144
//	  jitter: 0.15
//	  duration: 30s
//	  toggleEvery: 10s
type Config struct {
	// Output controls where rows and summaries are written
	Output OutputConfig `json:"output,omitempty" yaml:"output,omitempty"`

	// Logging controls structured logs
	Logging LoggingConfig `json:"logging,omitempty" yaml:"logging,omitempty"`

	// Status controls user-facing status messages
	Status StatusConfig `json:"status,omitempty" yaml:"status,omitempty"`

	// Simulate configures the synthetic frame source used by `framelog record`
	Simulate SimulateConfig `json:"simulate,omitempty" yaml:"simulate,omitempty"`
}

// OutputConfig controls file naming.
type OutputConfig struct {
	// Dir is the output directory (default: frame_logs)
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`

	// RowPrefix prefixes row log file names (default: mc_frametimes_)
	RowPrefix string `json:"rowPrefix,omitempty" yaml:"rowPrefix,omitempty"`

	// SummaryPrefix prefixes summary file names (default: summary_)
	SummaryPrefix string `json:"summaryPrefix,omitempty" yaml:"summaryPrefix,omitempty"`

	// SummaryJSON also writes a JSON copy of each summary
	SummaryJSON bool `json:"summaryJson,omitempty" yaml:"summaryJson,omitempty"`
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error (default: info)
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// File is the log file path; empty logs to stderr
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}

// StatusConfig controls status output.
type StatusConfig struct {
	// NoColor disables colored status messages
	NoColor bool `json:"noColor,omitempty" yaml:"noColor,omitempty"`

	// Quiet suppresses status messages entirely
	Quiet bool `json:"quiet,omitempty" yaml:"quiet,omitempty"`
}

// SimulateConfig configures the synthetic frame source.
type SimulateConfig struct {
	// FPS is the target frame rate (default: 60)
	FPS float64 `json:"fps,omitempty" yaml:"fps,omitempty"`

	// Jitter is the relative frame-time variation in [0, 1) (default: 0.1)
	Jitter float64 `json:"jitter,omitempty" yaml:"jitter,omitempty"`

	// StutterEvery injects a long frame every N frames (0 disables)
	StutterEvery int `json:"stutterEvery,omitempty" yaml:"stutterEvery,omitempty"`

	// Duration bounds the whole run; zero runs until interrupted
	Duration Duration `json:"duration,omitempty" yaml:"duration,omitempty"`

	// ToggleEvery toggles recording periodically; zero toggles only on input
	ToggleEvery Duration `json:"toggleEvery,omitempty" yaml:"toggleEvery,omitempty"`

	// Seed seeds the jitter generator (default: current time)
	Seed int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// Default values.
const (
	DefaultLogLevel = "info"
	DefaultFPS      = 60.0
	DefaultJitter   = 0.1
)

// Default returns a configuration with all defaults applied.
func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills unset fields with defaults.
func (c *Config) ApplyDefaults() {
	if c.Output.Dir == "" {
		c.Output.Dir = "frame_logs"
	}
	if c.Output.RowPrefix == "" {
		c.Output.RowPrefix = "mc_frametimes_"
	}
	if c.Output.SummaryPrefix == "" {
		c.Output.SummaryPrefix = "summary_"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Simulate.FPS == 0 {
		c.Simulate.FPS = DefaultFPS
	}
	if c.Simulate.Jitter == 0 {
		c.Simulate.Jitter = DefaultJitter
	}
}

// Duration is a time.Duration that can be unmarshaled from JSON/YAML strings.
type Duration time.Duration

// GetDuration returns the duration or a default if empty.
func (d Duration) GetDuration(defaultValue time.Duration) time.Duration {
	if d == 0 {
		return defaultValue
	}
	return time.Duration(d)
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	// Remove quotes if present
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	if s == "" || s == "null" {
		*d = 0
		return nil
	}

	dur, err := ParseDurationString(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}

	if s == "" {
		*d = 0
		return nil
	}

	dur, err := ParseDurationString(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// String returns the duration as a string.
func (d Duration) String() string {
	return time.Duration(d).String()
}
