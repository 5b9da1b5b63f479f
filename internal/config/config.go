package config

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/creasty/defaults"
)

var digitsRegexp = regexp.MustCompile(`^[0-9]*$`)

type Configuration struct {
	Server    Server         `mapstructure:"server"`
	Worker    Worker         `mapstructure:"worker"`
	Work      Work           `mapstructure:"work"`
	Auth      Authentication `mapstructure:"auth"`
	LogFormat string         `mapstructure:"log_format" default:"console" debugmap:"visible"`
	LogLevel  string         `mapstructure:"log_level" default:"info" debugmap:"visible"`
}

type Server struct {
	ServerMode  string  `mapstructure:"mode" default:"dev" debugmap:"visible"`
	HTTPPort    int     `mapstructure:"http_port" default:"8000" debugmap:"visible"`
	SubmitRate  float64 `mapstructure:"submit_rate" default:"50" debugmap:"visible"`
	SubmitBurst int     `mapstructure:"submit_burst" default:"100" debugmap:"visible"`
}

type Worker struct {
	PollInterval    time.Duration `mapstructure:"poll_interval" default:"1ms" debugmap:"visible"`
	TickInterval    time.Duration `mapstructure:"tick_interval" default:"16ms" debugmap:"visible"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" default:"30s" debugmap:"visible"`
	HistorySize     int           `mapstructure:"history_size" default:"256" debugmap:"visible"`
}

type Work struct {
	MaxCandidate int    `mapstructure:"max_candidate" default:"10000000" debugmap:"visible"`
	Contains     string `mapstructure:"contains" default:"0" debugmap:"visible"`
	MaxAttempts  int    `mapstructure:"max_attempts" default:"0" debugmap:"visible"`
	Seed         uint64 `mapstructure:"seed" default:"0" debugmap:"visible"`
}

type Authentication struct {
	Enabled   bool   `mapstructure:"enabled" default:"false" debugmap:"visible"`
	JWTSecret string `mapstructure:"jwt_secret" debugmap:"hidden"`
}

// NewConfigurationWithDefaults returns a configuration populated from the default tags.
func NewConfigurationWithDefaults() *Configuration {
	c := &Configuration{}
	if err := defaults.Set(c); err != nil {
		// tags are static, a failure here is a programming error
		panic(fmt.Sprintf("invalid configuration defaults: %v", err))
	}
	return c
}

// MaxCandidateLimit keeps every candidate, and every power of ten up to it, within an int.
const MaxCandidateLimit = 1_000_000_000_000_000_000

func (c *Configuration) Validate() error {
	var errs []error

	switch c.LogFormat {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("invalid log format %q: must be 'console' or 'json'", c.LogFormat))
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("invalid log level %q", c.LogLevel))
	}

	switch c.Server.ServerMode {
	case "dev", "prod":
	default:
		errs = append(errs, fmt.Errorf("invalid server mode %q: must be 'dev' or 'prod'", c.Server.ServerMode))
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid http port %d", c.Server.HTTPPort))
	}
	if c.Server.SubmitRate <= 0 {
		errs = append(errs, errors.New("submit rate must be positive"))
	}
	if c.Server.SubmitBurst <= 0 {
		errs = append(errs, errors.New("submit burst must be positive"))
	}

	if c.Worker.PollInterval <= 0 {
		errs = append(errs, errors.New("poll interval must be positive"))
	}
	if c.Worker.TickInterval <= 0 {
		errs = append(errs, errors.New("tick interval must be positive"))
	}
	if c.Worker.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown timeout must be positive"))
	}
	if c.Worker.HistorySize < 0 {
		errs = append(errs, errors.New("history size cannot be negative"))
	}

	if c.Work.MaxCandidate <= 2 {
		errs = append(errs, fmt.Errorf("max candidate %d leaves no candidates: must be greater than 2", c.Work.MaxCandidate))
	}
	if c.Work.MaxCandidate > MaxCandidateLimit {
		errs = append(errs, fmt.Errorf("max candidate %d exceeds %d", c.Work.MaxCandidate, MaxCandidateLimit))
	}
	if !digitsRegexp.MatchString(c.Work.Contains) {
		errs = append(errs, fmt.Errorf("contains %q must be digits only", c.Work.Contains))
	}
	if c.Work.MaxAttempts < 0 {
		errs = append(errs, errors.New("max attempts cannot be negative"))
	}

	if c.Auth.Enabled && len(c.Auth.JWTSecret) < 32 {
		errs = append(errs, errors.New("jwt secret must be at least 32 characters when auth is enabled"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %w", errors.Join(errs...))
	}
	return nil
}

// DebugMap returns the configuration as a map suitable for logging, without secrets.
func (c *Configuration) DebugMap() map[string]any {
	return map[string]any{
		"LogFormat": c.LogFormat,
		"LogLevel":  c.LogLevel,
		"Server": map[string]any{
			"ServerMode":  c.Server.ServerMode,
			"HTTPPort":    c.Server.HTTPPort,
			"SubmitRate":  c.Server.SubmitRate,
			"SubmitBurst": c.Server.SubmitBurst,
		},
		"Worker": map[string]any{
			"PollInterval":    c.Worker.PollInterval.String(),
			"TickInterval":    c.Worker.TickInterval.String(),
			"ShutdownTimeout": c.Worker.ShutdownTimeout.String(),
			"HistorySize":     c.Worker.HistorySize,
		},
		"Work": map[string]any{
			"MaxCandidate": c.Work.MaxCandidate,
			"Contains":     c.Work.Contains,
			"MaxAttempts":  c.Work.MaxAttempts,
			"Seed":         c.Work.Seed,
		},
		"Auth": map[string]any{
			"Enabled":   c.Auth.Enabled,
			"JWTSecret": "(sensitive)",
		},
	}
}

// IsDigits reports whether s is a valid constraint substring.
func IsDigits(s string) bool {
	return digitsRegexp.MatchString(s)
}
