package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type flagBinding struct {
	key  string
	flag string
}

var bindings = []flagBinding{
	{"log_format", "log-format"},
	{"log_level", "log-level"},
	{"server.mode", "server-mode"},
	{"server.http_port", "http-port"},
	{"server.submit_rate", "submit-rate"},
	{"server.submit_burst", "submit-burst"},
	{"worker.poll_interval", "poll-interval"},
	{"worker.tick_interval", "tick-interval"},
	{"worker.shutdown_timeout", "shutdown-timeout"},
	{"worker.history_size", "history-size"},
	{"work.max_candidate", "max-candidate"},
	{"work.contains", "contains"},
	{"work.max_attempts", "max-attempts"},
	{"work.seed", "seed"},
	{"auth.enabled", "auth-enabled"},
	{"auth.jwt_secret", "jwt-secret"},
}

// RegisterFlags declares one flag per configuration key, with the defaults
// from the struct tags, and binds them to v.
func RegisterFlags(flags *pflag.FlagSet, v *viper.Viper) error {
	d := NewConfigurationWithDefaults()

	flags.String("log-format", d.LogFormat, "Log format: 'console' or 'json'")
	flags.String("log-level", d.LogLevel, "Log level: debug, info, warn, error")

	flags.String("server-mode", d.Server.ServerMode, "Server mode: 'dev' or 'prod'")
	flags.Int("http-port", d.Server.HTTPPort, "HTTP server listen port")
	flags.Float64("submit-rate", d.Server.SubmitRate, "Sustained submissions per second accepted by the API")
	flags.Int("submit-burst", d.Server.SubmitBurst, "Submission burst accepted by the API")

	flags.Duration("poll-interval", d.Worker.PollInterval, "Worker idle wait between pending queue checks")
	flags.Duration("tick-interval", d.Worker.TickInterval, "Interval between completion dispatches")
	flags.Duration("shutdown-timeout", d.Worker.ShutdownTimeout, "Maximum wait for the in-flight item on shutdown")
	flags.Int("history-size", d.Worker.HistorySize, "Number of completed items kept for lookups")

	flags.Int("max-candidate", d.Work.MaxCandidate, "Exclusive upper bound for prime candidates")
	flags.String("contains", d.Work.Contains, "Substring required in constrained results")
	flags.Int("max-attempts", d.Work.MaxAttempts, "Candidate draws allowed per item (0 = unbounded)")
	flags.Uint64("seed", d.Work.Seed, "Random seed (0 = seed from clock)")

	flags.Bool("auth-enabled", d.Auth.Enabled, "Require a JWT bearer token on the API")
	flags.String("jwt-secret", d.Auth.JWTSecret, "HMAC secret used to verify bearer tokens")

	for _, b := range bindings {
		if err := v.BindPFlag(b.key, flags.Lookup(b.flag)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", b.flag, err)
		}
	}
	return nil
}

// Load builds the configuration from defaults, then from v (config file and flags),
// and validates the result.
func Load(v *viper.Viper) (*Configuration, error) {
	cfg := NewConfigurationWithDefaults()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
