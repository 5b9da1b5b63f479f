// Package config defines the configuration structure for handoff.
//
// Configuration is organized into logical sections (Server, Worker, Work, Auth)
// populated in three layers: struct-tag defaults (creasty/defaults), an optional
// YAML file, and command line flags. Flags can also be set from HANDOFF_*
// environment variables named after the flag (HANDOFF_MAX_CANDIDATE for
// --max-candidate), which the command layer syncs before loading.
//
// # Configuration Structure
//
//	Configuration
//	├── Server         - HTTP API settings
//	├── Worker         - Worker loop and host tick timing
//	├── Work           - Prime search parameters
//	├── Auth           - API authentication
//	├── LogFormat      - Logging format
//	└── LogLevel       - Logging verbosity
//
// # Server Configuration
//
//	┌──────────────┬───────────────┬─────────┬──────────────────────────────────┐
//	│ Field        │ Flag          │ Default │ Description                      │
//	├──────────────┼───────────────┼─────────┼──────────────────────────────────┤
//	│ ServerMode   │ --server-mode │ "dev"   │ "prod" puts gin in release mode  │
//	│ HTTPPort     │ --http-port   │ 8000    │ HTTP server listen port          │
//	│ SubmitRate   │ --submit-rate │ 50      │ Sustained submissions per second │
//	│ SubmitBurst  │ --submit-burst│ 100     │ Submission burst size            │
//	└──────────────┴───────────────┴─────────┴──────────────────────────────────┘
//
// # Worker Configuration
//
//	┌─────────────────┬────────────────────┬─────────┬─────────────────────────────────┐
//	│ Field           │ Flag               │ Default │ Description                     │
//	├─────────────────┼────────────────────┼─────────┼─────────────────────────────────┤
//	│ PollInterval    │ --poll-interval    │ 1ms     │ Idle wait of the worker loop    │
//	│ TickInterval    │ --tick-interval    │ 16ms    │ Completion dispatch interval    │
//	│ ShutdownTimeout │ --shutdown-timeout │ 30s     │ Wait for the in-flight item     │
//	│ HistorySize     │ --history-size     │ 256     │ Completed items kept for lookup │
//	└─────────────────┴────────────────────┴─────────┴─────────────────────────────────┘
//
// # Work Configuration
//
//	┌──────────────┬─────────────────┬──────────┬───────────────────────────────────┐
//	│ Field        │ Flag            │ Default  │ Description                       │
//	├──────────────┼─────────────────┼──────────┼───────────────────────────────────┤
//	│ MaxCandidate │ --max-candidate │ 10000000 │ Candidates are drawn in [2, max)  │
//	│ Contains     │ --contains      │ "0"      │ Substring for constrained items   │
//	│ MaxAttempts  │ --max-attempts  │ 0        │ Draws per item, 0 means unbounded │
//	│ Seed         │ --seed          │ 0        │ Random seed, 0 seeds from clock   │
//	└──────────────┴─────────────────┴──────────┴───────────────────────────────────┘
//
// With MaxAttempts 0 an item searches until it succeeds. Constrained items whose
// range holds no acceptable prime are rejected at submission, so the unbounded
// mode only risks long searches, not endless ones.
//
// # Authentication Configuration
//
//	┌───────────┬────────────────┬─────────┬──────────────────────────────────────┐
//	│ Field     │ Flag           │ Default │ Description                          │
//	├───────────┼────────────────┼─────────┼──────────────────────────────────────┤
//	│ Enabled   │ --auth-enabled │ false   │ Require HS256 bearer tokens          │
//	│ JWTSecret │ --jwt-secret   │ ""      │ HMAC secret, at least 32 characters  │
//	└───────────┴────────────────┴─────────┴──────────────────────────────────────┘
//
// # Config File
//
//	log_level: debug
//	server:
//	  http_port: 8080
//	worker:
//	  tick_interval: 10ms
//	work:
//	  max_candidate: 1000000
//	  max_attempts: 100000
//
// # Debug Logging
//
// DebugMap returns the effective values with secrets masked:
//
//	zap.S().Infow("configuration loaded", "config", cfg.DebugMap())
package config
