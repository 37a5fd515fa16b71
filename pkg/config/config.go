// Package config provides configuration management for cyclopts.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Store: backend, buffer_size
//   - Database: host, port, user, password, database, ssl_mode
//   - Execute: solvers
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Convert.NInst, Execute.InstIDs (per-command)
//   - Analyze: species, nsoln, base_solver (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use CYCLOPTS_ prefix with underscores for nesting:
//
//	CYCLOPTS_STORE_BACKEND=sqlite
//	CYCLOPTS_DATABASE_HOST=localhost
//	CYCLOPTS_LOG_LEVEL=info
//	CYCLOPTS_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete cyclopts configuration.
type Config struct {
	// Store selects the backend of instance stores.
	Store StoreConfig `mapstructure:"store" yaml:"store"`

	// Database contains PostgreSQL connection settings used by the
	// postgres backend.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Convert contains settings of the convert command.
	Convert ConvertConfig `mapstructure:"convert" yaml:"convert"`

	// Execute contains settings of the execute command.
	Execute ExecuteConfig `mapstructure:"execute" yaml:"execute"`

	// Analyze contains settings of the rms command.
	Analyze AnalyzeConfig `mapstructure:"analyze" yaml:"analyze"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent solver workers.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// StoreConfig describes how tables are stored.
type StoreConfig struct {
	// Backend is 'sqlite' (a file per store), 'postgres' (a database per
	// store) or 'memory' (nothing is kept after the run).
	Backend string `mapstructure:"backend" yaml:"backend"`

	// BufferSize is the size in bytes of the write buffer of each table.
	// Larger buffers mean fewer writes, but more rows lost on a crash.
	BufferSize int `mapstructure:"buffer_size" yaml:"buffer_size"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
}

// ConvertConfig contains settings of the convert command.
type ConvertConfig struct {
	// NInst overrides the number of instances generated per point.
	// Zero means the value from the run-control file.
	NInst int `mapstructure:"ninst" yaml:"ninst"`
}

// ExecuteConfig contains settings of the execute command.
type ExecuteConfig struct {
	// Solvers are the solver kinds every instance is solved with.
	Solvers []string `mapstructure:"solvers" yaml:"solvers"`

	// InstIDs limits execution to these instances. Empty means all.
	InstIDs []string `mapstructure:"inst_ids" yaml:"inst_ids"`
}

// AnalyzeConfig contains settings of solver comparison.
type AnalyzeConfig struct {
	// Species limits comparison to instances of one species.
	Species string `mapstructure:"species" yaml:"species"`

	// NSoln is the number of solutions an instance must have to be
	// compared. Zero keeps all instances.
	NSoln int `mapstructure:"nsoln" yaml:"nsoln"`

	// BaseSolver is the solver other solutions are compared with.
	BaseSolver string `mapstructure:"base_solver" yaml:"base_solver"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Store: StoreConfig{
			Backend:    "sqlite",
			BufferSize: 32 * 1024,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "cyclopts",
			SSLMode:  "disable",
		},
		Execute: ExecuteConfig{
			Solvers: []string{"greedy"},
		},
		Analyze: AnalyzeConfig{
			BaseSolver: "greedy",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
