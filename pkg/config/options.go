package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptStoreBackend sets the storage backend.
// Valid values: "sqlite", "postgres", "memory".
func OptStoreBackend(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Store.Backend", s) {
			c.Store.Backend = s
		}
	}
}

// OptStoreBufferSize sets the write buffer size of tables in bytes.
func OptStoreBufferSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Buffer Size", i) {
			c.Store.BufferSize = i
		}
	}
}

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptConvertNInst overrides the number of instances per point.
// Runtime-only field - not in ToOptions().
func OptConvertNInst(i int) Option {
	return func(c *Config) {
		if isValidInt("Instances Number", i) {
			c.Convert.NInst = i
		}
	}
}

// OptExecuteSolvers sets solver kinds used by execute. Unknown kinds are
// dropped with a warning, an empty result keeps the previous value.
func OptExecuteSolvers(ss []string) Option {
	var solvers []string
	for _, s := range ss {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if isValidEnum("Execute.Solvers", s) {
			solvers = append(solvers, s)
		}
	}
	return func(c *Config) {
		if len(solvers) > 0 {
			c.Execute.Solvers = solvers
		}
	}
}

// OptExecuteInstIDs limits execute to the given instance ids.
// Runtime-only field - not in ToOptions().
func OptExecuteInstIDs(ss []string) Option {
	return func(c *Config) {
		if len(ss) > 0 {
			c.Execute.InstIDs = ss
		}
	}
}

// OptAnalyzeSpecies sets the species of compared instances.
// Runtime-only field - not in ToOptions().
func OptAnalyzeSpecies(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Analyze.Species", s) {
			c.Analyze.Species = s
		}
	}
}

// OptAnalyzeNSoln sets the number of solutions a compared instance must
// have.
// Runtime-only field - not in ToOptions().
func OptAnalyzeNSoln(i int) Option {
	return func(c *Config) {
		if isValidInt("Analyze.NSoln", i) {
			c.Analyze.NSoln = i
		}
	}
}

// OptAnalyzeBaseSolver sets the solver other solutions are compared with.
// Runtime-only field - not in ToOptions().
func OptAnalyzeBaseSolver(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Execute.Solvers", s) {
			c.Analyze.BaseSolver = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent solver workers.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
