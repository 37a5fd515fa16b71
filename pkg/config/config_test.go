package config_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/gnames/cyclopts/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "cyclopts"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "cyclopts"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "cyclopts", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "cyclopts", "config.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		assert.Equal(t, "sqlite", cfg.Store.Backend)
		assert.Equal(t, 32768, cfg.Store.BufferSize)

		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "cyclopts", cfg.Database.Database)
		assert.Equal(t, "disable", cfg.Database.SSLMode)

		assert.Equal(t, []string{"greedy"}, cfg.Execute.Solvers)
		assert.Zero(t, cfg.Convert.NInst)

		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)

		assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
	})
}

func TestOptionStoreBackend(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets postgres", "postgres", "postgres"},
		{"sets memory", "memory", "memory"},
		{"normalizes case", " SQLite ", "sqlite"},
		{"ignores invalid value", "hdf5", "sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptStoreBackend(tt.input)})
			assert.Equal(t, tt.expected, cfg.Store.Backend)
		})
	}
}

func TestOptionIntegers(t *testing.T) {
	t.Run("positive values are accepted", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptStoreBufferSize(1024),
			config.OptDatabasePort(6543),
			config.OptJobsNumber(3),
			config.OptConvertNInst(5),
		})
		assert.Equal(t, 1024, cfg.Store.BufferSize)
		assert.Equal(t, 6543, cfg.Database.Port)
		assert.Equal(t, 3, cfg.JobsNumber)
		assert.Equal(t, 5, cfg.Convert.NInst)
	})

	t.Run("non-positive values are ignored", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptStoreBufferSize(0),
			config.OptDatabasePort(-1),
			config.OptJobsNumber(0),
			config.OptConvertNInst(-3),
		})
		assert.Equal(t, 32768, cfg.Store.BufferSize)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
		assert.Zero(t, cfg.Convert.NInst)
	})
}

func TestOptionExecuteSolvers(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"sets both", []string{"greedy", "lp"}, []string{"greedy", "lp"}},
		{"normalizes", []string{" LP "}, []string{"lp"}},
		{"drops unknown", []string{"cbc", "lp"}, []string{"lp"}},
		{"keeps default if nothing valid", []string{"cbc"}, []string{"greedy"}},
		{"keeps default on empty", nil, []string{"greedy"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptExecuteSolvers(tt.input)})
			assert.Equal(t, tt.expected, cfg.Execute.Solvers)
		})
	}
}

func TestOptionAnalyze(t *testing.T) {
	assert := assert.New(t)
	cfg := config.New()
	assert.Equal("greedy", cfg.Analyze.BaseSolver)

	cfg.Update([]config.Option{
		config.OptAnalyzeSpecies(" StructuredRequest "),
		config.OptAnalyzeNSoln(2),
		config.OptAnalyzeBaseSolver("LP"),
	})
	assert.Equal("StructuredRequest", cfg.Analyze.Species)
	assert.Equal(2, cfg.Analyze.NSoln)
	assert.Equal("lp", cfg.Analyze.BaseSolver)

	cfg.Update([]config.Option{
		config.OptAnalyzeNSoln(0),
		config.OptAnalyzeBaseSolver("cbc"),
	})
	assert.Equal(2, cfg.Analyze.NSoln)
	assert.Equal("lp", cfg.Analyze.BaseSolver)
}

func TestOptionLog(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptLogLevel("DEBUG"),
		config.OptLogFormat("text"),
		config.OptLogDestination("stderr"),
	})
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "stderr", cfg.Log.Destination)

	cfg.Update([]config.Option{
		config.OptLogLevel("verbose"),
		config.OptLogFormat("xml"),
		config.OptLogDestination("stdin"),
	})
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "stderr", cfg.Log.Destination)
}

func TestMultipleOptions(t *testing.T) {
	t.Run("later options override earlier ones", func(t *testing.T) {
		cfg := config.New()

		opts := []config.Option{
			config.OptDatabaseHost("first.host.com"),
			config.OptDatabaseHost("second.host.com"),
		}

		cfg.Update(opts)

		assert.Equal(t, "second.host.com", cfg.Database.Host)
	})
}

func TestToOptions(t *testing.T) {
	t.Run("converts config to options correctly", func(t *testing.T) {
		original := config.New()
		opts := []config.Option{
			config.OptStoreBackend("postgres"),
			config.OptStoreBufferSize(4096),
			config.OptDatabaseHost("test.host.com"),
			config.OptDatabasePort(3306),
			config.OptDatabaseUser("testuser"),
			config.OptDatabasePassword("testpass"),
			config.OptDatabaseDatabase("testdb"),
			config.OptDatabaseSSLMode("require"),
			config.OptExecuteSolvers([]string{"lp", "greedy"}),
			config.OptLogLevel("debug"),
			config.OptLogFormat("text"),
			config.OptLogDestination("stdout"),
			config.OptJobsNumber(8),
		}
		original.Update(opts)

		newCfg := config.New()
		newCfg.Update(original.ToOptions())

		assert.Equal(t, original.Store, newCfg.Store)
		assert.Equal(t, original.Database, newCfg.Database)
		assert.Equal(t, original.Execute.Solvers, newCfg.Execute.Solvers)
		assert.Equal(t, original.Log, newCfg.Log)
		assert.Equal(t, original.JobsNumber, newCfg.JobsNumber)
	})

	t.Run("excludes runtime-only fields", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptHomeDir("/custom/home"),
			config.OptConvertNInst(4),
			config.OptExecuteInstIDs([]string{"abc"}),
		})

		newCfg := config.New()
		newCfg.Update(cfg.ToOptions())

		assert.Equal(t, "", newCfg.HomeDir)
		assert.Zero(t, newCfg.Convert.NInst)
		assert.Nil(t, newCfg.Execute.InstIDs)
	})
}
