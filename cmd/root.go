/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/cyclopts/internal/iofs"
	"github.com/gnames/cyclopts/internal/iologger"
	app "github.com/gnames/cyclopts/pkg"
	"github.com/gnames/cyclopts/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands.
// Extracted as a function to facilitate testing.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "cyclopts",
		Short:   "Generates and solves resource exchange instances",
		Long: `cyclopts generates resource exchange problem instances from
parameter spaces, solves them and compares solvers.

A typical run:
  1. convert: generate instances from a run-control file into a store
  2. execute: solve stored instances with one or more solvers
  3. combine: merge stores made on different machines (optional)
  4. post:    compute flow metrics of every solution
  5. rms:     compare solvers by root mean square of flows

Stores are SQLite files by default. Set the backend in the config file
or with CYCLOPTS_STORE_BACKEND to use PostgreSQL databases instead.

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (CYCLOPTS_*)
  3. Config file (~/.config/cyclopts/config.yaml)
  4. Built-in defaults`,
		PersistentPreRunE: bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "cyclopts version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for cyclopts")

	rootCmd.AddCommand(
		getConvertCmd(),
		getExecuteCmd(),
		getDumpCmd(),
		getCombineCmd(),
		getPostCmd(),
		getRMSCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// the log file was just created, keep what was written so far
	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"command", cmd.Name(),
	)
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("CYCLOPTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Store configuration
	v.BindEnv("store.backend", "CYCLOPTS_STORE_BACKEND")
	v.BindEnv("store.buffer_size", "CYCLOPTS_STORE_BUFFER_SIZE")

	// Database configuration
	v.BindEnv("database.host", "CYCLOPTS_DATABASE_HOST")
	v.BindEnv("database.port", "CYCLOPTS_DATABASE_PORT")
	v.BindEnv("database.user", "CYCLOPTS_DATABASE_USER")
	v.BindEnv("database.password", "CYCLOPTS_DATABASE_PASSWORD")
	v.BindEnv("database.database", "CYCLOPTS_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "CYCLOPTS_DATABASE_SSL_MODE")

	// Execute configuration
	v.BindEnv("execute.solvers", "CYCLOPTS_EXECUTE_SOLVERS")

	// Log configuration
	v.BindEnv("log.level", "CYCLOPTS_LOG_LEVEL")
	v.BindEnv("log.format", "CYCLOPTS_LOG_FORMAT")
	v.BindEnv("log.destination", "CYCLOPTS_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "CYCLOPTS_JOBS_NUMBER")

	v.AutomaticEnv()
}
