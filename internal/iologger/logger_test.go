package iologger_test

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/cyclopts/internal/iologger"
	"github.com/gnames/cyclopts/pkg/config"
	"github.com/gnames/cyclopts/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitFile(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	cfg := config.LogConfig{Format: "text", Level: "debug", Destination: "file"}

	require.Nil(t, iologger.Init(dir, cfg, false))
	slog.Info("first run")
	require.Nil(t, iologger.Init(dir, cfg, true))
	slog.Debug("second run")

	data, err := os.ReadFile(filepath.Join(dir, iologger.LogFile))
	require.Nil(t, err)
	assert.Contains(string(data), "first run")
	assert.Contains(string(data), "second run")

	require.Nil(t, iologger.Init(dir, cfg, false))
	data, err = os.ReadFile(filepath.Join(dir, iologger.LogFile))
	require.Nil(t, err)
	assert.Empty(data)
}

func TestInitNoDir(t *testing.T) {
	cfg := config.LogConfig{Destination: "file"}
	dir := filepath.Join(t.TempDir(), "none")
	err := iologger.Init(dir, cfg, false)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.CreateLogFileError, gnErr.Code)
	assert.Equal(t, []any{filepath.Join(dir, iologger.LogFile)}, gnErr.Vars)
	assert.ErrorIs(t, gnErr.Err, os.ErrNotExist)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
}
