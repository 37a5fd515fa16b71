package iofs

import (
	"fmt"
	"runtime"

	"github.com/gnames/cyclopts/pkg/errcode"
	"github.com/gnames/gn"
)

// CreateDirError reports a cyclopts directory (config, cache or logs)
// that could not be made.
func CreateDirError(dir string, err error) error {
	msg := `Cannot create cyclopts directory <em>%s</em>

<em>How to fix:</em>
  - Check permissions of the parent directory
  - Set a different home directory in config.yaml`
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot create directory %s: %w", fn, dir, err),
	}
}

func CopyFileError(file string, err error) error {
	msg := "Cannot write default cyclopts config to <em>%s</em>"
	vars := []any{file}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CopyFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot copy config to %s: %w", fn, file, err),
	}
}

// ReadFileError is returned when a config or run-control file cannot be
// read.
func ReadFileError(path string, err error) error {
	msg := "Cannot read <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn, path, err),
	}
}
