package iologger

import (
	"fmt"
	"runtime"

	"github.com/gnames/cyclopts/pkg/errcode"
	"github.com/gnames/gn"
)

// CreateLogFileError reports a cyclopts.log file that cannot be opened
// for writing.
func CreateLogFileError(path string, err error) error {
	msg := `Cannot open log file <em>%s</em>

<em>How to fix:</em>
  - Check permissions of the log directory
  - Send logs to stderr with log.destination in config.yaml`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open log %s: %w", fn, path, err),
	}
}
