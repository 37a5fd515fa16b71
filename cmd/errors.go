package cmd

import (
	"fmt"
	"runtime"

	"github.com/gnames/cyclopts/pkg/errcode"
	"github.com/gnames/gn"
)

func FormatError(format string, err error) error {
	msg := `Unknown output format <em>%s</em>

<em>How to fix:</em>
  Use csv, tsv, compact or pretty`
	vars := []any{format}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.OutputFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: format %q: %w", fn, format, err),
	}
}
