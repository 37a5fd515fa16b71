package solver

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/cyclopts/pkg/errcode"
	"github.com/gnames/gn"
)

func UnknownKindError(kind string) error {
	msg := `Unknown solver <em>%s</em>

<em>How to fix:</em>
  Use one of: %s`
	known := strings.Join(Kinds(), ", ")
	vars := []any{kind, known}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SolverUnknownError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown solver %q", fn, kind),
	}
}

func FailedError(kind, instID string, err error) error {
	msg := "Solver <em>%s</em> failed on instance <em>%s</em>"
	vars := []any{kind, instID}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SolverFailedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s on %s: %w", fn, kind, instID, err),
	}
}
