package resex

import (
	"fmt"
	"runtime"

	"github.com/gnames/cyclopts/pkg/errcode"
	"github.com/gnames/gn"
)

func InstanceNotFoundError(instID string) error {
	msg := `Cannot find instance <em>%s</em>

<em>Possible causes:</em>
  - The instance was never converted into this database
  - Rows of the instance were not flushed`
	vars := []any{instID}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InstanceNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: no instance %s", fn, instID),
	}
}

func SolutionNotFoundError(solnID string) error {
	msg := "Cannot find solution <em>%s</em>"
	vars := []any{solnID}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SolutionNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: no solution %s", fn, solnID),
	}
}
