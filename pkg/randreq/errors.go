package randreq

import (
	"fmt"
	"runtime"

	"github.com/gnames/cyclopts/pkg/errcode"
	"github.com/gnames/gn"
)

// CoverageError reports commodities left without requests or supply.
func CoverageError(what string, nCommods, nCovered int) error {
	msg := "Only <em>%d</em> of <em>%d</em> commodities are %s"
	vars := []any{nCovered, nCommods, what}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InstanceCommodityCoverageError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"from %s: %d of %d commodities %s", fn, nCovered, nCommods, what,
		),
	}
}
