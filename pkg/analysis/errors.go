package analysis

import (
	"fmt"
	"runtime"

	"github.com/gnames/cyclopts/pkg/errcode"
	"github.com/gnames/gn"
)

func BaseSolverError(instID, solver string) error {
	msg := `Instance <em>%s</em> has no solution of the base solver <em>%s</em>

<em>How to fix:</em>
  - Execute the instance with the base solver
  - Prune the ID tree by the number of solvers`
	vars := []any{instID, solver}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AnalysisBaseSolverError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: no %s solution of %s", fn, solver, instID),
	}
}

func FlowsError(arcID, nArcs int) error {
	msg := "Flow of arc <em>%d</em> is outside of <em>%d</em> instance arcs"
	vars := []any{arcID, nArcs}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AnalysisFlowsError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: arc %d out of %d", fn, arcID, nArcs),
	}
}
