package ioexecute

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/cyclopts/pkg/errcode"
	"github.com/gnames/gn"
)

func InstIDError(id string, err error) error {
	msg := `Cannot parse instance id <em>%s</em>

<em>How to fix:</em>
  Instance ids are UUIDs, with or without dashes`
	vars := []any{id}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InstanceNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: bad instance id %q: %w", fn, id, err),
	}
}

func NotFoundError(id string) error {
	msg := "Instance <em>%s</em> is not in the store"
	vars := []any{id}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InstanceNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: instance %s not found", fn, id),
	}
}

func isSolverFailure(err error) bool {
	var gnErr *gn.Error
	return errors.As(err, &gnErr) && gnErr.Code == errcode.SolverFailedError
}
