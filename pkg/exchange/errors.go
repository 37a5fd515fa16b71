package exchange

import (
	"fmt"
	"runtime"

	"github.com/gnames/cyclopts/pkg/errcode"
	"github.com/gnames/gn"
)

func DuplicateIDError(instID, entity string, id int) error {
	msg := "Instance <em>%s</em> has duplicate %s id <em>%d</em>"
	vars := []any{instID, entity, id}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InstanceDuplicateIDError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: duplicate %s id %d in %s",
			fn, entity, id, instID),
	}
}

func DanglingRefError(instID, entity string, id int, target string, ref int) error {
	msg := "In instance <em>%s</em> %s <em>%d</em> references missing %s <em>%d</em>"
	vars := []any{instID, entity, id, target, ref}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InstanceDanglingRefError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %s %d has no %s %d",
			fn, entity, id, target, ref),
	}
}

func CapsLengthError(instID string, arcID int, field string, got, exp int) error {
	msg := "In instance <em>%s</em> arc <em>%d</em> has %d %s, group has %d capacities"
	vars := []any{instID, arcID, got, field, exp}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InstanceCapsLengthError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: arc %d %s length %d != %d",
			fn, arcID, field, got, exp),
	}
}

func EmptyCapsError(instID string, gid int) error {
	msg := "In instance <em>%s</em> group <em>%d</em> has no capacities"
	vars := []any{instID, gid}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InstanceEmptyCapsError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: group %d has empty caps", fn, gid),
	}
}
