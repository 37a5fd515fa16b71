package problem

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/cyclopts/pkg/errcode"
	"github.com/gnames/gn"
)

func UnknownParamError(name string) error {
	msg := "Unknown parameter <em>%s</em>"
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ParamUnknownError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown parameter %q", fn, name),
	}
}

func ParamValueError(name string, val any) error {
	msg := "Parameter <em>%s</em> cannot take value <em>%v</em>"
	vars := []any{name, val}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ParamValueError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: bad value %v of %q", fn, val, name),
	}
}

func PointTypeError(species string, p any) error {
	msg := "Species <em>%s</em> cannot use a point of type %T"
	vars := []any{species, p}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ParamPointTypeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s got point %T", fn, species, p),
	}
}

func UnknownFamilyError(name string, known []string) error {
	msg := "Unknown family <em>%s</em>, known families: %s"
	vars := []any{name, strings.Join(known, ", ")}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.FamilyUnknownError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown family %q", fn, name),
	}
}

func UnknownSpeciesError(name string, known []string) error {
	msg := "Unknown species <em>%s</em>, known species: %s"
	vars := []any{name, strings.Join(known, ", ")}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SpeciesUnknownError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown species %q", fn, name),
	}
}
