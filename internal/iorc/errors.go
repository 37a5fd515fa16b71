package iorc

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/cyclopts/pkg/errcode"
	"github.com/gnames/gn"
)

func ReadError(path string, err error) error {
	msg := "Cannot read run-control file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RunControlReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn, path, err),
	}
}

func ParseError(path string, err error) error {
	msg := `Cannot parse run-control file <em>%s</em>

<em>How to fix:</em>
  - Make sure the file is a YAML document
  - Check indentation of the space section`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RunControlParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot parse %s: %w", fn, path, err),
	}
}

func NInstError(path string, n int) error {
	msg := "Run-control file <em>%s</em> asks for <em>%d</em> instances per point"
	vars := []any{path, n}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RunControlParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: negative ninst %d in %s", fn, n, path),
	}
}

func SpeciesError(path string) error {
	msg := "Run-control file <em>%s</em> does not name a species"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.RunControlSpeciesError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %w", fn, errors.New("no species")),
	}
}
