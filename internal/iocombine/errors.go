package iocombine

import (
	"fmt"
	"runtime"

	"github.com/gnames/cyclopts/pkg/errcode"
	"github.com/gnames/gn"
)

func VersionError(version, minVersion string) error {
	msg := `Input store version <em>%s</em> is older than <em>%s</em>

<em>How to fix:</em>
  Convert and execute the instances again with this cyclopts version`
	vars := []any{version, minVersion}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreVersionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: store version %q < %q", fn, version, minVersion),
	}
}

func NewerInputError(inVersion, outVersion string) error {
	msg := `Input store version <em>%s</em> is newer than output version <em>%s</em>

<em>How to fix:</em>
  Combine into a store created by the newer cyclopts version`
	vars := []any{inVersion, outVersion}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreVersionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: input %q is newer than output %q", fn, inVersion, outVersion),
	}
}
