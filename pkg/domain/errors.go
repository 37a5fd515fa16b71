package domain

import (
	"fmt"
	"runtime"

	"github.com/gnames/cyclopts/pkg/errcode"
	"github.com/gnames/gn"
)

func UnknownKindError(table, kind string) error {
	msg := "Kind <em>%s</em> is not known to %s"
	vars := []any{kind, table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DomainUnknownKindError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: unknown kind %q in %s",
			fn, kind, table),
	}
}

func UnknownCommodityError(kind, commod string) error {
	msg := "Commodity <em>%s</em> is not defined for <em>%s</em>"
	vars := []any{commod, kind}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DomainUnknownCommodityError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: commodity %q undefined for %q",
			fn, commod, kind),
	}
}
