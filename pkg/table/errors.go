package table

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/cyclopts/pkg/errcode"
	"github.com/gnames/gn"
)

// ErrReadOnly and ErrClosed are the causes wrapped by ReadOnlyError and
// ClosedError.
var (
	ErrReadOnly = errors.New("store is read-only")
	ErrClosed   = errors.New("store is closed")
)

func UnknownFieldError(path, field string) error {
	msg := "Table <em>%s</em> has no field <em>%s</em>"
	vars := []any{path, field}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TableUnknownFieldError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown field %q in %s", fn, field, path),
	}
}

func MissingFieldError(path, field string) error {
	msg := "Row of <em>%s</em> has no value for field <em>%s</em>"
	vars := []any{path, field}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TableMissingFieldError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: missing field %q in %s", fn, field, path),
	}
}

func FieldTypeError(path, field, want, got string) error {
	msg := "Field <em>%s</em> of <em>%s</em> needs %s, got %s"
	vars := []any{field, path, want, got}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TableFieldTypeError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: field %q of %s: want %s, got %s",
			fn, field, path, want, got),
	}
}

func FieldWidthError(path, field string, width int) error {
	msg := "Value of <em>%s</em> in <em>%s</em> exceeds width %d"
	vars := []any{field, path, width}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TableFieldWidthError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: field %q of %s exceeds width %d",
			fn, field, path, width),
	}
}

func UnknownColumnError(path, col string) error {
	msg := "Cannot query <em>%s</em> by unknown column <em>%s</em>"
	vars := []any{path, col}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TableUnknownColumnError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown column %q in %s", fn, col, path),
	}
}

func SchemaMismatchError(path string) error {
	msg := "Table <em>%s</em> exists with a different schema"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TableSchemaMismatchError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: schema mismatch for %s", fn, path),
	}
}

func NotFoundError(path string) error {
	msg := "Table <em>%s</em> does not exist"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TableNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: no table %s", fn, path),
	}
}

// ReadOnlyError is returned by stores opened read-only on any write.
func ReadOnlyError(path string) error {
	msg := `Cannot write <em>%s</em>, the store is opened read-only

<em>How to fix:</em>
  Provide an output store with <em>--out</em>`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreReadOnlyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: write to %s: %w", fn, path, ErrReadOnly),
	}
}

// ClosedError is returned on any access to a closed store.
func ClosedError(path string) error {
	msg := "Cannot access <em>%s</em>, the store is closed"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreClosedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: access to %s: %w", fn, path, ErrClosed),
	}
}
