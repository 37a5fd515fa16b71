package iostore

import (
	"fmt"
	"runtime"

	"github.com/gnames/cyclopts/pkg/errcode"
	"github.com/gnames/gn"
)

func OpenError(path string, err error) error {
	msg := `Cannot open store <em>%s</em>

<em>Possible causes:</em>
  • The file does not exist and the store is opened read-only
  • The directory is not writable
  • The file is not a cyclopts store`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open store %s: %w", fn, path, err),
	}
}

func ConnectionError(host string, port int, database, user string, err error) error {
	msg := `Cannot connect to PostgreSQL store <em>%s</em>

<em>Possible causes:</em>
  • PostgreSQL is not running
  • Database configuration is incorrect
  • The database does not exist

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>

  2. Create the database:
     <em>createdb -h %s -U %s %s</em>`
	vars := []any{database, host, port, host, user, database}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreOpenError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: failed to connect to %s:%d/%s: %w",
			fn, host, port, database, err),
	}
}

func CatalogError(path string, err error) error {
	msg := "Cannot read or update the catalog of <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreCatalogError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: catalog of %s: %w", fn, path, err),
	}
}

func VersionError(path, version, minVersion string) error {
	msg := `Store <em>%s</em> has version <em>%s</em>, at least <em>%s</em> is required

<em>How to fix:</em>
  Regenerate the store with <em>cyclopts convert</em>`
	vars := []any{path, version, minVersion}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreVersionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: store %s version %q is older than %s",
			fn, path, version, minVersion),
	}
}

func CreateTableError(path string, err error) error {
	msg := "Cannot create table <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreCreateTableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot create table %s: %w", fn, path, err),
	}
}

func CreateGroupError(path string, err error) error {
	msg := "Cannot create group <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreCreateGroupError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot create group %s: %w", fn, path, err),
	}
}

func InsertError(path string, n int, err error) error {
	msg := "Cannot write %d rows to <em>%s</em>"
	vars := []any{n, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreInsertError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: insert into %s: %w", fn, path, err),
	}
}

func QueryError(path string, err error) error {
	msg := "Cannot read rows of <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: query %s: %w", fn, path, err),
	}
}
