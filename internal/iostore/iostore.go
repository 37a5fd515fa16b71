// Package iostore implements table.Store on SQLite and PostgreSQL.
// This is an impure I/O package that implements contracts
// defined in pkg/.
package iostore

import (
	"context"
	"fmt"

	"github.com/gnames/cyclopts/pkg/config"
	"github.com/gnames/cyclopts/pkg/table"
	"github.com/gnames/gnlib"
)

// Open opens a store according to the configured backend. For SQLite the
// location is a file path, for PostgreSQL it is a database name (empty
// means the configured one). The memory backend ignores the location.
func Open(
	ctx context.Context,
	cfg *config.Config,
	location string,
	readOnly bool,
) (table.Store, error) {
	switch cfg.Store.Backend {
	case "postgres":
		dbCfg := cfg.Database
		if location != "" {
			dbCfg.Database = location
		}
		return OpenPostgres(ctx, dbCfg, readOnly)
	case "memory":
		res := table.NewMemStore()
		res.SetReadOnly(readOnly)
		return res, nil
	default:
		return OpenSQLite(ctx, location, readOnly)
	}
}

// OpenManager opens a store and wraps it into a table.Manager with the
// configured buffer size.
func OpenManager(
	ctx context.Context,
	cfg *config.Config,
	location string,
	readOnly bool,
) (*table.Manager, error) {
	store, err := Open(ctx, cfg, location, readOnly)
	if err != nil {
		return nil, err
	}
	return table.NewManager(store, cfg.Store.BufferSize), nil
}

func checkVersion(path, version string) error {
	if !gnlib.IsVersion(version) {
		return VersionError(path, version, config.MinVersionStore)
	}
	if gnlib.CmpVersion(version, config.MinVersionStore) < 0 {
		return VersionError(path, version, config.MinVersionStore)
	}
	return nil
}

// withParents returns a group path and all its parents, root first.
func withParents(path string) []string {
	path = table.Clean(path)
	var res []string
	for i := 1; i < len(path); i++ {
		if path[i] == '/' {
			res = append(res, path[:i])
		}
	}
	if path != "/" {
		res = append(res, path)
	}
	return res
}

// Version returns the version string recorded in a store.
func Version(ctx context.Context, store table.Store) (string, error) {
	v, ok := store.(interface {
		Version(context.Context) (string, error)
	})
	if !ok {
		return "", fmt.Errorf("store %T does not keep a version", store)
	}
	return v.Version(ctx)
}
