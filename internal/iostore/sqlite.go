package iostore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	cyclopts "github.com/gnames/cyclopts/pkg"
	"github.com/gnames/cyclopts/pkg/schema"
	"github.com/gnames/cyclopts/pkg/table"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// sqliteStore keeps all tables of a store in one SQLite file.
type sqliteStore struct {
	mu       sync.Mutex
	db       *sql.DB
	path     string
	readOnly bool
	closed   bool
}

// OpenSQLite opens or creates a SQLite store. A read-only store must
// exist already.
func OpenSQLite(ctx context.Context, path string, readOnly bool) (table.Store, error) {
	if readOnly {
		if _, err := os.Stat(path); err != nil {
			return nil, OpenError(path, err)
		}
	}

	db, err := sql.Open("sqlite", dsn(path, readOnly))
	if err != nil {
		return nil, OpenError(path, err)
	}
	// one connection serializes access from concurrent workers
	db.SetMaxOpenConns(1)

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, OpenError(path, err)
	}

	res := &sqliteStore{db: db, path: path, readOnly: readOnly}
	if err = res.initCatalog(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return res, nil
}

// dsn returns the data source name of a store file. Read-only stores are
// opened in read-only mode of SQLite itself.
func dsn(path string, readOnly bool) string {
	if !readOnly {
		return path
	}
	return "file:" + path + "?mode=ro"
}

func (s *sqliteStore) initCatalog(ctx context.Context) error {
	if !s.readOnly {
		for _, m := range schema.Catalog() {
			if _, err := s.db.ExecContext(ctx, m.TableDDL()); err != nil {
				return CatalogError(s.path, err)
			}
		}
		_, err := s.db.ExecContext(ctx,
			"INSERT OR IGNORE INTO _meta (key, value) VALUES (?, ?)",
			schema.VersionKey, cyclopts.Version,
		)
		if err != nil {
			return CatalogError(s.path, err)
		}
	}

	var version string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM _meta WHERE key = ?", schema.VersionKey,
	).Scan(&version)
	if err != nil {
		return CatalogError(s.path, err)
	}
	return checkVersion(s.path, version)
}

func (s *sqliteStore) access(path string, write bool) error {
	if s.closed {
		return table.ClosedError(path)
	}
	if write && s.readOnly {
		return table.ReadOnlyError(path)
	}
	return nil
}

func (s *sqliteStore) CreateGroup(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.access(path, true); err != nil {
		return err
	}
	for _, p := range withParents(path) {
		_, err := s.db.ExecContext(ctx,
			"INSERT OR IGNORE INTO _groups (path) VALUES (?)", p)
		if err != nil {
			return CreateGroupError(p, err)
		}
	}
	return nil
}

func (s *sqliteStore) Groups(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.access("/", false); err != nil {
		return nil, err
	}
	return s.paths(ctx, "SELECT path FROM _groups ORDER BY path")
}

func (s *sqliteStore) CreateTable(
	ctx context.Context,
	path string,
	sch table.Schema,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.access(path, true); err != nil {
		return err
	}
	js, err := schema.EncodeSchema(sch)
	if err != nil {
		return CreateTableError(path, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CreateTableError(path, err)
	}
	defer tx.Rollback()

	stmts := append(
		[]string{schema.DataTableDDL(schema.SQLite, path, sch)},
		schema.DataIndexDDL(path, sch)...,
	)
	for _, q := range stmts {
		if _, err = tx.ExecContext(ctx, q); err != nil {
			return CreateTableError(path, err)
		}
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO _tables (path, name, schema_json) VALUES (?, ?, ?)",
		path, schema.PhysicalName(path), js,
	)
	if err != nil {
		return CreateTableError(path, err)
	}
	if err = tx.Commit(); err != nil {
		return CreateTableError(path, err)
	}
	return nil
}

func (s *sqliteStore) TableSchema(
	ctx context.Context,
	path string,
) (table.Schema, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.access(path, false); err != nil {
		return table.Schema{}, false, err
	}
	var js string
	err := s.db.QueryRowContext(ctx,
		"SELECT schema_json FROM _tables WHERE path = ?", path,
	).Scan(&js)
	if errors.Is(err, sql.ErrNoRows) {
		return table.Schema{}, false, nil
	}
	if err != nil {
		return table.Schema{}, false, CatalogError(s.path, err)
	}
	sch, err := schema.DecodeSchema(js)
	if err != nil {
		return table.Schema{}, false, CatalogError(s.path, err)
	}
	return sch, true, nil
}

func (s *sqliteStore) Tables(ctx context.Context, prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.access(prefix, false); err != nil {
		return nil, err
	}
	all, err := s.paths(ctx, "SELECT path FROM _tables ORDER BY path")
	if err != nil {
		return nil, err
	}
	var res []string
	for _, p := range all {
		if table.Under(p, prefix) {
			res = append(res, p)
		}
	}
	return res, nil
}

func (s *sqliteStore) Insert(
	ctx context.Context,
	path string,
	sch table.Schema,
	rows []table.Row,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.access(path, true); err != nil {
		return err
	}
	cols := schema.Columns(sch)
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		schema.PhysicalName(path),
		strings.Join(cols, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return InsertError(path, len(rows), err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return InsertError(path, len(rows), err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err = stmt.ExecContext(ctx, schema.EncodeRow(schema.SQLite, sch, r)...); err != nil {
			return InsertError(path, len(rows), err)
		}
	}
	if err = tx.Commit(); err != nil {
		return InsertError(path, len(rows), err)
	}
	return nil
}

func (s *sqliteStore) SelectEq(
	ctx context.Context,
	path, col string,
	id uuid.UUID,
) ([]table.Row, error) {
	var res []table.Row
	err := s.query(ctx, path, col, id[:], func(r table.Row) error {
		res = append(res, r)
		return nil
	})
	return res, err
}

func (s *sqliteStore) Scan(
	ctx context.Context,
	path string,
	fn func(table.Row) error,
) error {
	return s.query(ctx, path, "", nil, fn)
}

func (s *sqliteStore) Count(ctx context.Context, path string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.access(path, false); err != nil {
		return 0, err
	}
	var res int
	q := "SELECT count(*) FROM " + schema.PhysicalName(path)
	if err := s.db.QueryRowContext(ctx, q).Scan(&res); err != nil {
		return 0, QueryError(path, err)
	}
	return res, nil
}

func (s *sqliteStore) ReadOnly() bool {
	return s.readOnly
}

func (s *sqliteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// query reads rows of a table, optionally filtered by equality of a
// column. Rows are collected before fn is called, so fn may use the store.
func (s *sqliteStore) query(
	ctx context.Context,
	path, col string,
	val []byte,
	fn func(table.Row) error,
) error {
	s.mu.Lock()
	if err := s.access(path, false); err != nil {
		s.mu.Unlock()
		return err
	}
	rows, err := s.collect(ctx, path, col, val)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	for _, r := range rows {
		if err = fn(r); err != nil {
			return err
		}
	}
	return nil
}

func (s *sqliteStore) collect(
	ctx context.Context,
	path, col string,
	val []byte,
) ([]table.Row, error) {
	sch, err := s.schemaLocked(ctx, path)
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf("SELECT %s FROM %s",
		strings.Join(schema.Columns(sch), ", "), schema.PhysicalName(path))
	var args []any
	if col != "" {
		if _, ok := sch.Field(col); !ok {
			return nil, table.UnknownColumnError(path, col)
		}
		q += " WHERE " + col + " = ?"
		args = append(args, val)
	}
	q += " ORDER BY " + schema.OrderBy(schema.SQLite)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, QueryError(path, err)
	}
	defer rows.Close()

	var res []table.Row
	for rows.Next() {
		targets := schema.ScanTargets(sch)
		if err = rows.Scan(targets...); err != nil {
			return nil, QueryError(path, err)
		}
		r, err := schema.DecodeRow(sch, targets)
		if err != nil {
			return nil, QueryError(path, err)
		}
		res = append(res, r)
	}
	if err = rows.Err(); err != nil {
		return nil, QueryError(path, err)
	}
	return res, nil
}

func (s *sqliteStore) schemaLocked(ctx context.Context, path string) (table.Schema, error) {
	var js string
	err := s.db.QueryRowContext(ctx,
		"SELECT schema_json FROM _tables WHERE path = ?", path,
	).Scan(&js)
	if errors.Is(err, sql.ErrNoRows) {
		return table.Schema{}, table.NotFoundError(path)
	}
	if err != nil {
		return table.Schema{}, CatalogError(s.path, err)
	}
	sch, err := schema.DecodeSchema(js)
	if err != nil {
		return table.Schema{}, CatalogError(s.path, err)
	}
	return sch, nil
}

func (s *sqliteStore) paths(ctx context.Context, q string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, CatalogError(s.path, err)
	}
	defer rows.Close()

	var res []string
	for rows.Next() {
		var p string
		if err = rows.Scan(&p); err != nil {
			return nil, CatalogError(s.path, err)
		}
		res = append(res, p)
	}
	if err = rows.Err(); err != nil {
		return nil, CatalogError(s.path, err)
	}
	return res, nil
}

// Version returns the cyclopts version that created the store.
func (s *sqliteStore) Version(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.access("/", false); err != nil {
		return "", err
	}
	var res string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM _meta WHERE key = ?", schema.VersionKey,
	).Scan(&res)
	if err != nil {
		return "", CatalogError(s.path, err)
	}
	return res, nil
}
