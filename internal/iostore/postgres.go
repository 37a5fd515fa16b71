package iostore

import (
	"context"
	"fmt"
	"strings"
	"sync"

	cyclopts "github.com/gnames/cyclopts/pkg"
	"github.com/gnames/cyclopts/pkg/config"
	"github.com/gnames/cyclopts/pkg/schema"
	"github.com/gnames/cyclopts/pkg/table"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// pgStore keeps tables of a store in one PostgreSQL database. Data goes
// through pgxpool with COPY, the catalog is managed by GORM.
type pgStore struct {
	mu       sync.Mutex
	pool     *pgxpool.Pool
	gdb      *gorm.DB
	name     string
	readOnly bool
	closed   bool
}

// OpenPostgres connects to a PostgreSQL database and prepares its
// catalog.
func OpenPostgres(
	ctx context.Context,
	cfg config.DatabaseConfig,
	readOnly bool,
) (table.Store, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}
	poolConfig.MaxConns = 4
	poolConfig.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	gdb, err := gorm.Open(
		postgres.New(postgres.Config{Conn: stdlib.OpenDBFromPool(pool)}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		pool.Close()
		return nil, OpenError(cfg.Database, err)
	}

	res := &pgStore{
		pool:     pool,
		gdb:      gdb,
		name:     cfg.Database,
		readOnly: readOnly,
	}
	if err = res.initCatalog(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return res, nil
}

func (s *pgStore) initCatalog(ctx context.Context) error {
	db := s.gdb.WithContext(ctx)
	if !s.readOnly {
		if err := schema.Migrate(db); err != nil {
			return CatalogError(s.name, err)
		}
		meta := schema.StoreMeta{Key: schema.VersionKey, Value: cyclopts.Version}
		err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&meta).Error
		if err != nil {
			return CatalogError(s.name, err)
		}
	}
	version, err := s.version(ctx)
	if err != nil {
		return err
	}
	return checkVersion(s.name, version)
}

func (s *pgStore) version(ctx context.Context) (string, error) {
	var metas []schema.StoreMeta
	err := s.gdb.WithContext(ctx).
		Where("key = ?", schema.VersionKey).
		Limit(1).
		Find(&metas).Error
	if err != nil {
		return "", CatalogError(s.name, err)
	}
	if len(metas) == 0 {
		return "", CatalogError(s.name, fmt.Errorf("no version record"))
	}
	return metas[0].Value, nil
}

// Version returns the cyclopts version that created the store.
func (s *pgStore) Version(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.access("/", false); err != nil {
		return "", err
	}
	return s.version(ctx)
}

func (s *pgStore) access(path string, write bool) error {
	if s.closed {
		return table.ClosedError(path)
	}
	if write && s.readOnly {
		return table.ReadOnlyError(path)
	}
	return nil
}

func (s *pgStore) CreateGroup(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.access(path, true); err != nil {
		return err
	}
	db := s.gdb.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true})
	for _, p := range withParents(path) {
		if err := db.Create(&schema.StoreGroup{Path: p}).Error; err != nil {
			return CreateGroupError(p, err)
		}
	}
	return nil
}

func (s *pgStore) Groups(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.access("/", false); err != nil {
		return nil, err
	}
	var groups []schema.StoreGroup
	if err := s.gdb.WithContext(ctx).Order("path").Find(&groups).Error; err != nil {
		return nil, CatalogError(s.name, err)
	}
	res := make([]string, len(groups))
	for i := range groups {
		res[i] = groups[i].Path
	}
	return res, nil
}

func (s *pgStore) CreateTable(
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

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return CreateTableError(path, err)
	}
	defer tx.Rollback(ctx)

	stmts := append(
		[]string{schema.DataTableDDL(schema.Postgres, path, sch)},
		schema.DataIndexDDL(path, sch)...,
	)
	for _, q := range stmts {
		if _, err = tx.Exec(ctx, q); err != nil {
			return CreateTableError(path, err)
		}
	}
	_, err = tx.Exec(ctx,
		"INSERT INTO _tables (path, name, schema_json) VALUES ($1, $2, $3)",
		path, schema.PhysicalName(path), js,
	)
	if err != nil {
		return CreateTableError(path, err)
	}
	if err = tx.Commit(ctx); err != nil {
		return CreateTableError(path, err)
	}
	return nil
}

func (s *pgStore) TableSchema(
	ctx context.Context,
	path string,
) (table.Schema, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.access(path, false); err != nil {
		return table.Schema{}, false, err
	}
	return s.tableSchema(ctx, path)
}

func (s *pgStore) tableSchema(
	ctx context.Context,
	path string,
) (table.Schema, bool, error) {
	var tbls []schema.StoreTable
	err := s.gdb.WithContext(ctx).
		Where("path = ?", path).
		Limit(1).
		Find(&tbls).Error
	if err != nil {
		return table.Schema{}, false, CatalogError(s.name, err)
	}
	if len(tbls) == 0 {
		return table.Schema{}, false, nil
	}
	sch, err := schema.DecodeSchema(tbls[0].SchemaJSON)
	if err != nil {
		return table.Schema{}, false, CatalogError(s.name, err)
	}
	return sch, true, nil
}

func (s *pgStore) Tables(ctx context.Context, prefix string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.access(prefix, false); err != nil {
		return nil, err
	}
	var tbls []schema.StoreTable
	if err := s.gdb.WithContext(ctx).Order("path").Find(&tbls).Error; err != nil {
		return nil, CatalogError(s.name, err)
	}
	var res []string
	for i := range tbls {
		if table.Under(tbls[i].Path, prefix) {
			res = append(res, tbls[i].Path)
		}
	}
	return res, nil
}

func (s *pgStore) Insert(
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
	vals := make([][]any, len(rows))
	for i := range rows {
		vals[i] = schema.EncodeRow(schema.Postgres, sch, rows[i])
	}
	_, err := s.pool.CopyFrom(
		ctx,
		pgx.Identifier{schema.PhysicalName(path)},
		schema.Columns(sch),
		pgx.CopyFromRows(vals),
	)
	if err != nil {
		return InsertError(path, len(rows), err)
	}
	return nil
}

func (s *pgStore) SelectEq(
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

func (s *pgStore) Scan(
	ctx context.Context,
	path string,
	fn func(table.Row) error,
) error {
	return s.query(ctx, path, "", nil, fn)
}

func (s *pgStore) Count(ctx context.Context, path string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.access(path, false); err != nil {
		return 0, err
	}
	var res int
	q := "SELECT count(*) FROM " + schema.PhysicalName(path)
	if err := s.pool.QueryRow(ctx, q).Scan(&res); err != nil {
		return 0, QueryError(path, err)
	}
	return res, nil
}

func (s *pgStore) ReadOnly() bool {
	return s.readOnly
}

func (s *pgStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.pool.Close()
	return nil
}

func (s *pgStore) query(
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
	res, err := s.collect(ctx, path, col, val)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	for _, r := range res {
		if err = fn(r); err != nil {
			return err
		}
	}
	return nil
}

func (s *pgStore) collect(
	ctx context.Context,
	path, col string,
	val []byte,
) ([]table.Row, error) {
	sch, ok, err := s.tableSchema(ctx, path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, table.NotFoundError(path)
	}

	q := fmt.Sprintf("SELECT %s FROM %s",
		strings.Join(schema.Columns(sch), ", "), schema.PhysicalName(path))
	var args []any
	if col != "" {
		if _, ok := sch.Field(col); !ok {
			return nil, table.UnknownColumnError(path, col)
		}
		q += " WHERE " + col + " = $1"
		args = append(args, val)
	}
	q += " ORDER BY " + schema.OrderBy(schema.Postgres)

	rows, err := s.pool.Query(ctx, q, args...)
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
