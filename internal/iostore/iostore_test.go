package iostore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gnames/cyclopts/internal/iostore"
	"github.com/gnames/cyclopts/internal/iotesting"
	cyclopts "github.com/gnames/cyclopts/pkg"
	"github.com/gnames/cyclopts/pkg/errcode"
	"github.com/gnames/cyclopts/pkg/table"
	"github.com/gnames/gn"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var arcSchema = table.NewSchema(
	table.UUIDField("instid"),
	table.IntField("id"),
	table.IntField("uid"),
	table.VectorField("ucaps", 10),
	table.BoolField("excl"),
	table.FloatField("pref"),
	table.StringField("solver", 30),
)

func errCode(t *testing.T, err error) gn.ErrorCode {
	t.Helper()
	require.NotNil(t, err)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	return gnErr.Code
}

// checkStore exercises a writable store and returns instance ids it wrote.
func checkStore(t *testing.T, store table.Store) (uuid.UUID, uuid.UUID) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	m := table.NewManager(store, 3*arcSchema.RowSize())
	tbl, err := m.Table(ctx, "/Family/ResourceExchange/ExchangeArcs", arcSchema)
	require.Nil(err)

	id1, id2 := uuid.New(), uuid.New()
	var rows []table.Row
	for i := range 7 {
		id := id1
		if i%2 == 1 {
			id = id2
		}
		rows = append(rows, table.Row{
			"instid": id,
			"id":     i,
			"uid":    i * 10,
			"ucaps":  []float64{float64(i), 0},
			"excl":   i%3 == 0,
			"pref":   0.5 * float64(i),
			"solver": "greedy",
		})
	}
	require.Nil(tbl.Append(ctx, rows...))
	n, err := tbl.Count(ctx)
	require.Nil(err)
	assert.Equal(6, n)
	assert.Equal(1, tbl.Buffered())

	require.Nil(tbl.Flush(ctx))
	res, err := tbl.SelectEq(ctx, "instid", id1)
	require.Nil(err)
	require.Len(res, 4)
	for i, r := range res {
		idx := 2 * i
		assert.Equal(id1, r["instid"])
		assert.Equal(int64(idx), r["id"])
		assert.Equal(int64(idx*10), r["uid"])
		assert.Equal([]float64{float64(idx), 0}, r["ucaps"])
		assert.Equal(idx%3 == 0, r["excl"])
		assert.Equal(0.5*float64(idx), r["pref"])
		assert.Equal("greedy", r["solver"])
	}

	var ids []int64
	err = tbl.Scan(ctx, func(r table.Row) error {
		ids = append(ids, r["id"].(int64))
		return nil
	})
	require.Nil(err)
	assert.Equal([]int64{0, 1, 2, 3, 4, 5, 6}, ids)

	groups, err := store.Groups(ctx)
	require.Nil(err)
	assert.Equal([]string{"/Family", "/Family/ResourceExchange"}, groups)

	tables, err := store.Tables(ctx, "/Family")
	require.Nil(err)
	assert.Equal([]string{"/Family/ResourceExchange/ExchangeArcs"}, tables)
	tables, err = store.Tables(ctx, "/Family/Resource")
	require.Nil(err)
	assert.Empty(tables)

	v, err := iostore.Version(ctx, store)
	require.Nil(err)
	assert.Equal(cyclopts.Version, v)

	require.Nil(m.Close())
	assert.Equal(7, m.NWrites())
	return id1, id2
}

func TestSQLiteStore(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()
	path := iotesting.TempStorePath(t, "store")

	store, err := iostore.OpenSQLite(ctx, path, false)
	require.Nil(err)
	_, id2 := checkStore(t, store)

	// reopen read-only
	store, err = iostore.OpenSQLite(ctx, path, true)
	require.Nil(err)
	assert.True(store.ReadOnly())
	m := table.NewManager(store, 0)
	defer m.Close()

	tbl, err := m.OpenTable(ctx, "/Family/ResourceExchange/ExchangeArcs")
	require.Nil(err)
	res, err := tbl.SelectEq(ctx, "instid", id2)
	require.Nil(err)
	assert.Len(res, 3)

	require.Nil(tbl.Append(ctx, table.Row{
		"instid": id2, "id": 100, "uid": 0, "ucaps": []float64{},
		"excl": false, "pref": 1.0, "solver": "lp",
	}))
	err = tbl.Flush(ctx)
	assert.Equal(errcode.StoreReadOnlyError, errCode(t, err))
	assert.Equal(1, tbl.Buffered())

	_, err = m.Table(ctx, "/New", arcSchema)
	assert.Equal(errcode.StoreReadOnlyError, errCode(t, err))
}

func TestSQLiteOpenMissing(t *testing.T) {
	path := iotesting.TempStorePath(t, "missing")
	_, err := iostore.OpenSQLite(context.Background(), path, true)
	assert.Equal(t, errcode.StoreOpenError, errCode(t, err))
}

func TestSQLiteClosed(t *testing.T) {
	ctx := context.Background()
	store, err := iostore.OpenSQLite(ctx, iotesting.TempStorePath(t, "c"), false)
	require.Nil(t, err)
	require.Nil(t, store.Close())
	require.Nil(t, store.Close())
	_, err = store.Groups(ctx)
	assert.Equal(t, errcode.StoreClosedError, errCode(t, err))
}

func TestOpenBackends(t *testing.T) {
	ctx := context.Background()
	cfg := iotesting.GetTestConfig()

	cfg.Store.Backend = "memory"
	store, err := iostore.Open(ctx, cfg, "", false)
	require.Nil(t, err)
	_, ok := store.(*table.MemStore)
	assert.True(t, ok)

	cfg.Store.Backend = "sqlite"
	m, err := iostore.OpenManager(ctx, cfg, iotesting.TempStorePath(t, "o"), false)
	require.Nil(t, err)
	assert.False(t, m.ReadOnly())
	assert.Nil(t, m.Close())
}

func TestPostgresStore(t *testing.T) {
	cfg := iotesting.GetTestConfig()
	iotesting.ResetPostgres(t, cfg)

	ctx := context.Background()
	store, err := iostore.OpenPostgres(ctx, cfg.Database, false)
	require.Nil(t, err)
	_, id2 := checkStore(t, store)

	store, err = iostore.OpenPostgres(ctx, cfg.Database, true)
	require.Nil(t, err)
	defer store.Close()
	res, err := store.SelectEq(ctx, "/Family/ResourceExchange/ExchangeArcs", "instid", id2)
	require.Nil(t, err)
	assert.Len(t, res, 3)
}

func TestErrors(t *testing.T) {
	orig := errors.New("boom")
	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
	}{
		{"open", iostore.OpenError("/tmp/x", orig), errcode.StoreOpenError},
		{"connect", iostore.ConnectionError("h", 1, "d", "u", orig), errcode.StoreOpenError},
		{"catalog", iostore.CatalogError("/tmp/x", orig), errcode.StoreCatalogError},
		{"table", iostore.CreateTableError("/T", orig), errcode.StoreCreateTableError},
		{"group", iostore.CreateGroupError("/G", orig), errcode.StoreCreateGroupError},
		{"insert", iostore.InsertError("/T", 3, orig), errcode.StoreInsertError},
		{"query", iostore.QueryError("/T", orig), errcode.StoreQueryError},
	}
	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			gnErr, ok := v.err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, v.code, gnErr.Code)
			assert.NotEmpty(t, gnErr.Msg)
			assert.ErrorIs(t, gnErr.Err, orig)
		})
	}

	err := iostore.VersionError("/tmp/x", "v0.0.1", "v0.1.0")
	gnErr := err.(*gn.Error)
	assert.Equal(t, errcode.StoreVersionError, gnErr.Code)
	assert.Len(t, gnErr.Vars, 3)
}
