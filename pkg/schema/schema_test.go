package schema_test

import (
	"strings"
	"testing"

	"github.com/gnames/cyclopts/pkg/schema"
	"github.com/gnames/cyclopts/pkg/table"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sch = table.NewSchema(
	table.UUIDField("instid"),
	table.IntField("id"),
	table.BoolField("kind"),
	table.VectorField("caps", 10),
	table.StringField("solver", 30),
)

// TestStoreTableDDL tests DDL generation for the catalog table.
func TestStoreTableDDL(t *testing.T) {
	ddl := schema.StoreTable{}.TableDDL()
	assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS _tables")
	assert.Contains(t, ddl, "path TEXT PRIMARY KEY")
	assert.Contains(t, ddl, "schema_json TEXT NOT NULL")
	assert.Len(t, schema.Catalog(), 3)
	assert.Equal(t, "_meta", schema.StoreMeta{}.TableName())
}

func TestPhysicalName(t *testing.T) {
	assert := assert.New(t)
	n1 := schema.PhysicalName("/Family/ResourceExchange/ExchangeArcs")
	n2 := schema.PhysicalName("Family/ResourceExchange/ExchangeArcs")
	assert.Equal(n1, n2)
	assert.True(strings.HasPrefix(n1, "t_"))
	assert.Len(n1, 34)
	assert.NotEqual(n1, schema.PhysicalName("/Family/ResourceExchange/ExchangeNodes"))
}

func TestDataTableDDL(t *testing.T) {
	assert := assert.New(t)
	ddl := schema.DataTableDDL(schema.SQLite, "/T", sch)
	assert.Contains(ddl, "instid BLOB NOT NULL")
	assert.Contains(ddl, "caps BLOB NOT NULL")
	assert.Contains(ddl, "caps_n INTEGER NOT NULL")
	assert.NotContains(ddl, "_seq")

	ddl = schema.DataTableDDL(schema.Postgres, "/T", sch)
	assert.Contains(ddl, "_seq BIGINT GENERATED ALWAYS AS IDENTITY")
	assert.Contains(ddl, "solver VARCHAR(30) NOT NULL")
	assert.Contains(ddl, "caps_n BIGINT NOT NULL")

	idx := schema.DataIndexDDL("/T", sch)
	require.Len(t, idx, 1)
	assert.Contains(idx[0], "(instid)")

	assert.Equal(
		[]string{"instid", "id", "kind", "caps", "caps_n", "solver"},
		schema.Columns(sch),
	)
}

func TestVectorCodec(t *testing.T) {
	assert := assert.New(t)
	vec := []float64{1.5, 0, -2}
	b := schema.EncodeVector(vec, 10)
	assert.Len(b, 80)
	assert.Equal(vec, schema.DecodeVector(b, 3))
	assert.Equal([]float64{1.5, 0, -2, 0}, schema.DecodeVector(b, 4))
	assert.Equal([]float64{}, schema.DecodeVector(b, 0))
}

func TestSchemaCodec(t *testing.T) {
	s, err := schema.EncodeSchema(sch)
	require.Nil(t, err)
	res, err := schema.DecodeSchema(s)
	require.Nil(t, err)
	assert.True(t, sch.Equal(res))
}

func TestRowCodec(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	id := uuid.New()
	row, err := sch.Check("/T", table.Row{
		"instid": id, "id": 3, "kind": true,
		"caps": []float64{1, 2}, "solver": "greedy",
	})
	require.Nil(err)

	vals := schema.EncodeRow(schema.Postgres, sch, row)
	require.Len(vals, 6)

	targets := schema.ScanTargets(sch)
	*targets[0].(*[]byte) = vals[0].([]byte)
	*targets[1].(*int64) = vals[1].(int64)
	*targets[2].(*bool) = vals[2].(bool)
	*targets[3].(*[]byte) = vals[3].([]byte)
	*targets[4].(*int64) = vals[4].(int64)
	*targets[5].(*string) = vals[5].(string)

	res, err := schema.DecodeRow(sch, targets)
	require.Nil(err)
	assert.Equal(row, res)

	vals = schema.EncodeRow(schema.SQLite, sch, row)
	assert.Equal(int64(1), vals[2])
}
