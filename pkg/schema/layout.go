package schema

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/gnames/cyclopts/pkg/table"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnuuid"
	"github.com/google/uuid"
)

// Dialect selects SQL types of a backend.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

// SeqColumn keeps insertion order of rows in PostgreSQL tables.
const SeqColumn = "_seq"

// PhysicalName returns the SQL table name of a logical table path.
func PhysicalName(path string) string {
	id := gnuuid.New(table.Clean(path)).String()
	return "t_" + strings.ReplaceAll(id, "-", "")
}

// LenColumn is the name of the column keeping the length of a vector.
func LenColumn(name string) string {
	return name + "_n"
}

// Columns returns the physical column names of a schema. Every vector
// field adds a length column right after it.
func Columns(sch table.Schema) []string {
	res := make([]string, 0, len(sch.Fields))
	for _, f := range sch.Fields {
		res = append(res, f.Name)
		if f.Kind == table.Vector {
			res = append(res, LenColumn(f.Name))
		}
	}
	return res
}

func colType(d Dialect, f table.Field) string {
	if d == Postgres {
		switch f.Kind {
		case table.Int:
			return "BIGINT NOT NULL"
		case table.Float:
			return "DOUBLE PRECISION NOT NULL"
		case table.Bool:
			return "BOOLEAN NOT NULL"
		case table.UUID, table.Vector:
			return "BYTEA NOT NULL"
		case table.String:
			return fmt.Sprintf("VARCHAR(%d) NOT NULL", f.Width)
		}
	}
	switch f.Kind {
	case table.Int, table.Bool:
		return "INTEGER NOT NULL"
	case table.Float:
		return "REAL NOT NULL"
	case table.UUID, table.Vector:
		return "BLOB NOT NULL"
	}
	return "TEXT NOT NULL"
}

// DataTableDDL returns CREATE TABLE statement for a logical table.
func DataTableDDL(d Dialect, path string, sch table.Schema) string {
	var columns []string
	if d == Postgres {
		columns = append(columns,
			"    "+SeqColumn+" BIGINT GENERATED ALWAYS AS IDENTITY")
	}
	for _, f := range sch.Fields {
		columns = append(columns, fmt.Sprintf("    %s %s", f.Name, colType(d, f)))
		if f.Kind == table.Vector {
			columns = append(columns,
				fmt.Sprintf("    %s %s", LenColumn(f.Name), colType(d, table.IntField(""))))
		}
	}
	return fmt.Sprintf("CREATE TABLE %s (\n%s\n);",
		PhysicalName(path),
		strings.Join(columns, ",\n"))
}

// DataIndexDDL returns index statements for every UUID column of a table.
func DataIndexDDL(path string, sch table.Schema) []string {
	name := PhysicalName(path)
	var res []string
	for _, f := range sch.Fields {
		if f.Kind != table.UUID {
			continue
		}
		res = append(res, fmt.Sprintf(
			"CREATE INDEX idx_%s_%s ON %s(%s);", name, f.Name, name, f.Name,
		))
	}
	return res
}

// OrderBy returns the column that keeps insertion order.
func OrderBy(d Dialect) string {
	if d == Postgres {
		return SeqColumn
	}
	return "rowid"
}

// EncodeSchema serializes a schema for the catalog.
func EncodeSchema(sch table.Schema) (string, error) {
	enc := gnfmt.GNjson{}
	res, err := enc.Encode(sch)
	if err != nil {
		return "", err
	}
	return string(res), nil
}

// DecodeSchema restores a schema from the catalog.
func DecodeSchema(s string) (table.Schema, error) {
	var res table.Schema
	enc := gnfmt.GNjson{}
	err := enc.Decode([]byte(s), &res)
	return res, err
}

// EncodeVector packs a vector into width little-endian float64 slots.
// Unused slots are zero.
func EncodeVector(vec []float64, width int) []byte {
	res := make([]byte, 8*width)
	for i, v := range vec {
		if i >= width {
			break
		}
		binary.LittleEndian.PutUint64(res[8*i:], math.Float64bits(v))
	}
	return res
}

// DecodeVector unpacks the first n slots of an encoded vector.
func DecodeVector(b []byte, n int) []float64 {
	n = min(n, len(b)/8)
	res := make([]float64, max(n, 0))
	for i := range res {
		res[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[8*i:]))
	}
	return res
}

// EncodeRow converts a normalized row into physical column values in the
// order of Columns.
func EncodeRow(d Dialect, sch table.Schema, row table.Row) []any {
	res := make([]any, 0, len(sch.Fields))
	for _, f := range sch.Fields {
		v := row[f.Name]
		switch f.Kind {
		case table.UUID:
			id := v.(uuid.UUID)
			res = append(res, id[:])
		case table.Vector:
			vec := v.([]float64)
			res = append(res, EncodeVector(vec, f.Width), int64(len(vec)))
		case table.Bool:
			if d == SQLite {
				var b int64
				if v.(bool) {
					b = 1
				}
				res = append(res, b)
			} else {
				res = append(res, v)
			}
		default:
			res = append(res, v)
		}
	}
	return res
}

// ScanTargets returns pointers for scanning one physical row in the order
// of Columns.
func ScanTargets(sch table.Schema) []any {
	res := make([]any, 0, len(sch.Fields))
	for _, f := range sch.Fields {
		switch f.Kind {
		case table.Int:
			res = append(res, new(int64))
		case table.Float:
			res = append(res, new(float64))
		case table.Bool:
			res = append(res, new(bool))
		case table.UUID:
			res = append(res, new([]byte))
		case table.String:
			res = append(res, new(string))
		case table.Vector:
			res = append(res, new([]byte), new(int64))
		}
	}
	return res
}

// DecodeRow builds a row from values scanned into ScanTargets.
func DecodeRow(sch table.Schema, targets []any) (table.Row, error) {
	res := make(table.Row, len(sch.Fields))
	i := 0
	for _, f := range sch.Fields {
		switch f.Kind {
		case table.Int:
			res[f.Name] = *targets[i].(*int64)
		case table.Float:
			res[f.Name] = *targets[i].(*float64)
		case table.Bool:
			res[f.Name] = *targets[i].(*bool)
		case table.UUID:
			id, err := uuid.FromBytes(*targets[i].(*[]byte))
			if err != nil {
				return nil, err
			}
			res[f.Name] = id
		case table.String:
			res[f.Name] = *targets[i].(*string)
		case table.Vector:
			b := *targets[i].(*[]byte)
			i++
			n := *targets[i].(*int64)
			res[f.Name] = DecodeVector(b, int(n))
		}
		i++
	}
	return res, nil
}
