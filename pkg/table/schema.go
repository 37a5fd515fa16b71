// Package table provides fixed-schema tables with buffered writes on top of
// a Store, and a Manager that owns the tables of one store.
package table

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Kind is the storage type of a field.
type Kind int8

const (
	Int Kind = iota
	Float
	Bool
	UUID
	String
	Vector
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case UUID:
		return "uuid"
	case String:
		return "string"
	case Vector:
		return "vector"
	default:
		return "unknown"
	}
}

// Field describes one column. Width is the number of characters for
// strings and the number of slots for vectors.
type Field struct {
	Name  string `json:"name"`
	Kind  Kind   `json:"kind"`
	Width int    `json:"width,omitempty"`
}

func IntField(name string) Field    { return Field{Name: name, Kind: Int} }
func FloatField(name string) Field  { return Field{Name: name, Kind: Float} }
func BoolField(name string) Field   { return Field{Name: name, Kind: Bool} }
func UUIDField(name string) Field   { return Field{Name: name, Kind: UUID} }
func StringField(name string, width int) Field {
	return Field{Name: name, Kind: String, Width: width}
}
func VectorField(name string, width int) Field {
	return Field{Name: name, Kind: Vector, Width: width}
}

// Size returns the number of bytes a value of the field occupies.
// Vectors carry an 8-byte length next to their slots.
func (f Field) Size() int {
	switch f.Kind {
	case Bool:
		return 1
	case UUID:
		return 16
	case String:
		return f.Width
	case Vector:
		return 8*f.Width + 8
	default:
		return 8
	}
}

// Schema is an ordered list of fields.
type Schema struct {
	Fields []Field `json:"fields"`
}

// NewSchema creates a schema from fields.
func NewSchema(fields ...Field) Schema {
	return Schema{Fields: fields}
}

// RowSize returns the number of bytes one row occupies.
func (s Schema) RowSize() int {
	var res int
	for _, f := range s.Fields {
		res += f.Size()
	}
	return res
}

// Field returns a field by name.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Names returns field names in order.
func (s Schema) Names() []string {
	res := make([]string, len(s.Fields))
	for i := range s.Fields {
		res[i] = s.Fields[i].Name
	}
	return res
}

// Equal reports whether two schemas have the same fields in the same order.
func (s Schema) Equal(o Schema) bool {
	if len(s.Fields) != len(o.Fields) {
		return false
	}
	for i := range s.Fields {
		if s.Fields[i] != o.Fields[i] {
			return false
		}
	}
	return true
}

// Capacity returns how many rows fit into targetBytes, at least one.
func (s Schema) Capacity(targetBytes int) int {
	size := s.RowSize()
	if size == 0 {
		return max(1, targetBytes)
	}
	return max(1, targetBytes/size)
}

// Row maps field names to values. Integers are normalized to int64,
// vectors to []float64.
type Row map[string]any

// Check validates a row against the schema and returns a normalized copy.
// A row must have a value for every field of the schema.
func (s Schema) Check(path string, row Row) (Row, error) {
	for k := range row {
		if _, ok := s.Field(k); !ok {
			return nil, UnknownFieldError(path, k)
		}
	}
	res := make(Row, len(s.Fields))
	for _, f := range s.Fields {
		v, ok := row[f.Name]
		if !ok {
			return nil, MissingFieldError(path, f.Name)
		}
		nv, err := normalize(path, f, v)
		if err != nil {
			return nil, err
		}
		res[f.Name] = nv
	}
	return res, nil
}

func normalize(path string, f Field, v any) (any, error) {
	switch f.Kind {
	case Int:
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int8:
			return int64(n), nil
		case int16:
			return int64(n), nil
		case int32:
			return int64(n), nil
		case int64:
			return n, nil
		case uint8:
			return int64(n), nil
		case uint16:
			return int64(n), nil
		case uint32:
			return int64(n), nil
		case uint64:
			if n > math.MaxInt64 {
				return nil, FieldWidthError(path, f.Name, 8)
			}
			return int64(n), nil
		}
	case Float:
		switch n := v.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		}
	case Bool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case UUID:
		switch u := v.(type) {
		case uuid.UUID:
			return u, nil
		case [16]byte:
			return uuid.UUID(u), nil
		}
	case String:
		if str, ok := v.(string); ok {
			if len(str) > f.Width {
				return nil, FieldWidthError(path, f.Name, f.Width)
			}
			return str, nil
		}
	case Vector:
		if vec, ok := v.([]float64); ok {
			if len(vec) > f.Width {
				return nil, FieldWidthError(path, f.Name, f.Width)
			}
			res := make([]float64, len(vec))
			copy(res, vec)
			return res, nil
		}
	}
	return nil, FieldTypeError(path, f.Name, f.Kind.String(), fmt.Sprintf("%T", v))
}
