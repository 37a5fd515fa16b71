package table

import "github.com/google/uuid"

// Accessors below read normalized values of a row. A missing or
// differently typed value gives the zero value.

func (r Row) Int(name string) int {
	v, _ := r[name].(int64)
	return int(v)
}

func (r Row) Int64(name string) int64 {
	v, _ := r[name].(int64)
	return v
}

func (r Row) Float(name string) float64 {
	v, _ := r[name].(float64)
	return v
}

func (r Row) Bool(name string) bool {
	v, _ := r[name].(bool)
	return v
}

func (r Row) UUID(name string) uuid.UUID {
	v, _ := r[name].(uuid.UUID)
	return v
}

func (r Row) Text(name string) string {
	v, _ := r[name].(string)
	return v
}

func (r Row) Vector(name string) []float64 {
	v, _ := r[name].([]float64)
	return v
}
