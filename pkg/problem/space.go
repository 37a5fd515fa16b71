package problem

import (
	"iter"
	"math"
	"slices"

	"github.com/gnames/cyclopts/pkg/table"
)

// Param describes one parameter of a species. Kind is table.Int,
// table.Float or table.Vector. Width is the number of slots of a vector.
type Param struct {
	Name    string
	Kind    table.Kind
	Width   int
	Default any
}

// Field returns the table field that stores the parameter.
func (p Param) Field() table.Field {
	switch p.Kind {
	case table.Vector:
		return table.VectorField(p.Name, p.Width)
	case table.Float:
		return table.FloatField(p.Name)
	default:
		return table.IntField(p.Name)
	}
}

// Values maps parameter names to values: int64, float64 or []float64.
type Values map[string]any

func (v Values) Int(name string) int {
	n, _ := v[name].(int64)
	return int(n)
}

func (v Values) Int64(name string) int64 {
	n, _ := v[name].(int64)
	return n
}

func (v Values) Float(name string) float64 {
	f, _ := v[name].(float64)
	return f
}

func (v Values) Vector(name string) []float64 {
	f, _ := v[name].([]float64)
	return slices.Clone(f)
}

// Space is the cross product of parameter value lists.
type Space struct {
	params []Param
	values [][]any
}

// NewSpace creates a space where every parameter has its default value.
func NewSpace(params []Param) *Space {
	res := &Space{params: params}
	res.values = res.defaults()
	return res
}

func (s *Space) defaults() [][]any {
	res := make([][]any, len(s.params))
	for i, p := range s.params {
		v, _ := convert(p, p.Default)
		res[i] = []any{v}
	}
	return res
}

// Params returns the parameter descriptors of the space.
func (s *Space) Params() []Param {
	return s.params
}

// Schema returns table fields of all parameters.
func (s *Space) Schema() []table.Field {
	res := make([]table.Field, len(s.params))
	for i := range s.params {
		res[i] = s.params[i].Field()
	}
	return res
}

// Read sets value lists from raw run-control values. Parameters absent
// from raw keep their defaults. A scalar is a one-element list. For
// vector parameters a flat list of numbers is one value, a list of lists
// gives several values. The space does not change when raw is invalid.
func (s *Space) Read(raw map[string]any) error {
	idx := make(map[string]int, len(s.params))
	for i, p := range s.params {
		idx[p.Name] = i
	}
	for name := range raw {
		if _, ok := idx[name]; !ok {
			return UnknownParamError(name)
		}
	}

	res := s.defaults()
	for name, val := range raw {
		i := idx[name]
		vals, err := readValues(s.params[i], val)
		if err != nil {
			return err
		}
		res[i] = vals
	}
	s.values = res
	return nil
}

func readValues(p Param, val any) ([]any, error) {
	var items []any
	switch v := val.(type) {
	case []any:
		if p.Kind == table.Vector && !isNested(v) {
			items = []any{v}
		} else {
			items = v
		}
	case []float64:
		if p.Kind == table.Vector {
			items = []any{v}
		} else {
			for _, f := range v {
				items = append(items, f)
			}
		}
	default:
		items = []any{v}
	}
	if len(items) == 0 {
		return nil, ParamValueError(p.Name, val)
	}

	res := make([]any, len(items))
	for j, it := range items {
		cv, err := convert(p, it)
		if err != nil {
			return nil, err
		}
		res[j] = cv
	}
	return res, nil
}

// N returns the number of points in the cross product.
func (s *Space) N() int {
	res := 1
	for _, v := range s.values {
		res *= len(v)
	}
	return res
}

// All lazily yields every combination of values. The last parameter
// changes fastest.
func (s *Space) All() iter.Seq[Values] {
	return func(yield func(Values) bool) {
		if len(s.params) == 0 {
			return
		}
		idx := make([]int, len(s.params))
		for {
			vals := make(Values, len(s.params))
			for i, p := range s.params {
				v := s.values[i][idx[i]]
				if vec, ok := v.([]float64); ok {
					v = slices.Clone(vec)
				}
				vals[p.Name] = v
			}
			if !yield(vals) {
				return
			}

			i := len(idx) - 1
			for ; i >= 0; i-- {
				idx[i]++
				if idx[i] < len(s.values[i]) {
					break
				}
				idx[i] = 0
			}
			if i < 0 {
				return
			}
		}
	}
}

func isNested(v []any) bool {
	for _, it := range v {
		switch it.(type) {
		case []any, []float64:
			return true
		}
	}
	return false
}

func convert(p Param, v any) (any, error) {
	switch p.Kind {
	case table.Int:
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int64:
			return n, nil
		case uint64:
			return int64(n), nil
		case float64:
			if n == math.Trunc(n) {
				return int64(n), nil
			}
		}
	case table.Float:
		switch n := v.(type) {
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case float64:
			return n, nil
		}
	case table.Vector:
		var res []float64
		switch vec := v.(type) {
		case []float64:
			res = slices.Clone(vec)
		case []any:
			res = make([]float64, len(vec))
			for i := range vec {
				f, err := convert(Param{Name: p.Name, Kind: table.Float}, vec[i])
				if err != nil {
					return nil, ParamValueError(p.Name, v)
				}
				res[i] = f.(float64)
			}
		default:
			return nil, ParamValueError(p.Name, v)
		}
		if len(res) > p.Width {
			return nil, ParamValueError(p.Name, v)
		}
		return res, nil
	}
	return nil, ParamValueError(p.Name, v)
}
