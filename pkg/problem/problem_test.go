package problem_test

import (
	"errors"
	"testing"

	"github.com/gnames/cyclopts/pkg/errcode"
	"github.com/gnames/cyclopts/pkg/problem"
	"github.com/gnames/cyclopts/pkg/table"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var params = []problem.Param{
	{Name: "n", Kind: table.Int, Default: 1},
	{Name: "r", Kind: table.Float, Default: 0.5},
	{Name: "d", Kind: table.Vector, Width: 3, Default: []float64{1, 0, 0}},
}

func code(t *testing.T, err error) gn.ErrorCode {
	require.NotNil(t, err)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	return gnErr.Code
}

func TestSpaceDefaults(t *testing.T) {
	assert := assert.New(t)
	s := problem.NewSpace(params)
	assert.Equal(1, s.N())
	var all []problem.Values
	for v := range s.All() {
		all = append(all, v)
	}
	require.Len(t, all, 1)
	assert.Equal(1, all[0].Int("n"))
	assert.Equal(0.5, all[0].Float("r"))
	assert.Equal([]float64{1, 0, 0}, all[0].Vector("d"))
	assert.Len(s.Schema(), 3)
	assert.Equal(table.Vector, s.Schema()[2].Kind)
}

func TestSpaceRead(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	s := problem.NewSpace(params)
	err := s.Read(map[string]any{
		"n": []any{1, 5},
		"r": 0.25,
		"d": []any{[]any{0.5, 0.5}, []any{1, 0, 0}, []any{0.2, 0.3, 0.5}},
	})
	require.Nil(err)
	assert.Equal(6, s.N())

	var got [][2]any
	for v := range s.All() {
		got = append(got, [2]any{v.Int("n"), v.Vector("d")})
		assert.Equal(0.25, v.Float("r"))
	}
	require.Len(got, 6)
	assert.Equal(1, got[0][0])
	assert.Equal([]float64{0.5, 0.5}, got[0][1])
	assert.Equal([]float64{0.2, 0.3, 0.5}, got[2][1])
	assert.Equal(5, got[5][0])
}

func TestSpaceFlatVector(t *testing.T) {
	s := problem.NewSpace(params)
	err := s.Read(map[string]any{"d": []any{0.67, 0.33, 0}})
	require.Nil(t, err)
	assert.Equal(t, 1, s.N())
	for v := range s.All() {
		assert.Equal(t, []float64{0.67, 0.33, 0}, v.Vector("d"))
	}
}

func TestSpaceEarlyStop(t *testing.T) {
	s := problem.NewSpace(params)
	require.Nil(t, s.Read(map[string]any{"n": []any{1, 2, 3, 4}}))
	var count int
	for range s.All() {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestSpaceErrors(t *testing.T) {
	tests := []struct {
		msg  string
		raw  map[string]any
		code gn.ErrorCode
	}{
		{"unknown", map[string]any{"x": 1}, errcode.ParamUnknownError},
		{"fraction for int", map[string]any{"n": 1.5}, errcode.ParamValueError},
		{"string", map[string]any{"r": "a"}, errcode.ParamValueError},
		{"long vector", map[string]any{"d": []any{1, 2, 3, 4}}, errcode.ParamValueError},
		{"empty list", map[string]any{"n": []any{}}, errcode.ParamValueError},
	}
	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			s := problem.NewSpace(params)
			assert.Equal(t, v.code, code(t, s.Read(v.raw)))
		})
	}
}

func TestRegistry(t *testing.T) {
	assert := assert.New(t)
	r := problem.NewRegistry()
	_, err := r.Family("Nope")
	assert.Equal(errcode.FamilyUnknownError, code(t, err))
	_, err = r.Species("Nope")
	assert.Equal(errcode.SpeciesUnknownError, code(t, err))
	gnErr := err.(*gn.Error)
	assert.Equal("Nope", gnErr.Vars[0])
	assert.Empty(r.SpeciesNames())
}

// TestSpaceReadAtomic verifies a failed read leaves the space unchanged
// and a new read starts from defaults.
func TestSpaceReadAtomic(t *testing.T) {
	assert := assert.New(t)
	s := problem.NewSpace(params)
	require.Nil(t, s.Read(map[string]any{"n": []any{1, 2}}))
	assert.Equal(2, s.N())

	err := s.Read(map[string]any{"r": []any{0.1, 0.2, 0.3}, "x": 1})
	assert.Equal(errcode.ParamUnknownError, code(t, err))
	err = s.Read(map[string]any{"r": []any{0.1, 0.2, 0.3}, "n": 1.5})
	assert.Equal(errcode.ParamValueError, code(t, err))
	assert.Equal(2, s.N())

	require.Nil(t, s.Read(map[string]any{"r": []any{0.1, 0.2, 0.3}}))
	assert.Equal(3, s.N())
	for v := range s.All() {
		assert.Equal(1, v.Int("n"))
	}
}
