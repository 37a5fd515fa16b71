package solver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gnames/cyclopts/pkg/errcode"
	"github.com/gnames/cyclopts/pkg/exchange"
	"github.com/gnames/cyclopts/pkg/solver"
	"github.com/gnames/gn"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoSuppliers has one request of 10 and two suppliers: a preferred one
// limited to 6 and a large one.
func twoSuppliers(excl bool) *exchange.Instance {
	return &exchange.Instance{
		InstID: uuid.New(),
		Groups: []exchange.Group{
			{ID: 0, Kind: true, Qty: 10, Caps: []float64{10}},
			{ID: 1, Kind: false, Caps: []float64{6}},
			{ID: 2, Kind: false, Caps: []float64{100}},
		},
		Nodes: []exchange.Node{
			{ID: 0, GID: 0, Kind: true, Qty: 10, Excl: excl, ExclID: -1},
			{ID: 1, GID: 1, Kind: false, ExclID: -1},
			{ID: 2, GID: 2, Kind: false, ExclID: -1},
		},
		Arcs: []exchange.Arc{
			{ID: 0, UID: 0, UCaps: []float64{1}, VID: 1, VCaps: []float64{1}, Pref: 2},
			{ID: 1, UID: 0, UCaps: []float64{1}, VID: 2, VCaps: []float64{1}, Pref: 1},
		},
	}
}

// exclSet has two requests competing for two supply nodes of the same
// exclusive set.
func exclSet() *exchange.Instance {
	return &exchange.Instance{
		InstID: uuid.New(),
		Groups: []exchange.Group{
			{ID: 0, Kind: true, Qty: 5, Caps: []float64{5}},
			{ID: 1, Kind: true, Qty: 5, Caps: []float64{5}},
			{ID: 2, Kind: false, Caps: []float64{100}},
		},
		Nodes: []exchange.Node{
			{ID: 0, GID: 0, Kind: true, Qty: 5, ExclID: -1},
			{ID: 1, GID: 1, Kind: true, Qty: 5, ExclID: -1},
			{ID: 2, GID: 2, Kind: false, Qty: 5, Excl: true, ExclID: 1},
			{ID: 3, GID: 2, Kind: false, Qty: 5, Excl: true, ExclID: 1},
		},
		Arcs: []exchange.Arc{
			{ID: 0, UID: 0, UCaps: []float64{1}, VID: 2, VCaps: []float64{1}, Pref: 1},
			{ID: 1, UID: 1, UCaps: []float64{1}, VID: 3, VCaps: []float64{1}, Pref: 1},
		},
	}
}

func TestNew(t *testing.T) {
	assert := assert.New(t)
	for _, k := range solver.Kinds() {
		s, err := solver.New(k)
		assert.Nil(err)
		assert.Equal(k, s.Kind())
		assert.True(solver.IsKind(k))
	}

	_, err := solver.New("cbc")
	require.NotNil(t, err)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(errcode.SolverUnknownError, gnErr.Code)
	assert.Contains(gnErr.Vars, "cbc")
	assert.False(solver.IsKind("cbc"))
}

func TestGreedy(t *testing.T) {
	ctx := context.Background()
	s, err := solver.New(solver.Greedy)
	require.Nil(t, err)

	tests := []struct {
		msg   string
		inst  *exchange.Instance
		flows map[int]float64
		obj   float64
	}{
		{"split", twoSuppliers(false), map[int]float64{0: 6, 1: 4}, 16},
		{"exclusive request", twoSuppliers(true), map[int]float64{1: 10}, 10},
		{"exclusive set", exclSet(), map[int]float64{0: 5}, 5},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			assert := assert.New(t)
			soln, err := s.Solve(ctx, v.inst)
			require.Nil(t, err)
			assert.Equal(v.inst.InstID, soln.InstID)
			assert.Equal(solver.Greedy, soln.Solver)
			assert.NotEqual(uuid.Nil, soln.SolnID)
			assert.Equal(len(v.flows), len(soln.Flows))
			for id, f := range v.flows {
				assert.InDelta(f, soln.Flows[id], 1e-9)
			}
			assert.InDelta(v.obj, soln.Objective, 1e-9)
		})
	}
}

func TestLP(t *testing.T) {
	assert := assert.New(t)
	s, err := solver.New(solver.LP)
	require.Nil(t, err)

	soln, err := s.Solve(context.Background(), twoSuppliers(true))
	require.Nil(t, err)
	assert.InDelta(6, soln.Flows[0], 1e-6)
	assert.InDelta(4, soln.Flows[1], 1e-6)
	assert.InDelta(16, soln.Objective, 1e-6)
}

func TestEmpty(t *testing.T) {
	assert := assert.New(t)
	inst := &exchange.Instance{InstID: uuid.New()}
	for _, k := range solver.Kinds() {
		s, err := solver.New(k)
		require.Nil(t, err)
		soln, err := s.Solve(context.Background(), inst)
		require.Nil(t, err)
		assert.Empty(soln.Flows)
		assert.Zero(soln.Objective)
	}
}

func TestInvalidInstance(t *testing.T) {
	assert := assert.New(t)
	inst := twoSuppliers(false)
	inst.Arcs[0].VID = 42
	for _, k := range solver.Kinds() {
		s, err := solver.New(k)
		require.Nil(t, err)
		_, err = s.Solve(context.Background(), inst)
		require.NotNil(t, err)
		var gnErr *gn.Error
		require.True(t, errors.As(err, &gnErr))
		assert.Equal(errcode.SolverFailedError, gnErr.Code)
	}
}
