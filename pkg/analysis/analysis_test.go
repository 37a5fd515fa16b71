package analysis_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/gnames/cyclopts/pkg/analysis"
	"github.com/gnames/cyclopts/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	p1, p2         = uuid.New(), uuid.New()
	i1, i2, i3, i4 = uuid.New(), uuid.New(), uuid.New(), uuid.New()
)

// fixture has two points. Instances i1 and i3 have three solutions, i2
// and i4 are incomplete.
func fixture() []analysis.Row {
	return []analysis.Row{
		{ParamID: p1, InstID: i1, SolnID: uuid.New(), Solver: "greedy"},
		{ParamID: p1, InstID: i1, SolnID: uuid.New(), Solver: "lp"},
		{ParamID: p1, InstID: i1, SolnID: uuid.New(), Solver: "cbc"},
		{ParamID: p1, InstID: i2, SolnID: uuid.New(), Solver: "greedy"},
		{ParamID: p2, InstID: i3, SolnID: uuid.New(), Solver: "greedy"},
		{ParamID: p2, InstID: i3, SolnID: uuid.New(), Solver: "lp"},
		{ParamID: p2, InstID: i3, SolnID: uuid.New(), Solver: "cbc"},
		{ParamID: p2, InstID: i4, SolnID: uuid.New(), Solver: "greedy"},
		{ParamID: p2, InstID: i4, SolnID: uuid.New(), Solver: "lp"},
	}
}

func TestIDTree(t *testing.T) {
	assert := assert.New(t)
	tree := analysis.NewIDTree(fixture())
	assert.Equal(2, tree.NNodes(0))
	assert.Equal(4, tree.NInsts())
	assert.Equal(9, tree.NNodes(2))
	assert.Equal(0, tree.NNodes(3))
	assert.Equal([]string{"cbc", "greedy", "lp"}, tree.LeafVals())
}

func TestPrune(t *testing.T) {
	tests := []struct {
		msg     string
		nSoln   int
		nParams int
		insts   []uuid.UUID
		pruned  int
	}{
		{"three", 3, 2, []uuid.UUID{i1, i3}, 2},
		{"two", 2, 1, []uuid.UUID{i4}, 3},
		{"one", 1, 1, []uuid.UUID{i2}, 3},
		{"none", 4, 0, nil, 4},
	}
	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			assert := assert.New(t)
			tree := analysis.NewIDTree(fixture())
			assert.Equal(v.pruned, tree.Prune(v.nSoln))
			assert.Equal(v.nParams, tree.NNodes(0))
			assert.Equal(len(v.insts), tree.NInsts())
			for _, insts := range tree {
				for iid := range insts {
					assert.Contains(v.insts, iid)
				}
			}
		})
	}
}

// TestPruneSixRows follows the six-row layout: two points, and only two
// instances with three solutions each.
func TestPruneSixRows(t *testing.T) {
	rows := fixture()[:3]
	rows = append(rows, fixture()[4:7]...)
	for _, k := range []int{1, 2} {
		tree := analysis.NewIDTree(rows)
		tree.Prune(k)
		assert.Empty(t, tree)
	}
	tree := analysis.NewIDTree(rows)
	assert.Zero(t, tree.Prune(3))
	assert.Equal(t, 2, tree.NInsts())
}

func TestRMS(t *testing.T) {
	assert := assert.New(t)
	assert.Zero(analysis.RMS(nil))
	assert.InDelta(math.Sqrt(25.0/2), analysis.RMS([]float64{3, 4}), 1e-12)
	assert.InDelta(math.Sqrt((36.0+16)/2), analysis.WeightedRMS([]float64{3, 4}, []float64{2, 1}), 1e-12)

	plain, weighted, err := analysis.FlowRMS(map[int]float64{1: 4}, []float64{1, 0.5, 1})
	require.Nil(t, err)
	assert.InDelta(4/math.Sqrt(3), plain, 1e-12)
	assert.InDelta(2/math.Sqrt(3), weighted, 1e-12)

	plain, weighted, err = analysis.FlowRMSDiff(
		map[int]float64{0: 6, 1: 4},
		map[int]float64{0: 10},
		[]float64{1, 0.5},
	)
	require.Nil(t, err)
	assert.InDelta(math.Sqrt(16), plain, 1e-12)
	assert.InDelta(math.Sqrt((16.0+4)/2), weighted, 1e-12)

	_, _, err = analysis.FlowRMS(map[int]float64{5: 1}, []float64{1})
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(errcode.AnalysisFlowsError, gnErr.Code)
}

type source struct {
	flows   map[uuid.UUID]map[int]float64
	weights []float64
}

func (s source) Flows(_ context.Context, id uuid.UUID) (map[int]float64, error) {
	return s.flows[id], nil
}

func (s source) Weights(_ context.Context, _ uuid.UUID) ([]float64, error) {
	return s.weights, nil
}

func TestCompare(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	g, l := uuid.New(), uuid.New()
	rows := []analysis.Row{
		{ParamID: p1, InstID: i1, SolnID: g, Solver: "greedy"},
		{ParamID: p1, InstID: i1, SolnID: l, Solver: "lp"},
	}
	src := source{
		flows: map[uuid.UUID]map[int]float64{
			g: {0: 10},
			l: {0: 6, 1: 4},
		},
		weights: []float64{1, 0.5},
	}

	res, err := analysis.Compare(ctx, analysis.NewIDTree(rows), "lp", src)
	require.Nil(t, err)
	require.Len(t, res, 2)
	assert.Equal("greedy", res[0].Solver)
	assert.Equal(g, res[0].SolnID)
	assert.InDelta(math.Sqrt(50), res[0].RMS, 1e-12)
	assert.InDelta(4, res[0].RMSDiff, 1e-12)
	assert.Equal("lp", res[1].Solver)
	assert.Zero(res[1].RMSDiff)
	assert.InDelta(math.Sqrt(20), res[1].WRMS, 1e-12)

	_, err = analysis.Compare(ctx, analysis.NewIDTree(rows), "cbc", src)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(errcode.AnalysisBaseSolverError, gnErr.Code)
}
