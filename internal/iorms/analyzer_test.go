package iorms_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/gnames/cyclopts/internal/ioconvert"
	"github.com/gnames/cyclopts/internal/ioexecute"
	"github.com/gnames/cyclopts/internal/iorms"
	"github.com/gnames/cyclopts/internal/iotesting"
	"github.com/gnames/cyclopts/pkg/config"
	"github.com/gnames/cyclopts/pkg/errcode"
	"github.com/gnames/cyclopts/pkg/exchange"
	"github.com/gnames/cyclopts/pkg/resex"
	"github.com/gnames/cyclopts/pkg/species"
	"github.com/gnames/cyclopts/pkg/table"
	"github.com/gnames/gn"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// store has two StructuredRequest instances solved by greedy, one
// RandomRequest instance solved by greedy, and a handmade "lp" solution
// of the first StructuredRequest instance.
func store(t *testing.T) (*table.Manager, uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	cfg := config.New()
	reg := species.Registry()
	m := iotesting.MemManager()

	conv := ioconvert.New(cfg, reg)
	_, err := conv.Convert(ctx, iotesting.MinimalRequest(2), m)
	require.Nil(t, err)
	_, err = conv.Convert(ctx, iotesting.RandomRequest(1), m)
	require.Nil(t, err)
	_, err = ioexecute.New(cfg, reg).Execute(ctx, m, m)
	require.Nil(t, err)

	fam := resex.New()
	refs, err := fam.Insts(ctx, m)
	require.Nil(t, err)
	id := refs[0].InstID
	inst, err := fam.ReadInst(ctx, m, id)
	require.Nil(t, err)
	soln := &exchange.Solution{
		SolnID: uuid.New(),
		InstID: id,
		Solver: "lp",
		Flows:  map[int]float64{0: 17000, 5: 280},
	}
	require.Nil(t, fam.RecordSoln(ctx, m, inst, soln))
	require.Nil(t, m.Flush(ctx))
	return m, id
}

func newConfig(opts ...config.Option) *config.Config {
	cfg := config.New()
	opts = append([]config.Option{config.OptAnalyzeSpecies("StructuredRequest")}, opts...)
	cfg.Update(opts)
	return cfg
}

func TestAnalyze(t *testing.T) {
	assert := assert.New(t)
	m, id := store(t)

	rep, err := iorms.New(newConfig(), species.Registry()).Analyze(context.Background(), m)
	require.Nil(t, err)
	assert.Zero(rep.Pruned)
	assert.Equal(2, rep.NInsts)
	assert.Equal([]string{"greedy", "lp"}, rep.Solvers)
	require.Len(t, rep.Metrics, 3)

	rms := math.Sqrt((17500*17500 + 2*280*280) / 11.0)
	wrms := math.Sqrt((8750*8750 + 2*280*280) / 11.0)
	var nLP int
	for _, ms := range rep.Metrics {
		if ms.Solver == "greedy" {
			assert.InDelta(rms, ms.RMS, 1e-6)
			assert.InDelta(wrms, ms.WRMS, 1e-6)
			assert.Zero(ms.RMSDiff)
			continue
		}
		nLP++
		assert.Equal(id, ms.InstID)
		assert.InDelta(math.Sqrt((500*500+280*280)/11.0), ms.RMSDiff, 1e-6)
		assert.InDelta(math.Sqrt((250*250+280*280)/11.0), ms.WRMSDiff, 1e-6)
	}
	assert.Equal(1, nLP)
}

func TestAnalyzePrune(t *testing.T) {
	assert := assert.New(t)
	m, id := store(t)

	cfg := newConfig(config.OptAnalyzeNSoln(2))
	rep, err := iorms.New(cfg, species.Registry()).Analyze(context.Background(), m)
	require.Nil(t, err)
	assert.Equal(1, rep.Pruned)
	assert.Equal(1, rep.NInsts)
	require.Len(t, rep.Metrics, 2)
	assert.Equal("greedy", rep.Metrics[0].Solver)
	assert.Equal("lp", rep.Metrics[1].Solver)
	for _, ms := range rep.Metrics {
		assert.Equal(id, ms.InstID)
	}
}

func TestAnalyzeRandomRequest(t *testing.T) {
	assert := assert.New(t)
	m, _ := store(t)

	cfg := newConfig(config.OptAnalyzeSpecies("RandomRequest"))
	rep, err := iorms.New(cfg, species.Registry()).Analyze(context.Background(), m)
	require.Nil(t, err)
	assert.Equal(1, rep.NInsts)
	require.Len(t, rep.Metrics, 1)
	assert.Equal("greedy", rep.Metrics[0].Solver)
}

func TestAnalyzeErrors(t *testing.T) {
	m, _ := store(t)
	tests := []struct {
		msg  string
		cfg  *config.Config
		code gn.ErrorCode
	}{
		{"unknown species", newConfig(config.OptAnalyzeSpecies("Nope")),
			errcode.SpeciesUnknownError},
		{"missing base solver", newConfig(config.OptAnalyzeBaseSolver("lp")),
			errcode.AnalysisBaseSolverError},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			_, err := iorms.New(tt.cfg, species.Registry()).
				Analyze(context.Background(), m)
			require.NotNil(t, err)
			var gnErr *gn.Error
			require.True(t, errors.As(err, &gnErr))
			assert.Equal(t, tt.code, gnErr.Code)
		})
	}
}
