package iopost_test

import (
	"context"
	"testing"

	"github.com/gnames/cyclopts/internal/ioconvert"
	"github.com/gnames/cyclopts/internal/ioexecute"
	"github.com/gnames/cyclopts/internal/iopost"
	"github.com/gnames/cyclopts/internal/iotesting"
	"github.com/gnames/cyclopts/pkg/config"
	"github.com/gnames/cyclopts/pkg/problem"
	"github.com/gnames/cyclopts/pkg/resex"
	"github.com/gnames/cyclopts/pkg/species"
	"github.com/gnames/cyclopts/pkg/table"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	famPost     = "/Family/ResourceExchange/PostProcess"
	speciesPost = "/Species/StructuredRequest/PostProcess"
)

func executed(t *testing.T, rc *problem.RunControl) *table.Manager {
	t.Helper()
	ctx := context.Background()
	cfg := config.New()
	m := iotesting.MemManager()
	_, err := ioconvert.New(cfg, species.Registry()).Convert(ctx, rc, m)
	require.Nil(t, err)
	_, err = ioexecute.New(cfg, species.Registry()).Execute(ctx, m, m)
	require.Nil(t, err)
	return m
}

func rows(t *testing.T, m *table.Manager, p string) []table.Row {
	t.Helper()
	var res []table.Row
	err := m.Store().Scan(context.Background(), p, func(r table.Row) error {
		res = append(res, r)
		return nil
	})
	require.Nil(t, err)
	return res
}

func TestPostProcess(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	in := executed(t, iotesting.MinimalRequest(2))
	out := iotesting.MemManager()

	n, err := iopost.New(species.Registry()).PostProcess(ctx, in, out)
	require.Nil(t, err)
	assert.Equal(2, n)

	solns, err := resex.New().Solns(ctx, in)
	require.Nil(t, err)
	ids := make(map[uuid.UUID]bool)
	for _, s := range solns {
		ids[s.SolnID] = true
	}

	prefFlow := 0.5*17500 + 280 + 280
	fam := rows(t, out, famPost)
	require.Len(t, fam, 2)
	for _, r := range fam {
		assert.True(ids[r.UUID("solnid")])
		assert.InDelta(prefFlow, r.Float("pref_flow"), 1e-6)
		assert.Equal(3, r.Int("n_flows"))
		assert.InDelta(17500+280+280, r.Float("flow_total"), 1e-6)
	}

	sp := rows(t, out, speciesPost)
	require.Len(t, sp, 2)
	for _, r := range sp {
		assert.InDelta(prefFlow, r.Float("c_pref_flow"), 1e-6)
		assert.InDelta(0, r.Float("l_pref_flow"), 1e-9)
	}
}

func TestPostProcessSameStore(t *testing.T) {
	ctx := context.Background()
	m := executed(t, iotesting.RandomRequest(3))

	n, err := iopost.New(species.Registry()).PostProcess(ctx, m, m)
	require.Nil(t, err)
	assert.Equal(t, 3, n)
	assert.Len(t, rows(t, m, famPost), 3)
}

func TestPostProcessUnknownSpecies(t *testing.T) {
	ctx := context.Background()
	in := executed(t, iotesting.MinimalRequest(1))
	out := iotesting.MemManager()

	reg := problem.NewRegistry()
	reg.AddFamily(resex.New())
	n, err := iopost.New(reg).PostProcess(ctx, in, out)
	require.Nil(t, err)
	assert.Equal(t, 1, n)
	assert.Len(t, rows(t, out, famPost), 1)

	ok, err := out.HasTable(ctx, speciesPost)
	require.Nil(t, err)
	assert.False(t, ok)
}

func TestPostProcessNoSolutions(t *testing.T) {
	ctx := context.Background()
	n, err := iopost.New(species.Registry()).
		PostProcess(ctx, iotesting.MemManager(), iotesting.MemManager())
	require.Nil(t, err)
	assert.Zero(t, n)
}
