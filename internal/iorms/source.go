package iorms

import (
	"context"

	"github.com/gnames/cyclopts/pkg/problem"
	"github.com/gnames/cyclopts/pkg/table"
	"github.com/google/uuid"
)

// arcTables are species that keep commodity preferences of arcs in a
// table per instance.
type arcTables interface {
	ArcsPath(instID uuid.UUID) string
}

// source reads flows and weights from a store.
type source struct {
	fam problem.Family
	sp  problem.Species
	m   *table.Manager
}

func (s *source) Flows(ctx context.Context, solnID uuid.UUID) (map[int]float64, error) {
	soln, err := s.fam.ReadSoln(ctx, s.m, problem.SolnRef{SolnID: solnID})
	if err != nil {
		return nil, err
	}
	return soln.Flows, nil
}

// Weights are commodity preferences of arcs when the species records
// them and arc preferences otherwise.
func (s *source) Weights(ctx context.Context, instID uuid.UUID) ([]float64, error) {
	inst, err := s.fam.ReadInst(ctx, s.m, instID)
	if err != nil {
		return nil, err
	}
	var nArcs int
	for i := range inst.Arcs {
		nArcs = max(nArcs, inst.Arcs[i].ID+1)
	}
	res := make([]float64, nArcs)
	for i := range inst.Arcs {
		res[inst.Arcs[i].ID] = inst.Arcs[i].Pref
	}

	at, ok := s.sp.(arcTables)
	if !ok {
		return res, nil
	}
	p := at.ArcsPath(instID)
	if ok, err = s.m.HasTable(ctx, p); err != nil || !ok {
		return res, err
	}
	t, err := s.m.OpenTable(ctx, p)
	if err != nil {
		return nil, err
	}
	err = t.Scan(ctx, func(r table.Row) error {
		if id := r.Int("arc_id"); id >= 0 && id < nArcs {
			res[id] = r.Float("pref_c")
		}
		return nil
	})
	return res, err
}
