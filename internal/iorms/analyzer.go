// Package iorms implements the Analyzer interface. Solutions of stored
// instances of one species are compared with the solutions of a base
// solver by the root mean square of their flows.
// This is an impure I/O package that reads table stores.
package iorms

import (
	"context"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/gnames/cyclopts/pkg/analysis"
	"github.com/gnames/cyclopts/pkg/config"
	"github.com/gnames/cyclopts/pkg/lifecycle"
	"github.com/gnames/cyclopts/pkg/problem"
	"github.com/gnames/cyclopts/pkg/table"
	"github.com/google/uuid"
)

// analyzer implements the Analyzer interface.
type analyzer struct {
	cfg *config.Config
	reg *problem.Registry
}

// New creates a new Analyzer. The species, the expected number of
// solutions and the base solver come from cfg.Analyze.
func New(cfg *config.Config, reg *problem.Registry) lifecycle.Analyzer {
	return &analyzer{cfg: cfg, reg: reg}
}

// Analyze builds the id tree of the species solutions, prunes instances
// without the expected number of solutions and compares the rest.
func (a *analyzer) Analyze(ctx context.Context, m *table.Manager) (*lifecycle.Report, error) {
	sp, err := a.reg.Species(a.cfg.Analyze.Species)
	if err != nil {
		return nil, err
	}
	fam := sp.Family()

	tree, err := idTree(ctx, fam, sp.Name(), m)
	if err != nil {
		return nil, err
	}
	res := &lifecycle.Report{}
	if n := a.cfg.Analyze.NSoln; n > 0 {
		res.Pruned = tree.Prune(n)
	}
	res.NInsts = tree.NInsts()
	res.Solvers = tree.LeafVals()
	if res.Pruned > 0 {
		slog.Warn("Instances without all solutions are left out",
			"instances", humanize.Comma(int64(res.Pruned)))
	}

	src := &source{fam: fam, sp: sp, m: m}
	res.Metrics, err = analysis.Compare(ctx, tree, a.cfg.Analyze.BaseSolver, src)
	if err != nil {
		return nil, err
	}

	slog.Info("Solutions are compared",
		"species", sp.Name(),
		"instances", humanize.Comma(int64(res.NInsts)),
		"solutions", humanize.Comma(int64(len(res.Metrics))),
		"base_solver", a.cfg.Analyze.BaseSolver,
	)
	return res, nil
}

// idTree joins solutions with instances of a species.
func idTree(
	ctx context.Context,
	fam problem.Family,
	species string,
	m *table.Manager,
) (analysis.IDTree, error) {
	insts, err := fam.Insts(ctx, m)
	if err != nil {
		return nil, err
	}
	params := make(map[uuid.UUID]uuid.UUID, len(insts))
	for _, ref := range insts {
		if ref.Species == species {
			params[ref.InstID] = ref.ParamID
		}
	}

	solns, err := fam.Solns(ctx, m)
	if err != nil {
		return nil, err
	}
	var rows []analysis.Row
	for _, ref := range solns {
		pid, ok := params[ref.InstID]
		if !ok {
			continue
		}
		rows = append(rows, analysis.Row{
			ParamID: pid,
			InstID:  ref.InstID,
			SolnID:  ref.SolnID,
			Solver:  ref.Solver,
		})
	}
	return analysis.NewIDTree(rows), nil
}
