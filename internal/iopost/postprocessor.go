// Package iopost implements the PostProcessor interface. Each stored
// solution gets family metrics and metrics of the species that generated
// its instance.
// This is an impure I/O package that reads and writes table stores.
package iopost

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/cyclopts/internal/ioprogress"
	"github.com/gnames/cyclopts/pkg/exchange"
	"github.com/gnames/cyclopts/pkg/lifecycle"
	"github.com/gnames/cyclopts/pkg/problem"
	"github.com/gnames/cyclopts/pkg/table"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
)

// postProcessor implements the PostProcessor interface.
type postProcessor struct {
	reg     *problem.Registry
	species map[string]problem.Species
}

// New creates a new PostProcessor.
func New(reg *problem.Registry) lifecycle.PostProcessor {
	return &postProcessor{
		reg:     reg,
		species: make(map[string]problem.Species),
	}
}

// PostProcess reads solutions and instances from in and writes metrics
// to out. Solutions of instances made by an unregistered species get
// family metrics only.
func (p *postProcessor) PostProcess(
	ctx context.Context,
	in, out *table.Manager,
) (int, error) {
	start := time.Now()
	var count int
	for _, name := range p.reg.FamilyNames() {
		fam, err := p.reg.Family(name)
		if err != nil {
			return count, err
		}
		n, err := p.family(ctx, fam, in, out)
		count += n
		if err != nil {
			return count, err
		}
	}
	if err := out.Flush(ctx); err != nil {
		return count, err
	}

	slog.Info("Post-processing is complete",
		"solutions", humanize.Comma(int64(count)),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return count, nil
}

func (p *postProcessor) family(
	ctx context.Context,
	fam problem.Family,
	in, out *table.Manager,
) (int, error) {
	insts, err := fam.Insts(ctx, in)
	if err != nil {
		return 0, err
	}
	bySpecies := make(map[uuid.UUID]string, len(insts))
	for _, ref := range insts {
		bySpecies[ref.InstID] = ref.Species
	}

	solns, err := fam.Solns(ctx, in)
	if err != nil {
		return 0, err
	}
	if len(solns) == 0 {
		return 0, nil
	}

	bar := ioprogress.New(len(solns), "Post-processing: ")
	defer bar.Finish()

	// solutions of one instance are usually stored next to each other
	var inst *exchange.Instance
	var count int
	for _, ref := range solns {
		if err = ctx.Err(); err != nil {
			return count, err
		}
		if inst == nil || inst.InstID != ref.InstID {
			inst, err = fam.ReadInst(ctx, in, ref.InstID)
			if err != nil {
				return count, err
			}
		}
		soln, err := fam.ReadSoln(ctx, in, ref)
		if err != nil {
			return count, err
		}
		if err = fam.PostProcess(ctx, out, inst, soln); err != nil {
			return count, err
		}

		sp, ok := p.lookup(bySpecies[ref.InstID])
		if ok {
			if err = sp.PostProcess(ctx, in, out, inst, soln); err != nil {
				return count, err
			}
		}
		count++
		bar.Increment()
	}
	return count, nil
}

// lookup returns a cached species by name.
func (p *postProcessor) lookup(name string) (problem.Species, bool) {
	if sp, ok := p.species[name]; ok {
		return sp, sp != nil
	}
	sp, err := p.reg.Species(name)
	if err != nil {
		slog.Warn("Species is unknown, only family metrics are computed",
			"species", name)
		sp = nil
	}
	p.species[name] = sp
	return sp, sp != nil
}
