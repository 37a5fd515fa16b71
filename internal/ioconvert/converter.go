// Package ioconvert implements the Converter interface. It turns a
// run-control file into stored points and instances.
// This is an impure I/O package that writes to table stores.
package ioconvert

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/cyclopts/internal/ioprogress"
	"github.com/gnames/cyclopts/pkg/config"
	"github.com/gnames/cyclopts/pkg/lifecycle"
	"github.com/gnames/cyclopts/pkg/problem"
	"github.com/gnames/cyclopts/pkg/table"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
)

// converter implements the Converter interface.
type converter struct {
	cfg *config.Config
	reg *problem.Registry
}

// New creates a new Converter that looks up species in reg.
func New(cfg *config.Config, reg *problem.Registry) lifecycle.Converter {
	return &converter{cfg: cfg, reg: reg}
}

// Convert records every valid point of the run-control space and NInst
// instances per point. Instance ids are random, so converting the same
// file twice gives new instances.
func (c *converter) Convert(
	ctx context.Context,
	rc *problem.RunControl,
	m *table.Manager,
) (int, error) {
	sp, err := c.reg.Species(rc.Species)
	if err != nil {
		return 0, err
	}
	if err = sp.ReadSpace(rc.Space); err != nil {
		return 0, err
	}
	fam := sp.Family()
	if err = fam.RegisterTables(ctx, m); err != nil {
		return 0, err
	}
	if err = sp.RegisterTables(ctx, m); err != nil {
		return 0, err
	}

	nInst := rc.NInst
	if c.cfg.Convert.NInst > 0 {
		nInst = c.cfg.Convert.NInst
	}

	start := time.Now()
	slog.Info("Converting run control",
		"species", sp.Name(),
		"points", humanize.Comma(int64(sp.NPoints())),
		"instances_per_point", nInst,
	)

	bar := ioprogress.New(sp.NPoints()*nInst, "Converting: ")
	defer bar.Finish()

	var count, nPoints int
	for p := range sp.Points() {
		if err = ctx.Err(); err != nil {
			return count, err
		}
		if err = sp.RecordPoint(ctx, m, p); err != nil {
			return count, err
		}
		nPoints++
		for range nInst {
			inst, err := sp.GenInst(ctx, p, uuid.New(), m)
			if err != nil {
				return count, err
			}
			if err = fam.RecordInst(ctx, m, inst, sp.Name()); err != nil {
				return count, err
			}
			count++
			bar.Increment()
		}
	}

	if err = m.Flush(ctx); err != nil {
		return count, err
	}

	slog.Info("Conversion is complete",
		"points", humanize.Comma(int64(nPoints)),
		"instances", humanize.Comma(int64(count)),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return count, nil
}
