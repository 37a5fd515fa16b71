// Package ioexecute implements the Executor interface. Stored instances
// are solved concurrently and solutions are written back by a single
// writer.
// This is an impure I/O package that reads and writes table stores.
package ioexecute

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/cyclopts/internal/ioprogress"
	"github.com/gnames/cyclopts/pkg/config"
	"github.com/gnames/cyclopts/pkg/exchange"
	"github.com/gnames/cyclopts/pkg/lifecycle"
	"github.com/gnames/cyclopts/pkg/problem"
	"github.com/gnames/cyclopts/pkg/solver"
	"github.com/gnames/cyclopts/pkg/table"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// executor implements the Executor interface.
type executor struct {
	cfg *config.Config
	reg *problem.Registry

	// storeMu serializes access to managers, in and out can be the same.
	storeMu sync.Mutex
}

// New creates a new Executor. Instances of every family of reg are
// executed.
func New(cfg *config.Config, reg *problem.Registry) lifecycle.Executor {
	return &executor{cfg: cfg, reg: reg}
}

// task is an instance reference of a known family.
type task struct {
	fam problem.Family
	ref problem.InstRef
}

// job is one instance to solve with one solver.
type job struct {
	fam    problem.Family
	inst   *exchange.Instance
	solver string
}

// result is a solution of a job or a solver failure.
type result struct {
	job
	soln *exchange.Solution
	err  error
}

// Execute solves every selected instance of in with every configured
// solver and records solutions into out. Solver failures are logged and
// counted, any other error stops the run.
func (e *executor) Execute(
	ctx context.Context,
	in, out *table.Manager,
) (lifecycle.ExecuteStats, error) {
	var stats lifecycle.ExecuteStats
	for _, kind := range e.cfg.Execute.Solvers {
		if !solver.IsKind(kind) {
			return stats, solver.UnknownKindError(kind)
		}
	}

	tasks, err := e.tasks(ctx, in)
	if err != nil {
		return stats, err
	}
	stats.NInsts = len(tasks)
	if len(tasks) == 0 {
		slog.Warn("No instances to execute")
		return stats, nil
	}

	start := time.Now()
	slog.Info("Executing instances",
		"instances", humanize.Comma(int64(len(tasks))),
		"solvers", e.cfg.Execute.Solvers,
		"jobs", e.jobsNum(),
	)

	chIn := make(chan job)
	chOut := make(chan result)
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(chIn)
		return e.load(gCtx, in, tasks, chIn)
	})

	var wg sync.WaitGroup
	for range e.jobsNum() {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return e.work(gCtx, chIn, chOut)
		})
	}

	go func() {
		wg.Wait()
		close(chOut)
	}()

	total := len(tasks) * len(e.cfg.Execute.Solvers)
	g.Go(func() error {
		return e.save(gCtx, out, total, chOut, &stats)
	})

	if err = g.Wait(); err != nil {
		return stats, err
	}
	if err = out.Flush(ctx); err != nil {
		return stats, err
	}

	slog.Info("Execution is complete",
		"solved", humanize.Comma(int64(stats.NSolved)),
		"failed", humanize.Comma(int64(stats.NFailed)),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return stats, nil
}

func (e *executor) jobsNum() int {
	return max(e.cfg.JobsNumber, 1)
}

// tasks collects stored instances, keeping only the configured ids when
// there are any.
func (e *executor) tasks(ctx context.Context, in *table.Manager) ([]task, error) {
	want := make(map[uuid.UUID]bool, len(e.cfg.Execute.InstIDs))
	for _, s := range e.cfg.Execute.InstIDs {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, InstIDError(s, err)
		}
		want[id] = false
	}

	var res []task
	for _, name := range e.reg.FamilyNames() {
		fam, err := e.reg.Family(name)
		if err != nil {
			return nil, err
		}
		refs, err := fam.Insts(ctx, in)
		if err != nil {
			return nil, err
		}
		for _, ref := range refs {
			if len(want) > 0 {
				if _, ok := want[ref.InstID]; !ok {
					continue
				}
				want[ref.InstID] = true
			}
			res = append(res, task{fam: fam, ref: ref})
		}
	}

	for id, found := range want {
		if !found {
			return nil, NotFoundError(id.String())
		}
	}
	return res, nil
}

// load reads instances one by one and sends a job per solver.
func (e *executor) load(
	ctx context.Context,
	in *table.Manager,
	tasks []task,
	chIn chan<- job,
) error {
	for _, t := range tasks {
		e.storeMu.Lock()
		inst, err := t.fam.ReadInst(ctx, in, t.ref.InstID)
		e.storeMu.Unlock()
		if err != nil {
			return err
		}
		for _, kind := range e.cfg.Execute.Solvers {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case chIn <- job{fam: t.fam, inst: inst, solver: kind}:
			}
		}
	}
	return nil
}

// work solves instances. Solver failures are passed on as results.
func (e *executor) work(
	ctx context.Context,
	chIn <-chan job,
	chOut chan<- result,
) error {
	for j := range chIn {
		if err := ctx.Err(); err != nil {
			for range chIn {
			}
			return err
		}
		soln, err := j.fam.RunInst(ctx, j.inst, j.solver)
		if err != nil && !isSolverFailure(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case chOut <- result{job: j, soln: soln, err: err}:
		}
	}
	return nil
}

// save is the only writer of solutions.
func (e *executor) save(
	ctx context.Context,
	out *table.Manager,
	total int,
	chOut <-chan result,
	stats *lifecycle.ExecuteStats,
) error {
	bar := ioprogress.New(total, "Executing: ")
	defer bar.Finish()

	for r := range chOut {
		bar.Increment()
		if r.err != nil {
			stats.NFailed++
			slog.Warn("Solver failed",
				"instid", r.inst.InstID.String(),
				"solver", r.solver,
				"error", r.err,
			)
			continue
		}
		e.storeMu.Lock()
		err := r.fam.RecordSoln(ctx, out, r.inst, r.soln)
		e.storeMu.Unlock()
		if err != nil {
			return err
		}
		stats.NSolved++
	}
	return nil
}
