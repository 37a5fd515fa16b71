// Package lifecycle defines the stages of a cyclopts run. Instances are
// converted from a run-control file into a store, executed with solvers,
// optionally combined from several stores, post-processed and compared.
package lifecycle

import (
	"context"

	"github.com/gnames/cyclopts/pkg/analysis"
	"github.com/gnames/cyclopts/pkg/problem"
	"github.com/gnames/cyclopts/pkg/table"
)

// Converter generates instances of every point of a run-control space and
// records points and instances.
type Converter interface {
	// Convert returns the number of recorded instances.
	Convert(ctx context.Context, rc *problem.RunControl, m *table.Manager) (int, error)
}

// ExecuteStats summarizes an execution.
type ExecuteStats struct {
	NInsts  int
	NSolved int
	// NFailed counts solver failures. They are logged and do not stop the
	// run.
	NFailed int
}

// Executor solves stored instances and records solutions into out.
// In and out can be the same manager.
type Executor interface {
	Execute(ctx context.Context, in, out *table.Manager) (ExecuteStats, error)
}

// Combiner copies every table of a store into another one.
type Combiner interface {
	// Combine returns the number of copied rows.
	Combine(ctx context.Context, out, in *table.Manager) (int, error)
}

// PostProcessor computes family and species metrics of stored solutions.
type PostProcessor interface {
	// PostProcess returns the number of processed solutions.
	PostProcess(ctx context.Context, in, out *table.Manager) (int, error)
}

// Report is the outcome of solver comparison.
type Report struct {
	// Pruned is the number of instances left out because they do not have
	// the expected number of solutions.
	Pruned  int                `json:"pruned"`
	NInsts  int                `json:"instancesNum"`
	Solvers []string           `json:"solvers"`
	Metrics []analysis.Metrics `json:"metrics"`
}

// Analyzer compares solutions of stored instances of a species.
type Analyzer interface {
	Analyze(ctx context.Context, m *table.Manager) (*Report, error)
}
