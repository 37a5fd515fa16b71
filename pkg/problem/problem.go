// Package problem defines how problem families and species plug into
// cyclopts. A family knows how to store, read and solve instances of one
// kind of problem. A species knows how to enumerate a parameter space and
// generate family instances from each parameter point.
package problem

import (
	"context"
	"iter"

	"github.com/gnames/cyclopts/pkg/exchange"
	"github.com/gnames/cyclopts/pkg/table"
	"github.com/google/uuid"
)

// Point is one combination of species parameters.
type Point interface {
	// ParamID is the identity of the point.
	ParamID() uuid.UUID

	// Values returns parameter values keyed by parameter name.
	Values() Values
}

// InstRef links a stored instance to its point and species.
type InstRef struct {
	InstID  uuid.UUID
	ParamID uuid.UUID
	Species string
}

// SolnRef links a stored solution to its instance and solver.
type SolnRef struct {
	SolnID uuid.UUID
	InstID uuid.UUID
	Solver string
}

// Family is a kind of problem with its own instance tables.
type Family interface {
	// Name of the family, for example "ResourceExchange".
	Name() string

	// Prefix is the group path of the family tables.
	Prefix() string

	// PropertyTable is the path of the table with one row per instance.
	PropertyTable() string

	// RegisterTables creates family tables in a store.
	RegisterTables(ctx context.Context, m *table.Manager) error

	// RecordInst stores an instance generated by a species.
	RecordInst(
		ctx context.Context,
		m *table.Manager,
		inst *exchange.Instance,
		species string,
	) error

	// RecordSoln stores a solution of an instance.
	RecordSoln(
		ctx context.Context,
		m *table.Manager,
		inst *exchange.Instance,
		soln *exchange.Solution,
	) error

	// ReadInst reads a stored instance by its id.
	ReadInst(
		ctx context.Context,
		m *table.Manager,
		instID uuid.UUID,
	) (*exchange.Instance, error)

	// RunInst solves an instance with a solver kind.
	RunInst(
		ctx context.Context,
		inst *exchange.Instance,
		solver string,
	) (*exchange.Solution, error)

	// Insts lists stored instances in storage order.
	Insts(ctx context.Context, m *table.Manager) ([]InstRef, error)

	// Solns lists stored solutions in storage order.
	Solns(ctx context.Context, m *table.Manager) ([]SolnRef, error)

	// ReadSoln reads flows and properties of a stored solution.
	ReadSoln(
		ctx context.Context,
		m *table.Manager,
		ref SolnRef,
	) (*exchange.Solution, error)

	// PostProcess computes family-level metrics of a solution and writes
	// them to out.
	PostProcess(
		ctx context.Context,
		out *table.Manager,
		inst *exchange.Instance,
		soln *exchange.Solution,
	) error
}

// Species generates instances of a family from a parameter space.
type Species interface {
	// Name of the species, for example "StructuredRequest".
	Name() string

	// Family of generated instances.
	Family() Family

	// Prefix is the group path of the species tables.
	Prefix() string

	// RegisterTables creates species tables in a store.
	RegisterTables(ctx context.Context, m *table.Manager) error

	// ReadSpace sets the parameter space from raw run-control values.
	ReadSpace(raw map[string]any) error

	// NPoints is the number of points Points yields.
	NPoints() int

	// Points lazily yields valid points of the space.
	Points() iter.Seq[Point]

	// RecordPoint stores parameters of a point.
	RecordPoint(ctx context.Context, m *table.Manager, p Point) error

	// GenInst builds an instance for a point. Species-specific arc data is
	// recorded to m when it is not nil.
	GenInst(
		ctx context.Context,
		p Point,
		instID uuid.UUID,
		m *table.Manager,
	) (*exchange.Instance, error)

	// PostProcess computes species-level metrics of a solution reading
	// species data from in and writing results to out.
	PostProcess(
		ctx context.Context,
		in, out *table.Manager,
		inst *exchange.Instance,
		soln *exchange.Solution,
	) error
}

// RunControl is the parsed content of a run-control file.
type RunControl struct {
	// Species is the name of the species to generate instances with.
	Species string

	// NInst is the number of instances per point.
	NInst int

	// Space maps parameter names to raw values: a scalar or a list of
	// values.
	Space map[string]any
}
