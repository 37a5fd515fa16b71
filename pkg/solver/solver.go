// Package solver finds flows for resource-exchange instances. Solvers are
// black boxes behind the Solver interface and are created by kind.
package solver

import (
	"context"
	"slices"
	"time"

	"github.com/gnames/cyclopts/pkg/exchange"
	"github.com/google/uuid"
)

const (
	// Greedy fills request groups one by one, taking arcs by preference.
	Greedy = "greedy"

	// LP solves the linear relaxation of the exchange with the simplex
	// method. Exclusivity is not enforced.
	LP = "lp"
)

// eps is the tolerance used to compare quantities.
const eps = 1e-9

// Solver finds a feasible assignment of flows to arcs of an instance.
type Solver interface {
	// Kind returns the name the solver is created with.
	Kind() string

	// Solve returns a solution with nonzero flows only. Objective of the
	// solution is the preference-weighted flow.
	Solve(ctx context.Context, inst *exchange.Instance) (*exchange.Solution, error)
}

// Kinds lists known solver kinds.
func Kinds() []string {
	return []string{Greedy, LP}
}

// IsKind reports whether a solver kind is known.
func IsKind(kind string) bool {
	return slices.Contains(Kinds(), kind)
}

// New creates a solver of a given kind.
func New(kind string) (Solver, error) {
	switch kind {
	case Greedy:
		return greedy{}, nil
	case LP:
		return simplex{}, nil
	}
	return nil, UnknownKindError(kind)
}

// graph gives solvers indexed access to an instance.
type graph struct {
	inst   *exchange.Instance
	nodes  map[int]*exchange.Node
	groups map[int]*exchange.Group
}

func newGraph(inst *exchange.Instance) (*graph, error) {
	res := &graph{
		inst:   inst,
		nodes:  make(map[int]*exchange.Node, len(inst.Nodes)),
		groups: make(map[int]*exchange.Group, len(inst.Groups)),
	}
	for i := range inst.Groups {
		res.groups[inst.Groups[i].ID] = &inst.Groups[i]
	}
	for i := range inst.Nodes {
		res.nodes[inst.Nodes[i].ID] = &inst.Nodes[i]
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return res, nil
}

// newSolution builds a solution from flows keeping only positive values.
func newSolution(
	inst *exchange.Instance,
	kind string,
	flows map[int]float64,
	dur time.Duration,
) *exchange.Solution {
	res := &exchange.Solution{
		SolnID: uuid.New(),
		InstID: inst.InstID,
		Time:   dur,
		Solver: kind,
		Flows:  make(map[int]float64),
	}
	for id, f := range flows {
		if f > eps {
			res.Flows[id] = f
		}
	}
	res.Objective = exchange.PrefFlow(inst, res)
	return res
}
