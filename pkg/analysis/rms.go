package analysis

import (
	"context"
	"math"
	"slices"
	"strings"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
)

// RMS is the root mean square of x. It is zero for an empty vector.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return math.Sqrt(floats.Dot(x, x) / float64(len(x)))
}

// WeightedRMS is the root mean square of x multiplied elementwise by w.
func WeightedRMS(x, w []float64) float64 {
	y := make([]float64, len(x))
	floats.MulTo(y, x, w)
	return RMS(y)
}

// FlowVector spreads flows keyed by arc id over a dense vector of nArcs
// elements.
func FlowVector(flows map[int]float64, nArcs int) ([]float64, error) {
	res := make([]float64, nArcs)
	for id, f := range flows {
		if id < 0 || id >= nArcs {
			return nil, FlowsError(id, nArcs)
		}
		res[id] = f
	}
	return res, nil
}

// FlowRMS returns plain and weighted RMS of the flows of a solution.
// Weights are indexed by arc id.
func FlowRMS(flows map[int]float64, weights []float64) (plain, weighted float64, err error) {
	x, err := FlowVector(flows, len(weights))
	if err != nil {
		return 0, 0, err
	}
	return RMS(x), WeightedRMS(x, weights), nil
}

// FlowRMSDiff returns plain and weighted RMS of base flows minus other
// flows.
func FlowRMSDiff(base, other map[int]float64, weights []float64) (plain, weighted float64, err error) {
	x, err := FlowVector(base, len(weights))
	if err != nil {
		return 0, 0, err
	}
	y, err := FlowVector(other, len(weights))
	if err != nil {
		return 0, 0, err
	}
	floats.Sub(x, y)
	return RMS(x), WeightedRMS(x, weights), nil
}

// Source gives solution flows and arc weights of stored instances.
type Source interface {
	// Flows returns nonzero flows of a solution keyed by arc id.
	Flows(ctx context.Context, solnID uuid.UUID) (map[int]float64, error)

	// Weights returns one weight per arc of an instance, indexed by arc id.
	Weights(ctx context.Context, instID uuid.UUID) ([]float64, error)
}

// Metrics are RMS values of one solution. Diff fields compare the
// solution with the base solver and are zero for the base itself.
type Metrics struct {
	ParamID uuid.UUID `json:"paramid"`
	InstID  uuid.UUID `json:"instid"`
	SolnID  uuid.UUID `json:"solnid"`
	Solver  string    `json:"solver"`

	RMS      float64 `json:"rms"`
	WRMS     float64 `json:"wrms"`
	RMSDiff  float64 `json:"rmsDiff"`
	WRMSDiff float64 `json:"wrmsDiff"`
}

// Compare computes metrics of every solution in the tree. Every instance
// must have a solution of the base solver. Results are ordered by paramid,
// instid and solver.
func Compare(ctx context.Context, t IDTree, base string, src Source) ([]Metrics, error) {
	var res []Metrics
	for _, pid := range sortedIDs(t) {
		insts := t[pid]
		for _, iid := range sortedIDs(insts) {
			ms, err := compareInst(ctx, pid, iid, insts[iid], base, src)
			if err != nil {
				return nil, err
			}
			res = append(res, ms...)
		}
	}
	return res, nil
}

func compareInst(
	ctx context.Context,
	pid, iid uuid.UUID,
	solns map[uuid.UUID]string,
	base string,
	src Source,
) ([]Metrics, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	weights, err := src.Weights(ctx, iid)
	if err != nil {
		return nil, err
	}

	var baseFlows map[int]float64
	flows := make(map[uuid.UUID]map[int]float64, len(solns))
	for sid, solver := range solns {
		if flows[sid], err = src.Flows(ctx, sid); err != nil {
			return nil, err
		}
		if solver == base {
			baseFlows = flows[sid]
		}
	}
	if baseFlows == nil {
		return nil, BaseSolverError(iid.String(), base)
	}

	var res []Metrics
	for _, sid := range sortedIDs(solns) {
		m := Metrics{ParamID: pid, InstID: iid, SolnID: sid, Solver: solns[sid]}
		if m.RMS, m.WRMS, err = FlowRMS(flows[sid], weights); err != nil {
			return nil, err
		}
		if m.Solver != base {
			m.RMSDiff, m.WRMSDiff, err = FlowRMSDiff(baseFlows, flows[sid], weights)
			if err != nil {
				return nil, err
			}
		}
		res = append(res, m)
	}
	slices.SortStableFunc(res, func(a, b Metrics) int {
		return strings.Compare(a.Solver, b.Solver)
	})
	return res, nil
}
