package solver

import (
	"context"
	"time"

	"github.com/gnames/cyclopts/pkg/exchange"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// simplex maximizes preference-weighted flow subject to group capacities
// and node quantities. Each row gets a slack column so the problem is in
// the standard form expected by lp.Simplex.
type simplex struct{}

func (simplex) Kind() string {
	return LP
}

func (s simplex) Solve(
	ctx context.Context,
	inst *exchange.Instance,
) (*exchange.Solution, error) {
	start := time.Now()
	gr, err := newGraph(inst)
	if err != nil {
		return nil, FailedError(LP, inst.InstID.String(), err)
	}
	if len(inst.Arcs) == 0 {
		return newSolution(inst, LP, nil, time.Since(start)), nil
	}

	rows, rhs := lpRows(gr)
	nArcs := len(inst.Arcs)
	nCols := nArcs + len(rows)

	a := mat.NewDense(len(rows), nCols, nil)
	for i, row := range rows {
		for j, v := range row {
			a.Set(i, j, v)
		}
		a.Set(i, nArcs+i, 1)
	}
	c := make([]float64, nCols)
	for j := range inst.Arcs {
		c[j] = -inst.Arcs[j].Pref
	}

	if err = ctx.Err(); err != nil {
		return nil, FailedError(LP, inst.InstID.String(), err)
	}
	_, x, err := lp.Simplex(c, a, rhs, 1e-10, nil)
	if err != nil {
		return nil, FailedError(LP, inst.InstID.String(), err)
	}

	flows := make(map[int]float64, nArcs)
	for j := range inst.Arcs {
		flows[inst.Arcs[j].ID] = x[j]
	}
	return newSolution(inst, LP, flows, time.Since(start)), nil
}

// lpRows returns constraint rows over arc columns and their right-hand
// sides: one row per group capacity and one per bounded node.
func lpRows(gr *graph) ([][]float64, []float64) {
	inst := gr.inst
	nArcs := len(inst.Arcs)

	capRow := make(map[int]int, len(inst.Groups))
	var rows [][]float64
	var rhs []float64
	for i := range inst.Groups {
		g := inst.Groups[i]
		capRow[g.ID] = len(rows)
		for _, cp := range g.Caps {
			rows = append(rows, make([]float64, nArcs))
			rhs = append(rhs, cp)
		}
	}

	nodeRow := make(map[int]int)
	for i := range inst.Nodes {
		n := inst.Nodes[i]
		if n.Qty <= 0 {
			continue
		}
		nodeRow[n.ID] = len(rows)
		rows = append(rows, make([]float64, nArcs))
		rhs = append(rhs, n.Qty)
	}

	for j := range inst.Arcs {
		arc := inst.Arcs[j]
		u, v := gr.nodes[arc.UID], gr.nodes[arc.VID]
		for k, cf := range arc.UCaps {
			rows[capRow[u.GID]+k][j] = cf
		}
		for k, cf := range arc.VCaps {
			rows[capRow[v.GID]+k][j] = cf
		}
		if r, ok := nodeRow[u.ID]; ok {
			rows[r][j] = 1
		}
		if r, ok := nodeRow[v.ID]; ok {
			rows[r][j] = 1
		}
	}
	return rows, rhs
}
