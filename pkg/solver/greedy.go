package solver

import (
	"context"
	"math"
	"slices"
	"time"

	"github.com/gnames/cyclopts/pkg/exchange"
)

// greedy visits request groups in id order. Inside a group arcs are taken
// by descending preference, ties broken by arc id. Each arc gets as much
// flow as node quantities and remaining group capacities allow. An
// exclusive node takes its whole quantity or nothing, and only one node of
// an exclusive set is ever used.
type greedy struct{}

type exclKey struct {
	gid, exclID int
}

type greedyState struct {
	*graph
	nodeLeft map[int]float64
	capsLeft map[int][]float64
	exclUsed map[exclKey]bool
	nodeUsed map[int]bool
	flows    map[int]float64
}

func (greedy) Kind() string {
	return Greedy
}

func (g greedy) Solve(
	ctx context.Context,
	inst *exchange.Instance,
) (*exchange.Solution, error) {
	start := time.Now()
	gr, err := newGraph(inst)
	if err != nil {
		return nil, FailedError(Greedy, inst.InstID.String(), err)
	}
	st := &greedyState{
		graph:    gr,
		nodeLeft: make(map[int]float64, len(inst.Nodes)),
		capsLeft: make(map[int][]float64, len(inst.Groups)),
		exclUsed: make(map[exclKey]bool),
		nodeUsed: make(map[int]bool),
		flows:    make(map[int]float64),
	}
	for i := range inst.Nodes {
		n := inst.Nodes[i]
		st.nodeLeft[n.ID] = n.Qty
		if n.Qty <= 0 {
			st.nodeLeft[n.ID] = math.Inf(1)
		}
	}
	for i := range inst.Groups {
		st.capsLeft[inst.Groups[i].ID] = slices.Clone(inst.Groups[i].Caps)
	}

	byGroup := make(map[int][]*exchange.Arc)
	for i := range inst.Arcs {
		a := &inst.Arcs[i]
		gid := gr.nodes[a.UID].GID
		byGroup[gid] = append(byGroup[gid], a)
	}

	gids := make([]int, 0, len(byGroup))
	for gid := range byGroup {
		gids = append(gids, gid)
	}
	slices.Sort(gids)

	for _, gid := range gids {
		if err := ctx.Err(); err != nil {
			return nil, FailedError(Greedy, inst.InstID.String(), err)
		}
		arcs := byGroup[gid]
		slices.SortStableFunc(arcs, func(a, b *exchange.Arc) int {
			switch {
			case a.Pref > b.Pref:
				return -1
			case a.Pref < b.Pref:
				return 1
			}
			return a.ID - b.ID
		})
		for _, a := range arcs {
			st.fill(a)
		}
	}
	return newSolution(inst, Greedy, st.flows, time.Since(start)), nil
}

// fill assigns flow to one arc.
func (st *greedyState) fill(a *exchange.Arc) {
	u, v := st.nodes[a.UID], st.nodes[a.VID]
	if !st.available(u) || !st.available(v) {
		return
	}

	amt := min(st.nodeLeft[u.ID], st.nodeLeft[v.ID])
	amt = min(amt, capLimit(st.capsLeft[u.GID], a.UCaps))
	amt = min(amt, capLimit(st.capsLeft[v.GID], a.VCaps))
	if math.IsInf(amt, 1) || amt <= eps {
		return
	}

	if u.Excl || v.Excl {
		need := math.Inf(1)
		if u.Excl {
			need = u.Qty
		}
		if v.Excl {
			need = min(need, v.Qty)
		}
		if amt < need-eps*max(1, need) {
			return
		}
		amt = need
	}

	st.flows[a.ID] += amt
	st.nodeLeft[u.ID] -= amt
	st.nodeLeft[v.ID] -= amt
	take(st.capsLeft[u.GID], a.UCaps, amt)
	take(st.capsLeft[v.GID], a.VCaps, amt)
	st.use(u)
	st.use(v)
}

func (st *greedyState) available(n *exchange.Node) bool {
	if !n.Excl {
		return st.nodeLeft[n.ID] > eps
	}
	if st.nodeUsed[n.ID] {
		return false
	}
	if n.ExclID > 0 && st.exclUsed[exclKey{n.GID, n.ExclID}] {
		return false
	}
	return true
}

func (st *greedyState) use(n *exchange.Node) {
	if !n.Excl {
		return
	}
	st.nodeUsed[n.ID] = true
	if n.ExclID > 0 {
		st.exclUsed[exclKey{n.GID, n.ExclID}] = true
	}
}

// capLimit returns the largest flow the remaining capacities allow for
// given coefficients.
func capLimit(left, coeffs []float64) float64 {
	res := math.Inf(1)
	for i, c := range coeffs {
		if c <= 0 {
			continue
		}
		res = min(res, max(left[i], 0)/c)
	}
	return res
}

func take(left, coeffs []float64, amt float64) {
	for i, c := range coeffs {
		left[i] -= c * amt
	}
}
