// Package analysis compares solutions of the same instances. Solutions are
// organized into an ID tree (parameter point, instance, solution) that can
// be pruned down to instances solved by an expected number of solvers.
package analysis

import (
	"bytes"
	"slices"

	"github.com/google/uuid"
)

// Row associates a solution with its instance, point and solver.
type Row struct {
	ParamID uuid.UUID
	InstID  uuid.UUID
	SolnID  uuid.UUID
	Solver  string
}

// IDTree maps paramid to instid to solnid to the solver name.
type IDTree map[uuid.UUID]map[uuid.UUID]map[uuid.UUID]string

// NewIDTree builds a tree from solution rows.
func NewIDTree(rows []Row) IDTree {
	res := make(IDTree)
	for _, r := range rows {
		insts, ok := res[r.ParamID]
		if !ok {
			insts = make(map[uuid.UUID]map[uuid.UUID]string)
			res[r.ParamID] = insts
		}
		solns, ok := insts[r.InstID]
		if !ok {
			solns = make(map[uuid.UUID]string)
			insts[r.InstID] = solns
		}
		solns[r.SolnID] = r.Solver
	}
	return res
}

// Prune removes instances that do not have exactly nSoln solutions and
// points left without instances. It returns the number of removed
// instances.
func (t IDTree) Prune(nSoln int) int {
	var res int
	for pid, insts := range t {
		for iid, solns := range insts {
			if len(solns) != nSoln {
				delete(insts, iid)
				res++
			}
		}
		if len(insts) == 0 {
			delete(t, pid)
		}
	}
	return res
}

// NNodes returns the number of nodes at a level: 0 for points, 1 for
// instances, 2 for solutions.
func (t IDTree) NNodes(level int) int {
	var res [3]int
	res[0] = len(t)
	for _, insts := range t {
		res[1] += len(insts)
		for _, solns := range insts {
			res[2] += len(solns)
		}
	}
	if level < 0 || level > 2 {
		return 0
	}
	return res[level]
}

func (t IDTree) NInsts() int {
	return t.NNodes(1)
}

// LeafVals returns sorted unique solver names of the tree.
func (t IDTree) LeafVals() []string {
	var res []string
	for _, insts := range t {
		for _, solns := range insts {
			for _, s := range solns {
				if !slices.Contains(res, s) {
					res = append(res, s)
				}
			}
		}
	}
	slices.Sort(res)
	return res
}

func sortedIDs[V any](m map[uuid.UUID]V) []uuid.UUID {
	res := make([]uuid.UUID, 0, len(m))
	for id := range m {
		res = append(res, id)
	}
	slices.SortFunc(res, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})
	return res
}
