// Package exchange describes resource-exchange graphs: request and supply
// groups, their nodes, the arcs between them and solutions that assign a
// flow to arcs.
package exchange

import (
	"time"

	"github.com/google/uuid"
)

// Group is a set of nodes that share capacity constraints. Kind is true
// for request groups.
type Group struct {
	ID   int
	Kind bool
	Qty  float64
	Caps []float64
}

// Node is a single request or supply within a group. An exclusive node is
// either filled completely or not at all. Nodes of the same group that
// share a positive ExclID are mutually exclusive.
type Node struct {
	ID     int
	GID    int
	Kind   bool
	Qty    float64
	Excl   bool
	ExclID int
}

// Arc connects a request node (UID) with a supply node (VID). UCaps and
// VCaps are the coefficients of the flow in the constraints of the
// respective groups.
type Arc struct {
	ID    int
	UID   int
	UCaps []float64
	VID   int
	VCaps []float64
	Pref  float64
}

// Instance is one exchange graph generated from a parameter point.
type Instance struct {
	InstID  uuid.UUID
	ParamID uuid.UUID
	Groups  []Group
	Nodes   []Node
	Arcs    []Arc
}

// Solution assigns flows to arcs of an instance. Only nonzero flows are
// kept.
type Solution struct {
	SolnID    uuid.UUID
	InstID    uuid.UUID
	Solver    string
	Time      time.Duration
	Objective float64
	Flows     map[int]float64
}

// Properties are summary numbers of an instance.
type Properties struct {
	NArcs    int
	NUGrps   int
	NVGrps   int
	NUNodes  int
	NVNodes  int
	NConstrs int
	ExclFrac float64
}

// Properties computes summary numbers of the instance. NConstrs counts
// group capacity rows. ExclFrac is the share of arcs touching an exclusive
// node.
func (inst *Instance) Properties() Properties {
	var res Properties
	res.NArcs = len(inst.Arcs)
	for i := range inst.Groups {
		if inst.Groups[i].Kind {
			res.NUGrps++
		} else {
			res.NVGrps++
		}
		res.NConstrs += len(inst.Groups[i].Caps)
	}
	excl := make(map[int]bool, len(inst.Nodes))
	for i := range inst.Nodes {
		n := inst.Nodes[i]
		if n.Kind {
			res.NUNodes++
		} else {
			res.NVNodes++
		}
		excl[n.ID] = n.Excl
	}
	if res.NArcs == 0 {
		return res
	}
	var count int
	for i := range inst.Arcs {
		if excl[inst.Arcs[i].UID] || excl[inst.Arcs[i].VID] {
			count++
		}
	}
	res.ExclFrac = float64(count) / float64(res.NArcs)
	return res
}

// PrefFlow returns the sum of pref*flow over arcs of a solution.
func PrefFlow(inst *Instance, soln *Solution) float64 {
	var res float64
	for i := range inst.Arcs {
		res += inst.Arcs[i].Pref * soln.Flows[inst.Arcs[i].ID]
	}
	return res
}

// CostFlow returns the sum of flow/pref over arcs with nonzero flow.
func CostFlow(inst *Instance, soln *Solution) float64 {
	var res float64
	for i := range inst.Arcs {
		a := inst.Arcs[i]
		f := soln.Flows[a.ID]
		if f == 0 || a.Pref == 0 {
			continue
		}
		res += f / a.Pref
	}
	return res
}

// ArcIDs returns arc ids of the instance in their stored order.
func (inst *Instance) ArcIDs() []int {
	res := make([]int, len(inst.Arcs))
	for i := range inst.Arcs {
		res[i] = inst.Arcs[i].ID
	}
	return res
}
