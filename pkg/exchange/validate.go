package exchange

// Validate checks structural soundness of an instance: unique ids,
// references to existing groups and nodes, arc directions, and coefficient
// lengths that match group capacities.
func (inst *Instance) Validate() error {
	groups := make(map[int]*Group, len(inst.Groups))
	for i := range inst.Groups {
		g := &inst.Groups[i]
		if _, ok := groups[g.ID]; ok {
			return DuplicateIDError(inst.InstID.String(), "group", g.ID)
		}
		if len(g.Caps) == 0 {
			return EmptyCapsError(inst.InstID.String(), g.ID)
		}
		groups[g.ID] = g
	}

	nodes := make(map[int]*Node, len(inst.Nodes))
	for i := range inst.Nodes {
		n := &inst.Nodes[i]
		if _, ok := nodes[n.ID]; ok {
			return DuplicateIDError(inst.InstID.String(), "node", n.ID)
		}
		g, ok := groups[n.GID]
		if !ok {
			return DanglingRefError(inst.InstID.String(), "node", n.ID, "group", n.GID)
		}
		if g.Kind != n.Kind {
			return DanglingRefError(inst.InstID.String(), "node", n.ID, "group of the same kind", n.GID)
		}
		nodes[n.ID] = n
	}

	arcs := make(map[int]struct{}, len(inst.Arcs))
	for i := range inst.Arcs {
		a := &inst.Arcs[i]
		if _, ok := arcs[a.ID]; ok {
			return DuplicateIDError(inst.InstID.String(), "arc", a.ID)
		}
		arcs[a.ID] = struct{}{}

		u, ok := nodes[a.UID]
		if !ok || !u.Kind {
			return DanglingRefError(inst.InstID.String(), "arc", a.ID, "request node", a.UID)
		}
		v, ok := nodes[a.VID]
		if !ok || v.Kind {
			return DanglingRefError(inst.InstID.String(), "arc", a.ID, "supply node", a.VID)
		}
		if l := len(groups[u.GID].Caps); len(a.UCaps) != l {
			return CapsLengthError(inst.InstID.String(), a.ID, "ucaps", len(a.UCaps), l)
		}
		if l := len(groups[v.GID].Caps); len(a.VCaps) != l {
			return CapsLengthError(inst.InstID.String(), a.ID, "vcaps", len(a.VCaps), l)
		}
	}
	return nil
}
