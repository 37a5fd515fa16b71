package structured

import (
	"context"

	"github.com/gnames/cyclopts/pkg/domain"
	"github.com/gnames/cyclopts/pkg/exchange"
	"github.com/gnames/cyclopts/pkg/problem"
	"github.com/gnames/cyclopts/pkg/table"
	"github.com/google/uuid"
)

// SupplyName is the name of the supply species.
const SupplyName = "StructuredSupply"

// Supply generates exchanges where reactors offer used fuel assemblies to
// reprocessing facilities and repositories.
type Supply struct {
	species
	cached *Realization
}

// Realization is the part of a supply instance that depends on the point
// only: facility counts and the split of each reactor's assemblies over
// commodities.
type Realization struct {
	ParamID    uuid.UUID
	Reactors   [3]int
	Requesters [5]int
	// Assemblies holds assembly counts of one reactor of a kind indexed by
	// commodity.
	Assemblies map[domain.Reactor][]int
}

// NewSupply creates the supply species with a default parameter space.
func NewSupply() *Supply {
	return &Supply{species: newSpecies(SupplyName, supplyParams, true)}
}

var _ problem.Species = (*Supply)(nil)

// Realize returns the realization of a point. It is computed once per
// point and kept until ResetRealization.
func (s *Supply) Realize(p *Point) (*Realization, error) {
	if s.cached != nil && s.cached.ParamID == p.ParamID() {
		return s.cached, nil
	}
	res := &Realization{
		ParamID:    p.ParamID(),
		Reactors:   ReactorBreakdown(p),
		Requesters: SupportBreakdown(p, true),
		Assemblies: make(map[domain.Reactor][]int),
	}
	for _, k := range domain.Reactors {
		n, err := nAssemblies(k, p.FRxtr)
		if err != nil {
			return nil, err
		}
		res.Assemblies[k] = AssemblySplit(n, p.distribution(k))
	}
	s.cached = res
	return res, nil
}

// ResetRealization forgets the cached realization.
func (s *Supply) ResetRealization() {
	s.cached = nil
}

// supplyReactor offers assemblies of the same quantity.
type supplyReactor struct {
	reactor
	assemQty float64
}

// GenInst builds requesters and reactors for a point. Every assembly is a
// supply group whose nodes, one per accepting requester, form an
// exclusive set.
func (s *Supply) GenInst(
	ctx context.Context,
	pnt problem.Point,
	instID uuid.UUID,
	m *table.Manager,
) (*exchange.Instance, error) {
	p, ok := pnt.(*Point)
	if !ok {
		return nil, problem.PointTypeError(s.name, pnt)
	}
	rlz, err := s.Realize(p)
	if err != nil {
		return nil, err
	}
	b := newBuilder(p)

	var reactors []supplyReactor
	for _, k := range domain.Reactors {
		for range rlz.Reactors[k] {
			r, err := newReactor(k, b)
			if err != nil {
				return nil, err
			}
			qty := r.coreQty / float64(r.nAssems)
			reactors = append(reactors, supplyReactor{reactor: r, assemQty: qty})
		}
	}

	var requesters []*Requester
	for _, k := range domain.Supports {
		if len(domain.SupPrefCommods(k)) == 0 {
			continue
		}
		for range rlz.Requesters[k] {
			r, err := newRequester(k, b)
			if err != nil {
				return nil, err
			}
			requesters = append(requesters, r)
		}
	}

	var groups []exchange.Group
	var nodes []exchange.Node
	var arcs []exchange.Arc
	for _, r := range reactors {
		for ci, n := range rlz.Assemblies[r.kind] {
			c := domain.Commodities[ci]
			for range n {
				g, ns, as, err := s.assembly(b, r, c, requesters)
				if err != nil {
					return nil, err
				}
				groups = append(groups, g)
				nodes = append(nodes, ns...)
				arcs = append(arcs, as...)
			}
		}
	}
	for _, r := range requesters {
		groups = append(groups, r.Group)
		nodes = append(nodes, r.Nodes...)
	}

	inst, err := newInstance(instID, p.ParamID(), groups, nodes, arcs)
	if err != nil {
		return nil, err
	}
	if err = s.recordArcs(ctx, m, instID, b.arcs); err != nil {
		return nil, err
	}
	return inst, nil
}

// assembly creates the supply group of one assembly with a node and an
// arc for each requester accepting its commodity.
func (s *Supply) assembly(
	b *builder,
	r supplyReactor,
	c domain.Commodity,
	requesters []*Requester,
) (exchange.Group, []exchange.Node, []exchange.Arc, error) {
	exclID := b.exclids.Next()
	g := exchange.Group{
		ID:   b.gids.Next(),
		Kind: false,
		Qty:  r.assemQty,
		Caps: []float64{r.assemQty},
	}
	enr, err := r.Enr(c)
	if err != nil {
		return g, nil, nil, err
	}

	var nodes []exchange.Node
	var arcs []exchange.Arc
	for _, rq := range requesters {
		prefC, ok := domain.SupPref(rq.Kind, c)
		if !ok {
			continue
		}
		n := exchange.Node{
			ID:     b.nids.Next(),
			GID:    g.ID,
			Kind:   false,
			Qty:    r.assemQty,
			Excl:   true,
			ExclID: exclID,
		}
		nodes = append(nodes, n)
		ucaps := rq.Coeffs(r.assemQty, enr, c)
		arc := b.arc(c, rq.CommodNodes[c], ucaps, n.ID, []float64{1}, prefC, r.loc, rq.Loc)
		arcs = append(arcs, arc)
	}
	return g, nodes, arcs, nil
}
