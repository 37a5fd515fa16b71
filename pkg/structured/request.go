package structured

import (
	"context"

	"github.com/gnames/cyclopts/pkg/domain"
	"github.com/gnames/cyclopts/pkg/exchange"
	"github.com/gnames/cyclopts/pkg/problem"
	"github.com/gnames/cyclopts/pkg/table"
	"github.com/google/uuid"
)

// RequestName is the name of the request species.
const RequestName = "StructuredRequest"

// Request generates exchanges where reactors request fresh fuel from
// fabrication and enrichment facilities.
type Request struct {
	species
}

// NewRequest creates the request species with a default parameter space.
func NewRequest() *Request {
	return &Request{species: newSpecies(RequestName, requestParams, false)}
}

var _ problem.Species = (*Request)(nil)

// GenInst builds reactors and suppliers for a point and connects every
// assembly request of a commodity with every supplier of it. Each
// connection gets its own supply node.
func (s *Request) GenInst(
	ctx context.Context,
	pnt problem.Point,
	instID uuid.UUID,
	m *table.Manager,
) (*exchange.Instance, error) {
	p, ok := pnt.(*Point)
	if !ok {
		return nil, problem.PointTypeError(s.name, pnt)
	}
	b := newBuilder(p)

	reactors, err := s.reactors(b)
	if err != nil {
		return nil, err
	}
	suppliers, err := s.suppliers(b)
	if err != nil {
		return nil, err
	}

	var arcs []exchange.Arc
	for _, r := range reactors {
		for _, c := range domain.RxtrCommods(r.kind, p.FFc) {
			sk, err := domain.CommodToSup(c)
			if err != nil {
				return nil, err
			}
			for _, sup := range suppliers[sk] {
				res, err := s.supply(b, c, r, sup)
				if err != nil {
					return nil, err
				}
				arcs = append(arcs, res...)
			}
		}
	}

	var groups []exchange.Group
	var nodes []exchange.Node
	for _, r := range reactors {
		groups = append(groups, r.Group)
		nodes = append(nodes, r.Nodes...)
	}
	for _, k := range domain.Supports {
		for _, sup := range suppliers[k] {
			groups = append(groups, sup.Group)
			nodes = append(nodes, sup.Nodes...)
		}
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

func (s *Request) reactors(b *builder) ([]*Reactor, error) {
	var res []*Reactor
	counts := ReactorBreakdown(b.point)
	for _, k := range domain.Reactors {
		for range counts[k] {
			r, err := newRequestReactor(k, b)
			if err != nil {
				return nil, err
			}
			res = append(res, r)
		}
	}
	return res, nil
}

func (s *Request) suppliers(b *builder) (map[domain.Support][]*Supplier, error) {
	res := make(map[domain.Support][]*Supplier)
	counts := SupportBreakdown(b.point, false)
	for _, k := range domain.Supports {
		for range counts[k] {
			sup, err := newSupplier(k, b)
			if err != nil {
				return nil, err
			}
			res[k] = append(res[k], sup)
		}
	}
	return res, nil
}

// supply creates a supply node and an arc for every request node of a
// commodity in a reactor.
func (s *Request) supply(
	b *builder,
	c domain.Commodity,
	r *Reactor,
	sup *Supplier,
) ([]exchange.Arc, error) {
	prefC, err := domain.RxtrPref(r.kind, c)
	if err != nil {
		return nil, err
	}
	enr, err := r.Enr(c)
	if err != nil {
		return nil, err
	}
	qty, err := r.ReqQty(c)
	if err != nil {
		return nil, err
	}
	ucaps, err := r.Coeffs(c)
	if err != nil {
		return nil, err
	}
	vcaps := sup.Coeffs(qty, enr)

	rnodes := r.CommodNodes[c]
	res := make([]exchange.Arc, 0, len(rnodes))
	for _, uid := range rnodes {
		n := exchange.Node{
			ID:     b.nids.Next(),
			GID:    sup.Group.ID,
			Kind:   false,
			Qty:    qty,
			ExclID: -1,
		}
		sup.Nodes = append(sup.Nodes, n)
		arc := b.arc(c, uid, ucaps, n.ID, vcaps, prefC, r.loc, sup.Loc)
		res = append(res, arc)
	}
	return res, nil
}
