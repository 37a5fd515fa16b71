package structured

import (
	"math"
	"math/rand/v2"

	"github.com/gnames/cyclopts/pkg/domain"
	"github.com/gnames/cyclopts/pkg/exchange"
	"github.com/gnames/cyclopts/pkg/idgen"
)

// builder holds identifier generators and the random source of one
// instance-generation pass.
type builder struct {
	point   *Point
	gids    *idgen.Incrementer
	nids    *idgen.Incrementer
	arcids  *idgen.Incrementer
	exclids *idgen.Incrementer
	rng     *rand.Rand

	arcs []arcInfo
}

// arcInfo keeps the two components of an arc preference.
type arcInfo struct {
	id     int
	commod domain.Commodity
	prefC  float64
	prefL  float64
}

func newBuilder(p *Point) *builder {
	return &builder{
		point:   p,
		gids:    idgen.New(0),
		nids:    idgen.New(0),
		arcids:  idgen.New(0),
		exclids: idgen.New(1),
		rng:     p.rng(),
	}
}

// arc creates an arc and remembers its preference components.
func (b *builder) arc(
	commod domain.Commodity,
	uid int, ucaps []float64,
	vid int, vcaps []float64,
	prefC float64, loc1, loc2 float64,
) exchange.Arc {
	p := b.point
	prefL := domain.LocPref(loc1, loc2, p.FLoc, p.NReg)
	id := b.arcids.Next()
	b.arcs = append(b.arcs, arcInfo{id: id, commod: commod, prefC: prefC, prefL: prefL})
	return exchange.Arc{
		ID:    id,
		UID:   uid,
		UCaps: ucaps,
		VID:   vid,
		VCaps: vcaps,
		Pref:  prefC + p.RLC*prefL,
	}
}

// nAssemblies is 1 at the lowest reactor fidelity.
func nAssemblies(kind domain.Reactor, fRxtr int) (int, error) {
	if fRxtr == 0 {
		return 1, nil
	}
	return domain.NAssemblies(kind)
}

// reactor keeps data shared by request and supply reactors. One uniform
// draw fixes the enrichment of every commodity of the reactor.
type reactor struct {
	kind    domain.Reactor
	nAssems int
	enrFrac float64
	loc     float64
	coreQty float64
}

func newReactor(kind domain.Reactor, b *builder) (reactor, error) {
	res := reactor{kind: kind}
	var err error
	if res.nAssems, err = nAssemblies(kind, b.point.FRxtr); err != nil {
		return res, err
	}
	frac, err := domain.CoreVolFrac(kind)
	if err != nil {
		return res, err
	}
	res.coreQty = domain.FuelUnit * frac
	res.enrFrac = b.rng.Float64()
	res.loc = b.rng.Float64()
	return res, nil
}

// Enr returns the enrichment of a commodity in percent.
func (r reactor) Enr(c domain.Commodity) (float64, error) {
	rng, err := domain.EnrRange(r.kind, c)
	if err != nil {
		return 0, err
	}
	return rng.Scale(r.enrFrac), nil
}

// Reactor requests fuel in the request species. Its group covers one
// core volume, every assembly request is an exclusive node.
type Reactor struct {
	reactor
	Group       exchange.Group
	Nodes       []exchange.Node
	CommodNodes map[domain.Commodity][]int
}

func newRequestReactor(kind domain.Reactor, b *builder) (*Reactor, error) {
	base, err := newReactor(kind, b)
	if err != nil {
		return nil, err
	}
	res := &Reactor{reactor: base, CommodNodes: make(map[domain.Commodity][]int)}
	gid := b.gids.Next()
	res.Group = exchange.Group{
		ID:   gid,
		Kind: true,
		Qty:  res.coreQty,
		Caps: []float64{res.coreQty},
	}

	for _, c := range domain.RxtrCommods(kind, b.point.FFc) {
		nReq := res.nAssems
		if kind == domain.Thermal && (c == domain.ThMOX || c == domain.FMOX) {
			nReq = int(math.Ceil(float64(nReq) * b.point.FMox))
		}
		qty, err := res.ReqQty(c)
		if err != nil {
			return nil, err
		}
		for range nReq {
			n := exchange.Node{
				ID:     b.nids.Next(),
				GID:    gid,
				Kind:   true,
				Qty:    qty,
				Excl:   true,
				ExclID: -1,
			}
			res.Nodes = append(res.Nodes, n)
			res.CommodNodes[c] = append(res.CommodNodes[c], n.ID)
		}
	}
	return res, nil
}

// ReqQty is the quantity of one assembly request of a commodity.
func (r *Reactor) ReqQty(c domain.Commodity) (float64, error) {
	rel, err := domain.RelativeQty(r.kind, c)
	if err != nil {
		return 0, err
	}
	return r.coreQty / float64(r.nAssems) * rel, nil
}

// Coeffs are request-side arc coefficients: full-mass orders of
// fissile-only quantities.
func (r *Reactor) Coeffs(c domain.Commodity) ([]float64, error) {
	rel, err := domain.RelativeQty(r.kind, c)
	if err != nil {
		return nil, err
	}
	return []float64{1 / rel}, nil
}

// Supplier fabricates one commodity in the request species. It is
// limited by process throughput and by inventory.
type Supplier struct {
	Kind   domain.Support
	Loc    float64
	Group  exchange.Group
	Nodes  []exchange.Node
	commod domain.Commodity
	proc   domain.Converter
	inv    domain.Converter
}

func newSupplier(kind domain.Support, b *builder) (*Supplier, error) {
	commod, err := domain.SupToCommod(kind)
	if err != nil {
		return nil, err
	}
	proc, inv, err := domain.Converters(kind)
	if err != nil {
		return nil, err
	}
	rhs, err := domain.SupRHS(kind)
	if err != nil {
		return nil, err
	}
	ratio, err := domain.ConvRatio(kind)
	if err != nil {
		return nil, err
	}
	return &Supplier{
		Kind: kind,
		Loc:  b.rng.Float64(),
		Group: exchange.Group{
			ID:   b.gids.Next(),
			Kind: false,
			Caps: []float64{rhs, rhs * b.point.RInvProc * ratio},
		},
		commod: commod,
		proc:   proc,
		inv:    inv,
	}, nil
}

// Coeffs are supply-side arc coefficients for a quantity of fuel at an
// enrichment.
func (s *Supplier) Coeffs(qty, enr float64) []float64 {
	return []float64{
		s.proc.Convert(qty, enr, s.commod) / qty,
		s.inv.Convert(qty, enr, s.commod) / qty,
	}
}

// Requester takes used fuel in the supply species. It has one request
// node per accepted commodity.
type Requester struct {
	Kind        domain.Support
	Loc         float64
	Group       exchange.Group
	Nodes       []exchange.Node
	CommodNodes map[domain.Commodity]int
	proc        domain.Converter
	inv         domain.Converter
}

func newRequester(kind domain.Support, b *builder) (*Requester, error) {
	proc, inv, err := domain.Converters(kind)
	if err != nil {
		return nil, err
	}
	rhs, err := domain.SupRHS(kind)
	if err != nil {
		return nil, err
	}
	caps := []float64{rhs}
	if inv != nil {
		ratio, err := domain.ConvRatio(kind)
		if err != nil {
			return nil, err
		}
		caps = append(caps, rhs*b.point.RInvProc*ratio)
	}

	res := &Requester{
		Kind: kind,
		Group: exchange.Group{
			ID:   b.gids.Next(),
			Kind: true,
			Qty:  rhs,
			Caps: caps,
		},
		CommodNodes: make(map[domain.Commodity]int),
		proc:        proc,
		inv:         inv,
	}
	for _, c := range domain.SupPrefCommods(kind) {
		n := exchange.Node{
			ID:     b.nids.Next(),
			GID:    res.Group.ID,
			Kind:   true,
			Qty:    rhs,
			ExclID: -1,
		}
		res.Nodes = append(res.Nodes, n)
		res.CommodNodes[c] = n.ID
	}
	res.Loc = b.rng.Float64()
	return res, nil
}

// Coeffs are request-side arc coefficients for an assembly of a
// commodity.
func (r *Requester) Coeffs(qty, enr float64, c domain.Commodity) []float64 {
	res := []float64{r.proc.Convert(qty, enr, c) / qty}
	if r.inv != nil {
		res = append(res, r.inv.Convert(qty, enr, c)/qty)
	}
	return res
}
