package randreq

import (
	"math/rand/v2"
	"slices"

	"github.com/gnames/cyclopts/pkg/exchange"
	"github.com/gnames/cyclopts/pkg/idgen"
)

// request is a request node with its commodity.
type request struct {
	nid    int
	gid    int
	commod int
}

// link connects a supply node to the request node it serves.
type link struct {
	vid int
	uid int
}

// builder draws one instance of a point.
type builder struct {
	p   *Point
	rng *rand.Rand

	requesters []int
	suppliers  []int

	// assems holds the assembly count of every requester.
	assems   map[int]int
	requests []request
	commods  map[int][]int
	supply   map[int][]link
}

func newBuilder(p *Point) *builder {
	return &builder{
		p:       p,
		rng:     p.rng(),
		assems:  make(map[int]int),
		commods: make(map[int][]int),
		supply:  make(map[int][]link),
	}
}

func (b *builder) happens(cutoff float64) bool {
	return cutoff >= b.rng.Float64()
}

func (b *builder) coeff(bounds []float64) float64 {
	lo, hi := bounds[0], bounds[len(bounds)-1]
	return lo + (hi-lo)*b.rng.Float64()
}

func (b *builder) supplyFrac() float64 {
	var fracs []float64
	for _, f := range supplyFracs {
		if f >= b.p.SupConstrVal {
			fracs = append(fracs, f)
		}
	}
	if len(fracs) == 0 {
		return b.p.SupConstrVal
	}
	return fracs[b.rng.IntN(len(fracs))]
}

// sample returns k random elements of pool in random order.
func (b *builder) sample(pool []int, k int) []int {
	res := slices.Clone(pool)
	b.rng.Shuffle(len(res), func(i, j int) { res[i], res[j] = res[j], res[i] })
	return res[:min(k, len(res))]
}

func without(pool []int, v int) []int {
	return slices.DeleteFunc(slices.Clone(pool), func(x int) bool { return x == v })
}

func (b *builder) build() ([]exchange.Group, []exchange.Node, []exchange.Arc, error) {
	p := b.p
	commods := make([]int, p.NCommods)
	for i := range commods {
		commods[i] = i
	}
	gids := idgen.New(0)
	for range p.NRequest {
		b.requesters = append(b.requesters, gids.Next())
	}
	for range p.NSupply {
		b.suppliers = append(b.suppliers, gids.Next())
	}

	b.genRequest(commods)
	if err := b.genSupply(commods); err != nil {
		return nil, nil, nil, err
	}
	if err := b.coverage(commods); err != nil {
		return nil, nil, nil, err
	}
	groups, nodes, arcs := b.populate()
	return groups, nodes, arcs, nil
}

// genRequest creates request nodes. The first commodity of every
// requester is one nobody has asked for yet, as long as there is one.
func (b *builder) genRequest(commods []int) {
	nids := idgen.New(0)
	chosen := make(map[int]struct{})
	for _, gid := range b.requesters {
		assemCommods := b.assemCommods(commods, chosen)
		b.assems[gid] = b.p.AssemPerReq
		for range b.p.AssemPerReq {
			n := 1
			if b.happens(b.p.AssemMultiCommod) {
				n = len(assemCommods)
			}
			for _, c := range assemCommods[:n] {
				b.requests = append(b.requests, request{nid: nids.Next(), gid: gid, commod: c})
				chosen[c] = struct{}{}
			}
		}
	}
}

func (b *builder) assemCommods(commods []int, chosen map[int]struct{}) []int {
	pool := commods
	if len(chosen) != len(commods) {
		pool = slices.DeleteFunc(slices.Clone(commods), func(c int) bool {
			_, ok := chosen[c]
			return ok
		})
	}
	first := pool[b.rng.IntN(len(pool))]
	res := []int{first}
	return append(res, b.sample(without(commods, first), b.p.ReqMultiCommods)...)
}

// genSupply assigns commodities to suppliers and connects every request
// node to at least one supplier of its commodity.
func (b *builder) genSupply(commods []int) error {
	if len(commods) > len(b.suppliers) {
		return CoverageError("supplied", len(commods), len(b.suppliers))
	}
	order := b.sample(commods, len(commods))
	for i, gid := range b.suppliers {
		primary := order[i%len(order)]
		nExtra := 0
		if b.happens(b.p.SupMulti) {
			nExtra = b.p.SupMultiCommods
		}
		extra := b.sample(without(commods, primary), nExtra)
		b.commods[gid] = append([]int{primary}, extra...)
	}

	nids := idgen.New(len(b.requests))
	for _, req := range b.requests {
		var gids []int
		for _, gid := range b.suppliers {
			if slices.Contains(b.commods[gid], req.commod) {
				gids = append(gids, gid)
			}
		}
		if len(gids) == 0 {
			continue
		}
		gids = b.sample(gids, len(gids))
		b.supply[gids[0]] = append(b.supply[gids[0]], link{vid: nids.Next(), uid: req.nid})
		for _, gid := range gids[1:] {
			if b.happens(b.p.Connection) {
				b.supply[gid] = append(b.supply[gid], link{vid: nids.Next(), uid: req.nid})
			}
		}
	}
	return nil
}

// coverage checks that every commodity is requested and supplied.
func (b *builder) coverage(commods []int) error {
	requested := make(map[int]struct{})
	for _, r := range b.requests {
		requested[r.commod] = struct{}{}
	}
	if len(requested) != len(commods) {
		return CoverageError("requested", len(commods), len(requested))
	}

	byNode := make(map[int]int, len(b.requests))
	for _, r := range b.requests {
		byNode[r.nid] = r.commod
	}
	supplied := make(map[int]struct{})
	for _, links := range b.supply {
		for _, l := range links {
			supplied[byNode[l.uid]] = struct{}{}
		}
	}
	if len(supplied) != len(commods) {
		return CoverageError("supplied", len(commods), len(supplied))
	}
	return nil
}

// populate turns drawn requests and links into groups, nodes and arcs.
// Request groups hold the total quantity as the first constraint, every
// supplier can meet a fraction of the largest demand of its commodities.
func (b *builder) populate() ([]exchange.Group, []exchange.Node, []exchange.Arc) {
	p := b.p
	var groups []exchange.Group
	var nodes []exchange.Node
	var arcs []exchange.Arc

	demand := make(map[int]float64)
	nodeQty := make(map[int]float64)
	for _, gid := range b.requesters {
		nAssems := float64(b.assems[gid])
		qty := p.ReqQty * nAssems
		caps := []float64{qty}
		for range p.NReqConstr {
			caps = append(caps, nAssems)
		}
		groups = append(groups, exchange.Group{ID: gid, Kind: true, Qty: qty, Caps: caps})

		exclids := idgen.New(1)
		for _, r := range b.requests {
			if r.gid != gid {
				continue
			}
			n := exchange.Node{ID: r.nid, GID: gid, Kind: true, Qty: p.ReqQty, ExclID: -1}
			if b.happens(p.Exclusive) {
				n.Excl = true
				n.ExclID = exclids.Next()
			}
			nodes = append(nodes, n)
			nodeQty[r.nid] = n.Qty
			demand[r.commod]++
		}
	}

	arcids := idgen.New(0)
	for _, gid := range b.suppliers {
		var capacity float64
		for _, c := range b.commods[gid] {
			capacity = max(capacity, p.ReqQty*demand[c])
		}
		caps := make([]float64, p.NSupConstr)
		for i := range caps {
			caps[i] = b.supplyFrac() * capacity
		}
		groups = append(groups, exchange.Group{ID: gid, Kind: false, Caps: caps})

		for _, l := range b.supply[gid] {
			qty := nodeQty[l.uid]
			nodes = append(nodes, exchange.Node{ID: l.vid, GID: gid, Qty: qty, ExclID: -1})
			ucaps := []float64{1}
			for range p.NReqConstr {
				ucaps = append(ucaps, b.coeff(p.ConstrCoeff))
			}
			vcaps := make([]float64, len(caps))
			for i := range vcaps {
				vcaps[i] = b.coeff(p.ConstrCoeff)
			}
			arcs = append(arcs, exchange.Arc{
				ID:    arcids.Next(),
				UID:   l.uid,
				UCaps: ucaps,
				VID:   l.vid,
				VCaps: vcaps,
				Pref:  b.coeff(p.PrefCoeff),
			})
		}
	}
	return groups, nodes, arcs
}
