// Package randreq implements a request species that is not tied to a fuel
// cycle. Requesters ask for randomly chosen commodities, suppliers offer
// randomly assigned ones, and constraint and preference coefficients are
// drawn from uniform ranges.
package randreq

import (
	"math/rand/v2"
	"sync"

	"github.com/gnames/cyclopts/pkg/problem"
	"github.com/gnames/cyclopts/pkg/table"
	"github.com/google/uuid"
)

// params of the species in the order they are stored. Probabilities are
// cutoffs: an event happens when a uniform draw does not exceed them, so
// a negative cutoff never happens.
var params = []problem.Param{
	{Name: "assem_multi_commod", Kind: table.Float, Default: -1.0},
	{Name: "assem_per_req", Kind: table.Int, Default: 1},
	{Name: "connection", Kind: table.Float, Default: 1.0},
	{Name: "constr_coeff", Kind: table.Vector, Width: 2, Default: []float64{1e-10, 2.0}},
	{Name: "exclusive", Kind: table.Float, Default: -1.0},
	{Name: "n_commods", Kind: table.Int, Default: 1},
	{Name: "n_req_constr", Kind: table.Int, Default: 0},
	{Name: "n_request", Kind: table.Int, Default: 1},
	{Name: "n_sup_constr", Kind: table.Int, Default: 1},
	{Name: "n_supply", Kind: table.Int, Default: 1},
	{Name: "pref_coeff", Kind: table.Vector, Width: 2, Default: []float64{1e-10, 1.0}},
	{Name: "req_multi_commods", Kind: table.Int, Default: 0},
	{Name: "req_qty", Kind: table.Float, Default: 1.0},
	{Name: "seed", Kind: table.Int, Default: -1},
	{Name: "sup_constr_val", Kind: table.Float, Default: 1.0},
	{Name: "sup_multi", Kind: table.Float, Default: -1.0},
	{Name: "sup_multi_commods", Kind: table.Int, Default: 0},
}

// supplyFracs are fractions of commodity demand a supply constraint can
// take.
var supplyFracs = []float64{0.25, 0.5, 0.75, 1}

// Point is one parameter combination of the random request species.
type Point struct {
	id   uuid.UUID
	vals problem.Values

	NCommods    int
	NRequest    int
	AssemPerReq int
	ReqQty      float64

	// AssemMultiCommod is the probability that an assembly can be
	// satisfied by several commodities.
	AssemMultiCommod float64
	ReqMultiCommods  int
	Exclusive        float64
	NReqConstr       int

	NSupply         int
	SupMulti        float64
	SupMultiCommods int
	NSupConstr      int
	// SupConstrVal is the lowest fraction of demand a supplier can meet.
	SupConstrVal float64

	Connection  float64
	ConstrCoeff []float64
	PrefCoeff   []float64

	Seed int64

	mu  sync.Mutex
	src *rand.Rand
}

// NewPoint creates a point with a new parameter id from values.
func NewPoint(vals problem.Values) *Point {
	return &Point{
		id:               uuid.New(),
		vals:             vals,
		NCommods:         vals.Int("n_commods"),
		NRequest:         vals.Int("n_request"),
		AssemPerReq:      vals.Int("assem_per_req"),
		ReqQty:           vals.Float("req_qty"),
		AssemMultiCommod: vals.Float("assem_multi_commod"),
		ReqMultiCommods:  vals.Int("req_multi_commods"),
		Exclusive:        vals.Float("exclusive"),
		NReqConstr:       vals.Int("n_req_constr"),
		NSupply:          vals.Int("n_supply"),
		SupMulti:         vals.Float("sup_multi"),
		SupMultiCommods:  vals.Int("sup_multi_commods"),
		NSupConstr:       vals.Int("n_sup_constr"),
		SupConstrVal:     vals.Float("sup_constr_val"),
		Connection:       vals.Float("connection"),
		ConstrCoeff:      vals.Vector("constr_coeff"),
		PrefCoeff:        vals.Vector("pref_coeff"),
		Seed:             vals.Int64("seed"),
	}
}

func (p *Point) ParamID() uuid.UUID {
	return p.id
}

func (p *Point) Values() problem.Values {
	return p.vals
}

// Valid reports if an instance can cover every commodity at this point.
func (p *Point) Valid() bool {
	return p.NCommods <= p.NSupply &&
		p.NCommods <= (1+p.ReqMultiCommods)*p.NRequest &&
		p.NCommods > p.ReqMultiCommods &&
		p.NCommods > p.SupMultiCommods &&
		len(p.ConstrCoeff) > 0 && len(p.PrefCoeff) > 0
}

// rng returns the random source of one generation pass. Passes draw
// their sources from one stream per point, so a positive seed makes the
// sequence of instances of a point reproducible while every instance
// differs from the previous one.
func (p *Point) rng() *rand.Rand {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.src == nil {
		if p.Seed > 0 {
			p.src = rand.New(rand.NewPCG(uint64(p.Seed), 0))
		} else {
			p.src = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		}
	}
	return rand.New(rand.NewPCG(p.src.Uint64(), p.src.Uint64()))
}
