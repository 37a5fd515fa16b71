// Package structured implements fuel-cycle exchange species. In the
// request species reactors ask for fuel that support facilities supply.
// In the supply species reactors offer used fuel assemblies that support
// facilities request.
package structured

import (
	"math/rand/v2"
	"slices"
	"strings"
	"sync"

	"github.com/gnames/cyclopts/pkg/domain"
	"github.com/gnames/cyclopts/pkg/problem"
	"github.com/gnames/cyclopts/pkg/table"
	"github.com/google/uuid"
)

// requestParams are the parameters of the request species in the order
// they are stored.
var requestParams = []problem.Param{
	{Name: "f_fc", Kind: table.Int, Default: 0},
	{Name: "f_loc", Kind: table.Int, Default: 0},
	{Name: "f_mox", Kind: table.Float, Default: 1.0},
	{Name: "f_rxtr", Kind: table.Int, Default: 0},
	{Name: "n_reg", Kind: table.Int, Default: 10},
	{Name: "n_rxtr", Kind: table.Int, Default: 1},
	{Name: "r_inv_proc", Kind: table.Float, Default: 1.0},
	{Name: "r_l_c", Kind: table.Float, Default: 1.0},
	{Name: "r_s_mox", Kind: table.Float, Default: 0.5},
	{Name: "r_s_mox_uox", Kind: table.Float, Default: 1.0},
	{Name: "r_s_th", Kind: table.Float, Default: 0.5},
	{Name: "r_s_thox", Kind: table.Float, Default: 0.5},
	{Name: "r_t_f", Kind: table.Float, Default: 1.0},
	{Name: "r_th_pu", Kind: table.Float, Default: 0.0},
	{Name: "seed", Kind: table.Int, Default: -1},
}

// supplyParams add assembly distributions and the repository ratio.
var supplyParams = sortParams(append([]problem.Param{
	{Name: "d_th", Kind: table.Vector, Width: 3, Default: []float64{0.67, 0.33, 0}},
	{Name: "d_f_mox", Kind: table.Vector, Width: 4, Default: []float64{0, 0, 1, 0}},
	{Name: "d_f_thox", Kind: table.Vector, Width: 4, Default: []float64{0, 0, 0, 1}},
	{Name: "f_repo", Kind: table.Float, Default: 0.1},
}, requestParams...))

// Point is one parameter combination of a structured species.
type Point struct {
	id   uuid.UUID
	vals problem.Values

	// fidelities of reactors, fuel cycle and location
	FRxtr, FFc, FLoc int

	NRxtr int
	NReg  int

	RTF      float64
	RThPu    float64
	FMox     float64
	RSTh     float64
	RSMoxUOX float64
	RSMox    float64
	RSThox   float64
	RInvProc float64
	RLC      float64

	// Seed makes generation reproducible when positive.
	Seed int64

	DTh    []float64
	DFMox  []float64
	DFThox []float64
	FRepo  float64

	mu  sync.Mutex
	src *rand.Rand
}

// NewPoint creates a point with a new parameter id from values. Absent
// values are zero.
func NewPoint(vals problem.Values) *Point {
	return &Point{
		id:       uuid.New(),
		vals:     vals,
		FRxtr:    vals.Int("f_rxtr"),
		FFc:      vals.Int("f_fc"),
		FLoc:     vals.Int("f_loc"),
		NRxtr:    vals.Int("n_rxtr"),
		NReg:     vals.Int("n_reg"),
		RTF:      vals.Float("r_t_f"),
		RThPu:    vals.Float("r_th_pu"),
		FMox:     vals.Float("f_mox"),
		RSTh:     vals.Float("r_s_th"),
		RSMoxUOX: vals.Float("r_s_mox_uox"),
		RSMox:    vals.Float("r_s_mox"),
		RSThox:   vals.Float("r_s_thox"),
		RInvProc: vals.Float("r_inv_proc"),
		RLC:      vals.Float("r_l_c"),
		Seed:     vals.Int64("seed"),
		DTh:      vals.Vector("d_th"),
		DFMox:    vals.Vector("d_f_mox"),
		DFThox:   vals.Vector("d_f_thox"),
		FRepo:    vals.Float("f_repo"),
	}
}

func (p *Point) ParamID() uuid.UUID {
	return p.id
}

func (p *Point) Values() problem.Values {
	return p.vals
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

// distribution returns the assembly commodity distribution of a reactor
// kind, indexed by commodity.
func (p *Point) distribution(r domain.Reactor) []float64 {
	switch r {
	case domain.FastMOX:
		return p.DFMox
	case domain.FastThOX:
		return p.DFThox
	default:
		return p.DTh
	}
}

func sortParams(ps []problem.Param) []problem.Param {
	slices.SortFunc(ps, func(a, b problem.Param) int {
		return strings.Compare(a.Name, b.Name)
	})
	return ps
}
