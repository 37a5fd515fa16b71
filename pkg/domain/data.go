package domain

// FuelUnit is the mass of fuel (kg) in one core-volume unit.
const FuelUnit = 1400.0

// Range is a closed interval of enrichment values in percent.
type Range struct {
	Lo, Hi float64
}

// Mean returns the middle of the range.
func (r Range) Mean() float64 {
	return (r.Lo + r.Hi) / 2
}

// Scale maps a fraction on [0, 1] into the range.
func (r Range) Scale(frac float64) float64 {
	return r.Lo + (r.Hi-r.Lo)*frac
}

var (
	thermalEnr = map[Commodity]Range{
		UOX:   {3.5, 5.5},
		ThMOX: {55, 65},
		FMOX:  {55, 65},
	}
	fastEnr = map[Commodity]Range{
		UOX:   {15, 20},
		ThMOX: {55, 65},
		FMOX:  {55, 65},
		FThOX: {55, 65},
	}

	thermalRel = map[Commodity]float64{
		UOX:   1.0,
		ThMOX: 0.07,
		FMOX:  0.07,
	}
	fastRel = map[Commodity]float64{
		UOX:   1.0,
		ThMOX: 0.2,
		FMOX:  0.2,
		FThOX: 0.2,
	}

	rxtrPref = map[Reactor]map[Commodity]float64{
		Thermal:  {UOX: 0.5, ThMOX: 1.0, FMOX: 0.1},
		FastMOX:  {UOX: 0.1, ThMOX: 0.5, FMOX: 1.0, FThOX: 0.25},
		FastThOX: {UOX: 0.1, ThMOX: 0.25, FMOX: 0.5, FThOX: 1.0},
	}

	// supPref is keyed by the requesting support kind in supply-oriented
	// exchanges. A missing commodity means no arc is possible.
	supPref = map[Support]map[Commodity]float64{
		SupThMOX: {UOX: 1.5, ThMOX: 1.0, FMOX: 0.5},
		SupFMOX:  {UOX: 0.5, ThMOX: 0.5, FMOX: 1.0},
		SupFThOX: {UOX: 0.3, FThOX: 1.0},
		Repo:     {UOX: 0.01, ThMOX: 0.01, FMOX: 0.01, FThOX: 0.01},
	}

	// monthly limits: SWU for enrichment, kg of fuel for the rest
	supRHS = map[Support]float64{
		SupUOX:   3.3e6 / 12,
		SupThMOX: 800e3 / 12,
		SupFMOX:  800e3 / 12,
		SupFThOX: 800e3 / 12,
		Repo:     575e3 / 12,
	}
)

func enrTable(r Reactor) (map[Commodity]Range, error) {
	switch r {
	case Thermal:
		return thermalEnr, nil
	case FastMOX, FastThOX:
		return fastEnr, nil
	}
	return nil, UnknownKindError("enrichment ranges", r.String())
}

// EnrRange returns the enrichment range of a commodity in a reactor.
func EnrRange(r Reactor, c Commodity) (Range, error) {
	tbl, err := enrTable(r)
	if err != nil {
		return Range{}, err
	}
	res, ok := tbl[c]
	if !ok {
		return Range{}, UnknownCommodityError(r.String(), c.String())
	}
	return res, nil
}

// MeanEnr returns the mean enrichment of a commodity in a reactor.
func MeanEnr(r Reactor, c Commodity) (float64, error) {
	rng, err := EnrRange(r, c)
	if err != nil {
		return 0, err
	}
	return rng.Mean(), nil
}

// RelativeQty returns the fraction of the full-mass request a commodity
// represents in a reactor (fissile-only accounting for recycled fuel).
func RelativeQty(r Reactor, c Commodity) (float64, error) {
	var tbl map[Commodity]float64
	switch r {
	case Thermal:
		tbl = thermalRel
	case FastMOX, FastThOX:
		tbl = fastRel
	default:
		return 0, UnknownKindError("relative quantities", r.String())
	}
	res, ok := tbl[c]
	if !ok {
		return 0, UnknownCommodityError(r.String(), c.String())
	}
	return res, nil
}

// RxtrPref returns the baseline preference of a reactor for a commodity.
func RxtrPref(r Reactor, c Commodity) (float64, error) {
	tbl, ok := rxtrPref[r]
	if !ok {
		return 0, UnknownKindError("reactor preferences", r.String())
	}
	res, ok := tbl[c]
	if !ok {
		return 0, UnknownCommodityError(r.String(), c.String())
	}
	return res, nil
}

// SupPref returns the baseline preference of a requesting support kind
// for a commodity. The boolean is false when the pair cannot trade.
func SupPref(s Support, c Commodity) (float64, bool) {
	res, ok := supPref[s][c]
	return res, ok
}

// SupPrefCommods returns the commodities a support kind accepts in
// supply-oriented exchanges, in canonical order.
func SupPrefCommods(s Support) []Commodity {
	var res []Commodity
	for _, c := range Commodities {
		if _, ok := supPref[s][c]; ok {
			res = append(res, c)
		}
	}
	return res
}

// SupRHS returns the process throughput limit of a support kind.
func SupRHS(s Support) (float64, error) {
	res, ok := supRHS[s]
	if !ok {
		return 0, UnknownKindError("support limits", s.String())
	}
	return res, nil
}

// CoreVolFrac returns the core volume of a reactor in fuel units.
func CoreVolFrac(r Reactor) (float64, error) {
	switch r {
	case Thermal:
		return 12.5, nil
	case FastMOX, FastThOX:
		return 1.0, nil
	}
	return 0, UnknownKindError("core volumes", r.String())
}

// NAssemblies returns the number of assemblies in a quarter core.
func NAssemblies(r Reactor) (int, error) {
	switch r {
	case Thermal:
		return 157 / 4, nil
	case FastMOX, FastThOX:
		return 369 / 4, nil
	}
	return 0, UnknownKindError("assembly counts", r.String())
}
