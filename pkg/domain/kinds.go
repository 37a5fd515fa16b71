// Package domain holds static reference data of the structured fuel-cycle
// exchanges: commodity, reactor and support kinds, enrichment ranges,
// relative quantities, preference baselines, throughput limits and the
// converters that turn a transferred quantity into a constraint coefficient.
//
// All lookups are pure. Unknown kinds are reported as errors.
package domain

// Commodity is a fuel type traded in an exchange.
type Commodity int8

const (
	UOX Commodity = iota
	ThMOX
	FMOX
	FThOX
)

// Commodities lists all commodities in their canonical order.
var Commodities = []Commodity{UOX, ThMOX, FMOX, FThOX}

func (c Commodity) String() string {
	switch c {
	case UOX:
		return "uox"
	case ThMOX:
		return "th_mox"
	case FMOX:
		return "f_mox"
	case FThOX:
		return "f_thox"
	default:
		return "unknown"
	}
}

// Reactor is a reactor type.
type Reactor int8

const (
	Thermal Reactor = iota
	FastMOX
	FastThOX
)

// Reactors lists all reactor kinds in the order they are built.
var Reactors = []Reactor{Thermal, FastMOX, FastThOX}

func (r Reactor) String() string {
	switch r {
	case Thermal:
		return "th"
	case FastMOX:
		return "f_mox"
	case FastThOX:
		return "f_thox"
	default:
		return "unknown"
	}
}

// Support is a fuel-cycle support facility kind: a fuel supplier in
// request-oriented exchanges or a requester in supply-oriented ones.
type Support int8

const (
	SupUOX Support = iota
	SupThMOX
	SupFMOX
	SupFThOX
	Repo
)

// Supports lists all support kinds in the order they are built.
var Supports = []Support{SupUOX, SupThMOX, SupFMOX, SupFThOX, Repo}

func (s Support) String() string {
	switch s {
	case SupUOX:
		return "uox"
	case SupThMOX:
		return "th_mox"
	case SupFMOX:
		return "f_mox"
	case SupFThOX:
		return "f_thox"
	case Repo:
		return "repo"
	default:
		return "unknown"
	}
}

// CommodToSup returns the support kind that fabricates a commodity.
func CommodToSup(c Commodity) (Support, error) {
	switch c {
	case UOX:
		return SupUOX, nil
	case ThMOX:
		return SupThMOX, nil
	case FMOX:
		return SupFMOX, nil
	case FThOX:
		return SupFThOX, nil
	}
	return 0, UnknownCommodityError("commodity-to-support", c.String())
}

// SupToCommod returns the commodity a support kind fabricates. The
// repository fabricates nothing.
func SupToCommod(s Support) (Commodity, error) {
	switch s {
	case SupUOX:
		return UOX, nil
	case SupThMOX:
		return ThMOX, nil
	case SupFMOX:
		return FMOX, nil
	case SupFThOX:
		return FThOX, nil
	}
	return 0, UnknownKindError("support-to-commodity", s.String())
}

// SupToRxtr returns the reactor kind whose enrichment ranges describe the
// product of a support kind.
func SupToRxtr(s Support) (Reactor, error) {
	switch s {
	case SupUOX, SupThMOX:
		return Thermal, nil
	case SupFMOX:
		return FastMOX, nil
	case SupFThOX:
		return FastThOX, nil
	}
	return 0, UnknownKindError("support-to-reactor", s.String())
}

// RxtrCommods returns the commodities a reactor requests at a given fuel
// cycle fidelity. Uranium oxide is always requested. Fidelity 1 adds both
// MOX commodities. Fidelity 2 adds thorium MOX for fast reactors.
func RxtrCommods(r Reactor, fFc int) []Commodity {
	res := []Commodity{UOX}
	if fFc > 0 {
		res = append(res, ThMOX, FMOX)
	}
	if fFc > 1 && r != Thermal {
		res = append(res, FThOX)
	}
	return res
}
