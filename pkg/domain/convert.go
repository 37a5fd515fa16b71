package domain

import "math"

// Assays of natural uranium feed and depleted tails.
const (
	FeedAssay  = 0.0072
	TailsAssay = 0.0025
)

// Converter turns a transferred quantity of a commodity at a given
// enrichment (percent) into the amount it consumes of a capacity.
type Converter interface {
	Convert(qty, enr float64, commod Commodity) float64
}

// ValueFn is the separative potential of an assay.
func ValueFn(x float64) float64 {
	return (2*x - 1) * math.Log(x/(1-x))
}

// FeedQty returns natural uranium needed to enrich product to assay xp.
func FeedQty(product, xp float64) float64 {
	return product * (xp - TailsAssay) / (FeedAssay - TailsAssay)
}

// SWUQty returns the separative work needed to enrich product to assay xp.
func SWUQty(product, xp float64) float64 {
	feed := FeedQty(product, xp)
	tails := feed - product
	return product*ValueFn(xp) + tails*ValueFn(TailsAssay) -
		feed*ValueFn(FeedAssay)
}

// NatU converts enriched uranium into natural uranium feed.
type NatU struct{}

func (NatU) Convert(qty, enr float64, _ Commodity) float64 {
	return FeedQty(qty, enr/100)
}

// SWU converts enriched uranium into separative work.
type SWU struct{}

func (SWU) Convert(qty, enr float64, _ Commodity) float64 {
	return SWUQty(qty, enr/100)
}

// RecycleProc converts recycled fuel into reprocessed mass. Oxide fuel
// passes 1:1, recycled fuels are given in fissile mass at 1% content.
type RecycleProc struct{}

func (RecycleProc) Convert(qty, _ float64, commod Commodity) float64 {
	if commod == UOX {
		return qty
	}
	return qty * 100
}

// RecycleInv converts recycled fuel into fissile inventory.
type RecycleInv struct{}

func (RecycleInv) Convert(qty, enr float64, _ Commodity) float64 {
	return qty * enr / 100
}

// RepoProc converts any fuel into repository throughput.
type RepoProc struct{}

func (RepoProc) Convert(qty, _ float64, _ Commodity) float64 {
	return qty
}

// Converters returns the process and inventory converters of a support
// kind. The repository has no inventory converter, inv is nil for it.
func Converters(s Support) (proc, inv Converter, err error) {
	switch s {
	case SupUOX:
		return SWU{}, NatU{}, nil
	case SupThMOX, SupFMOX, SupFThOX:
		return RecycleProc{}, RecycleInv{}, nil
	case Repo:
		return RepoProc{}, nil, nil
	}
	return nil, nil, UnknownKindError("converters", s.String())
}

// ConvRatio returns inventory per unit of process for one unit of the
// commodity a support kind fabricates, at mean enrichment.
func ConvRatio(s Support) (float64, error) {
	commod, err := SupToCommod(s)
	if err != nil {
		return 0, err
	}
	rxtr, err := SupToRxtr(s)
	if err != nil {
		return 0, err
	}
	enr, err := MeanEnr(rxtr, commod)
	if err != nil {
		return 0, err
	}
	proc, inv, err := Converters(s)
	if err != nil {
		return 0, err
	}
	return inv.Convert(1, enr, commod) / proc.Convert(1, enr, commod), nil
}
