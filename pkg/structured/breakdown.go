package structured

import (
	"math"

	"github.com/gnames/cyclopts/pkg/domain"
)

// floorEps absorbs rounding of ratios such as 3*(1/3).
const floorEps = 1e-9

func floor(x float64) int {
	return int(math.Floor(x + floorEps))
}

// ReactorBreakdown returns the number of reactors of each kind, indexed
// by domain.Reactor. Kinds required by the fuel cycle fidelity get at
// least one reactor.
func ReactorBreakdown(p *Point) [3]int {
	var res [3]int
	n := p.NRxtr
	if p.FFc == 0 {
		res[domain.Thermal] = n
	} else {
		nTh := floor(float64(n) * p.RTF)
		fast := n - nTh
		res[domain.Thermal] = nTh
		if p.FFc == 1 {
			res[domain.FastMOX] = fast
		} else {
			nMox := floor(float64(fast) * (1 - p.RThPu))
			res[domain.FastMOX] = nMox
			res[domain.FastThOX] = fast - nMox
		}
	}

	res[domain.Thermal] = max(1, res[domain.Thermal])
	if p.FFc > 0 {
		res[domain.FastMOX] = max(1, res[domain.FastMOX])
	}
	if p.FFc > 1 {
		res[domain.FastThOX] = max(1, res[domain.FastThOX])
	}
	return res
}

// SupportBreakdown returns the number of support facilities of each kind,
// indexed by domain.Support. Repositories are counted only when withRepo
// is true.
func SupportBreakdown(p *Point, withRepo bool) [5]int {
	var res [5]int
	rx := ReactorBreakdown(p)
	s := float64(rx[domain.Thermal]) * p.RSTh
	if p.FFc == 0 {
		res[domain.SupUOX] = floor(s)
	} else {
		r := p.RSMoxUOX
		res[domain.SupThMOX] = floor(s * r / (1 + r))
		res[domain.SupUOX] = floor(s / (1 + r))
		res[domain.SupFMOX] = floor(float64(rx[domain.FastMOX]) * p.RSMox)
		res[domain.SupFThOX] = floor(float64(rx[domain.FastThOX]) * p.RSThox)
	}

	res[domain.SupUOX] = max(1, res[domain.SupUOX])
	if p.FFc > 0 {
		res[domain.SupThMOX] = max(1, res[domain.SupThMOX])
		res[domain.SupFMOX] = max(1, res[domain.SupFMOX])
	}
	if p.FFc > 1 {
		res[domain.SupFThOX] = max(1, res[domain.SupFThOX])
	}
	if withRepo {
		res[domain.Repo] = max(1, floor(float64(p.NRxtr)*p.FRepo))
	}
	return res
}

// AssemblySplit distributes n assemblies over commodities in proportion
// to weights using the largest remainder method. Ties go to the lower
// index. Non-positive weights get nothing.
func AssemblySplit(n int, weights []float64) []int {
	res := make([]int, len(weights))
	var total float64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if n <= 0 || total == 0 {
		return res
	}

	rems := make([]float64, len(weights))
	left := n
	for i, w := range weights {
		if w <= 0 {
			rems[i] = -1
			continue
		}
		share := float64(n) * w / total
		res[i] = floor(share)
		rems[i] = share - float64(res[i])
		left -= res[i]
	}
	for ; left > 0; left-- {
		best := -1
		for i, r := range rems {
			if r >= 0 && (best < 0 || r > rems[best]) {
				best = i
			}
		}
		if best < 0 {
			break
		}
		res[best]++
		rems[best] = -1
	}
	return res
}
