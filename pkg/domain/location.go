package domain

import "math"

// Region maps a location on [0, 1] into one of nReg regions.
func Region(loc float64, nReg int) int {
	return int(math.Floor(float64(nReg) * loc))
}

// LocPref returns the location component of a preference. Fidelity 0
// ignores location. Fidelity 1 uses regions only. Fidelity 2 and above
// averages the region and the raw location terms.
func LocPref(loc1, loc2 float64, fLoc, nReg int) float64 {
	if fLoc < 1 {
		return 0
	}
	r1, r2 := Region(loc1, nReg), Region(loc2, nReg)
	res := math.Exp(-math.Abs(float64(r1 - r2)))
	if fLoc > 1 {
		res = (res + math.Exp(-math.Abs(loc1-loc2))) / 2
	}
	return res
}

// Preference combines a baseline preference with the location term
// weighted by ratio.
func Preference(base, loc1, loc2 float64, fLoc, nReg int, ratio float64) float64 {
	return base + ratio*LocPref(loc1, loc2, fLoc, nReg)
}
