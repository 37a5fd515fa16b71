package iotesting

import (
	"github.com/gnames/cyclopts/pkg/problem"
	"github.com/gnames/cyclopts/pkg/table"
)

// MinimalRequest is a run control of the StructuredRequest species with
// one reactor and one supplier of each kind. With seed 42 the greedy
// solver moves 17,500 units of uranium oxide and 280 units of each MOX.
func MinimalRequest(nInst int) *problem.RunControl {
	return &problem.RunControl{
		Species: "StructuredRequest",
		NInst:   nInst,
		Space: map[string]any{
			"f_rxtr":      0,
			"f_fc":        2,
			"n_rxtr":      1,
			"r_t_f":       1.0,
			"r_th_pu":     1.0,
			"f_mox":       0.33,
			"r_s_th":      0.08,
			"r_s_mox_uox": 0.4,
			"r_s_mox":     0.2,
			"r_s_thox":    0.2,
			"r_inv_proc":  1.0,
			"n_reg":       10,
			"r_l_c":       1.0,
			"seed":        42,
		},
	}
}

// RandomRequest is a run control of the RandomRequest species with
// default parameters and a fixed seed.
func RandomRequest(nInst int) *problem.RunControl {
	return &problem.RunControl{
		Species: "RandomRequest",
		NInst:   nInst,
		Space:   map[string]any{"seed": 7},
	}
}

// MemManager returns a manager of a new in-memory store.
func MemManager() *table.Manager {
	return table.NewManager(table.NewMemStore(), 0)
}
