// Package species registers every problem family and species that cyclopts
// can generate instances with.
package species

import (
	"github.com/gnames/cyclopts/pkg/problem"
	"github.com/gnames/cyclopts/pkg/randreq"
	"github.com/gnames/cyclopts/pkg/resex"
	"github.com/gnames/cyclopts/pkg/structured"
)

// Registry returns a registry with the resource exchange family and its
// structured and random species.
func Registry() *problem.Registry {
	res := problem.NewRegistry()
	res.AddFamily(resex.New())
	res.AddSpecies(structured.RequestName, func() problem.Species {
		return structured.NewRequest()
	})
	res.AddSpecies(structured.SupplyName, func() problem.Species {
		return structured.NewSupply()
	})
	res.AddSpecies(randreq.Name, func() problem.Species {
		return randreq.New()
	})
	return res
}
