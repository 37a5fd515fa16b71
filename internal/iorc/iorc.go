// Package iorc reads run-control files. A run-control file names a
// species, the number of instances per point and the parameter space:
//
//	species: StructuredRequest
//	ninst: 2
//	space:
//	  n_rxtr: [1, 5]
//	  f_fc: [0, 1, 2]
//	  r_t_f: 0.4
package iorc

import (
	"os"

	"github.com/gnames/cyclopts/pkg/problem"
	"gopkg.in/yaml.v3"
)

type runControl struct {
	Species string         `yaml:"species"`
	NInst   int            `yaml:"ninst"`
	Space   map[string]any `yaml:"space"`
}

// Load reads a run-control file. A missing ninst means one instance per
// point.
func Load(path string) (*problem.RunControl, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ReadError(path, err)
	}
	return Parse(path, data)
}

// Parse decodes run-control content. The path is used in errors only.
func Parse(path string, data []byte) (*problem.RunControl, error) {
	var rc runControl
	if err := yaml.Unmarshal(data, &rc); err != nil {
		return nil, ParseError(path, err)
	}
	if rc.Species == "" {
		return nil, SpeciesError(path)
	}
	if rc.NInst < 0 {
		return nil, NInstError(path, rc.NInst)
	}
	if rc.NInst == 0 {
		rc.NInst = 1
	}
	if rc.Space == nil {
		rc.Space = make(map[string]any)
	}
	return &problem.RunControl{
		Species: rc.Species,
		NInst:   rc.NInst,
		Space:   rc.Space,
	}, nil
}
