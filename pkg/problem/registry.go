package problem

import (
	"maps"
	"slices"
)

// Registry looks up families and species by name. Species are created
// fresh on every lookup because they keep their parameter space.
type Registry struct {
	families map[string]Family
	species  map[string]func() Species
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		families: make(map[string]Family),
		species:  make(map[string]func() Species),
	}
}

// AddFamily registers a family under its name.
func (r *Registry) AddFamily(f Family) {
	r.families[f.Name()] = f
}

// AddSpecies registers a species constructor under a name.
func (r *Registry) AddSpecies(name string, fn func() Species) {
	r.species[name] = fn
}

// Family returns a registered family.
func (r *Registry) Family(name string) (Family, error) {
	res, ok := r.families[name]
	if !ok {
		return nil, UnknownFamilyError(name, r.FamilyNames())
	}
	return res, nil
}

// Species creates a new registered species.
func (r *Registry) Species(name string) (Species, error) {
	fn, ok := r.species[name]
	if !ok {
		return nil, UnknownSpeciesError(name, r.SpeciesNames())
	}
	return fn(), nil
}

// FamilyNames returns sorted names of registered families.
func (r *Registry) FamilyNames() []string {
	return slices.Sorted(maps.Keys(r.families))
}

// SpeciesNames returns sorted names of registered species.
func (r *Registry) SpeciesNames() []string {
	return slices.Sorted(maps.Keys(r.species))
}
