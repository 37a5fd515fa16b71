package species_test

import (
	"errors"
	"testing"

	"github.com/gnames/cyclopts/pkg/errcode"
	"github.com/gnames/cyclopts/pkg/species"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	assert := assert.New(t)
	reg := species.Registry()
	assert.Equal([]string{"ResourceExchange"}, reg.FamilyNames())
	assert.Equal(
		[]string{"RandomRequest", "StructuredRequest", "StructuredSupply"},
		reg.SpeciesNames(),
	)

	for _, name := range reg.SpeciesNames() {
		sp, err := reg.Species(name)
		require.Nil(t, err)
		assert.Equal(name, sp.Name())
		fam, err := reg.Family(sp.Family().Name())
		require.Nil(t, err)
		assert.Equal("/Family/ResourceExchange", fam.Prefix())
	}

	// every lookup gives a species with its own space
	sp1, _ := reg.Species("StructuredRequest")
	sp2, _ := reg.Species("StructuredRequest")
	require.Nil(t, sp1.ReadSpace(map[string]any{"n_rxtr": []any{1, 2, 3}}))
	assert.Equal(3, sp1.NPoints())
	assert.Equal(1, sp2.NPoints())

	_, err := reg.Species("Structured")
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(errcode.SpeciesUnknownError, gnErr.Code)
	assert.Contains(gnErr.Vars, "Structured")
}
