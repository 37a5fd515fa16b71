package domain_test

import (
	"math"
	"testing"

	"github.com/gnames/cyclopts/pkg/domain"
	"github.com/gnames/cyclopts/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreference(t *testing.T) {
	assert := assert.New(t)
	got := domain.Preference(0.5, 0.42, 0.72, 2, 5, 0.33)
	exp := 0.5 + 0.33*(math.Exp(-1)+math.Exp(0.42-0.72))/2
	assert.InDelta(exp, got, 1e-12)

	// regions only
	got = domain.Preference(0.5, 0.42, 0.72, 1, 5, 0.33)
	assert.InDelta(0.5+0.33*math.Exp(-1), got, 1e-12)

	// no location
	got = domain.Preference(0.5, 0.42, 0.72, 0, 5, 0.33)
	assert.Equal(0.5, got)
}

func TestRegion(t *testing.T) {
	tests := []struct {
		msg  string
		loc  float64
		nReg int
		exp  int
	}{
		{"zero", 0, 10, 0},
		{"low", 0.42, 5, 2},
		{"high", 0.72, 5, 3},
		{"edge", 0.99, 10, 9},
	}
	for _, v := range tests {
		assert.Equal(t, v.exp, domain.Region(v.loc, v.nReg), v.msg)
	}
}

func TestLookupsIdempotent(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	for range 3 {
		rng, err := domain.EnrRange(domain.Thermal, domain.UOX)
		require.Nil(err)
		assert.Equal(domain.Range{Lo: 3.5, Hi: 5.5}, rng)

		rel, err := domain.RelativeQty(domain.FastMOX, domain.FThOX)
		require.Nil(err)
		assert.Equal(0.2, rel)

		pref, err := domain.RxtrPref(domain.FastThOX, domain.FMOX)
		require.Nil(err)
		assert.Equal(0.5, pref)
	}
}

func TestMissingCommodity(t *testing.T) {
	assert := assert.New(t)
	_, err := domain.EnrRange(domain.Thermal, domain.FThOX)
	assert.NotNil(err)
	gnErr, ok := err.(*gn.Error)
	assert.True(ok)
	assert.Equal(errcode.DomainUnknownCommodityError, gnErr.Code)

	_, err = domain.RxtrPref(domain.Reactor(9), domain.UOX)
	gnErr, ok = err.(*gn.Error)
	assert.True(ok)
	assert.Equal(errcode.DomainUnknownKindError, gnErr.Code)

	_, err = domain.SupToCommod(domain.Repo)
	assert.NotNil(err)

	_, ok = domain.SupPref(domain.SupFThOX, domain.ThMOX)
	assert.False(ok)
}

func TestRxtrCommods(t *testing.T) {
	assert := assert.New(t)
	c := domain.RxtrCommods(domain.Thermal, 0)
	assert.Equal([]domain.Commodity{domain.UOX}, c)
	c = domain.RxtrCommods(domain.Thermal, 2)
	assert.Equal([]domain.Commodity{domain.UOX, domain.ThMOX, domain.FMOX}, c)
	c = domain.RxtrCommods(domain.FastMOX, 2)
	assert.Len(c, 4)
}

func TestConverters(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	// 4.5% product needs (0.045-0.0025)/(0.0072-0.0025) feed per kg
	natu := domain.NatU{}.Convert(1, 4.5, domain.UOX)
	assert.InDelta(9.0426, natu, 1e-4)

	swu := domain.SWU{}.Convert(1, 4.5, domain.UOX)
	assert.InDelta(6.8, swu, 0.01)

	assert.Equal(10.0, domain.RecycleProc{}.Convert(10, 60, domain.UOX))
	assert.Equal(1000.0, domain.RecycleProc{}.Convert(10, 60, domain.FMOX))
	assert.Equal(6.0, domain.RecycleInv{}.Convert(10, 60, domain.FMOX))
	assert.Equal(10.0, domain.RepoProc{}.Convert(10, 60, domain.FMOX))

	r, err := domain.ConvRatio(domain.SupUOX)
	require.Nil(err)
	assert.InDelta(1.33, r, 0.005)

	r, err = domain.ConvRatio(domain.SupFMOX)
	require.Nil(err)
	assert.InDelta(0.006, r, 1e-9)

	_, err = domain.ConvRatio(domain.Repo)
	assert.NotNil(err)

	_, inv, err := domain.Converters(domain.Repo)
	require.Nil(err)
	assert.Nil(inv)
}

func TestStrings(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("th_mox", domain.ThMOX.String())
	assert.Equal("f_thox", domain.FastThOX.String())
	assert.Equal("repo", domain.Repo.String())
	n, err := domain.NAssemblies(domain.Thermal)
	assert.Nil(err)
	assert.Equal(39, n)
	n, _ = domain.NAssemblies(domain.FastMOX)
	assert.Equal(92, n)
}
