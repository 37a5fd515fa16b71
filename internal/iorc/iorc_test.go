package iorc_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/cyclopts/internal/iorc"
	"github.com/gnames/cyclopts/pkg/errcode"
	"github.com/gnames/cyclopts/pkg/structured"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rcText = `species: StructuredRequest
ninst: 2
space:
  n_rxtr: [1, 5]
  f_fc: [0, 1, 2]
  r_t_f: 0.4
`

func TestLoad(t *testing.T) {
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "rc.yml")
	require.Nil(t, os.WriteFile(path, []byte(rcText), 0644))

	rc, err := iorc.Load(path)
	require.Nil(t, err)
	assert.Equal("StructuredRequest", rc.Species)
	assert.Equal(2, rc.NInst)
	assert.Equal([]any{1, 5}, rc.Space["n_rxtr"])
	assert.Equal(0.4, rc.Space["r_t_f"])

	sp := structured.NewRequest()
	require.Nil(t, sp.ReadSpace(rc.Space))
	assert.Equal(6, sp.NPoints())
}

func TestParse(t *testing.T) {
	tests := []struct {
		msg  string
		text string
		code gn.ErrorCode
		n    int
	}{
		{"default ninst", "species: RandomRequest\n", 0, 1},
		{"vectors", "species: StructuredSupply\nspace:\n  d_th: [[0.7, 0.3, 0], [1, 0, 0]]\n", 0, 1},
		{"no species", "ninst: 3\n", errcode.RunControlSpeciesError, 0},
		{"negative", "species: RandomRequest\nninst: -1\n", errcode.RunControlParseError, 0},
		{"bad yaml", "species: [\n", errcode.RunControlParseError, 0},
	}
	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			rc, err := iorc.Parse("rc.yml", []byte(v.text))
			if v.code == 0 {
				require.Nil(t, err)
				assert.Equal(t, v.n, rc.NInst)
				assert.NotNil(t, rc.Space)
				return
			}
			var gnErr *gn.Error
			require.True(t, errors.As(err, &gnErr))
			assert.Equal(t, v.code, gnErr.Code)
			assert.Equal(t, "rc.yml", gnErr.Vars[0])
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := iorc.Load(filepath.Join(t.TempDir(), "none.yml"))
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.RunControlReadError, gnErr.Code)
	assert.ErrorIs(t, gnErr.Err, os.ErrNotExist)
}
