package iofs

import (
	"errors"
	"testing"

	"github.com/gnames/cyclopts/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	orig := errors.New("permission denied")
	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
		path string
		text string
	}{
		{"dir", CreateDirError("/test/dir", orig), errcode.CreateDirError, "/test/dir", "cannot create"},
		{"copy", CopyFileError("/test/config.yaml", orig), errcode.CopyFileError, "/test/config.yaml", "cannot copy"},
		{"read", ReadFileError("/test/rc.yml", orig), errcode.ReadFileError, "/test/rc.yml", "cannot read"},
	}
	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			var gnErr *gn.Error
			require.True(t, errors.As(v.err, &gnErr))
			assert.Equal(t, v.code, gnErr.Code)
			assert.Contains(t, gnErr.Msg, "%s")
			assert.Equal(t, []any{v.path}, gnErr.Vars)
			assert.ErrorIs(t, gnErr.Err, orig)
			assert.Contains(t, gnErr.Err.Error(), v.text)
		})
	}
}
