package iostore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteReadOnlyMode(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ro.sqlite")
	assert.Equal(t, path, dsn(path, false))
	assert.Equal(t, "file:"+path+"?mode=ro", dsn(path, true))

	store, err := OpenSQLite(ctx, path, false)
	require.Nil(t, err)
	require.Nil(t, store.Close())

	store, err = OpenSQLite(ctx, path, true)
	require.Nil(t, err)
	defer store.Close()
	db := store.(*sqliteStore).db
	_, err = db.ExecContext(ctx, "CREATE TABLE extra (a INTEGER)")
	assert.NotNil(t, err)
	var n int
	require.Nil(t, db.QueryRowContext(ctx, "SELECT count(*) FROM _meta").Scan(&n))
	assert.Positive(t, n)
}
