package filekv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utsavdwivedi51/Attendance-ERP/storage/kv/kvtest"
)

func TestStore(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	kvtest.Run(t, s)
}

func TestStore_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested", "session")

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "sl_user", []byte("token")))
	require.NoError(t, s.Close())

	reopened, err := Open(dir)
	require.NoError(t, err)
	got, err := reopened.Get(ctx, "sl_user")
	require.NoError(t, err)
	assert.Equal(t, "token", string(got))

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
