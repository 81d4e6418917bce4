// Package kvtest holds the behaviour every kv.Store backend must share.
package kvtest

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utsavdwivedi51/Attendance-ERP/storage/kv"
)

// Run exercises s against the kv.Store contract. s must be empty.
func Run(t *testing.T, s kv.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("get missing key", func(t *testing.T) {
		_, err := s.Get(ctx, "missing")
		assert.Equal(t, kv.ErrNotFound, errors.Cause(err))
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "sl_students", []byte(`[{"id":"S0001"}]`)))
		got, err := s.Get(ctx, "sl_students")
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"S0001"}]`, string(got))
	})

	t.Run("set replaces whole value", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "sl_students", []byte(`[]`)))
		got, err := s.Get(ctx, "sl_students")
		require.NoError(t, err)
		assert.Equal(t, `[]`, string(got))
	})

	t.Run("keys are independent", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "sl_seeded", []byte(`true`)))
		got, err := s.Get(ctx, "sl_students")
		require.NoError(t, err)
		assert.Equal(t, `[]`, string(got))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "sl_seeded"))
		_, err := s.Get(ctx, "sl_seeded")
		assert.Equal(t, kv.ErrNotFound, errors.Cause(err))
	})

	t.Run("delete missing key is a no-op", func(t *testing.T) {
		assert.NoError(t, s.Delete(ctx, "never-set"))
	})

	t.Run("typed load", func(t *testing.T) {
		require.NoError(t, kv.Save(ctx, s, "numbers", []int{1, 2, 3}))
		got, status, err := kv.Load(ctx, s, "numbers", []int{})
		require.NoError(t, err)
		assert.Equal(t, kv.Loaded, status)
		assert.Equal(t, []int{1, 2, 3}, got)
	})
}
