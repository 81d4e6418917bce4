package kvrepos_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utsavdwivedi51/Attendance-ERP/core/attendance"
	"github.com/utsavdwivedi51/Attendance-ERP/core/student"
	"github.com/utsavdwivedi51/Attendance-ERP/core/user"
	"github.com/utsavdwivedi51/Attendance-ERP/storage/kv/memory"
	"github.com/utsavdwivedi51/Attendance-ERP/storage/repos"
	"github.com/utsavdwivedi51/Attendance-ERP/tests"
)

func TestCollections(t *testing.T) {
	ctx := context.Background()
	store := memkv.Open()
	logger := new(testutil.Logger)
	users := kvrepos.NewUserRepository(store, logger)
	students := kvrepos.NewStudentRepository(store, logger)
	records := kvrepos.NewAttendanceRepository(store, logger)

	t.Run("empty when never written", func(t *testing.T) {
		u, err := users.QueryAllUsers(ctx)
		require.NoError(t, err)
		assert.Equal(t, []user.User{}, u)
		s, err := students.QueryAllStudents(ctx)
		require.NoError(t, err)
		assert.Equal(t, []student.Student{}, s)
		r, err := records.QueryAllRecords(ctx)
		require.NoError(t, err)
		assert.Equal(t, []attendance.Record{}, r)
		assert.Empty(t, logger.Messages)
	})

	t.Run("persisted layout", func(t *testing.T) {
		require.NoError(t, students.SaveStudents(ctx, []student.Student{
			{ID: "S0001", Name: "Asha", Roll: "1", Class: "CS-7A", Password: "pw"},
		}))
		raw, err := store.Get(ctx, kvrepos.KeyStudents)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id":"S0001","name":"Asha","roll":"1","class":"CS-7A","email":"","password":"pw"}]`, string(raw))

		require.NoError(t, records.SaveRecords(ctx, []attendance.Record{{Date: "2024-05-01", StudentID: "S0001", Status: "P"}}))
		raw, err = store.Get(ctx, kvrepos.KeyAttendance)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"date":"2024-05-01","studentId":"S0001","status":"P"}]`, string(raw))

		require.NoError(t, users.SaveUsers(ctx, nil))
		raw, err = store.Get(ctx, kvrepos.KeyUsers)
		require.NoError(t, err)
		assert.Equal(t, `[]`, string(raw))
	})

	t.Run("corrupt collection falls back to empty", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, kvrepos.KeyStudents, []byte(`[{"id":`)))
		s, err := students.QueryAllStudents(ctx)
		require.NoError(t, err)
		assert.Empty(t, s)
		require.Len(t, logger.Messages, 1)
		assert.Contains(t, logger.Messages[0], "warn")
	})
}

func TestSeedFlag(t *testing.T) {
	ctx := context.Background()
	store := memkv.Open()
	flag := kvrepos.NewSeedFlag(store, new(testutil.Logger))

	seeded, err := flag.IsSeeded(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	require.NoError(t, flag.SetSeeded(ctx, true))
	raw, err := store.Get(ctx, kvrepos.KeySeeded)
	require.NoError(t, err)
	assert.Equal(t, "true", string(raw))

	seeded, err = flag.IsSeeded(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)
}

func TestTokenStore(t *testing.T) {
	ctx := context.Background()
	ts := kvrepos.NewTokenStore(memkv.Open())

	token, err := ts.LoadToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, ts.SaveToken(ctx, "abc.def.ghi"))
	token, err = ts.LoadToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	require.NoError(t, ts.ClearToken(ctx))
	require.NoError(t, ts.ClearToken(ctx))
	token, err = ts.LoadToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}
