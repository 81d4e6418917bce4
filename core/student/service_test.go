package student_test

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utsavdwivedi51/Attendance-ERP/core"
	"github.com/utsavdwivedi51/Attendance-ERP/core/attendance"
	"github.com/utsavdwivedi51/Attendance-ERP/core/student"
	"github.com/utsavdwivedi51/Attendance-ERP/tests"
)

func TestService_Create(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()

	origRandomPassword := student.RandomPassword
	student.RandomPassword = func() string { return "abc123" }
	defer func() { student.RandomPassword = origRandomPassword }()

	t.Run("success", func(t *testing.T) {
		stu, err := env.StudentSvc.Create(ctx, student.NewStudent{
			Name:  "  Asha Rao ",
			Roll:  " 7 ",
			Class: "CS-7A",
			Email: "asha@test.in",
		})
		require.NoError(t, err)
		assert.Equal(t, student.Student{
			ID:       "S0007",
			Name:     "Asha Rao",
			Roll:     "7",
			Class:    "CS-7A",
			Email:    "asha@test.in",
			Password: "abc123",
		}, stu)

		found, err := env.StudentSvc.Search(ctx, "7")
		require.NoError(t, err)
		assert.Len(t, found, 1)
	})

	t.Run("keeps given password", func(t *testing.T) {
		stu, err := env.StudentSvc.Create(ctx, student.NewStudent{Name: "Ravi", Roll: "8", Class: "CS-7A", Password: "ravi@1"})
		require.NoError(t, err)
		assert.Equal(t, "ravi@1", stu.Password)
	})

	t.Run("duplicate roll", func(t *testing.T) {
		before, err := env.StudentSvc.QueryAll(ctx)
		require.NoError(t, err)

		_, err = env.StudentSvc.Create(ctx, student.NewStudent{Name: "Other", Roll: "007", Class: "CS-7B"})
		var vErr *core.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, student.ErrRollExists, vErr.Err)
		assert.Equal(t, "roll", vErr.Fields[0].Field)

		after, err := env.StudentSvc.QueryAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	missing := []struct {
		name  string
		ns    student.NewStudent
		field string
	}{
		{name: "name", ns: student.NewStudent{Name: " ", Roll: "9", Class: "CS-7A"}, field: "name"},
		{name: "roll", ns: student.NewStudent{Name: "X", Class: "CS-7A"}, field: "roll"},
		{name: "class", ns: student.NewStudent{Name: "X", Roll: "9"}, field: "class"},
	}
	for _, tt := range missing {
		t.Run("missing "+tt.name, func(t *testing.T) {
			_, err := env.StudentSvc.Create(ctx, tt.ns)
			var vErrs validator.ValidationErrors
			require.True(t, errors.As(err, &vErrs))
			assert.Equal(t, tt.field, vErrs[0].Field())
		})
	}
}

func TestService_Search(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()
	s1 := testutil.CreateStudent(t, env.StudentSvc, "Utsav Dwivedi", "176", "CS-7A", "", "pw")
	s2 := testutil.CreateStudent(t, env.StudentSvc, "Raj Dwivedi", "150", "CS-7B", "", "pw")
	s3 := testutil.CreateStudent(t, env.StudentSvc, "Akshay Yadav", "54", "CS-7B", "", "pw")

	tests := []struct {
		query string
		want  []student.Student
	}{
		{query: "", want: []student.Student{s1, s2, s3}},
		{query: "DWIVEDI", want: []student.Student{s1, s2}},
		{query: "7b", want: []student.Student{s2, s3}},
		{query: "54", want: []student.Student{s3}},
		{query: "nobody", want: []student.Student{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := env.StudentSvc.Search(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Delete(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()
	s1 := testutil.CreateStudent(t, env.StudentSvc, "Asha", "1", "CS-7A", "", "pw")
	s2 := testutil.CreateStudent(t, env.StudentSvc, "Ravi", "2", "CS-7A", "", "pw")
	testutil.Mark(t, env.AttendanceSvc, "2024-05-01", s1.ID, attendance.StatusPresent)
	testutil.Mark(t, env.AttendanceSvc, "2024-05-02", s1.ID, attendance.StatusAbsent)
	testutil.Mark(t, env.AttendanceSvc, "2024-05-01", s2.ID, attendance.StatusPresent)

	require.NoError(t, env.StudentSvc.Delete(ctx, s1.ID))

	students, err := env.StudentSvc.QueryAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []student.Student{s2}, students)

	records, err := env.AttendanceRepo.QueryAllRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, []attendance.Record{{Date: "2024-05-01", StudentID: s2.ID, Status: attendance.StatusPresent}}, records)

	t.Run("unknown id is a no-op", func(t *testing.T) {
		require.NoError(t, env.StudentSvc.Delete(ctx, "S0404"))
		students, err := env.StudentSvc.QueryAll(ctx)
		require.NoError(t, err)
		assert.Len(t, students, 1)
	})
}

// flakyPurger fails its first call, then delegates.
type flakyPurger struct {
	next  student.AttendancePurger
	calls int
}

func (p *flakyPurger) DeleteByStudent(ctx context.Context, id string) error {
	p.calls++
	if p.calls == 1 {
		return errors.New("store unavailable")
	}
	return p.next.DeleteByStudent(ctx, id)
}

func TestService_Delete_retryAfterPurgeFailure(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()
	validate, _ := core.NewValidator()
	purger := &flakyPurger{next: env.AttendanceSvc}
	svc := student.NewService(env.StudentRepo, purger, validate)

	stu := testutil.CreateStudent(t, svc, "Asha", "1", "CS-7A", "", "pw")
	testutil.Mark(t, env.AttendanceSvc, "2024-05-01", stu.ID, attendance.StatusPresent)

	require.Error(t, svc.Delete(ctx, stu.ID))
	_, err := svc.GetByID(ctx, stu.ID)
	require.NoError(t, err, "student must stay enrolled while records remain")

	require.NoError(t, svc.Delete(ctx, stu.ID))
	assert.Equal(t, 2, purger.calls)
	_, err = svc.GetByID(ctx, stu.ID)
	assert.Equal(t, student.ErrNotFound, err)
	records, err := env.AttendanceRepo.QueryAllRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	t.Run("re-enrolled roll starts with no history", func(t *testing.T) {
		again := testutil.CreateStudent(t, svc, "Asha", "1", "CS-7A", "", "pw")
		view, err := env.AttendanceSvc.StudentMonthlyView(ctx, again.ID, "2024-05")
		require.NoError(t, err)
		assert.Empty(t, view.Records)
	})
}

func TestService_Delete_unknownIDPurgesOrphans(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()
	testutil.Mark(t, env.AttendanceSvc, "2024-05-01", "S0404", attendance.StatusAbsent)

	require.NoError(t, env.StudentSvc.Delete(ctx, "S0404"))
	records, err := env.AttendanceRepo.QueryAllRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestService_ResetPassword(t *testing.T) {
	env := testutil.NewEnv(t)
	ctx := context.Background()
	stu := testutil.CreateStudent(t, env.StudentSvc, "Asha", "1", "CS-7A", "", "old")

	require.NoError(t, env.StudentSvc.ResetPassword(ctx, stu.ID, student.ResetPassword{Password: " new "}))
	got, err := env.StudentSvc.GetByID(ctx, stu.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Password)

	assert.Equal(t, student.ErrNotFound, env.StudentSvc.ResetPassword(ctx, "S0404", student.ResetPassword{Password: "x"}))
	assert.Error(t, env.StudentSvc.ResetPassword(ctx, stu.ID, student.ResetPassword{Password: "  "}))

	_, err = env.StudentSvc.GetByID(ctx, "S0404")
	assert.Equal(t, student.ErrNotFound, err)
}

func TestService_DistinctClasses(t *testing.T) {
	env := testutil.NewEnv(t)
	testutil.CreateStudent(t, env.StudentSvc, "Asha", "1", "CS-7B", "", "pw")
	testutil.CreateStudent(t, env.StudentSvc, "Ravi", "2", "CS-7A", "", "pw")
	testutil.CreateStudent(t, env.StudentSvc, "Chandra", "3", "CS-7B", "", "pw")

	classes, err := env.StudentSvc.DistinctClasses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"CS-7A", "CS-7B"}, classes)
}
