package testutil

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utsavdwivedi51/Attendance-ERP/core"
	"github.com/utsavdwivedi51/Attendance-ERP/core/attendance"
	"github.com/utsavdwivedi51/Attendance-ERP/core/student"
)

func TestNewEnv_TranslatesValidationErrors(t *testing.T) {
	env := NewEnv(t)
	ctx := context.Background()

	_, err := env.StudentSvc.Create(ctx, student.NewStudent{Roll: "1", Class: "CS-7A"})
	var vErrs validator.ValidationErrors
	require.ErrorAs(t, err, &vErrs)
	assert.Equal(t, map[string]string{"name": "this field is required"}, core.TranslateErrors(vErrs, env.Translator))

	err = env.AttendanceSvc.SetStatus(ctx, "2024-05-03", "S0001", attendance.Status("X"))
	require.ErrorAs(t, err, &vErrs)
	assert.Equal(t, map[string]string{"status": "status must be one of [P A]"}, core.TranslateErrors(vErrs, env.Translator))
}
