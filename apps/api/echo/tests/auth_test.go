package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/utsavdwivedi51/Attendance-ERP/apps/api/echo"
	"github.com/utsavdwivedi51/Attendance-ERP/core/auth"
	"github.com/utsavdwivedi51/Attendance-ERP/core/user"
	"github.com/utsavdwivedi51/Attendance-ERP/tests"
)

func Test_home(t *testing.T) {
	app, _ := setup(t)
	req, rec := newAuthRequest(http.MethodGet, "/", "")
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Attendance ERP API!", rec.Body.String())
}

func Test_authApi_login(t *testing.T) {
	app, env := setup(t)
	testutil.CreateTeacher(t, env.UserRepo, "T001", "Jitendra Kumar", "teacher123", "Admin Jitendra Kumar")
	stu := testutil.CreateStudent(t, env.StudentSvc, "Asha", "1", "CS-7A", "asha@test.in", "asha@1")

	body := func(identifier, pwd, role string) []byte {
		return marshalObj(t, echoapi.LoginRequest{Identifier: identifier, Password: pwd, Role: role})
	}
	invalid := marshalObj(t, httpErr{Error: "invalid credentials"})

	runHTTPTests(t, app, []httpTest{
		{
			name: "empty fields", method: http.MethodPost, path: "/v1/auth/login", body: body(" ", "x", "teacher"),
			wantCode: http.StatusBadRequest, wantData: marshalObj(t, httpErr{Error: "Please fill all fields."}),
		},
		{
			name: "wrong password", method: http.MethodPost, path: "/v1/auth/login", body: body("jitendra kumar", "nope", "teacher"),
			wantCode: http.StatusBadRequest, wantData: invalid,
		},
		{
			name: "wrong role", method: http.MethodPost, path: "/v1/auth/login", body: body(stu.ID, "asha@1", "teacher"),
			wantCode: http.StatusBadRequest, wantData: invalid,
		},
		{name: "malformed body", method: http.MethodPost, path: "/v1/auth/login", body: []byte(`{"identifier":`), wantCode: http.StatusBadRequest},
	})

	tests := []struct {
		name string
		body []byte
		want auth.Session
	}{
		{
			name: "teacher",
			body: body("JITENDRA KUMAR", "teacher123", "teacher"),
			want: auth.Session{ID: "T001", Role: user.RoleTeacher, Name: "Admin Jitendra Kumar", Email: "Jitendra Kumar"},
		},
		{
			name: "student by email",
			body: body("Asha@Test.in", "asha@1", "student"),
			want: auth.Session{ID: stu.ID, Role: user.RoleStudent, Name: "Asha", Email: "asha@test.in", Roll: "1", Class: "CS-7A"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/auth/login", "", tt.body)
			app.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code)

			var resp echoapi.LoginResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.want, resp.Session)
			assert.NotContains(t, rec.Body.String(), "password")

			// the token opens the session
			req, rec = newAuthRequest(http.MethodGet, "/v1/auth/me", resp.Token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marshalObj(t, tt.want)}, rec)
		})
	}
}

func Test_authApi_session(t *testing.T) {
	app, env := setup(t)
	stu := testutil.CreateStudent(t, env.StudentSvc, "Asha", "1", "CS-7A", "", "pw")
	teacher := teacherToken(t, env)
	student := studentToken(t, env, stu)
	forbidden := marshalObj(t, httpErr{Error: "permission denied"})

	runHTTPTests(t, app, []httpTest{
		{name: "auth required", path: "/v1/auth/me", wantCode: http.StatusUnauthorized, wantData: marshalObj(t, errMissingToken)},
		{name: "bad token", path: "/v1/auth/me", token: "garbage", wantCode: http.StatusUnauthorized, wantData: marshalObj(t, errMissingToken)},
		{name: "logout", method: http.MethodPost, path: "/v1/auth/logout", token: student, wantCode: http.StatusNoContent},
		{name: "teacher area needs auth", path: "/v1/students", wantCode: http.StatusUnauthorized, wantData: marshalObj(t, errMissingToken)},
		{name: "students cannot manage roster", path: "/v1/students", token: student, wantCode: http.StatusForbidden, wantData: forbidden},
		{name: "students cannot take attendance", path: "/v1/attendance/2024-05-01", token: student, wantCode: http.StatusForbidden, wantData: forbidden},
		{name: "students cannot see reports", path: "/v1/reports/2024-05", token: student, wantCode: http.StatusForbidden, wantData: forbidden},
		{name: "teachers have no student portal", path: "/v1/me/attendance/2024-05", token: teacher, wantCode: http.StatusForbidden, wantData: forbidden},
	})
}
