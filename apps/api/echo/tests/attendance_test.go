package tests

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utsavdwivedi51/Attendance-ERP/core/attendance"
	"github.com/utsavdwivedi51/Attendance-ERP/tests"
)

func Test_attendanceApi(t *testing.T) {
	app, env := setup(t)
	token := teacherToken(t, env)
	asha := testutil.CreateStudent(t, env.StudentSvc, "Asha", "1", "CS-7A", "", "pw")
	ravi := testutil.CreateStudent(t, env.StudentSvc, "Ravi", "2", "CS-7B", "", "pw")

	runHTTPTests(t, app, []httpTest{
		{
			name: "mark", method: http.MethodPut, path: "/v1/attendance/2024-05-01/" + asha.ID, token: token,
			body: []byte(`{"status":"p"}`), wantCode: http.StatusNoContent,
		},
		{
			name: "mark (bad status)", method: http.MethodPut, path: "/v1/attendance/2024-05-01/" + asha.ID, token: token,
			body: []byte(`{"status":"late"}`), wantCode: http.StatusBadRequest,
		},
		{
			name: "mark (bad date)", method: http.MethodPut, path: "/v1/attendance/05-01-2024/" + asha.ID, token: token,
			body: []byte(`{"status":"A"}`), wantCode: http.StatusBadRequest,
		},
		{
			name: "view", path: "/v1/attendance/2024-05-01", token: token, wantCode: http.StatusOK,
			wantData: marshalObj(t, []attendance.RosterRow{
				{Student: asha, Mark: attendance.MarkPresent},
				{Student: ravi, Mark: attendance.MarkUnmarked},
			}),
		},
		{
			name: "view (class)", path: "/v1/attendance/2024-05-01?class=CS-7B", token: token, wantCode: http.StatusOK,
			wantData: marshalObj(t, []attendance.RosterRow{{Student: ravi, Mark: attendance.MarkUnmarked}}),
		},
		{
			name: "view (bad date)", path: "/v1/attendance/today", token: token, wantCode: http.StatusBadRequest,
			wantData: []byte(`{"date":"date must be formatted as YYYY-MM-DD"}`),
		},
		{
			name: "mark all", method: http.MethodPost, path: "/v1/attendance/2024-05-02/mark-all", token: token,
			wantCode: http.StatusOK, wantData: []byte(`{"count":2}`),
		},
		{
			name: "mark absent", method: http.MethodPut, path: "/v1/attendance/2024-05-02/" + ravi.ID, token: token,
			body: []byte(`{"status":"A"}`), wantCode: http.StatusNoContent,
		},
		{
			name: "report", path: "/v1/reports/2024-05", token: token, wantCode: http.StatusOK,
			wantData: marshalObj(t, []attendance.ReportRow{
				{Student: asha, Present: 2, Percentage: 100, Standing: attendance.StandingGood},
				{Student: ravi, Absent: 1, Percentage: 0, Standing: attendance.StandingPoor},
			}),
		},
		{
			name: "report (bad month)", path: "/v1/reports/2024-5", token: token, wantCode: http.StatusBadRequest,
			wantData: []byte(`{"month":"month must be formatted as YYYY-MM"}`),
		},
		{
			name: "student monthly view", path: "/v1/students/" + asha.ID + "/attendance/2024-05", token: token, wantCode: http.StatusOK,
			wantData: marshalObj(t, attendance.StudentMonth{
				StudentID: asha.ID,
				Month:     "2024-05",
				Records: []attendance.Record{
					{Date: "2024-05-01", StudentID: asha.ID, Status: attendance.StatusPresent},
					{Date: "2024-05-02", StudentID: asha.ID, Status: attendance.StatusPresent},
				},
				Present:    2,
				Percentage: 100,
				Streak:     2,
			}),
		},
		{
			name: "clear day (unconfirmed)", method: http.MethodDelete, path: "/v1/attendance/2024-05-02", token: token,
			wantCode: http.StatusBadRequest, wantData: []byte(`{"confirm":"clearing a day cannot be undone, pass confirm=true"}`),
		},
		{
			name: "clear day", method: http.MethodDelete, path: "/v1/attendance/2024-05-02?confirm=true", token: token,
			wantCode: http.StatusOK, wantData: []byte(`{"count":2}`),
		},
		{
			name: "report after clear", path: "/v1/reports/2024-05", token: token, wantCode: http.StatusOK,
			wantData: marshalObj(t, []attendance.ReportRow{
				{Student: asha, Present: 1, Percentage: 100, Standing: attendance.StandingGood},
				{Student: ravi, Standing: attendance.StandingPoor},
			}),
		},
	})
}

func Test_attendanceApi_export(t *testing.T) {
	app, env := setup(t)
	token := teacherToken(t, env)
	asha := testutil.CreateStudent(t, env.StudentSvc, "Asha", "1", "CS-7A", "", "pw")
	testutil.Mark(t, env.AttendanceSvc, "2024-05-02", asha.ID, attendance.StatusAbsent)
	testutil.Mark(t, env.AttendanceSvc, "2024-05-01", asha.ID, attendance.StatusPresent)
	testutil.Mark(t, env.AttendanceSvc, "2024-05-01", "S0404", attendance.StatusPresent)
	testutil.Mark(t, env.AttendanceSvc, "2024-06-01", asha.ID, attendance.StatusPresent)

	req, rec := newAuthRequest(http.MethodGet, "/v1/reports/2024-05/export.csv", token)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="attendance_2024-05.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "\"Date\",\"Student ID\",\"Name\",\"Roll\",\"Class\",\"Status\"\n"+
		"\"2024-05-02\",\"S0001\",\"Asha\",\"1\",\"CS-7A\",\"Absent\"\n"+
		"\"2024-05-01\",\"S0001\",\"Asha\",\"1\",\"CS-7A\",\"Present\"", rec.Body.String())

	req, rec = newAuthRequest(http.MethodGet, "/v1/reports/2024-05/export.xlsx", token)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="attendance_2024-05.xlsx"`, rec.Header().Get("Content-Disposition"))

	// student portal
	stuToken := studentToken(t, env, asha)
	req, rec = newAuthRequest(http.MethodGet, "/v1/me/attendance/2024-06/export.csv", stuToken)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="attendance_S0001_2024-06.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "\"Date\",\"Student ID\",\"Name\",\"Roll\",\"Class\",\"Status\"\n"+
		"\"2024-06-01\",\"S0001\",\"Asha\",\"1\",\"CS-7A\",\"Present\"", rec.Body.String())
}

func Test_attendanceApi_studentPortal(t *testing.T) {
	app, env := setup(t)
	asha := testutil.CreateStudent(t, env.StudentSvc, "Asha", "1", "CS-7A", "", "pw")
	ravi := testutil.CreateStudent(t, env.StudentSvc, "Ravi", "2", "CS-7A", "", "pw")
	testutil.Mark(t, env.AttendanceSvc, "2024-05-01", asha.ID, attendance.StatusPresent)
	testutil.Mark(t, env.AttendanceSvc, "2024-05-03", asha.ID, attendance.StatusPresent)
	testutil.Mark(t, env.AttendanceSvc, "2024-05-01", ravi.ID, attendance.StatusAbsent)

	runHTTPTests(t, app, []httpTest{
		{
			name: "own month", path: "/v1/me/attendance/2024-05", token: studentToken(t, env, asha), wantCode: http.StatusOK,
			wantData: marshalObj(t, attendance.StudentMonth{
				StudentID: asha.ID,
				Month:     "2024-05",
				Records: []attendance.Record{
					{Date: "2024-05-01", StudentID: asha.ID, Status: attendance.StatusPresent},
					{Date: "2024-05-03", StudentID: asha.ID, Status: attendance.StatusPresent},
				},
				Present:    2,
				Percentage: 100,
				Streak:     1,
			}),
		},
		{
			name: "empty month", path: "/v1/me/attendance/2024-07", token: studentToken(t, env, ravi), wantCode: http.StatusOK,
			wantData: marshalObj(t, attendance.StudentMonth{StudentID: ravi.ID, Month: "2024-07", Records: []attendance.Record{}}),
		},
	})
}

func Test_statsApi(t *testing.T) {
	app, env := setup(t)
	testutil.FreezeTime(t, time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC))
	asha := testutil.CreateStudent(t, env.StudentSvc, "Asha", "1", "CS-7A", "", "pw")
	ravi := testutil.CreateStudent(t, env.StudentSvc, "Ravi", "2", "CS-7B", "", "pw")
	testutil.Mark(t, env.AttendanceSvc, "2024-05-01", asha.ID, attendance.StatusPresent)
	testutil.Mark(t, env.AttendanceSvc, "2024-05-01", ravi.ID, attendance.StatusAbsent)
	testutil.Mark(t, env.AttendanceSvc, "2024-04-30", ravi.ID, attendance.StatusAbsent)

	want := marshalObj(t, attendance.Stats{Students: 2, Classes: 2, Records: 3, Day: "2024-05-01", DayMarked: 2, DayPresentRate: 50})
	runHTTPTests(t, app, []httpTest{
		{name: "public landing stats", path: "/v1/stats", wantCode: http.StatusOK, wantData: want},
		{name: "dashboard", path: "/v1/dashboard", token: teacherToken(t, env), wantCode: http.StatusOK, wantData: want},
	})
}

func Test_metrics(t *testing.T) {
	app, env := setup(t)
	token := teacherToken(t, env)
	testutil.CreateStudent(t, env.StudentSvc, "Asha", "1", "CS-7A", "", "pw")

	req, rec := newAuthRequest(http.MethodPost, "/v1/attendance/2024-05-01/mark-all", token)
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req, rec = newAuthRequest(http.MethodGet, "/metrics", "")
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `attendance_marks_total{status="P"} 1`)
	assert.Contains(t, rec.Body.String(), `attendance_http_requests_total{code="200",method="POST",route="/v1/attendance/:date/mark-all"} 1`)
}
