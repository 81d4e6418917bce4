package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utsavdwivedi51/Attendance-ERP/core/attendance"
	"github.com/utsavdwivedi51/Attendance-ERP/core/student"
)

func TestEncodeCSV(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want string
	}{
		{name: "empty", rows: nil, want: ""},
		{name: "single cell", rows: [][]string{{"a"}}, want: `"a"`},
		{name: "empty cell", rows: [][]string{{""}}, want: `""`},
		{name: "no trailing newline", rows: [][]string{{"ID", "Name"}, {"S0001", "Asha"}}, want: "\"ID\",\"Name\"\n\"S0001\",\"Asha\""},
		{name: "comma", rows: [][]string{{"Rao, Asha"}}, want: `"Rao, Asha"`},
		{name: "quotes doubled", rows: [][]string{{`say "hi"`}}, want: `"say ""hi"""`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(EncodeCSV(tt.rows)))
		})
	}
}

func TestDecodeCSV_RoundTrip(t *testing.T) {
	rows := [][]string{
		{"Date", "Student ID", "Name"},
		{"2024-05-01", "S0001", `Rao, "Ash" Asha`},
		{"2024-05-02", "", `""`},
		{"multi\nline", "x", "y"},
	}
	got, err := DecodeCSV(EncodeCSV(rows))
	require.NoError(t, err)
	assert.Equal(t, rows, got)

	_, err = DecodeCSV([]byte(`"unterminated`))
	assert.Error(t, err)

	t.Run("CRLF inside a cell becomes LF", func(t *testing.T) {
		got, err := DecodeCSV(EncodeCSV([][]string{{"a\r\nb", "c"}}))
		require.NoError(t, err)
		assert.Equal(t, [][]string{{"a\nb", "c"}}, got)
	})
}

func TestStudentRows(t *testing.T) {
	rows := StudentRows([]student.Student{
		{ID: "S0001", Name: "Asha", Roll: "1", Class: "CS-7A", Email: "asha@test.in", Password: "secret"},
		{ID: "S0002", Name: "Ravi", Roll: "2", Class: "CS-7B"},
	})
	assert.Equal(t, [][]string{
		{"ID", "Name", "Roll", "Class", "Email"},
		{"S0001", "Asha", "1", "CS-7A", "asha@test.in"},
		{"S0002", "Ravi", "2", "CS-7B", ""},
	}, rows)
}

func TestAttendanceRows(t *testing.T) {
	students := []student.Student{{ID: "S0001", Name: "Asha", Roll: "1", Class: "CS-7A"}}
	records := []attendance.Record{
		{Date: "2024-05-02", StudentID: "S0001", Status: attendance.StatusAbsent},
		{Date: "2024-05-01", StudentID: "S0404", Status: attendance.StatusPresent},
		{Date: "2024-05-01", StudentID: "S0001", Status: attendance.StatusPresent},
	}
	assert.Equal(t, [][]string{
		{"Date", "Student ID", "Name", "Roll", "Class", "Status"},
		{"2024-05-02", "S0001", "Asha", "1", "CS-7A", "Absent"},
		{"2024-05-01", "S0001", "Asha", "1", "CS-7A", "Present"},
	}, AttendanceRows(records, students))
}

func TestFileNames(t *testing.T) {
	assert.Equal(t, "students.csv", StudentsFileName())
	assert.Equal(t, "attendance_2024-05.csv", MonthFileName("2024-05"))
	assert.Equal(t, "attendance_S0001_2024-05.csv", StudentMonthFileName("S0001", "2024-05"))
	assert.Equal(t, "attendance_2024-05.xlsx", XLSXFileName(MonthFileName("2024-05")))
}

func TestWriteXLSX(t *testing.T) {
	rows := [][]string{
		{"ID", "Name", "Roll", "Class", "Email"},
		{"S0001", "Rao, Asha", "1", "CS-7A", "asha@test.in"},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, "Students", rows))

	got, err := ReadXLSX(&buf, "Students")
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}
