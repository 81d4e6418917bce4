// Package export renders rosters and attendance as CSV and Excel downloads.
package export

import (
	"bytes"
	"encoding/csv"
	"strings"

	"github.com/pkg/errors"

	"github.com/utsavdwivedi51/Attendance-ERP/core/attendance"
	"github.com/utsavdwivedi51/Attendance-ERP/core/student"
)

const ContentTypeCSV = "text/csv;charset=utf-8"

var (
	studentsHeader   = []string{"ID", "Name", "Roll", "Class", "Email"}
	attendanceHeader = []string{"Date", "Student ID", "Name", "Roll", "Class", "Status"}
)

// EncodeCSV quotes every cell, doubling inner quotes. Rows are separated by "\n" with no trailing newline.
func EncodeCSV(rows [][]string) []byte {
	var buf bytes.Buffer
	for i, row := range rows {
		if i > 0 {
			buf.WriteByte('\n')
		}
		for j, cell := range row {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.WriteByte('"')
			buf.WriteString(strings.ReplaceAll(cell, `"`, `""`))
			buf.WriteByte('"')
		}
	}
	return buf.Bytes()
}

// DecodeCSV parses data produced by EncodeCSV (or any RFC 4180 input).
// A "\r\n" inside a quoted cell is read back as "\n"; every other cell round-trips exactly.
func DecodeCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "reading csv")
	}
	return rows, nil
}

// StudentRows lists the roster under the ID,Name,Roll,Class,Email header.
func StudentRows(students []student.Student) [][]string {
	rows := make([][]string, 0, len(students)+1)
	rows = append(rows, studentsHeader)
	for _, s := range students {
		rows = append(rows, []string{s.ID, s.Name, s.Roll, s.Class, s.Email})
	}
	return rows
}

// AttendanceRows lists records in the given order under the Date,Student ID,Name,Roll,Class,Status header.
// Records of students missing from the roster are skipped.
func AttendanceRows(records []attendance.Record, students []student.Student) [][]string {
	byID := make(map[string]student.Student, len(students))
	for _, s := range students {
		byID[s.ID] = s
	}
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, attendanceHeader)
	for _, r := range records {
		s, ok := byID[r.StudentID]
		if !ok {
			continue
		}
		rows = append(rows, []string{r.Date, s.ID, s.Name, s.Roll, s.Class, r.Status.Label()})
	}
	return rows
}

func StudentsFileName() string { return "students.csv" }

func MonthFileName(month string) string { return "attendance_" + month + ".csv" }

func StudentMonthFileName(studentID, month string) string {
	return "attendance_" + studentID + "_" + month + ".csv"
}
