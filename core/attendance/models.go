package attendance

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/utsavdwivedi51/Attendance-ERP/core"
	"github.com/utsavdwivedi51/Attendance-ERP/core/student"
)

type Status string

const (
	StatusPresent Status = "P"
	StatusAbsent  Status = "A"
)

// ParseStatus normalizes user input such as " p" to a Status. The result may still be invalid.
func ParseStatus(s string) Status {
	return Status(strings.ToUpper(core.CleanString(s)))
}

func (s Status) Valid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// Label is the word used in exports: "Present" or "Absent".
func (s Status) Label() string {
	if s == StatusPresent {
		return "Present"
	}
	return "Absent"
}

// Record is one student's status for one calendar day. Date is YYYY-MM-DD.
type Record struct {
	Date      string `json:"date"`
	StudentID string `json:"studentId"`
	Status    Status `json:"status"`
}

// Mark is the display state of a student for a day. Unmarked means no record exists.
type Mark string

const (
	MarkPresent  Mark = "present"
	MarkAbsent   Mark = "absent"
	MarkUnmarked Mark = "unmarked"
)

func markOf(status Status, ok bool) Mark {
	switch {
	case !ok:
		return MarkUnmarked
	case status == StatusPresent:
		return MarkPresent
	default:
		return MarkAbsent
	}
}

// RosterRow is one line of the attendance-taking view.
type RosterRow struct {
	Student student.Student `json:"student"`
	Mark    Mark            `json:"mark"`
}

// ViewFilter narrows the attendance-taking view. Empty fields do not filter.
type ViewFilter struct {
	Class  string `query:"class"`
	Search string `query:"search"`
}

// MarkRequest sets one student's status for one day.
type MarkRequest struct {
	Date      string `json:"date" validate:"required,isodate"`
	StudentID string `json:"studentId" validate:"required"`
	Status    Status `json:"status" validate:"required,oneof=P A"`
}

func (mr *MarkRequest) Validate(validate *validator.Validate) error {
	mr.Date = core.CleanString(mr.Date)
	mr.StudentID = core.CleanString(mr.StudentID)
	mr.Status = ParseStatus(string(mr.Status))
	return validate.Struct(mr)
}

// MonthRequest names a calendar month as YYYY-MM. The value is matched as given, so it is not trimmed.
type MonthRequest struct {
	Month string `json:"month" validate:"required,yearmonth"`
}

func (mr *MonthRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(mr)
}

// Standing buckets an attendance percentage.
type Standing string

const (
	StandingGood    Standing = "good"    // >= 75%
	StandingWarning Standing = "warning" // >= 50%
	StandingPoor    Standing = "poor"
)

func StandingOf(pct int) Standing {
	switch {
	case pct >= 75:
		return StandingGood
	case pct >= 50:
		return StandingWarning
	default:
		return StandingPoor
	}
}

// Tally counts present and absent records.
type Tally struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
}

func (t Tally) Total() int { return t.Present + t.Absent }

// Percentage is round(present/total*100), 0 when there is nothing to count.
func (t Tally) Percentage() int {
	return Percentage(t.Present, t.Total())
}

// ReportRow is one student's line in the monthly report.
type ReportRow struct {
	Student    student.Student `json:"student"`
	Present    int             `json:"present"`
	Absent     int             `json:"absent"`
	Percentage int             `json:"percentage"`
	Standing   Standing        `json:"standing"`
}

// StudentMonth is a student's own view of one month.
type StudentMonth struct {
	StudentID  string   `json:"studentId"`
	Month      string   `json:"month"`
	Records    []Record `json:"records"`
	Present    int      `json:"present"`
	Absent     int      `json:"absent"`
	Percentage int      `json:"percentage"`
	Streak     int      `json:"streak"`
}

// Stats summarizes the store for dashboards.
type Stats struct {
	Students       int    `json:"students"`
	Classes        int    `json:"classes"`
	Records        int    `json:"records"`
	Day            string `json:"day"`
	DayMarked      int    `json:"dayMarked"`
	DayPresentRate int    `json:"dayPresentRate"`
}
