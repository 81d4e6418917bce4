package attendance

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/utsavdwivedi51/Attendance-ERP/core"
)

// Percentage rounds part/total*100 half up; a zero total yields 0.
func Percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Floor(float64(part)/float64(total)*100 + 0.5))
}

// Upsert overwrites the status of the (date, studentID) record or appends a new one.
func Upsert(records []Record, rec Record) []Record {
	for i := range records {
		if records[i].Date == rec.Date && records[i].StudentID == rec.StudentID {
			records[i].Status = rec.Status
			return records
		}
	}
	return append(records, rec)
}

// InMonth keeps the records whose date starts with month (YYYY-MM), preserving order.
// An empty studentID keeps every student.
func InMonth(records []Record, month, studentID string) []Record {
	filtered := make([]Record, 0)
	for _, r := range records {
		if !strings.HasPrefix(r.Date, month) {
			continue
		}
		if studentID != "" && r.StudentID != studentID {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// TallyByStudent counts statuses per student ID.
func TallyByStudent(records []Record) map[string]Tally {
	tallies := make(map[string]Tally)
	for _, r := range records {
		t := tallies[r.StudentID]
		switch r.Status {
		case StatusPresent:
			t.Present++
		case StatusAbsent:
			t.Absent++
		}
		tallies[r.StudentID] = t
	}
	return tallies
}

// SortByDate sorts records ascending by date, keeping the stored order of equal dates.
func SortByDate(records []Record) {
	sort.SliceStable(records, func(i, j int) bool { return records[i].Date < records[j].Date })
}

// Streak walks date-ascending records and returns the run of Present records ending at the last Present one:
// the count resets to 1 whenever two successive Present dates are not exactly one calendar day apart.
// Absent records are skipped entirely.
func Streak(records []Record) int {
	var (
		streak int
		prev   string
	)
	for _, r := range records {
		if r.Status != StatusPresent {
			continue
		}
		if prev == "" || daysBetween(prev, r.Date) != 1 {
			streak = 1
		} else {
			streak++
		}
		prev = r.Date
	}
	return streak
}

// daysBetween returns the number of days from a to b, or 0 when either date is unparsable.
func daysBetween(a, b string) int {
	t1, err := time.Parse(core.DateLayout, a)
	if err != nil {
		return 0
	}
	t2, err := time.Parse(core.DateLayout, b)
	if err != nil {
		return 0
	}
	return int(t2.Sub(t1).Hours() / 24)
}
