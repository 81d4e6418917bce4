package attendance

import (
	"context"

	"github.com/pkg/errors"

	"github.com/utsavdwivedi51/Attendance-ERP/core/student"
)

// MonthlyReport returns one row per enrolled student, in enrollment order, with the month's tallies.
// Records of students no longer enrolled are ignored.
func (svc *Service) MonthlyReport(ctx context.Context, month string) ([]ReportRow, error) {
	if err := svc.checkMonth(month); err != nil {
		return nil, err
	}
	students, err := svc.roster.QueryAllStudents(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	records, err := svc.repo.QueryAllRecords(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying records")
	}
	return BuildReport(students, InMonth(records, month, "")), nil
}

// BuildReport aggregates monthRecords for each of students.
func BuildReport(students []student.Student, monthRecords []Record) []ReportRow {
	tallies := TallyByStudent(monthRecords)
	rows := make([]ReportRow, 0, len(students))
	for _, s := range students {
		t := tallies[s.ID]
		pct := t.Percentage()
		rows = append(rows, ReportRow{
			Student:    s,
			Present:    t.Present,
			Absent:     t.Absent,
			Percentage: pct,
			Standing:   StandingOf(pct),
		})
	}
	return rows
}

// StudentMonthlyView returns a student's records of month sorted by date with tallies and the present streak.
func (svc *Service) StudentMonthlyView(ctx context.Context, studentID, month string) (StudentMonth, error) {
	records, err := svc.MonthRecords(ctx, month, studentID)
	if err != nil {
		return StudentMonth{}, err
	}
	SortByDate(records)

	t := TallyByStudent(records)[studentID]
	return StudentMonth{
		StudentID:  studentID,
		Month:      month,
		Records:    records,
		Present:    t.Present,
		Absent:     t.Absent,
		Percentage: t.Percentage(),
		Streak:     Streak(records),
	}, nil
}

// Stats counts students, classes and records, and the marks of day.
func (svc *Service) Stats(ctx context.Context, day string) (Stats, error) {
	if err := checkDate(day); err != nil {
		return Stats{}, err
	}
	students, err := svc.roster.QueryAllStudents(ctx)
	if err != nil {
		return Stats{}, errors.Wrap(err, "querying students")
	}
	records, err := svc.repo.QueryAllRecords(ctx)
	if err != nil {
		return Stats{}, errors.Wrap(err, "querying records")
	}

	var marked, present int
	for _, r := range records {
		if r.Date != day {
			continue
		}
		marked++
		if r.Status == StatusPresent {
			present++
		}
	}
	return Stats{
		Students:       len(students),
		Classes:        len(student.Classes(students)),
		Records:        len(records),
		Day:            day,
		DayMarked:      marked,
		DayPresentRate: Percentage(present, marked),
	}, nil
}
