package attendance

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/utsavdwivedi51/Attendance-ERP/core"
	"github.com/utsavdwivedi51/Attendance-ERP/core/student"
)

var (
	ErrInvalidDate = errors.New("date must be formatted as YYYY-MM-DD")
)

type (
	// Repository reads and writes the whole attendance collection.
	Repository interface {
		QueryAllRecords(ctx context.Context) ([]Record, error)
		SaveRecords(ctx context.Context, records []Record) error
	}

	// Roster lists the currently enrolled students, in enrollment order.
	Roster interface {
		QueryAllStudents(ctx context.Context) ([]student.Student, error)
	}

	Service struct {
		mu       sync.Mutex // serializes read-modify-write cycles
		repo     Repository
		roster   Roster
		validate *validator.Validate
	}
)

var _ student.AttendancePurger = (*Service)(nil)

func NewService(repo Repository, roster Roster, validate *validator.Validate) *Service {
	return &Service{repo: repo, roster: roster, validate: validate}
}

func checkDate(date string) error {
	if !core.IsDate(date) {
		return core.NewValidationError(ErrInvalidDate, core.FieldError{Field: "date", Error: ErrInvalidDate.Error()})
	}
	return nil
}

func (svc *Service) checkMonth(month string) error {
	mr := MonthRequest{Month: month}
	return mr.Validate(svc.validate)
}

// SetStatus records status for the (date, studentID) pair, overwriting any previous status.
func (svc *Service) SetStatus(ctx context.Context, date, studentID string, status Status) error {
	mr := MarkRequest{Date: date, StudentID: studentID, Status: status}
	if err := mr.Validate(svc.validate); err != nil {
		return err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	records, err := svc.repo.QueryAllRecords(ctx)
	if err != nil {
		return errors.Wrap(err, "querying records")
	}
	records = Upsert(records, Record{Date: mr.Date, StudentID: mr.StudentID, Status: mr.Status})
	return errors.Wrap(svc.repo.SaveRecords(ctx, records), "saving records")
}

// BulkMarkPresent marks every enrolled student present on date and returns how many were marked.
func (svc *Service) BulkMarkPresent(ctx context.Context, date string) (int, error) {
	if err := checkDate(date); err != nil {
		return 0, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	students, err := svc.roster.QueryAllStudents(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "querying students")
	}
	records, err := svc.repo.QueryAllRecords(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "querying records")
	}
	for _, s := range students {
		records = Upsert(records, Record{Date: date, StudentID: s.ID, Status: StatusPresent})
	}
	if err = svc.repo.SaveRecords(ctx, records); err != nil {
		return 0, errors.Wrap(err, "saving records")
	}
	return len(students), nil
}

// ClearDay deletes every record of date and returns how many were removed.
// It cannot be undone; callers confirm with the user first.
func (svc *Service) ClearDay(ctx context.Context, date string) (int, error) {
	if err := checkDate(date); err != nil {
		return 0, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	records, err := svc.repo.QueryAllRecords(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "querying records")
	}
	kept := records[:0]
	for _, r := range records {
		if r.Date != date {
			kept = append(kept, r)
		}
	}
	removed := len(records) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err = svc.repo.SaveRecords(ctx, kept); err != nil {
		return 0, errors.Wrap(err, "saving records")
	}
	return removed, nil
}

// DeleteByStudent removes every record of studentID.
func (svc *Service) DeleteByStudent(ctx context.Context, studentID string) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	records, err := svc.repo.QueryAllRecords(ctx)
	if err != nil {
		return errors.Wrap(err, "querying records")
	}
	kept := records[:0]
	for _, r := range records {
		if r.StudentID != studentID {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		return nil
	}
	return errors.Wrap(svc.repo.SaveRecords(ctx, kept), "saving records")
}

// View lists the students matching filter with their mark for date, sorted by roll.
// The search matches name and roll only.
func (svc *Service) View(ctx context.Context, date string, filter ViewFilter) ([]RosterRow, error) {
	if err := checkDate(date); err != nil {
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

	existing := make(map[string]Status)
	for _, r := range records {
		if r.Date == date {
			existing[r.StudentID] = r.Status
		}
	}

	class := core.CleanString(filter.Class)
	q := core.CleanString(filter.Search, true /* lower */)
	rows := make([]RosterRow, 0, len(students))
	for _, s := range students {
		if class != "" && s.Class != class {
			continue
		}
		if !strings.Contains(strings.ToLower(s.Name), q) && !strings.Contains(strings.ToLower(s.Roll), q) {
			continue
		}
		status, ok := existing[s.ID]
		rows = append(rows, RosterRow{Student: s, Mark: markOf(status, ok)})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Student.Roll < rows[j].Student.Roll })
	return rows, nil
}

// MonthRecords returns the records of month in stored order, optionally for one student only.
func (svc *Service) MonthRecords(ctx context.Context, month, studentID string) ([]Record, error) {
	if err := svc.checkMonth(month); err != nil {
		return nil, err
	}
	records, err := svc.repo.QueryAllRecords(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying records")
	}
	return InMonth(records, month, studentID), nil
}
