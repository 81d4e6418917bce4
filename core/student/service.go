package student

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/utsavdwivedi51/Attendance-ERP/core"
)

const (
	passwordChars = "abcdefghijklmnopqrstuvwxyz0123456789"
	passwordLen   = 6
)

var (
	ErrNotFound    = errors.New("student not found")
	ErrRollExists  = errors.New("a student with this roll already exists")
	RandomPassword = randomPassword // mockable

	rnd   = rand.New(rand.NewSource(time.Now().UnixNano()))
	rndMu sync.Mutex
)

type (
	// Repository reads and writes the whole roster.
	Repository interface {
		QueryAllStudents(ctx context.Context) ([]Student, error)
		SaveStudents(ctx context.Context, students []Student) error
	}

	// AttendancePurger removes the attendance history of a deleted student.
	AttendancePurger interface {
		DeleteByStudent(ctx context.Context, studentID string) error
	}

	Service struct {
		mu       sync.Mutex // serializes read-modify-write cycles
		repo     Repository
		purger   AttendancePurger
		validate *validator.Validate
	}
)

func NewService(repo Repository, purger AttendancePurger, validate *validator.Validate) *Service {
	return &Service{repo: repo, purger: purger, validate: validate}
}

func randomPassword() string {
	rndMu.Lock()
	defer rndMu.Unlock()
	b := make([]byte, passwordLen)
	for i := range b {
		b[i] = passwordChars[rnd.Intn(len(passwordChars))]
	}
	return string(b)
}

// Create validates ns and appends the new Student to the roster.
func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	if err := ns.Validate(svc.validate); err != nil {
		return Student{}, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	students, err := svc.repo.QueryAllStudents(ctx)
	if err != nil {
		return Student{}, errors.Wrap(err, "querying students")
	}
	id := IDFromRoll(ns.Roll)
	for _, s := range students {
		if s.ID == id {
			return Student{}, core.NewValidationError(ErrRollExists, core.FieldError{Field: "roll", Error: ErrRollExists.Error()})
		}
	}

	pwd := ns.Password
	if pwd == "" {
		pwd = RandomPassword()
	}
	stu := Student{
		ID:       id,
		Name:     ns.Name,
		Roll:     ns.Roll,
		Class:    ns.Class,
		Email:    ns.Email,
		Password: pwd,
	}
	if err = svc.repo.SaveStudents(ctx, append(students, stu)); err != nil {
		return Student{}, errors.Wrap(err, "saving students")
	}
	return stu, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryAllStudents(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Student, error) {
	students, err := svc.repo.QueryAllStudents(ctx)
	if err != nil {
		return Student{}, errors.Wrap(err, "querying students")
	}
	for _, s := range students {
		if s.ID == id {
			return s, nil
		}
	}
	return Student{}, ErrNotFound
}

// Search returns the students whose name, roll or class contains query (case-insensitive), in roster order.
func (svc *Service) Search(ctx context.Context, query string) ([]Student, error) {
	students, err := svc.repo.QueryAllStudents(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return Filter(students, query), nil
}

// Filter keeps the students matching query, preserving order.
func Filter(students []Student, query string) []Student {
	q := core.CleanString(query, true /* lower */)
	filtered := make([]Student, 0, len(students))
	for _, s := range students {
		if s.Matches(q) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// Delete removes a student and all of its attendance records.
// The records go first, so a failed delete leaves the student enrolled and a retry finishes the job.
// Unknown IDs still have their records purged.
func (svc *Service) Delete(ctx context.Context, id string) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	students, err := svc.repo.QueryAllStudents(ctx)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if err = svc.purger.DeleteByStudent(ctx, id); err != nil {
		return errors.Wrap(err, "deleting attendance")
	}
	idx := indexOf(students, id)
	if idx == -1 {
		return nil
	}
	students = append(students[:idx], students[idx+1:]...)
	return errors.Wrap(svc.repo.SaveStudents(ctx, students), "saving students")
}

func (svc *Service) ResetPassword(ctx context.Context, id string, rp ResetPassword) error {
	if err := rp.Validate(svc.validate); err != nil {
		return err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	students, err := svc.repo.QueryAllStudents(ctx)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	idx := indexOf(students, id)
	if idx == -1 {
		return ErrNotFound
	}
	students[idx].Password = rp.Password
	return errors.Wrap(svc.repo.SaveStudents(ctx, students), "saving students")
}

// DistinctClasses returns the sorted set of class labels in use.
func (svc *Service) DistinctClasses(ctx context.Context) ([]string, error) {
	students, err := svc.repo.QueryAllStudents(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return Classes(students), nil
}

func Classes(students []Student) []string {
	seen := make(map[string]struct{}, len(students))
	classes := make([]string, 0)
	for _, s := range students {
		if _, ok := seen[s.Class]; !ok {
			seen[s.Class] = struct{}{}
			classes = append(classes, s.Class)
		}
	}
	sort.Strings(classes)
	return classes
}

func indexOf(students []Student, id string) int {
	for i, s := range students {
		if s.ID == id {
			return i
		}
	}
	return -1
}
