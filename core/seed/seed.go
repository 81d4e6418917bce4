// Package seed resets the store to the demo institution.
package seed

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/utsavdwivedi51/Attendance-ERP/core"
	"github.com/utsavdwivedi51/Attendance-ERP/core/attendance"
	"github.com/utsavdwivedi51/Attendance-ERP/core/student"
	"github.com/utsavdwivedi51/Attendance-ERP/core/user"
)

const (
	demoDays        = 10
	demoAbsenceRate = 0.15
)

// Flag persists whether the demo data was written.
type Flag interface {
	IsSeeded(ctx context.Context) (bool, error)
	SetSeeded(ctx context.Context, seeded bool) error
}

type (
	Repositories struct {
		Users      user.Repository
		Students   student.Repository
		Attendance attendance.Repository
		Flag       Flag
	}

	Seeder struct {
		mu     sync.Mutex
		repos  Repositories
		logger core.Logger
		rnd    *rand.Rand
		now    func() time.Time
	}

	Option func(*Seeder)
)

// WithRand makes the generated attendance deterministic.
func WithRand(rnd *rand.Rand) Option {
	return func(s *Seeder) { s.rnd = rnd }
}

// WithClock sets the clock the last demo days are counted from.
func WithClock(now func() time.Time) Option {
	return func(s *Seeder) { s.now = now }
}

func NewSeeder(repos Repositories, logger core.Logger, opts ...Option) *Seeder {
	s := &Seeder{
		repos:  repos,
		logger: logger,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    core.NowFunc,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureSeeded writes the demo data unless it was already written. It reports whether it seeded.
func (s *Seeder) EnsureSeeded(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seeded, err := s.repos.Flag.IsSeeded(ctx)
	if err != nil {
		return false, errors.Wrap(err, "reading seeded flag")
	}
	if seeded {
		return false, nil
	}
	return true, s.seed(ctx)
}

// Seed replaces teachers, students and attendance with the demo data, then sets the seeded flag.
func (s *Seeder) Seed(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seed(ctx)
}

func (s *Seeder) seed(ctx context.Context) error {
	students := DemoStudents()
	records := s.demoAttendance(students)

	if err := s.repos.Users.SaveUsers(ctx, DemoTeachers()); err != nil {
		return errors.Wrap(err, "saving users")
	}
	if err := s.repos.Students.SaveStudents(ctx, students); err != nil {
		return errors.Wrap(err, "saving students")
	}
	if err := s.repos.Attendance.SaveRecords(ctx, records); err != nil {
		return errors.Wrap(err, "saving records")
	}
	if err := s.repos.Flag.SetSeeded(ctx, true); err != nil {
		return errors.Wrap(err, "setting seeded flag")
	}
	s.logger.Info("demo data seeded", map[string]interface{}{"students": len(students), "records": len(records)})
	return nil
}

// demoAttendance marks every student for today and the 9 previous UTC days, most recent first.
func (s *Seeder) demoAttendance(students []student.Student) []attendance.Record {
	today := s.now().UTC()
	records := make([]attendance.Record, 0, demoDays*len(students))
	for d := 0; d < demoDays; d++ {
		date := today.AddDate(0, 0, -d).Format(core.DateLayout)
		for _, stu := range students {
			status := attendance.StatusPresent
			if s.rnd.Float64() <= demoAbsenceRate {
				status = attendance.StatusAbsent
			}
			records = append(records, attendance.Record{Date: date, StudentID: stu.ID, Status: status})
		}
	}
	return records
}

// DemoTeachers returns the demo teacher accounts. They log in with their name as identifier.
func DemoTeachers() []user.User {
	const pwd = "teacher123"
	return []user.User{
		{ID: "T001", Role: user.RoleTeacher, Email: "Jitendra Kumar", Password: pwd, Name: "Admin Jitendra Kumar"},
		{ID: "T002", Role: user.RoleTeacher, Email: "Naman Jaiswal", Password: pwd, Name: "Admin Naman Jaiswal"},
		{ID: "T003", Role: user.RoleTeacher, Email: "Jyoti Srivastava", Password: pwd, Name: "Admin Jyoti Srivastava"},
		{ID: "T004", Role: user.RoleTeacher, Email: "Devendra Awasthi", Password: pwd, Name: "Admin Devendra Awasthi"},
	}
}

func DemoStudents() []student.Student {
	return []student.Student{
		{ID: "176", Name: "Utsav Dwivedi", Roll: "2204280100176", Class: "CS-7A", Email: "utsavdwivedi51@gmail.com", Password: "utsav@123"},
		{ID: "169", Name: "Shristi Tripathi", Roll: "2204280100169", Class: "CS-7A", Email: "shristi66@gmail.com", Password: "shristi@123"},
		{ID: "150", Name: "Raj Dwivedi", Roll: "2204280100150", Class: "CS-7B", Email: "rajdwivedi@gmail.com", Password: "raj@123"},
		{ID: "054", Name: "Akshay Yadav", Roll: "2204280100054", Class: "CS-7B", Email: "akshay12@gmail.com", Password: "akshay@123"},
	}
}
