package testutil

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"

	"github.com/utsavdwivedi51/Attendance-ERP/core"
	"github.com/utsavdwivedi51/Attendance-ERP/core/attendance"
	"github.com/utsavdwivedi51/Attendance-ERP/core/auth"
	"github.com/utsavdwivedi51/Attendance-ERP/core/student"
	"github.com/utsavdwivedi51/Attendance-ERP/core/user"
	"github.com/utsavdwivedi51/Attendance-ERP/storage/kv"
	"github.com/utsavdwivedi51/Attendance-ERP/storage/kv/memory"
	"github.com/utsavdwivedi51/Attendance-ERP/storage/repos"
)

// Logger records every message it receives.
type Logger struct {
	mu       sync.Mutex
	Messages []string
}

var _ core.Logger = (*Logger)(nil)

func (l *Logger) log(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = append(l.Messages, level+": "+msg)
}

func (l *Logger) Debug(msg string, _ ...interface{}) { l.log("debug", msg) }
func (l *Logger) Info(msg string, _ ...interface{})  { l.log("info", msg) }
func (l *Logger) Warn(msg string, _ ...interface{})  { l.log("warn", msg) }
func (l *Logger) Error(msg string, _ ...interface{}) { l.log("error", msg) }
func (l *Logger) Fatal(msg string, _ ...interface{}) { l.log("fatal", msg) }

// Env wires every service on a fresh in-memory store.
type Env struct {
	Conf   *core.Config
	Store  kv.Store
	Logger *Logger

	UserRepo       user.Repository
	StudentRepo    student.Repository
	AttendanceRepo attendance.Repository

	StudentSvc    *student.Service
	AttendanceSvc *attendance.Service
	AuthSvc       *auth.Service
	Tokens        *auth.Tokens

	// Translator carries the validation messages registered on the services' validator.
	Translator ut.Translator
}

func NewEnv(t *testing.T) *Env {
	t.Helper()
	conf := core.NewTestConfig()
	validate, translator := core.NewValidator()
	store := memkv.Open()
	t.Cleanup(func() { _ = store.Close() })

	env := &Env{Conf: conf, Store: store, Logger: new(Logger), Translator: translator}
	env.UserRepo = kvrepos.NewUserRepository(store, env.Logger)
	env.StudentRepo = kvrepos.NewStudentRepository(store, env.Logger)
	env.AttendanceRepo = kvrepos.NewAttendanceRepository(store, env.Logger)

	env.AttendanceSvc = attendance.NewService(env.AttendanceRepo, env.StudentRepo, validate)
	env.StudentSvc = student.NewService(env.StudentRepo, env.AttendanceSvc, validate)
	env.Tokens = auth.NewTokens(conf.SecretKey, conf.AppName, conf.Session.TTL)
	env.AuthSvc = auth.NewService(env.UserRepo, env.StudentRepo, env.Tokens)
	return env
}

func CreateTeacher(t *testing.T, repo user.Repository, id, email, pwd, name string) user.User {
	t.Helper()
	ctx := context.Background()
	users, err := repo.QueryAllUsers(ctx)
	if err != nil {
		t.Fatalf("CreateTeacher() failed: %v", err)
	}
	usr := user.User{ID: id, Role: user.RoleTeacher, Email: email, Password: pwd, Name: name}
	if err = repo.SaveUsers(ctx, append(users, usr)); err != nil {
		t.Fatalf("CreateTeacher() failed: %v", err)
	}
	return usr
}

func CreateStudent(t *testing.T, svc *student.Service, name, roll, class, email, pwd string) student.Student {
	t.Helper()
	stu, err := svc.Create(context.Background(), student.NewStudent{
		Name:     name,
		Roll:     roll,
		Class:    class,
		Email:    email,
		Password: pwd,
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return stu
}

func Mark(t *testing.T, svc *attendance.Service, date, studentID string, status attendance.Status) {
	t.Helper()
	if err := svc.SetStatus(context.Background(), date, studentID, status); err != nil {
		t.Fatalf("Mark(%s, %s) failed: %v", date, studentID, err)
	}
}

// SessionToken returns a valid token for sess.
func SessionToken(t *testing.T, tokens *auth.Tokens, sess auth.Session) string {
	t.Helper()
	token, err := tokens.Generate(sess)
	if err != nil {
		t.Fatalf("SessionToken() failed: %v", err)
	}
	return token
}

// FreezeTime pins core.NowFunc to tstamp for the duration of the test.
func FreezeTime(t *testing.T, tstamp time.Time) {
	t.Helper()
	orig := core.NowFunc
	core.NowFunc = func() time.Time { return tstamp }
	t.Cleanup(func() { core.NowFunc = orig })
}

// Date returns the YYYY-MM-DD form of day in month of 2024.
func Date(month, day int) string {
	return fmt.Sprintf("2024-%02d-%02d", month, day)
}
