// Package auth logs teachers and students in and out. Sessions travel as signed tokens.
package auth

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/utsavdwivedi51/Attendance-ERP/core"
	"github.com/utsavdwivedi51/Attendance-ERP/core/student"
	"github.com/utsavdwivedi51/Attendance-ERP/core/user"
)

var (
	// ErrInvalidCredentials does not tell an unknown account from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingFields      = errors.New("Please fill all fields.")
)

type (
	// TokenStore keeps the current session token between invocations.
	// LoadToken returns "" when no token is stored.
	TokenStore interface {
		SaveToken(ctx context.Context, token string) error
		LoadToken(ctx context.Context) (string, error)
		ClearToken(ctx context.Context) error
	}

	Service struct {
		teachers *user.Service
		students student.Repository
		tokens   *Tokens
	}
)

func NewService(users user.Repository, students student.Repository, tokens *Tokens) *Service {
	return &Service{teachers: user.NewService(users), students: students, tokens: tokens}
}

// Login checks the credentials against the collection of role and returns the session with its token.
// Teachers are matched by email, students by ID or email. The first match in collection order wins.
func (svc *Service) Login(ctx context.Context, identifier, pwd string, role user.Role) (Session, string, error) {
	identifier = core.CleanString(identifier)
	pwd = core.CleanString(pwd)
	if identifier == "" || pwd == "" {
		return Session{}, "", core.NewValidationError(ErrMissingFields)
	}

	var (
		sess Session
		err  error
	)
	if role == user.RoleTeacher {
		sess, err = svc.loginTeacher(ctx, identifier, pwd)
	} else {
		sess, err = svc.loginStudent(ctx, identifier, pwd)
	}
	if err != nil {
		return Session{}, "", err
	}

	token, err := svc.tokens.Generate(sess)
	if err != nil {
		return Session{}, "", errors.Wrap(err, "generating token")
	}
	return sess, token, nil
}

func (svc *Service) loginTeacher(ctx context.Context, email, pwd string) (Session, error) {
	usr, err := svc.teachers.Authenticate(ctx, email, pwd)
	switch {
	case errors.Cause(err) == user.ErrNotFound:
		return Session{}, ErrInvalidCredentials
	case err != nil:
		return Session{}, errors.Wrap(err, "authenticating teacher")
	}
	return teacherSession(usr), nil
}

func (svc *Service) loginStudent(ctx context.Context, identifier, pwd string) (Session, error) {
	students, err := svc.students.QueryAllStudents(ctx)
	if err != nil {
		return Session{}, errors.Wrap(err, "querying students")
	}
	for _, stu := range students {
		idMatch := stu.ID == identifier || (stu.Email != "" && strings.EqualFold(stu.Email, identifier))
		if idMatch && stu.Password == pwd {
			return studentSession(stu), nil
		}
	}
	return Session{}, ErrInvalidCredentials
}

// Restore returns the session carried by token. Absent, malformed or expired tokens are not an error.
func (svc *Service) Restore(token string) (Session, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Session{}, false
	}
	sess, err := svc.tokens.Parse(token)
	if err != nil {
		return Session{}, false
	}
	return sess, true
}

// Resume restores the session from the token kept in store.
func (svc *Service) Resume(ctx context.Context, store TokenStore) (Session, bool, error) {
	token, err := store.LoadToken(ctx)
	if err != nil {
		return Session{}, false, errors.Wrap(err, "loading token")
	}
	sess, ok := svc.Restore(token)
	return sess, ok, nil
}

// Logout forgets the stored token. It succeeds when there is nothing to forget.
func (svc *Service) Logout(ctx context.Context, store TokenStore) error {
	return errors.Wrap(store.ClearToken(ctx), "clearing token")
}
