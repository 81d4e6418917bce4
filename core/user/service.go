package user

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("user not found")

type (
	// Repository reads and writes the whole teacher accounts collection.
	Repository interface {
		QueryAllUsers(ctx context.Context) ([]User, error)
		SaveUsers(ctx context.Context, users []User) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Authenticate returns the first account whose email matches (case-insensitively) and whose password is identical.
func (svc *Service) Authenticate(ctx context.Context, email, pwd string) (User, error) {
	users, err := svc.repo.QueryAllUsers(ctx)
	if err != nil {
		return User{}, errors.Wrap(err, "querying users")
	}
	lemail := strings.ToLower(email)
	for _, usr := range users {
		if strings.ToLower(usr.Email) == lemail && usr.Password == pwd {
			return usr, nil
		}
	}
	return User{}, ErrNotFound
}
