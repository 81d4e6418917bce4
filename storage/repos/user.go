package kvrepos

import (
	"context"

	"github.com/utsavdwivedi51/Attendance-ERP/core"
	"github.com/utsavdwivedi51/Attendance-ERP/core/user"
	"github.com/utsavdwivedi51/Attendance-ERP/storage/kv"
)

type userRepository struct {
	repository
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(store kv.Store, logger core.Logger) user.Repository {
	return &userRepository{repository{store: store, logger: logger}}
}

func (repo *userRepository) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	return loadList[user.User](ctx, repo.repository, KeyUsers)
}

func (repo *userRepository) SaveUsers(ctx context.Context, users []user.User) error {
	return saveList(ctx, repo.repository, KeyUsers, users)
}
