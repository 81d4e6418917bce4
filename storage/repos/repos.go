// Package kvrepos implements the domain repositories on top of a kv.Store.
// Each collection lives as one JSON array under its own key.
package kvrepos

import (
	"context"

	"github.com/pkg/errors"

	"github.com/utsavdwivedi51/Attendance-ERP/core"
	"github.com/utsavdwivedi51/Attendance-ERP/storage/kv"
)

// Persisted keys
const (
	KeyUsers      = "sl_users"
	KeyStudents   = "sl_students"
	KeyAttendance = "sl_attendance"
	KeySeeded     = "sl_seeded"
	KeySession    = "sl_user"
)

type repository struct {
	store  kv.Store
	logger core.Logger
}

// loadList reads the collection under key. Absent and unreadable values are treated as empty.
func loadList[T any](ctx context.Context, repo repository, key string) ([]T, error) {
	list, status, err := kv.Load(ctx, repo.store, key, []T{})
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", key)
	}
	if status == kv.Corrupt {
		repo.logger.Warn("unreadable collection, using an empty one", map[string]interface{}{"key": key})
	}
	return list, nil
}

func saveList[T any](ctx context.Context, repo repository, key string, list []T) error {
	if list == nil {
		list = []T{}
	}
	return kv.Save(ctx, repo.store, key, list)
}
