package kvrepos

import (
	"context"

	"github.com/utsavdwivedi51/Attendance-ERP/core"
	"github.com/utsavdwivedi51/Attendance-ERP/core/attendance"
	"github.com/utsavdwivedi51/Attendance-ERP/storage/kv"
)

type attendanceRepository struct {
	repository
}

var _ attendance.Repository = (*attendanceRepository)(nil)

func NewAttendanceRepository(store kv.Store, logger core.Logger) attendance.Repository {
	return &attendanceRepository{repository{store: store, logger: logger}}
}

func (repo *attendanceRepository) QueryAllRecords(ctx context.Context) ([]attendance.Record, error) {
	return loadList[attendance.Record](ctx, repo.repository, KeyAttendance)
}

func (repo *attendanceRepository) SaveRecords(ctx context.Context, records []attendance.Record) error {
	return saveList(ctx, repo.repository, KeyAttendance, records)
}
