package kvrepos

import (
	"context"

	"github.com/utsavdwivedi51/Attendance-ERP/core"
	"github.com/utsavdwivedi51/Attendance-ERP/core/student"
	"github.com/utsavdwivedi51/Attendance-ERP/storage/kv"
)

type studentRepository struct {
	repository
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(store kv.Store, logger core.Logger) student.Repository {
	return &studentRepository{repository{store: store, logger: logger}}
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	return loadList[student.Student](ctx, repo.repository, KeyStudents)
}

func (repo *studentRepository) SaveStudents(ctx context.Context, students []student.Student) error {
	return saveList(ctx, repo.repository, KeyStudents, students)
}
