package main

import (
	"context"

	"github.com/utsavdwivedi51/Attendance-ERP/core/student"
)

func (cli *commandLine) resetPassword(id, pwd string) error {
	return cli.stuSvc.ResetPassword(context.Background(), id, student.ResetPassword{Password: pwd})
}
