package main

import (
	"context"
	"fmt"

	"github.com/utsavdwivedi51/Attendance-ERP/core/student"
)

func (cli *commandLine) addStudent(ns student.NewStudent) error {
	stu, err := cli.stuSvc.Create(context.Background(), ns)
	if err != nil {
		return err
	}
	fmt.Printf("Enrolled %s (%s), password: %s\n", stu.Name, stu.ID, stu.Password)
	return nil
}
