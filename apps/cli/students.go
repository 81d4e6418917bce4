package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/utsavdwivedi51/Attendance-ERP/core/auth"
	"github.com/utsavdwivedi51/Attendance-ERP/core/export"
	"github.com/utsavdwivedi51/Attendance-ERP/core/student"
)

func studentsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "students",
		Short: "Manage the class roster (teachers only)",
	}
	cmd.AddCommand(
		studentsListCmd(a),
		studentsSearchCmd(a),
		studentsAddCmd(a),
		studentsDeleteCmd(a),
		studentsResetPasswordCmd(a),
		studentsClassesCmd(a),
		studentsExportCmd(a),
	)
	return cmd
}

func printStudents(w io.Writer, students []student.Student) {
	if len(students) == 0 {
		fmt.Fprintln(w, "No students found.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tROLL\tNAME\tCLASS\tEMAIL")
	for _, s := range students {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Roll, s.Name, s.Class, s.Email)
	}
	tw.Flush()
}

func studentsListCmd(a *app) *cobra.Command {
	var class string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List enrolled students",
		Args:  cobra.NoArgs,
		RunE: a.teacherOnly(func(cmd *cobra.Command, _ []string, _ auth.Session) error {
			students, err := a.stuSvc.QueryAll(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "querying students")
			}
			if class != "" {
				filtered := students[:0:0]
				for _, s := range students {
					if s.Class == class {
						filtered = append(filtered, s)
					}
				}
				students = filtered
			}
			printStudents(cmd.OutOrStdout(), students)
			return nil
		}),
	}
	cmd.Flags().StringVar(&class, "class", "", "Only list this class")
	return cmd
}

func studentsSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find students by name, roll or class",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.teacherOnly(func(cmd *cobra.Command, args []string, _ auth.Session) error {
			students, err := a.stuSvc.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			printStudents(cmd.OutOrStdout(), students)
			return nil
		}),
	}
}

func studentsAddCmd(a *app) *cobra.Command {
	var ns student.NewStudent

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Enroll a student",
		Args:  cobra.NoArgs,
		RunE: a.teacherOnly(func(cmd *cobra.Command, _ []string, _ auth.Session) error {
			stu, err := a.stuSvc.Create(cmd.Context(), ns)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Enrolled %s as %s, password: %s\n", stu.Name, bold.Sprint(stu.ID), stu.Password)
			return nil
		}),
	}
	cmd.Flags().StringVar(&ns.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&ns.Roll, "roll", "", "Roll number; the student ID is derived from it")
	cmd.Flags().StringVar(&ns.Class, "class", "", "Class label, e.g. CS-7A")
	cmd.Flags().StringVar(&ns.Email, "email", "", "Optional email, usable to sign in")
	cmd.Flags().StringVar(&ns.Password, "password", "", "Initial password; generated when empty")
	return cmd
}

func studentsDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a student and all of their attendance",
		Args:  cobra.ExactArgs(1),
		RunE: a.teacherOnly(func(cmd *cobra.Command, args []string, _ auth.Session) error {
			id := args[0]
			if err := confirm(cmd, yes, fmt.Sprintf("Delete %s and all of their attendance?", id)); err != nil {
				return err
			}
			if err := a.stuSvc.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", id)
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func studentsResetPasswordCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password <id>",
		Short: "Set a new password for a student; the password is prompted",
		Args:  cobra.ExactArgs(1),
		RunE: a.teacherOnly(func(cmd *cobra.Command, args []string, _ auth.Session) error {
			pwd, err := promptPassword(cmd)
			if err != nil {
				return err
			}
			if err = a.stuSvc.ResetPassword(cmd.Context(), args[0], student.ResetPassword{Password: pwd}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password updated.")
			return nil
		}),
	}
}

func studentsClassesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "classes",
		Short: "List the classes in use",
		Args:  cobra.NoArgs,
		RunE: a.teacherOnly(func(cmd *cobra.Command, _ []string, _ auth.Session) error {
			classes, err := a.stuSvc.DistinctClasses(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range classes {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		}),
	}
}

func studentsExportCmd(a *app) *cobra.Command {
	var ef exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the roster",
		Args:  cobra.NoArgs,
		RunE: a.teacherOnly(func(cmd *cobra.Command, _ []string, _ auth.Session) error {
			students, err := a.stuSvc.QueryAll(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "querying students")
			}
			return ef.write(cmd, export.StudentsFileName(), "Students", export.StudentRows(students))
		}),
	}
	ef.register(cmd, true)
	return cmd
}
