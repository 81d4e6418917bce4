package main

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/utsavdwivedi51/Attendance-ERP/core/attendance"
	"github.com/utsavdwivedi51/Attendance-ERP/core/auth"
	"github.com/utsavdwivedi51/Attendance-ERP/core/export"
)

func reportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Monthly attendance reports (teachers only)",
	}
	cmd.AddCommand(reportMonthCmd(a), reportStudentCmd(a))
	return cmd
}

func reportMonthCmd(a *app) *cobra.Command {
	var (
		ef       exportFlags
		toExport bool
	)

	cmd := &cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Per-student totals for a month (default this month)",
		Args:  cobra.MaximumNArgs(1),
		RunE: a.teacherOnly(func(cmd *cobra.Command, args []string, _ auth.Session) error {
			month := monthOrThis(args)
			if toExport {
				rows, err := a.monthRows(cmd.Context(), month, "")
				if err != nil {
					return err
				}
				return ef.write(cmd, export.MonthFileName(month), month, rows)
			}

			report, err := a.attSvc.MonthlyReport(cmd.Context(), month)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(report) == 0 {
				fmt.Fprintln(out, "No students found.")
				return nil
			}
			tw := newTable(out)
			fmt.Fprintln(tw, "ROLL\tID\tNAME\tCLASS\tPRESENT\tABSENT\tATTENDANCE")
			for _, r := range report {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n", r.Student.Roll, r.Student.ID, r.Student.Name, r.Student.Class,
					r.Present, r.Absent, percentChip(r.Percentage))
			}
			tw.Flush()
			return nil
		}),
	}
	cmd.Flags().BoolVar(&toExport, "export", false, "Write the month's records to a file instead of printing totals")
	ef.register(cmd, true)
	return cmd
}

func reportStudentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "student <id> [YYYY-MM]",
		Short: "One student's month (default this month)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: a.teacherOnly(func(cmd *cobra.Command, args []string, _ auth.Session) error {
			stu, err := a.stuSvc.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			view, err := a.attSvc.StudentMonthlyView(cmd.Context(), stu.ID, monthOrThis(args[1:]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s, %s)\n", bold.Sprint(stu.Name), stu.ID, stu.Class)
			printMonth(cmd.OutOrStdout(), view)
			return nil
		}),
	}
}

func meCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "me [YYYY-MM]",
		Short: "Your attendance for a month (students only)",
		Args:  cobra.MaximumNArgs(1),
		RunE: a.studentOnly(func(cmd *cobra.Command, args []string, sess auth.Session) error {
			view, err := a.attSvc.StudentMonthlyView(cmd.Context(), sess.ID, monthOrThis(args))
			if err != nil {
				return err
			}
			printMonth(cmd.OutOrStdout(), view)
			return nil
		}),
	}
	cmd.AddCommand(meExportCmd(a))
	return cmd
}

func meExportCmd(a *app) *cobra.Command {
	var ef exportFlags

	cmd := &cobra.Command{
		Use:   "export [YYYY-MM]",
		Short: "Export your records of a month as CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: a.studentOnly(func(cmd *cobra.Command, args []string, sess auth.Session) error {
			month := monthOrThis(args)
			rows, err := a.monthRows(cmd.Context(), month, sess.ID)
			if err != nil {
				return err
			}
			return ef.write(cmd, export.StudentMonthFileName(sess.ID, month), month, rows)
		}),
	}
	ef.register(cmd, false)
	return cmd
}

func (a *app) monthRows(ctx context.Context, month, studentID string) ([][]string, error) {
	records, err := a.attSvc.MonthRecords(ctx, month, studentID)
	if err != nil {
		return nil, err
	}
	students, err := a.stuSvc.QueryAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return export.AttendanceRows(records, students), nil
}

func printMonth(w io.Writer, view attendance.StudentMonth) {
	fmt.Fprintf(w, "%s: %d present, %d absent, %s, streak %d\n", cyan.Sprint(view.Month),
		view.Present, view.Absent, percentChip(view.Percentage), view.Streak)
	if len(view.Records) == 0 {
		fmt.Fprintln(w, "No records this month.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "DATE\tSTATUS")
	for _, r := range view.Records {
		fmt.Fprintf(tw, "%s\t%s\n", r.Date, statusChip(r.Status))
	}
	tw.Flush()
}
