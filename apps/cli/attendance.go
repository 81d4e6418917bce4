package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/utsavdwivedi51/Attendance-ERP/core"
	"github.com/utsavdwivedi51/Attendance-ERP/core/attendance"
	"github.com/utsavdwivedi51/Attendance-ERP/core/auth"
)

func statsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the dashboard figures (teachers only)",
		Args:  cobra.NoArgs,
		RunE: a.teacherOnly(func(cmd *cobra.Command, _ []string, _ auth.Session) error {
			stats, err := a.attSvc.Stats(cmd.Context(), core.Today())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Students: %d\n", stats.Students)
			fmt.Fprintf(out, "Classes:  %d\n", stats.Classes)
			fmt.Fprintf(out, "Records:  %d\n", stats.Records)
			fmt.Fprintf(out, "Today (%s): %d marked, %s present\n", stats.Day, stats.DayMarked, percentChip(stats.DayPresentRate))
			return nil
		}),
	}
}

func attendanceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Take attendance (teachers only)",
	}
	cmd.AddCommand(
		attendanceViewCmd(a),
		attendanceMarkCmd(a),
		attendanceMarkAllCmd(a),
		attendanceClearCmd(a),
	)
	return cmd
}

func attendanceViewCmd(a *app) *cobra.Command {
	var filter attendance.ViewFilter

	cmd := &cobra.Command{
		Use:   "view [date]",
		Short: "Show the register for a day (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: a.teacherOnly(func(cmd *cobra.Command, args []string, _ auth.Session) error {
			date := dateOrToday(args)
			rows, err := a.attSvc.View(cmd.Context(), date, filter)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No students found.")
				return nil
			}
			counts := map[attendance.Mark]int{}
			tw := newTable(out)
			fmt.Fprintln(tw, "ROLL\tID\tNAME\tCLASS\tSTATUS")
			for _, r := range rows {
				counts[r.Mark]++
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.Student.Roll, r.Student.ID, r.Student.Name, r.Student.Class, markChip(r.Mark))
			}
			tw.Flush()
			fmt.Fprintf(out, "%s: %d present, %d absent, %d unmarked\n", cyan.Sprint(date),
				counts[attendance.MarkPresent], counts[attendance.MarkAbsent], counts[attendance.MarkUnmarked])
			return nil
		}),
	}
	cmd.Flags().StringVar(&filter.Class, "class", "", "Only show this class")
	cmd.Flags().StringVar(&filter.Search, "search", "", "Only show names or rolls containing this text")
	return cmd
}

func attendanceMarkCmd(a *app) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "mark <student id> <P|A>",
		Short: "Mark one student present or absent",
		Args:  cobra.ExactArgs(2),
		RunE: a.teacherOnly(func(cmd *cobra.Command, args []string, _ auth.Session) error {
			day := date
			if day == "" {
				day = core.Today()
			}
			status := attendance.ParseStatus(args[1])
			if err := a.attSvc.SetStatus(cmd.Context(), day, args[0], status); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s on %s: %s\n", args[0], day, statusChip(status))
			return nil
		}),
	}
	cmd.Flags().StringVar(&date, "date", "", "Day to mark, YYYY-MM-DD (default today)")
	return cmd
}

func attendanceMarkAllCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mark-all [date]",
		Short: "Mark every enrolled student present",
		Args:  cobra.MaximumNArgs(1),
		RunE: a.teacherOnly(func(cmd *cobra.Command, args []string, _ auth.Session) error {
			date := dateOrToday(args)
			n, err := a.attSvc.BulkMarkPresent(cmd.Context(), date)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %d students %s on %s.\n", n, markChip(attendance.MarkPresent), date)
			return nil
		}),
	}
}

func attendanceClearCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear [date]",
		Short: "Delete every record of a day",
		Args:  cobra.MaximumNArgs(1),
		RunE: a.teacherOnly(func(cmd *cobra.Command, args []string, _ auth.Session) error {
			date := dateOrToday(args)
			if err := confirm(cmd, yes, fmt.Sprintf("Clear all attendance of %s? This cannot be undone.", date)); err != nil {
				return err
			}
			n, err := a.attSvc.ClearDay(cmd.Context(), date)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d records.\n", n)
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
