package main

import (
	"github.com/spf13/cobra"
)

func rootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Attendance register for teachers and students",
		Long: `Attendance keeps the class roster and the daily attendance register.

Teachers manage students, mark attendance and build monthly reports.
Students review their own monthly attendance.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		loginCmd(a),
		logoutCmd(a),
		whoamiCmd(a),
		statsCmd(a),
		studentsCmd(a),
		attendanceCmd(a),
		reportCmd(a),
		meCmd(a),
	)
	return cmd
}
