package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/utsavdwivedi51/Attendance-ERP/core/auth"
	"github.com/utsavdwivedi51/Attendance-ERP/core/user"
)

func loginCmd(a *app) *cobra.Command {
	var asStudent bool

	cmd := &cobra.Command{
		Use:   "login <email or student id>",
		Short: "Sign in; the password is prompted",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pwd, err := promptPassword(cmd)
			if err != nil {
				return err
			}
			role := user.RoleTeacher
			if asStudent {
				role = user.RoleStudent
			}
			// teacher identifiers may contain spaces
			sess, token, err := a.authSvc.Login(cmd.Context(), strings.Join(args, " "), pwd, role)
			if err != nil {
				return err
			}
			if err = a.tokens.SaveToken(cmd.Context(), token); err != nil {
				return errors.Wrap(err, "saving session")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s (%s)\n", bold.Sprint(sess.Name), sess.Role)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asStudent, "student", false, "Sign in as a student")
	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.authSvc.Logout(cmd.Context(), a.tokens); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in account",
		Args:  cobra.NoArgs,
		RunE: a.withSession("", func(cmd *cobra.Command, _ []string, sess auth.Session) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", bold.Sprint(sess.Name), sess.Role)
			fmt.Fprintf(out, "ID:    %s\n", sess.ID)
			if sess.Email != "" {
				fmt.Fprintf(out, "Email: %s\n", sess.Email)
			}
			if sess.IsStudent() {
				fmt.Fprintf(out, "Roll:  %s\n", sess.Roll)
				fmt.Fprintf(out, "Class: %s\n", sess.Class)
			}
			return nil
		}),
	}
}
