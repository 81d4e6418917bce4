package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/fatih/color"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/utsavdwivedi51/Attendance-ERP/core"
	"github.com/utsavdwivedi51/Attendance-ERP/core/attendance"
	"github.com/utsavdwivedi51/Attendance-ERP/core/auth"
	"github.com/utsavdwivedi51/Attendance-ERP/core/export"
	"github.com/utsavdwivedi51/Attendance-ERP/core/student"
	"github.com/utsavdwivedi51/Attendance-ERP/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errNotLoggedIn = errors.New("not logged in, run `attendance login` first")
	errPermission  = errors.New("permission denied")
	errAborted     = errors.New("aborted")
)

var (
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	cyan   = color.New(color.FgCyan)
	bold   = color.New(color.Bold)
)

type app struct {
	translator ut.Translator
	authSvc    *auth.Service
	stuSvc     *student.Service
	attSvc     *attendance.Service
	tokens     auth.TokenStore
}

type runFunc func(cmd *cobra.Command, args []string, sess auth.Session) error

// withSession resumes the stored session and rejects it unless it has role. An empty role accepts both.
func (a *app) withSession(role user.Role, fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		sess, ok, err := a.authSvc.Resume(cmd.Context(), a.tokens)
		if err != nil {
			return errors.Wrap(err, "resuming session")
		}
		if !ok {
			return errNotLoggedIn
		}
		if role != "" && sess.Role != role {
			return errPermission
		}
		return fn(cmd, args, sess)
	}
}

func (a *app) teacherOnly(fn runFunc) func(*cobra.Command, []string) error {
	return a.withSession(user.RoleTeacher, fn)
}

func (a *app) studentOnly(fn runFunc) func(*cobra.Command, []string) error {
	return a.withSession(user.RoleStudent, fn)
}

// validationFields flattens both kinds of validation errors, or returns nil for any other error.
func validationFields(err error, translator ut.Translator) []core.FieldError {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		flds := make([]core.FieldError, 0, len(vErrs))
		for _, vErr := range vErrs {
			flds = append(flds, core.FieldError{Field: vErr.Field(), Error: vErr.Translate(translator)})
		}
		return flds
	}
	var vErr *core.ValidationError
	if errors.As(err, &vErr) {
		if len(vErr.Fields) > 0 {
			return vErr.Fields
		}
	}
	return nil
}

func promptPassword(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", errors.Wrap(err, "reading password")
	}
	return string(pwd), nil
}

// confirm asks a yes/no question on the command input unless yes is already set.
func confirm(cmd *cobra.Command, yes bool, question string) error {
	if yes {
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return errors.Wrap(err, "reading answer")
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return nil
	}
	return errAborted
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func markChip(m attendance.Mark) string {
	switch m {
	case attendance.MarkPresent:
		return green.Sprint("Present")
	case attendance.MarkAbsent:
		return red.Sprint("Absent")
	default:
		return yellow.Sprint("Unmarked")
	}
}

func statusChip(s attendance.Status) string {
	if s == attendance.StatusPresent {
		return markChip(attendance.MarkPresent)
	}
	return markChip(attendance.MarkAbsent)
}

func percentChip(pct int) string {
	s := fmt.Sprintf("%d%%", pct)
	switch attendance.StandingOf(pct) {
	case attendance.StandingGood:
		return green.Sprint(s)
	case attendance.StandingWarning:
		return yellow.Sprint(s)
	default:
		return red.Sprint(s)
	}
}

// exportFlags are shared by every command that writes a file.
type exportFlags struct {
	dir  string
	xlsx bool
}

func (ef *exportFlags) register(cmd *cobra.Command, withXLSX bool) {
	cmd.Flags().StringVar(&ef.dir, "dir", ".", "Directory to write the file to")
	if withXLSX {
		cmd.Flags().BoolVar(&ef.xlsx, "xlsx", false, "Write an Excel workbook instead of CSV")
	}
}

// write stores rows under csvName, or its .xlsx counterpart, and reports the path.
func (ef *exportFlags) write(cmd *cobra.Command, csvName, sheet string, rows [][]string) error {
	var (
		name string
		data []byte
	)
	if ef.xlsx {
		var buf bytes.Buffer
		if err := export.WriteXLSX(&buf, sheet, rows); err != nil {
			return errors.Wrap(err, "writing workbook")
		}
		name, data = export.XLSXFileName(csvName), buf.Bytes()
	} else {
		name, data = csvName, export.EncodeCSV(rows)
	}
	path := filepath.Join(ef.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "writing export")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d rows)\n", path, len(rows)-1)
	return nil
}

func dateOrToday(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return core.Today()
}

func monthOrThis(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return core.ThisMonth()
}
