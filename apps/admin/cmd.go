package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/utsavdwivedi51/Attendance-ERP/core/seed"
	"github.com/utsavdwivedi51/Attendance-ERP/core/student"
	"github.com/utsavdwivedi51/Attendance-ERP/storage/kv"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	store  kv.Store
	stuSvc *student.Service
	seeder *seed.Seeder
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  seed [-force] - write the demo data (only on first run unless -force)")
	fmt.Println("  addstudent -name NAME -roll ROLL -class CLASS [-email EMAIL] - enroll a student; the password will be prompted next")
	fmt.Println("  resetpassword -id STUDENT_ID - reset a student's password")
	fmt.Println("  migrate -engine ENGINE [-path PATH] [-dsn DSN] - copy every collection to another store")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	seedCmd := flag.NewFlagSet("seed", flag.ContinueOnError)
	seedForce := seedCmd.Bool("force", false, "Reset to the demo data even if it was already written.")

	addStudentCmd := flag.NewFlagSet("addstudent", flag.ContinueOnError)
	addStudentName := addStudentCmd.String("name", "", "The student's full name.")
	addStudentRoll := addStudentCmd.String("roll", "", "The roll number; the student ID is derived from it.")
	addStudentClass := addStudentCmd.String("class", "", "The class label, e.g. CS-7A.")
	addStudentEmail := addStudentCmd.String("email", "", "Optional email, usable as login identifier.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ContinueOnError)
	resetPasswordID := resetPasswordCmd.String("id", "", "The student's ID. The password will be prompted next.")

	migrateCmd := flag.NewFlagSet("migrate", flag.ContinueOnError)
	migrateEngine := migrateCmd.String("engine", "", "Target engine: memory, file, sqlite or postgres.")
	migratePath := migrateCmd.String("path", "", "Target directory (file) or database file (sqlite).")
	migrateDSN := migrateCmd.String("dsn", "", "Target connection string (postgres).")

	switch args[1] {
	case "seed":
		if err := seedCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.seed(*seedForce)
	case "addstudent":
		if err := addStudentCmd.Parse(args[2:]); err != nil {
			return err
		}
		pwd, err := promptPassword()
		if err != nil {
			return err
		}
		return cli.addStudent(student.NewStudent{
			Name:     *addStudentName,
			Roll:     *addStudentRoll,
			Class:    *addStudentClass,
			Email:    *addStudentEmail,
			Password: pwd, // empty: generated
		})
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordID == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordID, pwd)
	case "migrate":
		if err := migrateCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *migrateEngine == "" {
			migrateCmd.Usage()
			return errHelp
		}
		return cli.migrate(*migrateEngine, *migratePath, *migrateDSN)
	default:
		cli.printUsage()
		return errHelp
	}
}

func promptPassword() (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}
