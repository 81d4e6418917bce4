package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/utsavdwivedi51/Attendance-ERP/core"
	"github.com/utsavdwivedi51/Attendance-ERP/core/attendance"
	"github.com/utsavdwivedi51/Attendance-ERP/core/auth"
	"github.com/utsavdwivedi51/Attendance-ERP/core/seed"
	"github.com/utsavdwivedi51/Attendance-ERP/core/student"
	logsvc "github.com/utsavdwivedi51/Attendance-ERP/services/logger"
	filekv "github.com/utsavdwivedi51/Attendance-ERP/storage/kv/file"
	kvopen "github.com/utsavdwivedi51/Attendance-ERP/storage/kv/open"
	kvrepos "github.com/utsavdwivedi51/Attendance-ERP/storage/repos"
)

func main() {
	logger := log.New(os.Stderr, "CLI : ", log.LstdFlags)
	conf := core.NewConfig()
	appLogger := logsvc.NewRollbarLogger(logger, conf)
	defer appLogger.Close()

	ctx := context.Background()
	store, err := kvopen.Open(ctx, conf.Storage)
	errAndDie(err)
	defer store.Close()

	// the token lives apart from the data store, in the temp directory
	sessionStore, err := filekv.Open(conf.Session.Dir)
	errAndDie(err)
	defer sessionStore.Close()

	validate, translator := core.NewValidator()
	users := kvrepos.NewUserRepository(store, appLogger)
	students := kvrepos.NewStudentRepository(store, appLogger)
	records := kvrepos.NewAttendanceRepository(store, appLogger)
	attSvc := attendance.NewService(records, students, validate)

	seeder := seed.NewSeeder(seed.Repositories{
		Users:      users,
		Students:   students,
		Attendance: records,
		Flag:       kvrepos.NewSeedFlag(store, appLogger),
	}, appLogger)
	_, err = seeder.EnsureSeeded(ctx)
	errAndDie(err)

	a := &app{
		translator: translator,
		authSvc:    auth.NewService(users, students, auth.NewTokens(conf.SecretKey, conf.AppName, conf.Session.TTL)),
		stuSvc:     student.NewService(students, attSvc, validate),
		attSvc:     attSvc,
		tokens:     kvrepos.NewTokenStore(sessionStore),
	}
	if err = rootCmd(a).ExecuteContext(ctx); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %s\n", a.describe(err))
		store.Close()
		sessionStore.Close()
		appLogger.Close()
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

// describe renders err for the terminal, translating validation failures field by field.
func (a *app) describe(err error) string {
	fields := validationFields(err, a.translator)
	if len(fields) == 0 {
		return err.Error()
	}
	msg := ""
	for i, f := range fields {
		if i > 0 {
			msg += "; "
		}
		msg += fmt.Sprintf("%s: %s", f.Field, f.Error)
	}
	return msg
}
