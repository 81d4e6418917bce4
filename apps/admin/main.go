package main

import (
	"context"
	"log"
	"os"

	"github.com/utsavdwivedi51/Attendance-ERP/core"
	"github.com/utsavdwivedi51/Attendance-ERP/core/attendance"
	"github.com/utsavdwivedi51/Attendance-ERP/core/seed"
	"github.com/utsavdwivedi51/Attendance-ERP/core/student"
	logsvc "github.com/utsavdwivedi51/Attendance-ERP/services/logger"
	kvopen "github.com/utsavdwivedi51/Attendance-ERP/storage/kv/open"
	kvrepos "github.com/utsavdwivedi51/Attendance-ERP/storage/repos"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	conf := core.NewConfig()
	appLogger := logsvc.NewRollbarLogger(logger, conf)

	// set up store
	store, err := kvopen.Open(context.Background(), conf.Storage)
	errAndDie(err)
	defer store.Close()

	// start CLI
	validate, _ := core.NewValidator()
	stuRepo := kvrepos.NewStudentRepository(store, appLogger)
	attRepo := kvrepos.NewAttendanceRepository(store, appLogger)
	attSvc := attendance.NewService(attRepo, stuRepo, validate)
	cli := commandLine{
		store:  store,
		stuSvc: student.NewService(stuRepo, attSvc, validate),
		seeder: seed.NewSeeder(seed.Repositories{
			Users:      kvrepos.NewUserRepository(store, appLogger),
			Students:   stuRepo,
			Attendance: attRepo,
			Flag:       kvrepos.NewSeedFlag(store, appLogger),
		}, appLogger),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		store.Close()
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
