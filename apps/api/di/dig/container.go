package dig_container

import (
	"context"
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/utsavdwivedi51/Attendance-ERP/apps/api/echo"
	"github.com/utsavdwivedi51/Attendance-ERP/core"
	"github.com/utsavdwivedi51/Attendance-ERP/core/attendance"
	"github.com/utsavdwivedi51/Attendance-ERP/core/auth"
	"github.com/utsavdwivedi51/Attendance-ERP/core/seed"
	"github.com/utsavdwivedi51/Attendance-ERP/core/student"
	"github.com/utsavdwivedi51/Attendance-ERP/core/user"
	logsvc "github.com/utsavdwivedi51/Attendance-ERP/services/logger"
	"github.com/utsavdwivedi51/Attendance-ERP/storage/kv"
	kvopen "github.com/utsavdwivedi51/Attendance-ERP/storage/kv/open"
	kvrepos "github.com/utsavdwivedi51/Attendance-ERP/storage/repos"
)

type StoreLoggerParam struct {
	dig.In
	Logger core.Logger `name:"storeLogger"`
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newStoreLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "STORE : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newStore(conf *core.Config, loggerParam StoreLoggerParam) kv.Store {
	store, err := kvopen.Open(context.Background(), conf.Storage)
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("opening %s store: %v", conf.Storage.Engine, err), err)
	}
	return store
}

type reposResult struct {
	dig.Out
	Users      user.Repository
	Students   student.Repository
	Attendance attendance.Repository
	Flag       seed.Flag
}

func newRepositories(store kv.Store, loggerParam StoreLoggerParam) reposResult {
	logger := loggerParam.Logger
	return reposResult{
		Users:      kvrepos.NewUserRepository(store, logger),
		Students:   kvrepos.NewStudentRepository(store, logger),
		Attendance: kvrepos.NewAttendanceRepository(store, logger),
		Flag:       kvrepos.NewSeedFlag(store, logger),
	}
}

func newValidator() (*validator.Validate, ut.Translator) {
	return core.NewValidator()
}

func newTokens(conf *core.Config) *auth.Tokens {
	return auth.NewTokens(conf.SecretKey, conf.AppName, conf.Session.TTL)
}

func newServices(
	users user.Repository,
	students student.Repository,
	records attendance.Repository,
	validate *validator.Validate,
	tokens *auth.Tokens,
) (*student.Service, *attendance.Service, *auth.Service) {
	attSvc := attendance.NewService(records, students, validate)
	stuSvc := student.NewService(students, attSvc, validate)
	authSvc := auth.NewService(users, students, tokens)
	return stuSvc, attSvc, authSvc
}

func newSeeder(users user.Repository, students student.Repository, records attendance.Repository, flag seed.Flag, logger core.Logger) *seed.Seeder {
	return seed.NewSeeder(seed.Repositories{Users: users, Students: students, Attendance: records, Flag: flag}, logger)
}

func newServer(
	conf *core.Config,
	logger core.Logger,
	translator ut.Translator,
	authSvc *auth.Service,
	stuSvc *student.Service,
	attSvc *attendance.Service,
) *echoapi.Server {
	return echoapi.NewServer(&echoapi.Deps{
		Conf:          conf,
		Logger:        logger,
		Translator:    translator,
		AuthSvc:       authSvc,
		StudentSvc:    stuSvc,
		AttendanceSvc: attSvc,
	})
}

// New returns a new dependency injection dig.Container
func New(newConfig func() *core.Config) *dig.Container {
	c := dig.New()

	must(c.Provide(newConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newStoreLogger, dig.Name("storeLogger")))
	must(c.Provide(newStore))
	must(c.Provide(newRepositories))
	must(c.Provide(newValidator))
	must(c.Provide(newTokens))
	must(c.Provide(newServices))
	must(c.Provide(newSeeder))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
