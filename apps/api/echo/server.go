package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/utsavdwivedi51/Attendance-ERP/core"
	"github.com/utsavdwivedi51/Attendance-ERP/core/attendance"
	"github.com/utsavdwivedi51/Attendance-ERP/core/auth"
	"github.com/utsavdwivedi51/Attendance-ERP/core/student"
)

type (
	Deps struct {
		Conf          *core.Config
		Logger        core.Logger
		Translator    ut.Translator
		AuthSvc       *auth.Service
		StudentSvc    *student.Service
		AttendanceSvc *attendance.Service
	}

	Server struct {
		conf     *core.Config
		app      *echo.Echo
		metrics  *Metrics
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps *Deps) *Server {
	s := &Server{
		conf:     deps.Conf,
		app:      echo.New(),
		metrics:  NewMetrics(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup(deps)
	return s
}

func (s *Server) setup(deps *Deps) {
	debug := s.conf.Debug

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(debug || s.conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(s.metrics.Middleware())

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(deps.Logger, deps.Translator, s.signalShutdown)
	s.app.Debug = debug

	s.app.GET("/", s.home)
	s.app.GET("/metrics", s.metrics.Handler())

	v1 := s.app.Group("/v1")
	authn := sessionMiddleware(deps.AuthSvc)

	registerAuthAPI(v1, authn, deps.AuthSvc)
	registerStatsAPI(v1, deps.AttendanceSvc)
	registerStudentAPI(v1.Group("/students", authn, teacherOnly), deps.StudentSvc, deps.AttendanceSvc)
	registerAttendanceAPI(v1, authn, deps.StudentSvc, deps.AttendanceSvc, s.metrics)
}

// Start runs the HTTP server. Listening errors are sent to Errors.
func (s *Server) Start() {
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	if err := s.app.Start(s.conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error { return s.errors }

func (s *Server) ShutdownSignal() <-chan os.Signal { return s.shutdown }

func (s *Server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default:
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.conf.AppName+" API!")
}
