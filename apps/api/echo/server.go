package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/activity"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/finance"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/member"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/org"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/report"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/user"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool
		Logger         core.Logger

		UserSvc     user.Service
		OrgSvc      org.Service
		MemberSvc   member.Service
		ActivitySvc activity.Service
		ReportSvc   report.Service
		FinanceSvc  finance.Service
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		opts     *Options
		app      *echo.Echo
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts:     opts,
		app:      echo.New(),
		shutdown: make(chan os.Signal, 1),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	appJWTConfig.SigningKey = core.Conf.SecretKey

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(core.Conf.Debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.signalShutdown)
	s.app.Debug = core.Conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerUserAPI(v1, jwt, s.opts.UserSvc)
	registerOrgAPI(v1, jwt, s.opts.OrgSvc)
	registerMemberAPI(v1, jwt, s.opts.MemberSvc, s.opts.OrgSvc)
	registerActivityAPI(v1, jwt, s.opts.ActivitySvc, s.opts.OrgSvc)
	registerReportAPI(v1, jwt, s.opts.ReportSvc, s.opts.OrgSvc)
	registerFinanceAPI(v1, jwt, s.opts.FinanceSvc, s.opts.OrgSvc)
}

func (s *server) Start() {
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.app.Logger.Fatal(s.app.Start(s.opts.Address))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

// signalShutdown initiates a graceful shutdown when an unrecoverable
// integrity error is caught.
func (s *server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the AYLF Group Tracker API!")
}
