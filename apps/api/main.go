package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	echoapi "github.com/benjaminmugangu/aylf-group-tracker-sub000/apps/api/echo"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/activity"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/finance"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/member"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/org"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/report"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/user"
	emailsvc "github.com/benjaminmugangu/aylf-group-tracker-sub000/services/email"
	logsvc "github.com/benjaminmugangu/aylf-group-tracker-sub000/services/logger"
	suggestsvc "github.com/benjaminmugangu/aylf-group-tracker-sub000/services/suggest"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/storage/database"
	inmemdb "github.com/benjaminmugangu/aylf-group-tracker-sub000/storage/database/inmem"
	sqlxrepos "github.com/benjaminmugangu/aylf-group-tracker-sub000/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()
	if err := conf.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// domain records live in memory; user accounts are backed by Postgres in PROD
	db, err := inmemdb.Open()
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening in-memory database: %v", err), err)
	}

	var usrRepo user.Repository = inmemdb.NewUserRepository(db)
	if conf.IsProd() {
		sqlDB, err := setUpDB(conf)
		if err != nil {
			logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
		}
		defer func() { _ = sqlDB.Close() }()
		usrRepo = sqlxrepos.NewUserRepository(sqlDB, conf.Database.Engine)
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}

	usrSvc := user.NewService(usrRepo, mailSvc, conf)
	orgSvc := org.NewService(inmemdb.NewOrgRepository(db))
	memberSvc := member.NewService(inmemdb.NewMemberRepository(db))
	activitySvc := activity.NewService(inmemdb.NewActivityRepository(db), suggestsvc.NewGeminiService(conf, logger))
	reportSvc := report.NewService(inmemdb.NewReportRepository(db))
	financeSvc := finance.NewService(inmemdb.NewTransactionRepository(db))

	// =========================================================================
	// Start API Service

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	server := echoapi.NewServer(
		&echoapi.Options{
			Address:     conf.Server.Host + ":" + conf.Server.Port,
			Logger:      logger,
			UserSvc:     usrSvc,
			OrgSvc:      orgSvc,
			MemberSvc:   memberSvc,
			ActivitySvc: activitySvc,
			ReportSvc:   reportSvc,
			FinanceSvc:  financeSvc,
		},
	)

	go server.Start()

	// =========================================================================
	// Shutdown

	sig := <-server.ShutdownSignal()
	logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

	// give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logger.Fatal(fmt.Sprintf("could not stop server gracefully: %v", err), err)
	}
}

func setUpDB(conf *core.Config) (*sql.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
