package main

import (
	"log"
	"os"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/user"
	emailsvc "github.com/benjaminmugangu/aylf-group-tracker-sub000/services/email"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/storage/database"
	sqlxrepos "github.com/benjaminmugangu/aylf-group-tracker-sub000/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up DB
	errAndDie(database.CreateIfNotExist(conf))
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())

	usrSvc := user.NewService(
		sqlxrepos.NewUserRepository(db, conf.Database.Engine),
		emailsvc.NewConsoleService(),
		conf,
	)

	// start CLI
	cli := commandLine{
		db:     db,
		usrSvc: usrSvc,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
