package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db     *sql.DB
	usrSvc user.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [args] - apply database migrations (up, down, status, ...)")
	fmt.Println("  addcoordinator -name NAME -username USERNAME -email EMAIL - add or promote a national coordinator")
	fmt.Println("  resetpassword -username USERNAME|EMAIL - reset user's password")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addCoordinatorCmd := flag.NewFlagSet("addcoordinator", flag.ExitOnError)
	addCoordinatorName := addCoordinatorCmd.String("name", "", "The coordinator's full name.")
	addCoordinatorUname := addCoordinatorCmd.String("username", "", "The coordinator's username.")
	addCoordinatorEmail := addCoordinatorCmd.String("email", "", "The coordinator's email. The password will be prompted next.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordUname := resetPasswordCmd.String("username", "", "The user's username or email. The password will be prompted next.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "addcoordinator":
		if err := addCoordinatorCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addCoordinatorName == "" || (*addCoordinatorUname == "" && *addCoordinatorEmail == "") {
			addCoordinatorCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			addCoordinatorCmd.Usage()
			return errHelp
		}
		return cli.addCoordinator(*addCoordinatorName, *addCoordinatorUname, *addCoordinatorEmail, pwd)
	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordUname == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordUname, pwd)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) promptPassword() (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}
