package main

import (
	"github.com/pkg/errors"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/access"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/user"
)

// addCoordinator creates a national coordinator account, or promotes the
// matching existing account and resets its password.
func (cli *commandLine) addCoordinator(name, uname, email, pwd string) error {
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)

	lookup := uname
	if lookup == "" {
		lookup = email
	}

	usr, err := cli.usrSvc.GetByUsernameOrEmail(lookup)
	if err != nil {
		if errors.Cause(err) != user.ErrNotFound {
			return err
		}
		_, err = cli.usrSvc.Create(user.NewUser{
			Name:            name,
			Username:        uname,
			Email:           email,
			Password:        pwd,
			PasswordConfirm: pwd,
			Role:            access.RoleNationalCoordinator,
		})
		return err
	}

	_, err = cli.usrSvc.Update(usr.ID, user.UpdateUser{
		Name:            name,
		Role:            access.RoleNationalCoordinator,
		Password:        pwd,
		PasswordConfirm: pwd,
	})
	return err
}
