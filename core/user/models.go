package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/access"
)

type User struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Username     string      `json:"username"`
	Email        string      `json:"email"`
	IsActive     *bool       `json:"is_active"`
	Role         access.Role `json:"role"`
	SiteID       string      `json:"site_id,omitempty"`
	SmallGroupID string      `json:"small_group_id,omitempty"`
	PasswordHash []byte      `json:"-"`
	CreatedAt    time.Time   `json:"created_at"` // UTC
	UpdatedAt    time.Time   `json:"updated_at"` // UTC
	LastLogin    time.Time   `json:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsNational() bool        { return u.Role == access.RoleNationalCoordinator }
func (u *User) IsSiteCoordinator() bool { return u.Role == access.RoleSiteCoordinator }
func (u *User) IsSmallGroupLeader() bool {
	return u.Role == access.RoleSmallGroupLeader
}

// Actor projects the user into the shape the access policy reasons about.
func (u *User) Actor() access.Actor {
	return access.Actor{
		ID:           u.ID,
		Role:         u.Role,
		SiteID:       u.SiteID,
		SmallGroupID: u.SmallGroupID,
	}
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Name            string      `json:"name" validate:"required"`
	Username        string      `json:"username" validate:"omitempty,min=6,alphanum_"`
	Email           string      `json:"email" validate:"omitempty,email"`
	Password        string      `json:"password" validate:"required"`
	PasswordConfirm string      `json:"password_confirm" validate:"required,eqfield=Password"`
	Role            access.Role `json:"role" validate:"required,role"`
	SiteID          string      `json:"site_id"`
	SmallGroupID    string      `json:"small_group_id"`
}

func (nu *NewUser) Validate(svc Service) error {
	nu.Name = core.CleanString(nu.Name)
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.Email = core.CleanString(nu.Email, true /* lower */)

	if err := core.Validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckUniqueness(nu.Username, nu.Email)
}

// UpdateUser defines what information may be provided to modify an existing User.
type UpdateUser struct {
	Name            string      `json:"name"`
	Username        string      `json:"username" validate:"omitempty,min=6,alphanum_"`
	Email           string      `json:"email" validate:"omitempty,email"`
	IsActive        *bool       `json:"is_active"`
	Role            access.Role `json:"role" validate:"omitempty,role"`
	SiteID          string      `json:"site_id"`
	SmallGroupID    string      `json:"small_group_id"`
	Password        string      `json:"password" validate:"omitempty"`
	PasswordConfirm string      `json:"password_confirm" validate:"required_with=Password,eqfield=Password"`
}

func (uu *UpdateUser) Validate(origUsr User, svc Service) error {
	name := core.CleanString(uu.Name)
	if name != "" {
		uu.Name = name
	} else {
		uu.Name = origUsr.Name
	}

	uname := core.CleanString(uu.Username, true /* lower */)
	if uname != "" {
		uu.Username = uname
	} else {
		uu.Username = origUsr.Username
	}

	email := core.CleanString(uu.Email, true /* lower */)
	if email != "" {
		uu.Email = email
	} else {
		uu.Email = origUsr.Email
	}

	if uu.Role == "" {
		uu.Role = origUsr.Role
		if uu.SiteID == "" {
			uu.SiteID = origUsr.SiteID
		}
		if uu.SmallGroupID == "" {
			uu.SmallGroupID = origUsr.SmallGroupID
		}
	}

	if err := core.Validate.Struct(uu); err != nil {
		return err
	}
	return svc.CheckUniqueness(uu.Username, uu.Email, origUsr)
}

type ResetUserPassword struct {
	Token           string `json:"token,omitempty" validate:"required"`
	UID             string `json:"uid,omitempty" validate:"required"`
	Password        string `json:"password,omitempty" validate:"required"`
	PasswordConfirm string `json:"password_confirm,omitempty" validate:"required,eqfield=Password"`
}

func (rp ResetUserPassword) Validate() error { return core.Validate.Struct(rp) }
