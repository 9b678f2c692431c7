package user

import (
	"errors"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core"
)

var (
	// errors
	ErrNotFound       = errors.New("user not found")
	ErrEmailExists    = errors.New("a user with this email already exists")
	ErrUsernameExists = errors.New("a user with this username already exists")
)

type (
	Repository interface {
		CheckUsernameUniqueness(username, email string, excludedUsers ...User) error
		CreateUser(usr User) (User, error)
		QueryAllUsers() ([]User, error)
		GetUserByID(id string) (User, error)
		GetUserByUsername(username string) (User, error)
		GetUserByEmail(email string) (User, error)
		GetUserByUsernameOrEmail(username string) (User, error)
		UpdateUser(usr User, isActive ...*bool) (User, error)
		DeleteUsersByID(ids ...string) error
	}

	Service interface {
		CheckUniqueness(uname, email string, exclUsers ...User) error
		Create(nu NewUser) (User, error)
		QueryAll() ([]User, error)
		GetByID(id string) (User, error)
		GetByUsername(uname string) (User, error)
		GetByEmail(email string) (User, error)
		GetByUsernameOrEmail(uname string) (User, error)
		Update(id string, uu UpdateUser) (User, error)
		SetLastLogin(usr User) (User, error)
		RequestPasswordReset(email string) error
		ResetPassword(rp ResetUserPassword) error
		Delete(ids ...string) error
	}

	service struct {
		repo    Repository
		mailSvc core.EmailService
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) *service {
	secretKey = conf.SecretKey
	passwordResetTimeoutDelta = conf.PasswordResetTimeoutDelta
	return &service{
		repo:    repo,
		mailSvc: mailSvc,
	}
}

func (svc *service) CheckUniqueness(uname, email string, exclUsers ...User) error {
	if err := svc.repo.CheckUsernameUniqueness(uname, email, exclUsers...); err != nil {
		var field string
		switch err {
		case ErrUsernameExists:
			field = "username"
		case ErrEmailExists:
			field = "email"
		default:
			return err
		}
		return core.NewValidationError(err, core.FieldError{Field: field, Error: err.Error()})
	}
	return nil
}

func (svc *service) Create(nu NewUser) (User, error) {
	now := time.Now().UTC()
	isActive := true
	usr := User{
		ID:           uuid.New().String(),
		Name:         nu.Name,
		Username:     nu.Username,
		Email:        nu.Email,
		IsActive:     &isActive,
		Role:         nu.Role,
		SiteID:       nu.SiteID,
		SmallGroupID: nu.SmallGroupID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, err
	}
	return svc.repo.CreateUser(usr)
}

func (svc *service) QueryAll() ([]User, error) {
	return svc.repo.QueryAllUsers()
}

func (svc *service) GetByID(id string) (User, error) {
	return svc.repo.GetUserByID(id)
}

func (svc *service) GetByUsername(uname string) (User, error) {
	return svc.repo.GetUserByUsername(core.CleanString(uname, true /* lower */))
}

func (svc *service) GetByEmail(email string) (User, error) {
	return svc.repo.GetUserByEmail(core.CleanString(email, true /* lower */))
}

func (svc *service) GetByUsernameOrEmail(uname string) (User, error) {
	return svc.repo.GetUserByUsernameOrEmail(core.CleanString(uname, true /* lower */))
}

func (svc *service) Update(id string, uu UpdateUser) (User, error) {
	usr := User{
		ID:           id,
		Name:         uu.Name,
		Username:     uu.Username,
		Email:        uu.Email,
		Role:         uu.Role,
		SiteID:       uu.SiteID,
		SmallGroupID: uu.SmallGroupID,
		UpdatedAt:    time.Now().UTC(),
	}
	if uu.Password != "" {
		if err := usr.SetPassword(uu.Password); err != nil {
			return User{}, err
		}
	}
	return svc.repo.UpdateUser(usr, uu.IsActive)
}

func (svc *service) SetLastLogin(usr User) (User, error) {
	usr.LastLogin = time.Now().UTC()
	return svc.repo.UpdateUser(User{ID: usr.ID, LastLogin: usr.LastLogin})
}

func (svc *service) RequestPasswordReset(email string) error {
	usr, err := svc.GetByEmail(email)
	if err != nil {
		return err
	}
	go svc.sendPasswordResetMail(usr)
	return nil
}

func (svc *service) sendPasswordResetMail(usr User) {
	msg := &core.EmailMessage{
		To:           []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject:      "Password Reset",
		TemplateName: "password-reset",
		TemplateData: struct {
			User  User
			UID   string
			Token string
		}{
			User:  usr,
			UID:   EncodeUID(usr),
			Token: makeToken(usr),
		},
	}
	svc.mailSvc.SendMessages(msg)
}

func (svc *service) ResetPassword(rp ResetUserPassword) error {
	uid, err := decodeUID(rp.UID)
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "uid", Error: "invalid value"})
	}
	usr, err := svc.GetByID(uid)
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "uid", Error: "invalid value"})
	}
	if err := verifyToken(usr, rp.Token); err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "token", Error: "invalid value"})
	}
	if err := usr.SetPassword(rp.Password); err != nil {
		return err
	}
	_, err = svc.repo.UpdateUser(User{ID: usr.ID, PasswordHash: usr.PasswordHash})
	return err
}

func (svc *service) Delete(ids ...string) error {
	return svc.repo.DeleteUsersByID(ids...)
}
