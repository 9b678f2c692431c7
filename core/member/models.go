package member

import (
	"time"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/org"
)

type Member struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Scope     org.Scope `json:"scope"`
	JoinedAt  time.Time `json:"joined_at"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

func (m Member) RecordScope() org.Scope { return m.Scope }

// NewMember contains information needed to register a new Member.
type NewMember struct {
	Name         string    `json:"name" validate:"required"`
	Email        string    `json:"email" validate:"omitempty,email"`
	Phone        string    `json:"phone"`
	Level        org.Level `json:"level" validate:"required,oneof=national site small_group"`
	SiteID       string    `json:"site_id" validate:"required_if=Level site,required_if=Level small_group"`
	SmallGroupID string    `json:"small_group_id" validate:"required_if=Level small_group"`
	JoinedAt     time.Time `json:"joined_at" validate:"required"`
}

func (nm *NewMember) Validate() error {
	nm.Name = core.CleanString(nm.Name)
	nm.Email = core.CleanString(nm.Email, true /* lower */)
	nm.Phone = core.CleanString(nm.Phone)
	return core.Validate.Struct(nm)
}

func (nm NewMember) scope() org.Scope {
	return org.Scope{Level: nm.Level, SiteID: nm.SiteID, SmallGroupID: nm.SmallGroupID}
}

// UpdateMember defines what information may be provided to modify an existing Member.
type UpdateMember struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

func (um *UpdateMember) Validate(orig Member) error {
	if name := core.CleanString(um.Name); name != "" {
		um.Name = name
	} else {
		um.Name = orig.Name
	}
	if email := core.CleanString(um.Email, true /* lower */); email != "" {
		um.Email = email
	} else {
		um.Email = orig.Email
	}
	if phone := core.CleanString(um.Phone); phone != "" {
		um.Phone = phone
	} else {
		um.Phone = orig.Phone
	}
	return core.Validate.Struct(um)
}
