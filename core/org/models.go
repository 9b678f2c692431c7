package org

import (
	"time"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core"
)

// Level tags every scoped record with the tier of the org hierarchy it belongs to.
type Level string

const (
	LevelNational   Level = "national"
	LevelSite       Level = "site"
	LevelSmallGroup Level = "small_group"
)

var AllLevels = []Level{LevelNational, LevelSite, LevelSmallGroup}

// Scope identifies where in the national > site > small group hierarchy a record lives.
// The zero SiteID/SmallGroupID means "not set".
type Scope struct {
	Level        Level  `json:"level"`
	SiteID       string `json:"site_id,omitempty"`
	SmallGroupID string `json:"small_group_id,omitempty"`
}

// Valid reports whether the scope carries the association fields its level requires:
// site-level scopes need a SiteID, small-group-level scopes need both IDs.
func (s Scope) Valid() bool {
	switch s.Level {
	case LevelNational:
		return true
	case LevelSite:
		return s.SiteID != ""
	case LevelSmallGroup:
		return s.SiteID != "" && s.SmallGroupID != ""
	}
	return false
}

// RecordScope makes Scope itself satisfy Scoped, so permission checks can
// run against a bare scope before a record exists.
func (s Scope) RecordScope() Scope { return s }

// Scoped is implemented by every domain record that carries a hierarchy scope.
type Scoped interface {
	RecordScope() Scope
}

type Site struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at"` // UTC
}

type SmallGroup struct {
	ID         string    `json:"id"`
	SiteID     string    `json:"site_id"`
	Name       string    `json:"name"`
	MeetingDay string    `json:"meeting_day,omitempty"`
	CreatedAt  time.Time `json:"created_at"` // UTC
	UpdatedAt  time.Time `json:"updated_at"` // UTC
}

// NewSite contains information needed to create a new Site.
type NewSite struct {
	Name    string `json:"name" validate:"required"`
	City    string `json:"city" validate:"required"`
	Country string `json:"country" validate:"required"`
}

func (ns *NewSite) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.City = core.CleanString(ns.City)
	ns.Country = core.CleanString(ns.Country)
	return core.Validate.Struct(ns)
}

// NewSmallGroup contains information needed to create a new SmallGroup.
type NewSmallGroup struct {
	SiteID     string `json:"site_id" validate:"required"`
	Name       string `json:"name" validate:"required"`
	MeetingDay string `json:"meeting_day"`
}

func (ng *NewSmallGroup) Validate(svc Service) error {
	ng.Name = core.CleanString(ng.Name)
	ng.MeetingDay = core.CleanString(ng.MeetingDay)

	if err := core.Validate.Struct(ng); err != nil {
		return err
	}
	if _, err := svc.GetSite(ng.SiteID); err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "site_id", Error: ErrSiteNotFound.Error()})
	}
	return nil
}
