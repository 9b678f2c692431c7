package activity

import (
	"context"
	"time"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/org"
)

type Activity struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Theme       string    `json:"theme,omitempty"`
	Scope       org.Scope `json:"scope"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

func (a Activity) RecordScope() org.Scope { return a.Scope }

// NewActivity contains information needed to create a new Activity.
type NewActivity struct {
	Title        string    `json:"title" validate:"required"`
	Description  string    `json:"description"`
	Theme        string    `json:"theme"`
	Level        org.Level `json:"level" validate:"required,oneof=national site small_group"`
	SiteID       string    `json:"site_id" validate:"required_if=Level site,required_if=Level small_group"`
	SmallGroupID string    `json:"small_group_id" validate:"required_if=Level small_group"`
	Date         time.Time `json:"date" validate:"required"`
}

func (na *NewActivity) Validate() error {
	na.Title = core.CleanString(na.Title)
	na.Description = core.CleanString(na.Description)
	na.Theme = core.CleanString(na.Theme)
	return core.Validate.Struct(na)
}

func (na NewActivity) scope() org.Scope {
	return org.Scope{Level: na.Level, SiteID: na.SiteID, SmallGroupID: na.SmallGroupID}
}

// UpdateActivity defines what information may be provided to modify an existing Activity.
type UpdateActivity struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Theme       string    `json:"theme"`
	Date        time.Time `json:"date"`
}

func (ua *UpdateActivity) Validate(orig Activity) error {
	if title := core.CleanString(ua.Title); title != "" {
		ua.Title = title
	} else {
		ua.Title = orig.Title
	}
	if desc := core.CleanString(ua.Description); desc != "" {
		ua.Description = desc
	} else {
		ua.Description = orig.Description
	}
	if theme := core.CleanString(ua.Theme); theme != "" {
		ua.Theme = theme
	} else {
		ua.Theme = orig.Theme
	}
	if ua.Date.IsZero() {
		ua.Date = orig.Date
	}
	return core.Validate.Struct(ua)
}

// Suggestion is an AI-generated activity idea.
type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SuggestionRequest describes what kind of activity ideas are wanted.
type SuggestionRequest struct {
	Theme    string    `json:"theme" validate:"required"`
	Level    org.Level `json:"level" validate:"required,oneof=national site small_group"`
	Audience string    `json:"audience"`
	Count    int       `json:"count" validate:"omitempty,min=1,max=10"`
}

func (sr *SuggestionRequest) Validate() error {
	sr.Theme = core.CleanString(sr.Theme)
	sr.Audience = core.CleanString(sr.Audience)
	if sr.Count == 0 {
		sr.Count = 3
	}
	return core.Validate.Struct(sr)
}

// Suggester is any service that can propose activity ideas.
type Suggester interface {
	Suggest(ctx context.Context, req SuggestionRequest) ([]Suggestion, error)
}
