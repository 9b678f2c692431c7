package report

import (
	"time"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/org"
)

type Report struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	// ActivityID is an explicit association; reports are never correlated
	// to activities by matching titles.
	ActivityID  string    `json:"activity_id,omitempty"`
	SubmittedBy string    `json:"submitted_by"`
	Scope       org.Scope `json:"scope"`
	SubmittedAt time.Time `json:"submitted_at"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

func (r Report) RecordScope() org.Scope { return r.Scope }

// NewReport contains information needed to submit a new Report.
type NewReport struct {
	Title        string    `json:"title" validate:"required"`
	Content      string    `json:"content" validate:"required"`
	ActivityID   string    `json:"activity_id"`
	SubmittedBy  string    `json:"submitted_by" validate:"required"`
	Level        org.Level `json:"level" validate:"required,oneof=national site small_group"`
	SiteID       string    `json:"site_id" validate:"required_if=Level site,required_if=Level small_group"`
	SmallGroupID string    `json:"small_group_id" validate:"required_if=Level small_group"`
	SubmittedAt  time.Time `json:"submitted_at" validate:"required"`
}

func (nr *NewReport) Validate() error {
	nr.Title = core.CleanString(nr.Title)
	nr.Content = core.CleanString(nr.Content)
	return core.Validate.Struct(nr)
}

func (nr NewReport) scope() org.Scope {
	return org.Scope{Level: nr.Level, SiteID: nr.SiteID, SmallGroupID: nr.SmallGroupID}
}

// UpdateReport defines what information may be provided to modify an existing Report.
type UpdateReport struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	ActivityID string `json:"activity_id"`
}

func (ur *UpdateReport) Validate(orig Report) error {
	if title := core.CleanString(ur.Title); title != "" {
		ur.Title = title
	} else {
		ur.Title = orig.Title
	}
	if content := core.CleanString(ur.Content); content != "" {
		ur.Content = content
	} else {
		ur.Content = orig.Content
	}
	if ur.ActivityID == "" {
		ur.ActivityID = orig.ActivityID
	}
	return core.Validate.Struct(ur)
}
