package report

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/access"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/temporal"
)

var (
	// errors
	ErrNotFound = errors.New("report not found")
)

type (
	Repository interface {
		CreateReport(rpt Report) (Report, error)
		QueryAllReports() ([]Report, error)
		GetReportByID(id string) (Report, error)
		UpdateReport(rpt Report) (Report, error)
		DeleteReportsByID(ids ...string) error
	}

	Service interface {
		Create(nr NewReport) (Report, error)
		GetByID(id string) (Report, error)
		// Visible returns the reports the actor may see whose submission date
		// falls within the window, plus a count of records excluded as malformed.
		Visible(policy access.Policy, actor access.Actor, sel temporal.Selector, now time.Time) ([]Report, int, error)
		Update(id string, ur UpdateReport) (Report, error)
		Delete(ids ...string) error
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) *service {
	return &service{repo: repo}
}

func (svc *service) Create(nr NewReport) (Report, error) {
	now := time.Now().UTC()
	rpt := Report{
		ID:          uuid.New().String(),
		Title:       nr.Title,
		Content:     nr.Content,
		ActivityID:  nr.ActivityID,
		SubmittedBy: nr.SubmittedBy,
		Scope:       nr.scope(),
		SubmittedAt: nr.SubmittedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateReport(rpt)
}

func (svc *service) GetByID(id string) (Report, error) {
	return svc.repo.GetReportByID(id)
}

func (svc *service) Visible(
	policy access.Policy,
	actor access.Actor,
	sel temporal.Selector,
	now time.Time,
) ([]Report, int, error) {
	reports, err := svc.repo.QueryAllReports()
	if err != nil {
		return nil, 0, err
	}

	rng, err := temporal.Resolve(sel, now)
	if err != nil {
		return nil, 0, err
	}

	scoped := access.VisibleRecords(policy, actor, reports)
	kept, excluded := temporal.Filter(scoped, rng, func(r Report) time.Time { return r.SubmittedAt })
	return kept, excluded, nil
}

func (svc *service) Update(id string, ur UpdateReport) (Report, error) {
	rpt := Report{
		ID:         id,
		Title:      ur.Title,
		Content:    ur.Content,
		ActivityID: ur.ActivityID,
		UpdatedAt:  time.Now().UTC(),
	}
	return svc.repo.UpdateReport(rpt)
}

func (svc *service) Delete(ids ...string) error {
	return svc.repo.DeleteReportsByID(ids...)
}
