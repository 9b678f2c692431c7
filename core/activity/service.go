package activity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/access"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/temporal"
)

var (
	// errors
	ErrNotFound = errors.New("activity not found")
)

type (
	Repository interface {
		CreateActivity(act Activity) (Activity, error)
		QueryAllActivities() ([]Activity, error)
		GetActivityByID(id string) (Activity, error)
		UpdateActivity(act Activity) (Activity, error)
		DeleteActivitiesByID(ids ...string) error
	}

	Service interface {
		Create(na NewActivity) (Activity, error)
		GetByID(id string) (Activity, error)
		// Visible returns the activities the actor may see whose date falls
		// within the window, plus a count of records excluded as malformed.
		Visible(policy access.Policy, actor access.Actor, sel temporal.Selector, now time.Time) ([]Activity, int, error)
		Update(id string, ua UpdateActivity) (Activity, error)
		Delete(ids ...string) error
		Suggest(ctx context.Context, req SuggestionRequest) ([]Suggestion, error)
	}

	service struct {
		repo      Repository
		suggester Suggester
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, suggester Suggester) *service {
	return &service{repo: repo, suggester: suggester}
}

func (svc *service) Create(na NewActivity) (Activity, error) {
	now := time.Now().UTC()
	act := Activity{
		ID:          uuid.New().String(),
		Title:       na.Title,
		Description: na.Description,
		Theme:       na.Theme,
		Scope:       na.scope(),
		Date:        na.Date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateActivity(act)
}

func (svc *service) GetByID(id string) (Activity, error) {
	return svc.repo.GetActivityByID(id)
}

func (svc *service) Visible(
	policy access.Policy,
	actor access.Actor,
	sel temporal.Selector,
	now time.Time,
) ([]Activity, int, error) {
	acts, err := svc.repo.QueryAllActivities()
	if err != nil {
		return nil, 0, err
	}

	rng, err := temporal.Resolve(sel, now)
	if err != nil {
		return nil, 0, err
	}

	scoped := access.VisibleRecords(policy, actor, acts)
	kept, excluded := temporal.Filter(scoped, rng, func(a Activity) time.Time { return a.Date })
	return kept, excluded, nil
}

func (svc *service) Update(id string, ua UpdateActivity) (Activity, error) {
	act := Activity{
		ID:          id,
		Title:       ua.Title,
		Description: ua.Description,
		Theme:       ua.Theme,
		Date:        ua.Date,
		UpdatedAt:   time.Now().UTC(),
	}
	return svc.repo.UpdateActivity(act)
}

func (svc *service) Delete(ids ...string) error {
	return svc.repo.DeleteActivitiesByID(ids...)
}

func (svc *service) Suggest(ctx context.Context, req SuggestionRequest) ([]Suggestion, error) {
	return svc.suggester.Suggest(ctx, req)
}
