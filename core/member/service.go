package member

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/access"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/temporal"
)

var (
	// errors
	ErrNotFound = errors.New("member not found")
)

type (
	Repository interface {
		CreateMember(mbr Member) (Member, error)
		QueryAllMembers() ([]Member, error)
		GetMemberByID(id string) (Member, error)
		UpdateMember(mbr Member) (Member, error)
		DeleteMembersByID(ids ...string) error
	}

	Service interface {
		Create(nm NewMember) (Member, error)
		GetByID(id string) (Member, error)
		// Visible returns the members the actor may see whose join date falls
		// within the window, plus a count of records excluded as malformed.
		Visible(policy access.Policy, actor access.Actor, sel temporal.Selector, now time.Time) ([]Member, int, error)
		Update(id string, um UpdateMember) (Member, error)
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

func (svc *service) Create(nm NewMember) (Member, error) {
	now := time.Now().UTC()
	mbr := Member{
		ID:        uuid.New().String(),
		Name:      nm.Name,
		Email:     nm.Email,
		Phone:     nm.Phone,
		Scope:     nm.scope(),
		JoinedAt:  nm.JoinedAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateMember(mbr)
}

func (svc *service) GetByID(id string) (Member, error) {
	return svc.repo.GetMemberByID(id)
}

func (svc *service) Visible(
	policy access.Policy,
	actor access.Actor,
	sel temporal.Selector,
	now time.Time,
) ([]Member, int, error) {
	members, err := svc.repo.QueryAllMembers()
	if err != nil {
		return nil, 0, err
	}

	rng, err := temporal.Resolve(sel, now)
	if err != nil {
		return nil, 0, err
	}

	scoped := access.VisibleRecords(policy, actor, members)
	kept, excluded := temporal.Filter(scoped, rng, func(m Member) time.Time { return m.JoinedAt })
	return kept, excluded, nil
}

func (svc *service) Update(id string, um UpdateMember) (Member, error) {
	mbr := Member{
		ID:        id,
		Name:      um.Name,
		Email:     um.Email,
		Phone:     um.Phone,
		UpdatedAt: time.Now().UTC(),
	}
	return svc.repo.UpdateMember(mbr)
}

func (svc *service) Delete(ids ...string) error {
	return svc.repo.DeleteMembersByID(ids...)
}
