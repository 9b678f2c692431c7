package org

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// errors
	ErrSiteNotFound       = errors.New("site not found")
	ErrSmallGroupNotFound = errors.New("small group not found")
)

type (
	Repository interface {
		CreateSite(site Site) (Site, error)
		QueryAllSites() ([]Site, error)
		GetSiteByID(id string) (Site, error)
		CreateSmallGroup(group SmallGroup) (SmallGroup, error)
		QueryAllSmallGroups() ([]SmallGroup, error)
		GetSmallGroupByID(id string) (SmallGroup, error)
	}

	Service interface {
		CreateSite(ns NewSite) (Site, error)
		QuerySites() ([]Site, error)
		GetSite(id string) (Site, error)
		CreateSmallGroup(ng NewSmallGroup) (SmallGroup, error)
		QuerySmallGroups() ([]SmallGroup, error)
		GetSmallGroup(id string) (SmallGroup, error)
		// Directory returns a read-only snapshot of the current small group -> site mapping.
		Directory() (Directory, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) *service {
	return &service{repo: repo}
}

func (svc *service) CreateSite(ns NewSite) (Site, error) {
	now := time.Now().UTC()
	site := Site{
		ID:        uuid.New().String(),
		Name:      ns.Name,
		City:      ns.City,
		Country:   ns.Country,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateSite(site)
}

func (svc *service) QuerySites() ([]Site, error) {
	return svc.repo.QueryAllSites()
}

func (svc *service) GetSite(id string) (Site, error) {
	return svc.repo.GetSiteByID(id)
}

func (svc *service) CreateSmallGroup(ng NewSmallGroup) (SmallGroup, error) {
	now := time.Now().UTC()
	group := SmallGroup{
		ID:         uuid.New().String(),
		SiteID:     ng.SiteID,
		Name:       ng.Name,
		MeetingDay: ng.MeetingDay,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return svc.repo.CreateSmallGroup(group)
}

func (svc *service) QuerySmallGroups() ([]SmallGroup, error) {
	return svc.repo.QueryAllSmallGroups()
}

func (svc *service) GetSmallGroup(id string) (SmallGroup, error) {
	return svc.repo.GetSmallGroupByID(id)
}

func (svc *service) Directory() (Directory, error) {
	groups, err := svc.repo.QueryAllSmallGroups()
	if err != nil {
		return Directory{}, err
	}
	return NewDirectory(groups), nil
}
