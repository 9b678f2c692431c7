package inmemdb

import (
	"sort"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/org"
)

type orgRepository struct {
	sites  *siteTable
	groups *smallGroupTable
}

var _ org.Repository = (*orgRepository)(nil)

func NewOrgRepository(db *DB) *orgRepository {
	return &orgRepository{sites: db.site, groups: db.smallGroup}
}

func (repo *orgRepository) CreateSite(site org.Site) (org.Site, error) {
	repo.sites.Lock()
	defer repo.sites.Unlock()

	repo.sites.table[site.ID] = &site
	return site, nil
}

func (repo *orgRepository) QueryAllSites() ([]org.Site, error) {
	repo.sites.RLock()
	defer repo.sites.RUnlock()

	sites := make([]org.Site, 0, len(repo.sites.table))
	for _, s := range repo.sites.table {
		sites = append(sites, *s)
	}
	sort.Slice(sites, func(i, j int) bool { return sites[i].CreatedAt.After(sites[j].CreatedAt) })
	return sites, nil
}

func (repo *orgRepository) GetSiteByID(id string) (org.Site, error) {
	repo.sites.RLock()
	defer repo.sites.RUnlock()

	if s, ok := repo.sites.table[id]; ok {
		return *s, nil
	}
	return org.Site{}, org.ErrSiteNotFound
}

func (repo *orgRepository) CreateSmallGroup(group org.SmallGroup) (org.SmallGroup, error) {
	repo.groups.Lock()
	defer repo.groups.Unlock()

	repo.groups.table[group.ID] = &group
	return group, nil
}

func (repo *orgRepository) QueryAllSmallGroups() ([]org.SmallGroup, error) {
	repo.groups.RLock()
	defer repo.groups.RUnlock()

	groups := make([]org.SmallGroup, 0, len(repo.groups.table))
	for _, g := range repo.groups.table {
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].CreatedAt.After(groups[j].CreatedAt) })
	return groups, nil
}

func (repo *orgRepository) GetSmallGroupByID(id string) (org.SmallGroup, error) {
	repo.groups.RLock()
	defer repo.groups.RUnlock()

	if g, ok := repo.groups.table[id]; ok {
		return *g, nil
	}
	return org.SmallGroup{}, org.ErrSmallGroupNotFound
}
