package inmemdb

import (
	"sort"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/activity"
)

type activityRepository struct {
	db *activityTable
}

var _ activity.Repository = (*activityRepository)(nil)

func NewActivityRepository(db *DB) *activityRepository {
	return &activityRepository{db: db.activity}
}

func (repo *activityRepository) CreateActivity(act activity.Activity) (activity.Activity, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[act.ID] = &act
	return act, nil
}

func (repo *activityRepository) QueryAllActivities() ([]activity.Activity, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	acts := make([]activity.Activity, 0, len(repo.db.table))
	for _, a := range repo.db.table {
		acts = append(acts, *a)
	}
	sort.Slice(acts, func(i, j int) bool { return acts[i].CreatedAt.After(acts[j].CreatedAt) })
	return acts, nil
}

func (repo *activityRepository) GetActivityByID(id string) (activity.Activity, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if a, ok := repo.db.table[id]; ok {
		return *a, nil
	}
	return activity.Activity{}, activity.ErrNotFound
}

func (repo *activityRepository) UpdateActivity(act activity.Activity) (activity.Activity, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	// only save set fields
	orig, ok := repo.db.table[act.ID]
	if !ok {
		return activity.Activity{}, activity.ErrNotFound
	}
	if act.Title != "" {
		orig.Title = act.Title
	}
	if act.Description != "" {
		orig.Description = act.Description
	}
	if act.Theme != "" {
		orig.Theme = act.Theme
	}
	if !act.Date.IsZero() {
		orig.Date = act.Date
	}
	if !act.UpdatedAt.IsZero() {
		orig.UpdatedAt = act.UpdatedAt
	}
	return *orig, nil
}

func (repo *activityRepository) DeleteActivitiesByID(ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
