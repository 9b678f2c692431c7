package inmemdb

import (
	"sort"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/report"
)

type reportRepository struct {
	db *reportTable
}

var _ report.Repository = (*reportRepository)(nil)

func NewReportRepository(db *DB) *reportRepository {
	return &reportRepository{db: db.report}
}

func (repo *reportRepository) CreateReport(rpt report.Report) (report.Report, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[rpt.ID] = &rpt
	return rpt, nil
}

func (repo *reportRepository) QueryAllReports() ([]report.Report, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	rpts := make([]report.Report, 0, len(repo.db.table))
	for _, r := range repo.db.table {
		rpts = append(rpts, *r)
	}
	sort.Slice(rpts, func(i, j int) bool { return rpts[i].CreatedAt.After(rpts[j].CreatedAt) })
	return rpts, nil
}

func (repo *reportRepository) GetReportByID(id string) (report.Report, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if r, ok := repo.db.table[id]; ok {
		return *r, nil
	}
	return report.Report{}, report.ErrNotFound
}

func (repo *reportRepository) UpdateReport(rpt report.Report) (report.Report, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	// only save set fields
	orig, ok := repo.db.table[rpt.ID]
	if !ok {
		return report.Report{}, report.ErrNotFound
	}
	if rpt.Title != "" {
		orig.Title = rpt.Title
	}
	if rpt.Content != "" {
		orig.Content = rpt.Content
	}
	if rpt.ActivityID != "" {
		orig.ActivityID = rpt.ActivityID
	}
	if !rpt.UpdatedAt.IsZero() {
		orig.UpdatedAt = rpt.UpdatedAt
	}
	return *orig, nil
}

func (repo *reportRepository) DeleteReportsByID(ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
