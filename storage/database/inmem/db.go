package inmemdb

import (
	"sync"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/activity"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/finance"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/member"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/org"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/report"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/user"
)

type (
	DB struct {
		user        *userTable
		site        *siteTable
		smallGroup  *smallGroupTable
		member      *memberTable
		activity    *activityTable
		report      *reportTable
		transaction *transactionTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	siteTable struct {
		sync.RWMutex
		table map[string]*org.Site
	}

	smallGroupTable struct {
		sync.RWMutex
		table map[string]*org.SmallGroup
	}

	memberTable struct {
		sync.RWMutex
		table map[string]*member.Member
	}

	activityTable struct {
		sync.RWMutex
		table map[string]*activity.Activity
	}

	reportTable struct {
		sync.RWMutex
		table map[string]*report.Report
	}

	transactionTable struct {
		sync.RWMutex
		table map[string]*finance.Transaction
	}
)

// Reset drops all rows. Test support.
func (db *DB) Reset() {
	db.user.Lock()
	db.user.table = make(map[string]*user.User)
	db.user.Unlock()
	db.site.Lock()
	db.site.table = make(map[string]*org.Site)
	db.site.Unlock()
	db.smallGroup.Lock()
	db.smallGroup.table = make(map[string]*org.SmallGroup)
	db.smallGroup.Unlock()
	db.member.Lock()
	db.member.table = make(map[string]*member.Member)
	db.member.Unlock()
	db.activity.Lock()
	db.activity.table = make(map[string]*activity.Activity)
	db.activity.Unlock()
	db.report.Lock()
	db.report.table = make(map[string]*report.Report)
	db.report.Unlock()
	db.transaction.Lock()
	db.transaction.table = make(map[string]*finance.Transaction)
	db.transaction.Unlock()
}

func Open() (*DB, error) {
	db := &DB{
		user:        &userTable{table: make(map[string]*user.User)},
		site:        &siteTable{table: make(map[string]*org.Site)},
		smallGroup:  &smallGroupTable{table: make(map[string]*org.SmallGroup)},
		member:      &memberTable{table: make(map[string]*member.Member)},
		activity:    &activityTable{table: make(map[string]*activity.Activity)},
		report:      &reportTable{table: make(map[string]*report.Report)},
		transaction: &transactionTable{table: make(map[string]*finance.Transaction)},
	}
	return db, nil
}
