package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/access"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/activity"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/finance"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/member"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/org"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/report"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/user"
	inmemdb "github.com/benjaminmugangu/aylf-group-tracker-sub000/storage/database/inmem"
)

func ResetDB(t *testing.T, db *inmemdb.DB) {
	t.Helper()
	db.Reset()
}

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, uname, email, pwd string,
	role access.Role,
	siteID, smallGroupID string,
	isActive bool,
) user.User {
	t.Helper()

	now := time.Now().UTC()
	usr := user.User{
		ID:           uuid.New().String(),
		Name:         name,
		Username:     uname,
		Email:        email,
		IsActive:     &isActive,
		Role:         role,
		SiteID:       siteID,
		SmallGroupID: smallGroupID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateSite(t *testing.T, repo org.Repository, name, city, country string) org.Site {
	t.Helper()

	now := time.Now().UTC()
	site, err := repo.CreateSite(org.Site{
		ID:        uuid.New().String(),
		Name:      name,
		City:      city,
		Country:   country,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateSite() failed: %v", err)
	}
	return site
}

func CreateSmallGroup(t *testing.T, repo org.Repository, siteID, name string) org.SmallGroup {
	t.Helper()

	now := time.Now().UTC()
	group, err := repo.CreateSmallGroup(org.SmallGroup{
		ID:        uuid.New().String(),
		SiteID:    siteID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateSmallGroup() failed: %v", err)
	}
	return group
}

func CreateActivity(t *testing.T, repo activity.Repository, title string, scope org.Scope, date time.Time) activity.Activity {
	t.Helper()

	now := time.Now().UTC()
	act, err := repo.CreateActivity(activity.Activity{
		ID:        uuid.New().String(),
		Title:     title,
		Scope:     scope,
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateActivity() failed: %v", err)
	}
	return act
}

func CreateMember(t *testing.T, repo member.Repository, name string, scope org.Scope, joinedAt time.Time) member.Member {
	t.Helper()

	now := time.Now().UTC()
	mbr, err := repo.CreateMember(member.Member{
		ID:        uuid.New().String(),
		Name:      name,
		Scope:     scope,
		JoinedAt:  joinedAt,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateMember() failed: %v", err)
	}
	return mbr
}

func CreateReport(
	t *testing.T,
	repo report.Repository,
	title, submittedBy string,
	scope org.Scope,
	submittedAt time.Time,
) report.Report {
	t.Helper()

	now := time.Now().UTC()
	rpt, err := repo.CreateReport(report.Report{
		ID:          uuid.New().String(),
		Title:       title,
		Content:     "content",
		SubmittedBy: submittedBy,
		Scope:       scope,
		SubmittedAt: submittedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("CreateReport() failed: %v", err)
	}
	return rpt
}

func CreateTransaction(
	t *testing.T,
	repo finance.Repository,
	typ finance.TransactionType,
	amount decimal.Decimal,
	senderType org.Level, senderID string,
	recipientType org.Level, recipientID string,
	scope org.Scope,
	date time.Time,
) finance.Transaction {
	t.Helper()

	now := time.Now().UTC()
	txn, err := repo.CreateTransaction(finance.Transaction{
		ID:            uuid.New().String(),
		Type:          typ,
		Amount:        amount,
		SenderType:    senderType,
		SenderID:      senderID,
		RecipientType: recipientType,
		RecipientID:   recipientID,
		Scope:         scope,
		Date:          date,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		t.Fatalf("CreateTransaction() failed: %v", err)
	}
	return txn
}
