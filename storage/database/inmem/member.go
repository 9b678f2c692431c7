package inmemdb

import (
	"sort"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/member"
)

type memberRepository struct {
	db *memberTable
}

var _ member.Repository = (*memberRepository)(nil)

func NewMemberRepository(db *DB) *memberRepository {
	return &memberRepository{db: db.member}
}

func (repo *memberRepository) CreateMember(mbr member.Member) (member.Member, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[mbr.ID] = &mbr
	return mbr, nil
}

func (repo *memberRepository) QueryAllMembers() ([]member.Member, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	members := make([]member.Member, 0, len(repo.db.table))
	for _, m := range repo.db.table {
		members = append(members, *m)
	}
	sort.Slice(members, func(i, j int) bool { return members[i].CreatedAt.After(members[j].CreatedAt) })
	return members, nil
}

func (repo *memberRepository) GetMemberByID(id string) (member.Member, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if m, ok := repo.db.table[id]; ok {
		return *m, nil
	}
	return member.Member{}, member.ErrNotFound
}

func (repo *memberRepository) UpdateMember(mbr member.Member) (member.Member, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	// only save set fields
	orig, ok := repo.db.table[mbr.ID]
	if !ok {
		return member.Member{}, member.ErrNotFound
	}
	if mbr.Name != "" {
		orig.Name = mbr.Name
	}
	if mbr.Email != "" {
		orig.Email = mbr.Email
	}
	if mbr.Phone != "" {
		orig.Phone = mbr.Phone
	}
	if !mbr.UpdatedAt.IsZero() {
		orig.UpdatedAt = mbr.UpdatedAt
	}
	return *orig, nil
}

func (repo *memberRepository) DeleteMembersByID(ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
