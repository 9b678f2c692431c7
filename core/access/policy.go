package access

import (
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/org"
)

// Actor is the acting user as seen by the access policy: a role plus the
// site/small group assignment that role requires.
type Actor struct {
	ID           string
	Role         Role
	SiteID       string // required for site coordinators and small group leaders
	SmallGroupID string // required for small group leaders
}

// Valid reports whether the actor carries the assignment its role requires.
func (a Actor) Valid() bool {
	switch a.Role {
	case RoleNationalCoordinator:
		return true
	case RoleSiteCoordinator:
		return a.SiteID != ""
	case RoleSmallGroupLeader:
		return a.SiteID != "" && a.SmallGroupID != ""
	}
	return false
}

func (a Actor) IsNational() bool { return a.Role == RoleNationalCoordinator }

// Policy decides record visibility and edit permission for an actor.
// It is pure: the only state is a read-only org directory snapshot used to
// resolve small groups to their parent site. Every decision fails closed —
// an unknown role or a record missing required scoping fields yields "no".
type Policy struct {
	dir org.Directory
}

func NewPolicy(dir org.Directory) Policy {
	return Policy{dir: dir}
}

// CanView reports whether the actor may see the record.
// National coordinators see everything, including malformed records.
func (p Policy) CanView(actor Actor, rec org.Scoped) bool {
	if actor.IsNational() {
		return true
	}
	if !actor.Valid() {
		return false
	}

	scope := rec.RecordScope()
	if !scope.Valid() {
		return false
	}

	switch actor.Role {
	case RoleSiteCoordinator:
		if scope.SiteID == actor.SiteID {
			return true
		}
		if scope.Level == org.LevelSmallGroup {
			siteID, ok := p.dir.SiteOf(scope.SmallGroupID)
			return ok && siteID == actor.SiteID
		}
		return false
	case RoleSmallGroupLeader:
		return scope.SmallGroupID == actor.SmallGroupID
	}
	return false
}

// CanEdit reports whether the actor may mutate the record.
// Narrower than CanView: a site coordinator cannot touch national records even
// though they can see them, and a leader cannot touch site records in their own site.
func (p Policy) CanEdit(actor Actor, rec org.Scoped) bool {
	if actor.IsNational() {
		return true
	}
	if !actor.Valid() {
		return false
	}

	scope := rec.RecordScope()
	if !scope.Valid() {
		return false
	}

	switch actor.Role {
	case RoleSiteCoordinator:
		switch scope.Level {
		case org.LevelSite:
			return scope.SiteID == actor.SiteID
		case org.LevelSmallGroup:
			if scope.SiteID == actor.SiteID {
				return true
			}
			siteID, ok := p.dir.SiteOf(scope.SmallGroupID)
			return ok && siteID == actor.SiteID
		}
		return false
	case RoleSmallGroupLeader:
		return scope.Level == org.LevelSmallGroup && scope.SmallGroupID == actor.SmallGroupID
	}
	return false
}

// VisibleRecords returns the subset of records the actor may see,
// preserving input order. The input slice is never mutated.
func VisibleRecords[T org.Scoped](p Policy, actor Actor, records []T) []T {
	visible := make([]T, 0, len(records))
	for _, rec := range records {
		if p.CanView(actor, rec) {
			visible = append(visible, rec)
		}
	}
	return visible
}
