package org

// Directory is a read-only snapshot of the org structure, mapping each
// small group to its parent site. Access decisions for site coordinators
// need it to resolve small-group records back to a site.
//
// Callers build a fresh Directory from the current small groups; the
// snapshot is never mutated after construction.
type Directory struct {
	siteByGroup map[string]string
}

func NewDirectory(groups []SmallGroup) Directory {
	m := make(map[string]string, len(groups))
	for _, g := range groups {
		if g.ID == "" || g.SiteID == "" {
			continue // fail-closed: unmapped groups resolve to no site
		}
		m[g.ID] = g.SiteID
	}
	return Directory{siteByGroup: m}
}

// SiteOf returns the parent site of the given small group.
func (d Directory) SiteOf(smallGroupID string) (string, bool) {
	siteID, ok := d.siteByGroup[smallGroupID]
	return siteID, ok
}

// Len returns the number of mapped small groups.
func (d Directory) Len() int { return len(d.siteByGroup) }
