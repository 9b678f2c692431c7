package org

import "testing"

func TestDirectory(t *testing.T) {
	dir := NewDirectory([]SmallGroup{
		{ID: "g1", SiteID: "s1"},
		{ID: "g2", SiteID: "s2"},
		{ID: "g3"},           // no parent site
		{SiteID: "s1"},       // no id
		{ID: "", SiteID: ""}, // empty row
	})

	if got := dir.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2 (unmapped groups must be skipped)", got)
	}

	tests := []struct {
		group    string
		wantSite string
		wantOK   bool
	}{
		{group: "g1", wantSite: "s1", wantOK: true},
		{group: "g2", wantSite: "s2", wantOK: true},
		{group: "g3", wantOK: false},
		{group: "nope", wantOK: false},
		{group: "", wantOK: false},
	}
	for _, tt := range tests {
		siteID, ok := dir.SiteOf(tt.group)
		if ok != tt.wantOK || siteID != tt.wantSite {
			t.Errorf("SiteOf(%q) = (%q, %v), want (%q, %v)", tt.group, siteID, ok, tt.wantSite, tt.wantOK)
		}
	}
}

func TestDirectory_empty(t *testing.T) {
	dir := NewDirectory(nil)
	if dir.Len() != 0 {
		t.Errorf("Len() = %d, want 0", dir.Len())
	}
	if _, ok := dir.SiteOf("g1"); ok {
		t.Error("empty directory must resolve nothing")
	}
}

func TestScope_Valid(t *testing.T) {
	tests := []struct {
		name  string
		scope Scope
		want  bool
	}{
		{name: "national", scope: Scope{Level: LevelNational}, want: true},
		{name: "national with stray ids", scope: Scope{Level: LevelNational, SiteID: "s1"}, want: true},
		{name: "site", scope: Scope{Level: LevelSite, SiteID: "s1"}, want: true},
		{name: "site without id", scope: Scope{Level: LevelSite}, want: false},
		{name: "small group", scope: Scope{Level: LevelSmallGroup, SiteID: "s1", SmallGroupID: "g1"}, want: true},
		{name: "small group without site", scope: Scope{Level: LevelSmallGroup, SmallGroupID: "g1"}, want: false},
		{name: "small group without group", scope: Scope{Level: LevelSmallGroup, SiteID: "s1"}, want: false},
		{name: "unknown level", scope: Scope{Level: "region", SiteID: "s1"}, want: false},
		{name: "zero scope", scope: Scope{}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.scope.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}
