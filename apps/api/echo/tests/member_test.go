package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/access"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/member"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/org"
	testutil "github.com/benjaminmugangu/aylf-group-tracker-sub000/tests"
)

type memberFixtures struct {
	nationalToken  string
	siteCoordToken string
	leaderToken    string

	siteID  string
	groupID string

	mbrNat member.Member
	mbrS1  member.Member
	mbrG1  member.Member
	mbrG2  member.Member
	mbrBad member.Member // no joined date
}

func setUpMemberFixtures(t *testing.T) memberFixtures {
	t.Helper()
	testutil.ResetDB(t, db)

	s1 := testutil.CreateSite(t, orgRepo, "Goma", "Goma", "DRC")
	s2 := testutil.CreateSite(t, orgRepo, "Bukavu", "Bukavu", "DRC")
	g1 := testutil.CreateSmallGroup(t, orgRepo, s1.ID, "Peacemakers")
	g2 := testutil.CreateSmallGroup(t, orgRepo, s2.ID, "Pathfinders")

	national := testutil.CreateUser(t, usrRepo, "Grace", "gracem", "grace@aylf.org", "", access.RoleNationalCoordinator, "", "", true)
	siteCoord := testutil.CreateUser(t, usrRepo, "Patient", "patientb", "patient@aylf.org", "", access.RoleSiteCoordinator, s1.ID, "", true)
	leader := testutil.CreateUser(t, usrRepo, "Moise", "moisek", "moise@aylf.org", "", access.RoleSmallGroupLeader, s1.ID, g1.ID, true)

	nationalScope := org.Scope{Level: org.LevelNational}
	siteScope := org.Scope{Level: org.LevelSite, SiteID: s1.ID}
	groupScope := org.Scope{Level: org.LevelSmallGroup, SiteID: s1.ID, SmallGroupID: g1.ID}
	otherGroupScope := org.Scope{Level: org.LevelSmallGroup, SiteID: s2.ID, SmallGroupID: g2.ID}

	return memberFixtures{
		nationalToken:  getToken(t, national),
		siteCoordToken: getToken(t, siteCoord),
		leaderToken:    getToken(t, leader),
		siteID:         s1.ID,
		groupID:        g1.ID,
		mbrNat:         testutil.CreateMember(t, mbrRepo, "Esperance", nationalScope, time.Date(2024, 7, 18, 0, 0, 0, 0, time.UTC)),
		mbrS1:          testutil.CreateMember(t, mbrRepo, "Dieudonne", siteScope, time.Date(2024, 7, 8, 0, 0, 0, 0, time.UTC)),
		mbrG1:          testutil.CreateMember(t, mbrRepo, "Furaha", groupScope, time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC)),
		mbrG2:          testutil.CreateMember(t, mbrRepo, "Amani", otherGroupScope, time.Date(2024, 7, 22, 0, 0, 0, 0, time.UTC)),
		mbrBad:         testutil.CreateMember(t, mbrRepo, "Innocent", siteScope, time.Time{}),
	}
}

func Test_memberApi_query(t *testing.T) {
	fix := setUpMemberFixtures(t)

	tests := []httpTest{
		{name: "Auth required", method: http.MethodGet, path: "/v1/members", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "national sees everything, undated included", method: http.MethodGet, path: "/v1/members",
			token: fix.nationalToken, wantCode: http.StatusOK,
			wantData: marchallResults(t, 0, fix.mbrBad, fix.mbrG2, fix.mbrG1, fix.mbrS1, fix.mbrNat),
		},
		{
			name: "site coordinator sees own site and its groups", method: http.MethodGet, path: "/v1/members",
			token: fix.siteCoordToken, wantCode: http.StatusOK,
			wantData: marchallResults(t, 0, fix.mbrBad, fix.mbrG1, fix.mbrS1),
		},
		{
			name: "leader sees own group only", method: http.MethodGet, path: "/v1/members",
			token: fix.leaderToken, wantCode: http.StatusOK,
			wantData: marchallResults(t, 0, fix.mbrG1),
		},
		{
			name: "windowed query counts undated as excluded", method: http.MethodGet,
			path:  "/v1/members?window=custom&from=2024-07-01&to=2024-07-31",
			token: fix.nationalToken, wantCode: http.StatusOK,
			wantData: marchallResults(t, 1, fix.mbrG2, fix.mbrG1, fix.mbrS1, fix.mbrNat),
		},
		{
			name: "windowed query is scoped before exclusion counting", method: http.MethodGet,
			path:  "/v1/members?window=custom&from=2024-07-01&to=2024-07-31",
			token: fix.siteCoordToken, wantCode: http.StatusOK,
			wantData: marchallResults(t, 1, fix.mbrG1, fix.mbrS1),
		},
		{
			name: "unknown window", method: http.MethodGet, path: "/v1/members?window=fortnight",
			token: fix.nationalToken, wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"window": "unknown date window"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_memberApi_create(t *testing.T) {
	fix := setUpMemberFixtures(t)

	joined := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	tests := []httpTest{
		{
			name: "leader cannot register outside own group", method: http.MethodPost, path: "/v1/members",
			token: fix.leaderToken,
			body: marchallObj(t, member.NewMember{
				Name: "Divine", Level: org.LevelSite, SiteID: fix.siteID, JoinedAt: joined,
			}),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "name required", method: http.MethodPost, path: "/v1/members",
			token: fix.siteCoordToken,
			body: marchallObj(t, member.NewMember{
				Level: org.LevelSite, SiteID: fix.siteID, JoinedAt: joined,
			}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"name": "this field is required"}),
		},
		{
			name: "site coordinator registers in own site", method: http.MethodPost, path: "/v1/members",
			token: fix.siteCoordToken,
			body: marchallObj(t, member.NewMember{
				Name: "Divine", Email: "Divine@Example.Org", Level: org.LevelSite, SiteID: fix.siteID, JoinedAt: joined,
			}),
			wantCode: http.StatusCreated,
		},
		{
			name: "leader registers in own group", method: http.MethodPost, path: "/v1/members",
			token: fix.leaderToken,
			body: marchallObj(t, member.NewMember{
				Name: "Christelle", Level: org.LevelSmallGroup, SiteID: fix.siteID, SmallGroupID: fix.groupID, JoinedAt: joined,
			}),
			wantCode: http.StatusCreated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusCreated {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
				}
				var respData member.Member
				if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
					t.Fatalf("json.Unmarshal() failed! err %v", err)
				}
				if respData.ID == "" {
					t.Fatalf("failed! no ID in %+v", respData)
				}
				if respData.Email != "" && respData.Email != "divine@example.org" {
					t.Errorf("failed! email not normalized: %q", respData.Email)
				}
				if _, err := mbrRepo.GetMemberByID(respData.ID); err != nil {
					t.Errorf("GetMemberByID() failed! err %v", err)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_memberApi_detail(t *testing.T) {
	fix := setUpMemberFixtures(t)

	tests := []httpTest{
		{
			name: "leader cannot see site member", method: http.MethodGet, path: "/v1/members/" + fix.mbrS1.ID,
			token: fix.leaderToken, wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
		{
			name: "site coordinator cannot see national member", method: http.MethodGet, path: "/v1/members/" + fix.mbrNat.ID,
			token: fix.siteCoordToken, wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
		{
			name: "national sees any member", method: http.MethodGet, path: "/v1/members/" + fix.mbrG2.ID,
			token: fix.nationalToken, wantCode: http.StatusOK, wantData: marchallObj(t, fix.mbrG2),
		},
		{
			name: "unknown member", method: http.MethodGet, path: "/v1/members/nope",
			token: fix.nationalToken, wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_memberApi_update(t *testing.T) {
	fix := setUpMemberFixtures(t)

	t.Run("leader cannot edit site member", func(t *testing.T) {
		body := marchallObj(t, member.UpdateMember{Name: "Renamed"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/members/"+fix.mbrS1.ID, fix.leaderToken, body)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)}, rec)
	})

	t.Run("leader edits own group member", func(t *testing.T) {
		body := marchallObj(t, member.UpdateMember{Phone: "+243991234567"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/members/"+fix.mbrG1.ID, fix.leaderToken, body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		var respData member.Member
		if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
			t.Fatalf("json.Unmarshal() failed! err %v", err)
		}
		if respData.Phone != "+243991234567" {
			t.Errorf("failed! phone = %q", respData.Phone)
		}
		if respData.Name != fix.mbrG1.Name {
			t.Errorf("failed! name changed to %q", respData.Name)
		}
	})

	t.Run("site coordinator edits group member", func(t *testing.T) {
		body := marchallObj(t, member.UpdateMember{Name: "Furaha M."})
		req, rec := newAuthRequest(http.MethodPut, "/v1/members/"+fix.mbrG1.ID, fix.siteCoordToken, body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
	})
}

func Test_memberApi_destroy(t *testing.T) {
	fix := setUpMemberFixtures(t)

	t.Run("leader cannot delete outside own group", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/members/"+fix.mbrBad.ID, fix.leaderToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)}, rec)
	})

	t.Run("site coordinator deletes site member", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/members/"+fix.mbrBad.ID, fix.siteCoordToken)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		if _, err := mbrRepo.GetMemberByID(fix.mbrBad.ID); err != member.ErrNotFound {
			t.Errorf("failed! err = %v; want %v", err, member.ErrNotFound)
		}
	})
}
