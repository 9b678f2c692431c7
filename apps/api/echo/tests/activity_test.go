package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/access"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/activity"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/org"
	testutil "github.com/benjaminmugangu/aylf-group-tracker-sub000/tests"
)

type activityFixtures struct {
	national, siteCoord, leader string // tokens

	actNat, actS1, actS2, actG1, actG2, actBad, actMal activity.Activity
}

func setUpActivityFixtures(t *testing.T) activityFixtures {
	t.Helper()
	testutil.ResetDB(t, db)

	s1 := testutil.CreateSite(t, orgRepo, "Goma", "Goma", "DRC")
	s2 := testutil.CreateSite(t, orgRepo, "Bukavu", "Bukavu", "DRC")
	g1 := testutil.CreateSmallGroup(t, orgRepo, s1.ID, "Peacemakers")
	g2 := testutil.CreateSmallGroup(t, orgRepo, s2.ID, "Pathfinders")

	national := testutil.CreateUser(t, usrRepo, "Grace", "gracem", "grace@aylf.org", "", access.RoleNationalCoordinator, "", "", true)
	siteCoord := testutil.CreateUser(t, usrRepo, "Benaiah", "benaiah", "benaiah@aylf.org", "", access.RoleSiteCoordinator, s1.ID, "", true)
	leader := testutil.CreateUser(t, usrRepo, "Moise", "moisek", "moise@aylf.org", "", access.RoleSmallGroupLeader, s1.ID, g1.ID, true)

	day := func(d int) time.Time { return time.Date(2024, time.July, d, 0, 0, 0, 0, time.UTC) }

	f := activityFixtures{
		national:  getToken(t, national),
		siteCoord: getToken(t, siteCoord),
		leader:    getToken(t, leader),
	}
	f.actNat = testutil.CreateActivity(t, actRepo, "National summit", org.Scope{Level: org.LevelNational}, day(15))
	f.actS1 = testutil.CreateActivity(t, actRepo, "Goma open day", org.Scope{Level: org.LevelSite, SiteID: s1.ID}, day(10))
	f.actS2 = testutil.CreateActivity(t, actRepo, "Bukavu open day", org.Scope{Level: org.LevelSite, SiteID: s2.ID}, time.Date(2024, time.June, 12, 0, 0, 0, 0, time.UTC))
	f.actG1 = testutil.CreateActivity(t, actRepo, "Peacemakers circle", org.Scope{Level: org.LevelSmallGroup, SiteID: s1.ID, SmallGroupID: g1.ID}, day(5))
	f.actG2 = testutil.CreateActivity(t, actRepo, "Pathfinders circle", org.Scope{Level: org.LevelSmallGroup, SiteID: s2.ID, SmallGroupID: g2.ID}, day(20))
	// a row that lost its date and a row that lost its site snapshot
	f.actBad = testutil.CreateActivity(t, actRepo, "Undated workshop", org.Scope{Level: org.LevelSite, SiteID: s1.ID}, time.Time{})
	f.actMal = testutil.CreateActivity(t, actRepo, "Orphaned workshop", org.Scope{Level: org.LevelSite}, day(14))
	return f
}

func Test_activityApi_query(t *testing.T) {
	f := setUpActivityFixtures(t)

	tests := []httpTest{
		{name: "Auth required", path: "/v1/activities", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "national sees everything, malformed included", path: "/v1/activities", token: f.national,
			wantData: marchallResults(t, 0, f.actMal, f.actBad, f.actG2, f.actG1, f.actS2, f.actS1, f.actNat),
		},
		{
			name: "site coordinator sees own site only", path: "/v1/activities", token: f.siteCoord,
			wantData: marchallResults(t, 0, f.actBad, f.actG1, f.actS1),
		},
		{
			name: "leader sees own group only", path: "/v1/activities", token: f.leader,
			wantData: marchallResults(t, 0, f.actG1),
		},
		{
			name: "custom window drops undatable rows and counts them", token: f.national,
			path:     "/v1/activities?from=2024-07-01&to=2024-07-31",
			wantData: marchallResults(t, 1, f.actMal, f.actG2, f.actG1, f.actS1, f.actNat),
		},
		{
			name: "custom window for site coordinator", token: f.siteCoord,
			path:     "/v1/activities?from=2024-07-01&to=2024-07-31",
			wantData: marchallResults(t, 1, f.actG1, f.actS1),
		},
		{
			name: "window=all_time keeps undatable rows", token: f.siteCoord,
			path:     "/v1/activities?window=all_time",
			wantData: marchallResults(t, 0, f.actBad, f.actG1, f.actS1),
		},
		{
			name: "unknown window", token: f.national, path: "/v1/activities?window=fortnight",
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"window": "unknown date window"}),
		},
		{
			name: "from after to", token: f.national, path: "/v1/activities?from=2024-08-01&to=2024-07-01",
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"window": "`from` must not be after `to`"}),
		},
		{
			name: "bad date format", token: f.national, path: "/v1/activities?from=01-07-2024",
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"from": "invalid date, expected YYYY-MM-DD"}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_activityApi_create(t *testing.T) {
	f := setUpActivityFixtures(t)

	day := time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC)
	g1Scope := f.actG1.Scope
	s2Scope := f.actS2.Scope

	tests := []httpTest{
		{
			name: "leader cannot create outside their group", token: f.leader, wantCode: http.StatusForbidden,
			body: marchallObj(t, activity.NewActivity{
				Title: "Summit", Level: org.LevelNational, Date: day,
			}),
			wantData: marchallObj(t, errForbidden),
		},
		{
			name: "site coordinator cannot create for another site", token: f.siteCoord, wantCode: http.StatusForbidden,
			body: marchallObj(t, activity.NewActivity{
				Title: "Raid", Level: org.LevelSite, SiteID: s2Scope.SiteID, Date: day,
			}),
			wantData: marchallObj(t, errForbidden),
		},
		{
			name: "missing title", token: f.leader, wantCode: http.StatusBadRequest,
			body: marchallObj(t, activity.NewActivity{
				Level: org.LevelSmallGroup, SiteID: g1Scope.SiteID, SmallGroupID: g1Scope.SmallGroupID, Date: day,
			}),
			wantData: marchallObj(t, map[string]string{"title": "this field is required"}),
		},
		{
			name: "leader creates in own group", token: f.leader, wantCode: http.StatusCreated,
			body: marchallObj(t, activity.NewActivity{
				Title: "Debate night", Theme: "justice",
				Level: org.LevelSmallGroup, SiteID: g1Scope.SiteID, SmallGroupID: g1Scope.SmallGroupID, Date: day,
			}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/activities"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusCreated {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
				}
				var respData activity.Activity
				if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
					t.Fatalf("json.Unmarshal() failed! err %v", err)
				}
				if respData.ID == "" || respData.Title != "Debate night" || respData.Scope != g1Scope {
					t.Errorf("failed! unexpected activity %+v", respData)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_activityApi_detail(t *testing.T) {
	f := setUpActivityFixtures(t)

	tests := []httpTest{
		{
			name: "hidden records 404 instead of 403", method: http.MethodGet, path: "/v1/activities/" + f.actS2.ID,
			token: f.siteCoord, wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
		{
			name: "leader cannot see site activity", method: http.MethodGet, path: "/v1/activities/" + f.actS1.ID,
			token: f.leader, wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
		{
			name: "visible detail", method: http.MethodGet, path: "/v1/activities/" + f.actG1.ID,
			token: f.leader, wantCode: http.StatusOK, wantData: marchallObj(t, f.actG1),
		},
		{
			name: "unknown id", method: http.MethodGet, path: "/v1/activities/nope",
			token: f.national, wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
		{
			name: "national deletes anything", method: http.MethodDelete, path: "/v1/activities/" + f.actG2.ID,
			token: f.national, wantCode: http.StatusNoContent,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusNoContent {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
				}
				if _, err := actRepo.GetActivityByID(f.actG2.ID); err != activity.ErrNotFound {
					t.Errorf("GetActivityByID() error = %v; want %v", err, activity.ErrNotFound)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_activityApi_update(t *testing.T) {
	f := setUpActivityFixtures(t)

	tests := []httpTest{
		{
			name: "leader cannot edit site activity", token: f.leader, path: "/v1/activities/" + f.actS1.ID,
			body:     marchallObj(t, activity.UpdateActivity{Title: "Hijacked"}),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
		{
			name: "leader edits own group activity", token: f.leader, path: "/v1/activities/" + f.actG1.ID,
			body: marchallObj(t, activity.UpdateActivity{Title: "Peace circle v2"}), wantCode: http.StatusOK, extra: "Peace circle v2",
		},
		{
			name: "site coordinator edits group activity", token: f.siteCoord, path: "/v1/activities/" + f.actG1.ID,
			body: marchallObj(t, activity.UpdateActivity{Theme: "unity"}), wantCode: http.StatusOK, extra: "Peace circle v2",
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPut

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusOK {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
				}
				var respData activity.Activity
				if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
					t.Fatalf("json.Unmarshal() failed! err %v", err)
				}
				if want, ok := tt.extra.(string); ok && respData.Title != want {
					t.Errorf("failed! Title = %q; want %q", respData.Title, want)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_activityApi_suggest(t *testing.T) {
	f := setUpActivityFixtures(t)

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "theme required", token: f.leader, wantCode: http.StatusBadRequest,
			body:     marchallObj(t, activity.SuggestionRequest{Level: org.LevelSmallGroup}),
			wantData: marchallObj(t, map[string]string{"theme": "this field is required"}),
		},
		{
			name: "suggestions generated", token: f.leader, wantCode: http.StatusOK,
			body:  marchallObj(t, activity.SuggestionRequest{Theme: "servant leadership", Level: org.LevelSmallGroup, Count: 2}),
			extra: 2,
		},
		{
			name: "default count", token: f.leader, wantCode: http.StatusOK,
			body:  marchallObj(t, activity.SuggestionRequest{Theme: "integrity", Level: org.LevelSite}),
			extra: 3,
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/activities/suggest"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusOK {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
				}
				var respData []activity.Suggestion
				if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
					t.Fatalf("json.Unmarshal() failed! err %v", err)
				}
				if want := tt.extra.(int); len(respData) != want {
					t.Fatalf("failed! len = %d; want %d", len(respData), want)
				}
				for _, s := range respData {
					if s.Title == "" || s.Description == "" {
						t.Errorf("failed! empty suggestion %+v", s)
					}
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}
