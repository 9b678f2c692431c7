package tests

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/access"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/org"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/report"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/user"
	testutil "github.com/benjaminmugangu/aylf-group-tracker-sub000/tests"
)

type reportFixtures struct {
	national  user.User
	siteCoord user.User
	leader    user.User

	nationalToken  string
	siteCoordToken string
	leaderToken    string

	siteID  string
	groupID string

	rptNat report.Report
	rptS1  report.Report
	rptG1  report.Report
	rptBad report.Report // no submission date
}

func setUpReportFixtures(t *testing.T) reportFixtures {
	t.Helper()
	testutil.ResetDB(t, db)

	s1 := testutil.CreateSite(t, orgRepo, "Goma", "Goma", "DRC")
	g1 := testutil.CreateSmallGroup(t, orgRepo, s1.ID, "Peacemakers")

	national := testutil.CreateUser(t, usrRepo, "Grace", "gracem", "grace@aylf.org", "", access.RoleNationalCoordinator, "", "", true)
	siteCoord := testutil.CreateUser(t, usrRepo, "Patient", "patientb", "patient@aylf.org", "", access.RoleSiteCoordinator, s1.ID, "", true)
	leader := testutil.CreateUser(t, usrRepo, "Moise", "moisek", "moise@aylf.org", "", access.RoleSmallGroupLeader, s1.ID, g1.ID, true)

	nationalScope := org.Scope{Level: org.LevelNational}
	siteScope := org.Scope{Level: org.LevelSite, SiteID: s1.ID}
	groupScope := org.Scope{Level: org.LevelSmallGroup, SiteID: s1.ID, SmallGroupID: g1.ID}

	return reportFixtures{
		national:       national,
		siteCoord:      siteCoord,
		leader:         leader,
		nationalToken:  getToken(t, national),
		siteCoordToken: getToken(t, siteCoord),
		leaderToken:    getToken(t, leader),
		siteID:         s1.ID,
		groupID:        g1.ID,
		rptNat:         testutil.CreateReport(t, rptRepo, "Q2 national report", national.ID, nationalScope, time.Date(2024, 7, 12, 0, 0, 0, 0, time.UTC)),
		rptS1:          testutil.CreateReport(t, rptRepo, "Goma site report", siteCoord.ID, siteScope, time.Date(2024, 7, 6, 0, 0, 0, 0, time.UTC)),
		rptG1:          testutil.CreateReport(t, rptRepo, "Peacemakers weekly", leader.ID, groupScope, time.Date(2024, 7, 19, 0, 0, 0, 0, time.UTC)),
		rptBad:         testutil.CreateReport(t, rptRepo, "Undated draft", siteCoord.ID, siteScope, time.Time{}),
	}
}

func Test_reportApi_query(t *testing.T) {
	fix := setUpReportFixtures(t)

	tests := []httpTest{
		{name: "Auth required", method: http.MethodGet, path: "/v1/reports", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "national sees everything", method: http.MethodGet, path: "/v1/reports",
			token: fix.nationalToken, wantCode: http.StatusOK,
			wantData: marchallResults(t, 0, fix.rptBad, fix.rptG1, fix.rptS1, fix.rptNat),
		},
		{
			name: "site coordinator sees own site and its groups", method: http.MethodGet, path: "/v1/reports",
			token: fix.siteCoordToken, wantCode: http.StatusOK,
			wantData: marchallResults(t, 0, fix.rptBad, fix.rptG1, fix.rptS1),
		},
		{
			name: "leader sees own group only", method: http.MethodGet, path: "/v1/reports",
			token: fix.leaderToken, wantCode: http.StatusOK,
			wantData: marchallResults(t, 0, fix.rptG1),
		},
		{
			name: "windowed query counts undated as excluded", method: http.MethodGet,
			path:  "/v1/reports?window=custom&from=2024-07-01&to=2024-07-31",
			token: fix.siteCoordToken, wantCode: http.StatusOK,
			wantData: marchallResults(t, 1, fix.rptG1, fix.rptS1),
		},
		{
			name: "window excludes by submission date", method: http.MethodGet,
			path:  "/v1/reports?window=custom&from=2024-07-10&to=2024-07-31",
			token: fix.nationalToken, wantCode: http.StatusOK,
			wantData: marchallResults(t, 1, fix.rptG1, fix.rptNat),
		},
		{
			name: "invalid date format", method: http.MethodGet, path: "/v1/reports?from=12-07-2024",
			token: fix.nationalToken, wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"from": "invalid date, expected YYYY-MM-DD"}),
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

func Test_reportApi_create(t *testing.T) {
	fix := setUpReportFixtures(t)

	submitted := time.Date(2024, 8, 2, 0, 0, 0, 0, time.UTC)
	tests := []httpTest{
		{
			name: "leader cannot submit for the site", method: http.MethodPost, path: "/v1/reports",
			token: fix.leaderToken,
			body: marchallObj(t, report.NewReport{
				Title: "Sneaky", Content: "content", Level: org.LevelSite, SiteID: fix.siteID, SubmittedAt: submitted,
			}),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "content required", method: http.MethodPost, path: "/v1/reports",
			token: fix.leaderToken,
			body: marchallObj(t, report.NewReport{
				Title: "Empty", Level: org.LevelSmallGroup, SiteID: fix.siteID, SmallGroupID: fix.groupID, SubmittedAt: submitted,
			}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"content": "this field is required"}),
		},
		{
			name: "submitter defaults to the authenticated user", method: http.MethodPost, path: "/v1/reports",
			token: fix.leaderToken,
			body: marchallObj(t, report.NewReport{
				Title: "Peacemakers August plan", Content: "content",
				Level: org.LevelSmallGroup, SiteID: fix.siteID, SmallGroupID: fix.groupID, SubmittedAt: submitted,
			}),
			wantCode: http.StatusCreated, extra: fix.leader.ID,
		},
		{
			name: "explicit submitter is kept", method: http.MethodPost, path: "/v1/reports",
			token: fix.nationalToken,
			body: marchallObj(t, report.NewReport{
				Title: "August national brief", Content: "content", SubmittedBy: fix.siteCoord.ID,
				Level: org.LevelNational, SubmittedAt: submitted,
			}),
			wantCode: http.StatusCreated, extra: fix.siteCoord.ID,
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
				var respData report.Report
				if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
					t.Fatalf("json.Unmarshal() failed! err %v", err)
				}
				if respData.SubmittedBy != tt.extra.(string) {
					t.Errorf("failed! submitted_by = %q; want %q", respData.SubmittedBy, tt.extra)
				}
				if _, err := rptRepo.GetReportByID(respData.ID); err != nil {
					t.Errorf("GetReportByID() failed! err %v", err)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_reportApi_detail(t *testing.T) {
	fix := setUpReportFixtures(t)

	tests := []httpTest{
		{
			name: "leader cannot see site report", method: http.MethodGet, path: "/v1/reports/" + fix.rptS1.ID,
			token: fix.leaderToken, wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
		{
			name: "site coordinator cannot see national report", method: http.MethodGet, path: "/v1/reports/" + fix.rptNat.ID,
			token: fix.siteCoordToken, wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
		{
			name: "site coordinator sees group report", method: http.MethodGet, path: "/v1/reports/" + fix.rptG1.ID,
			token: fix.siteCoordToken, wantCode: http.StatusOK, wantData: marchallObj(t, fix.rptG1),
		},
		{
			name: "unknown report", method: http.MethodGet, path: "/v1/reports/nope",
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

func Test_reportApi_update(t *testing.T) {
	fix := setUpReportFixtures(t)

	t.Run("leader edits own group report", func(t *testing.T) {
		body := marchallObj(t, report.UpdateReport{Content: "revised content"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/reports/"+fix.rptG1.ID, fix.leaderToken, body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		var respData report.Report
		if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
			t.Fatalf("json.Unmarshal() failed! err %v", err)
		}
		if respData.Content != "revised content" {
			t.Errorf("failed! content = %q", respData.Content)
		}
		if respData.Title != fix.rptG1.Title {
			t.Errorf("failed! title changed to %q", respData.Title)
		}
	})
}

func Test_reportApi_destroy(t *testing.T) {
	fix := setUpReportFixtures(t)

	t.Run("leader cannot delete site report", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/reports/"+fix.rptBad.ID, fix.leaderToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)}, rec)
	})

	t.Run("site coordinator deletes own undated draft", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/reports/"+fix.rptBad.ID, fix.siteCoordToken)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
		}
		if _, err := rptRepo.GetReportByID(fix.rptBad.ID); err != report.ErrNotFound {
			t.Errorf("failed! err = %v; want %v", err, report.ErrNotFound)
		}
	})
}
