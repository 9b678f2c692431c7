package suggestsvc

import (
	"context"
	"strings"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/activity"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/org"
)

type staticService struct{}

var _ activity.Suggester = (*staticService)(nil)

// NewStaticService returns a Suggester producing canned ideas. It backs
// the Gemini service when the API is unavailable and serves as the
// default in tests and development.
func NewStaticService() *staticService {
	return &staticService{}
}

var staticTemplates = map[org.Level][]activity.Suggestion{
	org.LevelNational: {
		{Title: "%s leadership summit", Description: "A national gathering where site delegations share their work on %s and elect next year's youth representatives."},
		{Title: "Inter-site %s challenge", Description: "Sites compete on a month-long project around %s, with results presented at the national office."},
		{Title: "%s mentorship drive", Description: "Pair experienced coordinators with new leaders for structured mentorship focused on %s."},
	},
	org.LevelSite: {
		{Title: "%s open day", Description: "Invite schools and families to the site for demonstrations and talks on %s."},
		{Title: "Community %s project", Description: "Small groups team up on a local service project centered on %s and report outcomes to the site coordinator."},
		{Title: "%s workshop series", Description: "A three-session workshop cycle where each small group leads one session on an aspect of %s."},
	},
	org.LevelSmallGroup: {
		{Title: "%s discussion circle", Description: "A guided conversation where each member brings one question about %s."},
		{Title: "%s skills practice", Description: "Members pair up and rehearse practical skills related to %s, then give each other feedback."},
		{Title: "%s field visit", Description: "Visit a local organization whose work illustrates %s and debrief afterwards."},
	},
}

func (svc *staticService) Suggest(_ context.Context, req activity.SuggestionRequest) ([]activity.Suggestion, error) {
	templates := staticTemplates[req.Level]
	if len(templates) == 0 {
		templates = staticTemplates[org.LevelSmallGroup]
	}

	suggestions := make([]activity.Suggestion, 0, req.Count)
	for i := 0; i < req.Count; i++ {
		tmpl := templates[i%len(templates)]
		suggestions = append(suggestions, activity.Suggestion{
			Title:       strings.ReplaceAll(tmpl.Title, "%s", req.Theme),
			Description: strings.ReplaceAll(tmpl.Description, "%s", req.Theme),
		})
	}
	return suggestions, nil
}
