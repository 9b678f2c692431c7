package suggestsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core"
	"github.com/benjaminmugangu/aylf-group-tracker-sub000/core/activity"
)

const defaultTimeout = 15 * time.Second

type geminiService struct {
	apiKey   string
	model    string
	baseURL  string
	client   *http.Client
	fallback activity.Suggester
	logger   core.Logger
}

var _ activity.Suggester = (*geminiService)(nil)

// NewGeminiService returns a Suggester backed by the Gemini REST API.
// Calls fall back to the static suggester when no API key is configured
// or when the API misbehaves.
func NewGeminiService(conf *core.Config, logger core.Logger) *geminiService {
	baseURL := strings.TrimRight(conf.Gemini.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	model := conf.Gemini.Model
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &geminiService{
		apiKey:   conf.Gemini.APIKey,
		model:    model,
		baseURL:  baseURL,
		client:   &http.Client{Timeout: defaultTimeout},
		fallback: NewStaticService(),
		logger:   logger,
	}
}

type (
	geminiRequest struct {
		Contents         []geminiContent         `json:"contents"`
		GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
	}

	geminiContent struct {
		Role  string       `json:"role"`
		Parts []geminiPart `json:"parts"`
	}

	geminiPart struct {
		Text string `json:"text,omitempty"`
	}

	geminiGenerationConfig struct {
		Temperature      float64 `json:"temperature,omitempty"`
		CandidateCount   int     `json:"candidateCount,omitempty"`
		ResponseMimeType string  `json:"responseMimeType,omitempty"`
	}

	geminiResponse struct {
		Candidates []struct {
			Content geminiContent `json:"content"`
		} `json:"candidates"`
	}

	suggestionsPayload struct {
		Suggestions []activity.Suggestion `json:"suggestions"`
	}
)

func (svc *geminiService) Suggest(ctx context.Context, req activity.SuggestionRequest) ([]activity.Suggestion, error) {
	if svc.apiKey == "" {
		return svc.fallback.Suggest(ctx, req)
	}

	suggestions, err := svc.suggest(ctx, req)
	if err != nil {
		svc.logger.Warn(fmt.Sprintf("gemini suggestion failed, using fallback: %v", err))
		return svc.fallback.Suggest(ctx, req)
	}
	return suggestions, nil
}

func (svc *geminiService) suggest(ctx context.Context, req activity.SuggestionRequest) ([]activity.Suggestion, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: svc.buildPrompt(req)}},
		}},
		GenerationConfig: &geminiGenerationConfig{
			Temperature:      0.7,
			CandidateCount:   1,
			ResponseMimeType: "application/json",
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, errors.Wrap(err, "encoding request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, svc.endpoint(), &buf)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", svc.apiKey)

	resp, err := svc.client.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "calling API")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, errors.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var out geminiResponse
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.Wrap(err, "decoding response")
	}

	text := extractText(out)
	if text == "" {
		return nil, errors.New("empty response")
	}

	var parsed suggestionsPayload
	if err = json.Unmarshal([]byte(extractJSONFragment(text)), &parsed); err != nil {
		return nil, errors.Wrap(err, "parsing suggestions")
	}
	if len(parsed.Suggestions) == 0 {
		return nil, errors.New("no suggestions returned")
	}
	if len(parsed.Suggestions) > req.Count {
		parsed.Suggestions = parsed.Suggestions[:req.Count]
	}
	return parsed.Suggestions, nil
}

func (svc *geminiService) endpoint() string {
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent", svc.baseURL, url.PathEscape(svc.model))
}

func (svc *geminiService) buildPrompt(req activity.SuggestionRequest) string {
	sb := new(strings.Builder)
	sb.WriteString("You are helping coordinators of a youth leadership organization plan activities. ")
	sb.WriteString(`Respond strictly with JSON matching this schema: {"suggestions":[{"title":string,"description":string}]}. `)
	fmt.Fprintf(sb, "Propose %d activity ideas on the theme %q for the %s level", req.Count, req.Theme, req.Level)
	if req.Audience != "" {
		fmt.Fprintf(sb, ", aimed at %s", req.Audience)
	}
	sb.WriteString(". Keep each description under three sentences.")
	return sb.String()
}

func extractText(resp geminiResponse) string {
	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if strings.TrimSpace(part.Text) != "" {
				return part.Text
			}
		}
	}
	return ""
}

// extractJSONFragment strips markdown code fences and surrounding prose
// that models occasionally wrap around the JSON body.
func extractJSONFragment(raw string) string {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}
	start := strings.IndexAny(text, "{[")
	end := strings.LastIndexAny(text, "]}")
	if start >= 0 && end >= start {
		text = text[start : end+1]
	}
	return strings.TrimSpace(text)
}
