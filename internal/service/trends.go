package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/stylesync/stylesync/internal/domain"
	"github.com/stylesync/stylesync/internal/logger"
	"github.com/stylesync/stylesync/internal/prompts"
)

// TrendsService fetches weekly fashion trends from the text-generation
// endpoint, personalized to the profile. It shares the text stage's failure
// policy: one remote attempt, then a curated local list.
type TrendsService struct {
	client    *resty.Client
	endpoint  string
	apiKey    string
	maxTokens int
}

// NewTrendsService creates a trends client sharing the text-generation
// endpoint and credential.
func NewTrendsService(cfg *TextGenConfig) *TrendsService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 500
	}

	client := resty.New()
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(timeout)

	return &TrendsService{
		client:    client,
		endpoint:  cfg.Endpoint,
		apiKey:    cfg.APIKey,
		maxTokens: maxTokens,
	}
}

type trendsEnvelope struct {
	Trends []domain.FashionTrend `json:"trends"`
}

// WeeklyTrends returns personalized fashion trends, remote when possible and
// curated otherwise. It never returns an error or an empty list.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - profile: profile used for personalization.
// Returns:
//   - []domain.FashionTrend: trends sorted by relevance.
func (s *TrendsService) WeeklyTrends(ctx context.Context, profile domain.Profile) []domain.FashionTrend {
	ctx = logger.SetComponent(ctx, "trends")

	trends, err := s.fetchRemote(ctx, profile)
	if err != nil {
		logger.CtxWarn(ctx, "Remote trends failed, using curated list: error=%v", err)
		return fallbackTrends(profile)
	}
	return trends
}

func (s *TrendsService) fetchRemote(ctx context.Context, profile domain.Profile) ([]domain.FashionTrend, error) {
	if s.apiKey == "" {
		return nil, ErrNotConfigured
	}

	req := textGenRequest{
		Inputs: prompts.BuildTrendsPrompt(profile, time.Now().Format("January 2006")),
		Parameters: textGenParameters{
			MaxNewTokens:   s.maxTokens,
			Temperature:    0.8,
			TopP:           0.9,
			DoSample:       true,
			ReturnFullText: false,
		},
		Options: textGenOptions{
			WaitForModel: true,
			UseCache:     false,
		},
	}

	var results []textGenResult
	httpResp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetBody(req).
		SetResult(&results).
		Post(s.endpoint)

	if err != nil {
		return nil, fmt.Errorf("trends: request failed: %w", err)
	}
	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		return nil, fmt.Errorf("trends: API returned HTTP %d", httpResp.StatusCode())
	}
	if len(results) == 0 || strings.TrimSpace(results[0].GeneratedText) == "" {
		return nil, ErrEmptyResponse
	}

	candidate, err := extractJSONCandidate(results[0].GeneratedText)
	if err != nil {
		return nil, err
	}

	var envelope trendsEnvelope
	if err := json.Unmarshal([]byte(candidate), &envelope); err != nil {
		return nil, fmt.Errorf("trends: failed to parse JSON candidate: %w", err)
	}
	if len(envelope.Trends) == 0 {
		return nil, fmt.Errorf("trends: response contained no trends")
	}

	for _, t := range envelope.Trends {
		if t.Title == "" || t.Description == "" {
			return nil, fmt.Errorf("trends: trend entry has missing fields")
		}
	}

	sort.SliceStable(envelope.Trends, func(i, j int) bool {
		return envelope.Trends[i].RelevanceScore > envelope.Trends[j].RelevanceScore
	})
	return envelope.Trends, nil
}
