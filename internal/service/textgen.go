package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stylesync/stylesync/internal/domain"
	"github.com/stylesync/stylesync/internal/prompts"
)

// Sentinel errors for the text generation stage. The pipeline treats every
// one of them the same way (fall back to the deterministic recommendation),
// but callers and tests can still tell them apart.
var (
	ErrNotConfigured   = errors.New("textgen: API credential not configured")
	ErrEmptyResponse   = errors.New("textgen: empty response from model")
	ErrNoJSONCandidate = errors.New("textgen: no JSON object found in generated text")
)

// TextGenService obtains a structured Recommendation from a remote
// text-generation endpoint. Strict parsing, no retries: a single failed
// attempt is final for a given call.
type TextGenService struct {
	client    *resty.Client
	endpoint  string
	apiKey    string
	maxTokens int
	sampling  float64
}

// TextGenConfig holds configuration for the text generation client.
type TextGenConfig struct {
	Endpoint    string
	APIKey      string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// NewTextGenService creates a new text generation client.
// Parameters:
//   - cfg: endpoint, credential and generation parameters.
// Returns:
//   - *TextGenService: initialized client wrapper.
func NewTextGenService(cfg *TextGenConfig) *TextGenService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 250
	}
	sampling := cfg.Temperature
	if sampling <= 0 {
		sampling = 0.7
	}

	client := resty.New()
	client.SetHeader("Content-Type", "application/json")
	// Treat no-response beyond the timeout as failure, not as hang
	client.SetTimeout(timeout)

	return &TextGenService{
		client:    client,
		endpoint:  cfg.Endpoint,
		apiKey:    cfg.APIKey,
		maxTokens: maxTokens,
		sampling:  sampling,
	}
}

// IsConfigured reports whether an API credential is present.
func (s *TextGenService) IsConfigured() bool {
	return s.apiKey != ""
}

// Inference API request/response structures
type textGenRequest struct {
	Inputs     string            `json:"inputs"`
	Parameters textGenParameters `json:"parameters"`
	Options    textGenOptions    `json:"options"`
}

type textGenParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	TopP           float64 `json:"top_p"`
	DoSample       bool    `json:"do_sample"`
	ReturnFullText bool    `json:"return_full_text"`
}

type textGenOptions struct {
	WaitForModel bool `json:"wait_for_model"`
	UseCache     bool `json:"use_cache"`
}

type textGenResult struct {
	GeneratedText string `json:"generated_text"`
}

// Generate asks the remote model for one outfit recommendation.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - profile: user style profile embedded into the prompt.
//   - occasion: target occasion.
// Returns:
//   - *domain.Recommendation: parsed recommendation with all fields present.
//   - error: non-nil on any failure, including ErrNotConfigured when no
//     credential is set (no network I/O is attempted in that case).
func (s *TextGenService) Generate(ctx context.Context, profile domain.Profile, occasion domain.Occasion) (*domain.Recommendation, error) {
	if !s.IsConfigured() {
		return nil, ErrNotConfigured
	}

	req := textGenRequest{
		Inputs: prompts.BuildTextPrompt(profile, occasion),
		Parameters: textGenParameters{
			MaxNewTokens:   s.maxTokens,
			Temperature:    s.sampling,
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
		return nil, fmt.Errorf("textgen: request failed: %w", err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		return nil, fmt.Errorf("textgen: API returned HTTP %d: %s", httpResp.StatusCode(), string(httpResp.Body()))
	}

	if len(results) == 0 || strings.TrimSpace(results[0].GeneratedText) == "" {
		return nil, ErrEmptyResponse
	}

	return parseRecommendation(results[0].GeneratedText)
}

// parseRecommendation extracts and decodes the JSON recommendation embedded
// in a model response. The model frequently wraps its answer in markdown
// fences or surrounds it with commentary, so the candidate is the substring
// from the first '{' to the last '}'.
// Parameters:
//   - generated: raw generated text blob.
// Returns:
//   - *domain.Recommendation: decoded recommendation.
//   - error: non-nil if no candidate is found, decoding fails, or required
//     fields are missing.
func parseRecommendation(generated string) (*domain.Recommendation, error) {
	candidate, err := extractJSONCandidate(generated)
	if err != nil {
		return nil, err
	}

	var rec domain.Recommendation
	if err := json.Unmarshal([]byte(candidate), &rec); err != nil {
		return nil, fmt.Errorf("textgen: failed to parse JSON candidate: %w", err)
	}

	if !rec.Complete() {
		return nil, fmt.Errorf("textgen: recommendation has missing or empty fields")
	}

	return &rec, nil
}

// extractJSONCandidate locates the JSON object inside a generated text blob.
// Markdown code fences are stripped first; the candidate is everything from
// the first '{' to the last '}'.
// Parameters:
//   - text: raw generated text.
// Returns:
//   - string: JSON candidate substring.
//   - error: ErrNoJSONCandidate if no brace pair exists.
func extractJSONCandidate(text string) (string, error) {
	cleaned := strings.ReplaceAll(text, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return "", ErrNoJSONCandidate
	}

	return strings.TrimSpace(cleaned[start : end+1]), nil
}
