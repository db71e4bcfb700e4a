package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"time"

	"github.com/go-resty/resty/v2"
	_ "golang.org/x/image/webp"

	"github.com/stylesync/stylesync/internal/domain"
	"github.com/stylesync/stylesync/internal/prompts"
)

var (
	ErrImageNotConfigured = errors.New("imagegen: API credential not configured")
	ErrNoImageURL         = errors.New("imagegen: response contained no image URL")
)

// ImageGenService renders an outfit image for a recommendation via a remote
// image-generation endpoint. The generated asset is fetched and decoded to
// verify it is a real image before it is handed to the caller.
type ImageGenService struct {
	client   *resty.Client
	endpoint string
	apiKey   string
	model    string
	size     string
	quality  string
	style    string
}

// ImageGenConfig holds configuration for the image generation client.
type ImageGenConfig struct {
	Endpoint string
	APIKey   string
	Model    string
	Size     string
	Quality  string
	Style    string
	Timeout  time.Duration
}

// NewImageGenService creates a new image generation client.
func NewImageGenService(cfg *ImageGenConfig) *ImageGenService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	model := cfg.Model
	if model == "" {
		model = "dall-e-3"
	}
	size := cfg.Size
	if size == "" {
		size = "1024x1792"
	}
	quality := cfg.Quality
	if quality == "" {
		quality = "standard"
	}
	style := cfg.Style
	if style == "" {
		style = "vivid"
	}

	client := resty.New()
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(timeout)

	return &ImageGenService{
		client:   client,
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		model:    model,
		size:     size,
		quality:  quality,
		style:    style,
	}
}

// IsConfigured reports whether an API credential is present.
func (s *ImageGenService) IsConfigured() bool {
	return s.apiKey != ""
}

type imageGenRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	N       int    `json:"n"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
	Style   string `json:"style"`
}

type imageGenResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate produces an outfit image for the recommendation and profile.
// The remote API returns a short-lived URL; the image bytes are fetched in a
// second request and decoded to confirm they form a valid image.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - rec: recommendation whose outfit the image should depict.
//   - profile: user profile shaping the subject of the image.
//   - occasion: target occasion shaping the scene.
// Returns:
//   - *domain.LookImage: decoded image with dimensions and source metadata.
//   - error: non-nil on any failure, including ErrImageNotConfigured when no
//     credential is set (no network I/O is attempted in that case).
func (s *ImageGenService) Generate(ctx context.Context, rec *domain.Recommendation, profile domain.Profile, occasion domain.Occasion) (*domain.LookImage, error) {
	if !s.IsConfigured() {
		return nil, ErrImageNotConfigured
	}

	req := imageGenRequest{
		Model:   s.model,
		Prompt:  prompts.BuildImagePrompt(*rec, profile, occasion),
		N:       1,
		Size:    s.size,
		Quality: s.quality,
		Style:   s.style,
	}

	var result imageGenResponse
	httpResp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetBody(req).
		SetResult(&result).
		SetError(&result).
		Post(s.endpoint)

	if err != nil {
		return nil, fmt.Errorf("imagegen: request failed: %w", err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		if result.Error != nil && result.Error.Message != "" {
			return nil, fmt.Errorf("imagegen: API returned HTTP %d: %s", httpResp.StatusCode(), result.Error.Message)
		}
		return nil, fmt.Errorf("imagegen: API returned HTTP %d", httpResp.StatusCode())
	}

	if len(result.Data) == 0 || result.Data[0].URL == "" {
		return nil, ErrNoImageURL
	}

	return s.fetchImage(ctx, result.Data[0].URL)
}

// fetchImage downloads the generated asset and verifies it decodes.
func (s *ImageGenService) fetchImage(ctx context.Context, url string) (*domain.LookImage, error) {
	assetResp, err := s.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("imagegen: failed to fetch image asset: %w", err)
	}

	if assetResp.StatusCode() < 200 || assetResp.StatusCode() >= 300 {
		return nil, fmt.Errorf("imagegen: asset fetch returned HTTP %d", assetResp.StatusCode())
	}

	data := assetResp.Body()
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imagegen: asset is not a decodable image: %w", err)
	}

	return &domain.LookImage{
		Data:   data,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
		Source: domain.ImageSourceRemote,
	}, nil
}
