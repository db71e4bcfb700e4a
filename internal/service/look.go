package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stylesync/stylesync/internal/domain"
	"github.com/stylesync/stylesync/internal/logger"
	"github.com/stylesync/stylesync/internal/storage"
)

// TextGenerator produces a structured recommendation from a profile.
type TextGenerator interface {
	Generate(ctx context.Context, profile domain.Profile, occasion domain.Occasion) (*domain.Recommendation, error)
}

// ImageGenerator produces an outfit image for a recommendation.
type ImageGenerator interface {
	Generate(ctx context.Context, rec *domain.Recommendation, profile domain.Profile, occasion domain.Occasion) (*domain.LookImage, error)
}

// LookService orchestrates the two generation stages into a complete look.
//
// Each stage follows the same policy: attempt the remote client once, and on
// any failure substitute the deterministic local result. There are no
// retries and no externally visible failure state except caller
// cancellation, which yields no result at all.
type LookService struct {
	textGen         TextGenerator
	imageGen        ImageGenerator
	placeholder     *PlaceholderRenderer
	store           storage.ObjectStorage
	placeholderOnly bool
	stageDelay      time.Duration
	lookCount       int
}

// LookServiceOptions configures pipeline behavior.
type LookServiceOptions struct {
	// PlaceholderOnly skips both remote clients and serves the
	// deterministic path directly. Useful in development and demos.
	PlaceholderOnly bool

	// StageDelay is the pause between consecutive looks during batch
	// generation, to avoid hammering the remote endpoints.
	StageDelay time.Duration

	// LookCount is the default batch size when the caller does not ask
	// for a specific number of looks.
	LookCount int
}

// NewLookService creates the recommendation pipeline.
// Parameters:
//   - textGen: remote text-recommendation client.
//   - imageGen: remote image-generation client.
//   - store: optional object storage for generated images, may be nil.
//   - opts: pipeline options.
// Returns:
//   - *LookService: initialized pipeline.
func NewLookService(textGen TextGenerator, imageGen ImageGenerator, store storage.ObjectStorage, opts LookServiceOptions) *LookService {
	delay := opts.StageDelay
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	lookCount := opts.LookCount
	if lookCount <= 0 || lookCount > len(domain.Occasions) {
		lookCount = len(domain.Occasions)
	}
	return &LookService{
		textGen:         textGen,
		imageGen:        imageGen,
		placeholder:     NewPlaceholderRenderer(),
		store:           store,
		placeholderOnly: opts.PlaceholderOnly,
		stageDelay:      delay,
		lookCount:       lookCount,
	}
}

// GenerateCompleteLook runs both stages and assembles the result.
//
// Stage 1 produces a Recommendation, remote first, deterministic fallback on
// any failure. Stage 2 produces an image from whatever stage 1 yielded,
// remote first, placeholder on any failure. The stages are strictly
// sequential because the image prompt is derived from the stage 1 result.
// Parameters:
//   - ctx: context. Cancellation aborts the in-flight stage and the call
//     returns an error with no partial result.
//   - profile: user style profile.
//   - occasion: target occasion.
// Returns:
//   - *domain.CompleteLook: fully assembled look with a fresh identifier.
//   - error: non-nil only when ctx is cancelled before completion.
func (s *LookService) GenerateCompleteLook(ctx context.Context, profile domain.Profile, occasion domain.Occasion) (*domain.CompleteLook, error) {
	lookID := uuid.New().String()
	ctx = logger.SetLookID(ctx, lookID)
	ctx = logger.SetOccasion(ctx, string(occasion))

	rec := s.recommend(ctx, profile, occasion)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("look generation cancelled: %w", err)
	}

	img := s.illustrate(ctx, rec, profile, occasion)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("look generation cancelled: %w", err)
	}

	look := &domain.CompleteLook{
		ID:             lookID,
		Recommendation: *rec,
		Image:          *img,
		Occasion:       occasion,
		CreatedAt:      time.Now(),
	}

	s.exportImage(ctx, look)

	logger.CtxInfo(ctx, "Complete look assembled: id=%s, occasion=%s, image_source=%s", lookID, occasion, img.Source)
	return look, nil
}

// recommend runs stage 1 with its fallback.
func (s *LookService) recommend(ctx context.Context, profile domain.Profile, occasion domain.Occasion) *domain.Recommendation {
	ctx = logger.SetStage(ctx, "text")
	if s.placeholderOnly {
		return fallbackRecommendation(profile.Temperature, occasion)
	}

	rec, err := s.textGen.Generate(ctx, profile, occasion)
	if err != nil {
		logger.CtxWarn(ctx, "Text generation failed, using deterministic recommendation: error=%v", err)
		return fallbackRecommendation(profile.Temperature, occasion)
	}
	return rec
}

// illustrate runs stage 2 with its fallback.
func (s *LookService) illustrate(ctx context.Context, rec *domain.Recommendation, profile domain.Profile, occasion domain.Occasion) *domain.LookImage {
	ctx = logger.SetStage(ctx, "image")
	if s.placeholderOnly {
		return s.placeholder.Render(rec, occasion)
	}

	img, err := s.imageGen.Generate(ctx, rec, profile, occasion)
	if err != nil {
		logger.CtxWarn(ctx, "Image generation failed, using placeholder: error=%v", err)
		return s.placeholder.Render(rec, occasion)
	}
	return img
}

// exportImage uploads the look image to object storage. Best effort: upload
// failures are logged and never affect the returned look.
func (s *LookService) exportImage(ctx context.Context, look *domain.CompleteLook) {
	if s.store == nil || len(look.Image.Data) == 0 {
		return
	}

	key := fmt.Sprintf("looks/%s.%s", look.ID, look.Image.Format)
	contentType := "image/" + look.Image.Format
	if err := s.store.Upload(ctx, key, bytes.NewReader(look.Image.Data), int64(len(look.Image.Data)), contentType); err != nil {
		logger.CtxWarn(ctx, "Failed to upload look image: key=%s, error=%v", key, err)
		return
	}
	look.ImageURL = s.store.GetURL(key)
}

// GenerateLooks produces one look per occasion with a small delay between
// requests. Remote failures fall back per look inside GenerateCompleteLook;
// only cancellation aborts the batch.
// Parameters:
//   - ctx: context for cancellation.
//   - profile: user style profile.
//   - count: number of looks. Zero or negative uses the configured
//     default; anything above the number of known occasions is capped.
// Returns:
//   - []*domain.CompleteLook: generated looks in occasion order.
//   - error: non-nil only when ctx is cancelled.
func (s *LookService) GenerateLooks(ctx context.Context, profile domain.Profile, count int) ([]*domain.CompleteLook, error) {
	if count <= 0 {
		count = s.lookCount
	}
	if count > len(domain.Occasions) {
		count = len(domain.Occasions)
	}

	looks := make([]*domain.CompleteLook, 0, count)
	for i := 0; i < count; i++ {
		look, err := s.GenerateCompleteLook(ctx, profile, domain.Occasions[i])
		if err != nil {
			return nil, err
		}
		looks = append(looks, look)

		if i < count-1 {
			select {
			case <-time.After(s.stageDelay):
			case <-ctx.Done():
				return nil, fmt.Errorf("batch generation cancelled: %w", ctx.Err())
			}
		}
	}
	return looks, nil
}
