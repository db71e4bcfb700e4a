package handler

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stylesync/stylesync/internal/domain"
	"github.com/stylesync/stylesync/internal/repository"
	"github.com/stylesync/stylesync/internal/service"
)

// LookHandler handles look generation endpoints.
type LookHandler struct {
	lookService *service.LookService
	profileRepo *repository.ProfileRepository
}

// NewLookHandler creates a new look handler.
// Parameters:
//   - lookService: recommendation pipeline.
//   - profileRepo: profile store supplying the default profile.
// Returns:
//   - *LookHandler: initialized handler.
func NewLookHandler(lookService *service.LookService, profileRepo *repository.ProfileRepository) *LookHandler {
	return &LookHandler{
		lookService: lookService,
		profileRepo: profileRepo,
	}
}

// GenerateLookRequest is the body for POST /api/v1/looks. The profile is
// optional; when absent, the stored profile is used.
type GenerateLookRequest struct {
	Occasion string          `json:"occasion"`
	Profile  *domain.Profile `json:"profile,omitempty"`
}

// lookResponse serializes a complete look with the image inlined as base64.
type lookResponse struct {
	ID             string                `json:"id"`
	Recommendation domain.Recommendation `json:"recommendation"`
	Occasion       domain.Occasion       `json:"occasion"`
	ImageBase64    string                `json:"image_base64"`
	ImageFormat    string                `json:"image_format"`
	ImageSource    domain.ImageSource    `json:"image_source"`
	ImageURL       string                `json:"image_url,omitempty"`
	CreatedAt      string                `json:"created_at"`
}

func toLookResponse(look *domain.CompleteLook) lookResponse {
	return lookResponse{
		ID:             look.ID,
		Recommendation: look.Recommendation,
		Occasion:       look.Occasion,
		ImageBase64:    base64.StdEncoding.EncodeToString(look.Image.Data),
		ImageFormat:    look.Image.Format,
		ImageSource:    look.Image.Source,
		ImageURL:       look.ImageURL,
		CreatedAt:      look.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// resolveProfile returns the request's inline profile or falls back to the
// stored one.
func (h *LookHandler) resolveProfile(c *gin.Context, inline *domain.Profile) (domain.Profile, error) {
	if inline != nil {
		return *inline, nil
	}
	return h.profileRepo.Load(c.Request.Context())
}

// GenerateLook handles POST /api/v1/looks.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *LookHandler) GenerateLook(c *gin.Context) {
	var req GenerateLookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	profile, err := h.resolveProfile(c, req.Profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load profile: " + err.Error(),
		})
		return
	}

	occasion, _ := domain.ParseOccasion(req.Occasion)

	look, err := h.lookService.GenerateCompleteLook(c.Request.Context(), profile, occasion)
	if err != nil {
		// Only cancellation surfaces here; remote failures fall back internally
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Look generation interrupted: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, toLookResponse(look))
}

// GenerateLooksRequest is the body for POST /api/v1/looks/batch.
type GenerateLooksRequest struct {
	Count   int             `json:"count"`
	Profile *domain.Profile `json:"profile,omitempty"`
}

// GenerateLooks handles POST /api/v1/looks/batch, producing one look per
// occasion.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *LookHandler) GenerateLooks(c *gin.Context) {
	var req GenerateLooksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	profile, err := h.resolveProfile(c, req.Profile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load profile: " + err.Error(),
		})
		return
	}

	looks, err := h.lookService.GenerateLooks(c.Request.Context(), profile, req.Count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Batch generation interrupted: " + err.Error(),
		})
		return
	}

	responses := make([]lookResponse, 0, len(looks))
	for _, look := range looks {
		responses = append(responses, toLookResponse(look))
	}

	c.JSON(http.StatusOK, gin.H{
		"looks": responses,
		"count": len(responses),
	})
}
