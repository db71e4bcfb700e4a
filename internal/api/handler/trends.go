package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stylesync/stylesync/internal/repository"
	"github.com/stylesync/stylesync/internal/service"
)

// TrendsHandler handles fashion trends endpoints.
type TrendsHandler struct {
	trendsService *service.TrendsService
	profileRepo   *repository.ProfileRepository
}

// NewTrendsHandler creates a new trends handler.
// Parameters:
//   - trendsService: trends service.
//   - profileRepo: profile store supplying personalization input.
// Returns:
//   - *TrendsHandler: initialized handler.
func NewTrendsHandler(trendsService *service.TrendsService, profileRepo *repository.ProfileRepository) *TrendsHandler {
	return &TrendsHandler{
		trendsService: trendsService,
		profileRepo:   profileRepo,
	}
}

// GetTrends handles GET /api/v1/trends. The trends service has its own
// fallback, so this endpoint never fails for remote reasons.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *TrendsHandler) GetTrends(c *gin.Context) {
	profile, err := h.profileRepo.Load(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load profile: " + err.Error(),
		})
		return
	}

	trends := h.trendsService.WeeklyTrends(c.Request.Context(), profile)

	c.JSON(http.StatusOK, gin.H{
		"trends": trends,
		"count":  len(trends),
	})
}
