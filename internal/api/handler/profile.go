package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stylesync/stylesync/internal/domain"
	"github.com/stylesync/stylesync/internal/repository"
)

// ProfileHandler handles style profile endpoints.
type ProfileHandler struct {
	profileRepo *repository.ProfileRepository
}

// NewProfileHandler creates a new profile handler.
// Parameters:
//   - profileRepo: profile store.
// Returns:
//   - *ProfileHandler: initialized handler.
func NewProfileHandler(profileRepo *repository.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{
		profileRepo: profileRepo,
	}
}

// GetProfile handles GET /api/v1/profile.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileRepo.Load(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load profile: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// PutProfile handles PUT /api/v1/profile, replacing the stored profile.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ProfileHandler) PutProfile(c *gin.Context) {
	var profile domain.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	if err := h.profileRepo.Save(c.Request.Context(), profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save profile: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, profile)
}
