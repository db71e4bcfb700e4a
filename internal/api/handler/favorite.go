package handler

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stylesync/stylesync/internal/domain"
	"github.com/stylesync/stylesync/internal/repository"
)

// FavoriteHandler handles favorite look endpoints.
type FavoriteHandler struct {
	favoriteRepo *repository.FavoriteRepository
}

// NewFavoriteHandler creates a new favorite handler.
// Parameters:
//   - favoriteRepo: favorite store.
// Returns:
//   - *FavoriteHandler: initialized handler.
func NewFavoriteHandler(favoriteRepo *repository.FavoriteRepository) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteRepo: favoriteRepo,
	}
}

// ToggleFavoriteRequest is the body for POST /api/v1/favorites/toggle. The
// caller sends back the look it received from the generation endpoints; the
// image is transported as base64.
type ToggleFavoriteRequest struct {
	ID             string                `json:"id" binding:"required"`
	Recommendation domain.Recommendation `json:"recommendation" binding:"required"`
	Occasion       string                `json:"occasion"`
	ImageBase64    string                `json:"image_base64" binding:"required"`
	ImageFormat    string                `json:"image_format"`
	Tags           []string              `json:"tags"`
}

// ToggleFavorite handles POST /api/v1/favorites/toggle. Favoriting a look
// whose image bytes are already stored removes the existing entry instead.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *FavoriteHandler) ToggleFavorite(c *gin.Context) {
	var req ToggleFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	imageData, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil || len(imageData) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "image_base64 is not valid base64",
		})
		return
	}

	occasion, _ := domain.ParseOccasion(req.Occasion)
	look := &domain.CompleteLook{
		ID:             req.ID,
		Recommendation: req.Recommendation,
		Image: domain.LookImage{
			Data:   imageData,
			Format: req.ImageFormat,
		},
		Occasion:  occasion,
		CreatedAt: time.Now(),
	}

	fav, added, err := h.favoriteRepo.Toggle(c.Request.Context(), look, req.Tags)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to toggle favorite: " + err.Error(),
		})
		return
	}

	if !added {
		c.JSON(http.StatusOK, gin.H{
			"favorited": false,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"favorited": true,
		"favorite":  fav,
	})
}

// ListFavorites handles GET /api/v1/favorites with optional tag and limit
// query parameters.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "limit must be a non-negative integer",
			})
			return
		}
		limit = parsed
	}

	favorites, err := h.favoriteRepo.List(c.Request.Context(), c.Query("tag"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list favorites: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"favorites": favorites,
		"count":     len(favorites),
	})
}

// UpdateNoteRequest is the body for PATCH /api/v1/favorites/:id/note.
type UpdateNoteRequest struct {
	Note string `json:"note"`
}

// UpdateNote handles PATCH /api/v1/favorites/:id/note.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *FavoriteHandler) UpdateNote(c *gin.Context) {
	var req UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	err := h.favoriteRepo.UpdateNote(c.Request.Context(), c.Param("id"), req.Note)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Favorite not found",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update note: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"updated": true,
	})
}

// DeleteFavorite handles DELETE /api/v1/favorites/:id.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *FavoriteHandler) DeleteFavorite(c *gin.Context) {
	err := h.favoriteRepo.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Favorite not found",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete favorite: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deleted": true,
	})
}

// ListTags handles GET /api/v1/favorites/tags.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *FavoriteHandler) ListTags(c *gin.Context) {
	tags, err := h.favoriteRepo.Tags(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list tags: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tags": tags,
	})
}
