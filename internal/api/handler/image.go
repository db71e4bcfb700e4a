package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stylesync/stylesync/internal/storage"
)

// imageFormats lists the extensions an exported look image may carry, in
// lookup order. The placeholder always encodes JPEG; remote assets may be
// any of the decodable formats.
var imageFormats = []string{"jpeg", "png", "webp", "gif"}

// LookImageHandler serves look images previously exported to object storage.
type LookImageHandler struct {
	store storage.ObjectStorage
}

// NewLookImageHandler creates a new look image handler.
// Parameters:
//   - store: object storage backend, may be nil when storage is disabled.
// Returns:
//   - *LookImageHandler: initialized handler.
func NewLookImageHandler(store storage.ObjectStorage) *LookImageHandler {
	return &LookImageHandler{store: store}
}

// resolveKey finds the storage key for a look ID by probing the known
// extensions.
func (h *LookImageHandler) resolveKey(c *gin.Context, lookID string) (string, string, bool) {
	for _, format := range imageFormats {
		key := fmt.Sprintf("looks/%s.%s", lookID, format)
		exists, err := h.store.Exists(c.Request.Context(), key)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to check stored image: " + err.Error(),
			})
			return "", "", false
		}
		if exists {
			return key, format, true
		}
	}

	c.JSON(http.StatusNotFound, gin.H{
		"error": "No stored image for look " + lookID,
	})
	return "", "", false
}

// GetImage handles GET /api/v1/looks/:id/image.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes the image bytes or a JSON error).
func (h *LookImageHandler) GetImage(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Object storage is not enabled",
		})
		return
	}

	key, format, ok := h.resolveKey(c, c.Param("id"))
	if !ok {
		return
	}

	reader, err := h.store.Download(c.Request.Context(), key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to download stored image: " + err.Error(),
		})
		return
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to read stored image: " + err.Error(),
		})
		return
	}

	c.Data(http.StatusOK, "image/"+format, data)
}

// DeleteImage handles DELETE /api/v1/looks/:id/image.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *LookImageHandler) DeleteImage(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Object storage is not enabled",
		})
		return
	}

	key, _, ok := h.resolveKey(c, c.Param("id"))
	if !ok {
		return
	}

	if err := h.store.Delete(c.Request.Context(), key); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete stored image: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
