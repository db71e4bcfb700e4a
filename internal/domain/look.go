package domain

import (
	"strings"
	"time"
)

// Recommendation is the structured textual outfit suggestion produced by the
// text stage. Every field is non-empty in any value handed to callers; the
// deterministic fallback guarantees this when the remote model fails.
type Recommendation struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Items       StringArray `json:"items"`
	StyleNote   string      `json:"styleNote"`
}

// Complete reports whether all required fields carry usable content.
// Parameters: none.
// Returns:
//   - bool: true if title, description, style note and at least one item are non-empty.
func (r *Recommendation) Complete() bool {
	if strings.TrimSpace(r.Title) == "" ||
		strings.TrimSpace(r.Description) == "" ||
		strings.TrimSpace(r.StyleNote) == "" {
		return false
	}
	if len(r.Items) == 0 {
		return false
	}
	for _, item := range r.Items {
		if strings.TrimSpace(item) == "" {
			return false
		}
	}
	return true
}

// ImageSource identifies which stage produced a look image.
type ImageSource string

const (
	ImageSourceRemote      ImageSource = "remote"
	ImageSourcePlaceholder ImageSource = "placeholder"
)

// LookImage is a rendered outfit image: encoded bytes plus decoded metadata.
type LookImage struct {
	Data   []byte      `json:"-"`
	Format string      `json:"format"`
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Source ImageSource `json:"source"`
}

// CompleteLook bundles a Recommendation with its rendered image and the
// occasion it was generated for. The ID is minted fresh per generation:
// two runs with identical recommendation text are distinct looks.
type CompleteLook struct {
	ID             string         `json:"id"`
	Recommendation Recommendation `json:"recommendation"`
	Image          LookImage      `json:"image"`
	Occasion       Occasion       `json:"occasion"`
	ImageURL       string         `json:"image_url,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// FavoriteLook is a de-normalized snapshot of a CompleteLook saved by the user.
// ImageHash is the MD5 of the rendered image bytes and drives deduplication:
// favoriting the same image bytes twice toggles removal.
type FavoriteLook struct {
	ID           string      `gorm:"type:text;primaryKey" json:"id"`
	GenerationID string      `gorm:"type:text;index:idx_favorites_generation" json:"generation_id"`
	Title        string      `gorm:"type:text;not null" json:"title"`
	Description  string      `gorm:"type:text" json:"description"`
	Tags         StringArray `gorm:"type:text" json:"tags"`
	Note         string      `gorm:"type:text" json:"note,omitempty"`
	ImageData    []byte      `gorm:"type:blob" json:"-"`
	ImageHash    string      `gorm:"type:text;index:idx_favorites_image_hash" json:"image_hash"`
	StorageKey   string      `gorm:"type:text" json:"storage_key,omitempty"`
	FavoritedAt  time.Time   `json:"favorited_at"`
}

// TableName returns the database table name for FavoriteLook.
func (FavoriteLook) TableName() string {
	return "favorites"
}
