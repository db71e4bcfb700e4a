package repository

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stylesync/stylesync/internal/domain"
)

// FavoriteRepository handles favorite look persistence.
type FavoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new FavoriteRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *FavoriteRepository: repository instance bound to db.
func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// HashImage returns the MD5 hex digest used for favorite deduplication.
func HashImage(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

// Create inserts a new favorite record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - fav: favorite record to persist.
// Returns:
//   - error: non-nil if the insert fails.
func (r *FavoriteRepository) Create(ctx context.Context, fav *domain.FavoriteLook) error {
	return r.db.WithContext(ctx).Create(fav).Error
}

// GetByID retrieves a favorite by its ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: favorite ID.
// Returns:
//   - *domain.FavoriteLook: favorite record if found.
//   - error: non-nil if lookup fails.
func (r *FavoriteRepository) GetByID(ctx context.Context, id string) (*domain.FavoriteLook, error) {
	var fav domain.FavoriteLook
	if err := r.db.WithContext(ctx).First(&fav, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &fav, nil
}

// GetByImageHash retrieves a favorite by the MD5 of its image bytes.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - hash: MD5 hex digest of the image bytes.
// Returns:
//   - *domain.FavoriteLook: favorite record if found, nil if absent.
//   - error: non-nil on database failure.
func (r *FavoriteRepository) GetByImageHash(ctx context.Context, hash string) (*domain.FavoriteLook, error) {
	var fav domain.FavoriteLook
	err := r.db.WithContext(ctx).First(&fav, "image_hash = ?", hash).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &fav, nil
}

// Toggle favorites a look, or removes it when the same image bytes are
// already favorited. Deduplication compares rendered-image bytes via MD5, so
// a regenerated look with identical pixels toggles the existing entry.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - look: the complete look being favorited.
//   - tags: tags to store alongside the snapshot.
// Returns:
//   - *domain.FavoriteLook: the stored favorite, nil when toggled off.
//   - bool: true if a favorite was added, false if removed.
//   - error: non-nil on database failure.
func (r *FavoriteRepository) Toggle(ctx context.Context, look *domain.CompleteLook, tags []string) (*domain.FavoriteLook, bool, error) {
	hash := HashImage(look.Image.Data)

	existing, err := r.GetByImageHash(ctx, hash)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		if err := r.db.WithContext(ctx).Delete(&domain.FavoriteLook{}, "id = ?", existing.ID).Error; err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}

	fav := &domain.FavoriteLook{
		ID:           uuid.New().String(),
		GenerationID: look.ID,
		Title:        look.Recommendation.Title,
		Description:  look.Recommendation.Description,
		Tags:         domain.StringArray(tags),
		ImageData:    look.Image.Data,
		ImageHash:    hash,
		FavoritedAt:  time.Now(),
	}
	if err := r.Create(ctx, fav); err != nil {
		return nil, false, err
	}
	return fav, true, nil
}

// List returns favorites ordered by most recent, optionally filtered by tag.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - tag: tag filter, empty for no filter.
//   - limit: maximum rows, 0 for no limit.
// Returns:
//   - []domain.FavoriteLook: matching favorites.
//   - error: non-nil on database failure.
func (r *FavoriteRepository) List(ctx context.Context, tag string, limit int) ([]domain.FavoriteLook, error) {
	query := r.db.WithContext(ctx).Order("favorited_at DESC")
	if tag != "" {
		// Tags are stored as a JSON array, match the quoted element
		query = query.Where("tags LIKE ?", "%\""+tag+"\"%")
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var favorites []domain.FavoriteLook
	if err := query.Find(&favorites).Error; err != nil {
		return nil, err
	}
	return favorites, nil
}

// UpdateNote sets the user note on a favorite.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: favorite ID.
//   - note: new note text.
// Returns:
//   - error: non-nil if the favorite does not exist or the update fails.
func (r *FavoriteRepository) UpdateNote(ctx context.Context, id, note string) error {
	result := r.db.WithContext(ctx).Model(&domain.FavoriteLook{}).Where("id = ?", id).Update("note", note)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a favorite by ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: favorite ID.
// Returns:
//   - error: non-nil if the favorite does not exist or the delete fails.
func (r *FavoriteRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&domain.FavoriteLook{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Tags returns the distinct set of tags across all favorites.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []string: sorted unique tags.
//   - error: non-nil on database failure.
func (r *FavoriteRepository) Tags(ctx context.Context) ([]string, error) {
	var favorites []domain.FavoriteLook
	if err := r.db.WithContext(ctx).Select("tags").Find(&favorites).Error; err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var tags []string
	for _, fav := range favorites {
		for _, tag := range fav.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

// Count returns the number of stored favorites.
func (r *FavoriteRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.FavoriteLook{}).Count(&count).Error
	return count, err
}
