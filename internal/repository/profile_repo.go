package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stylesync/stylesync/internal/domain"
)

// profileRecordID pins the single profile row. The app models one local
// user, so load and save always address the same record.
const profileRecordID = "current"

// ProfileRepository handles style profile persistence.
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new ProfileRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *ProfileRepository: repository instance bound to db.
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Load returns the stored profile, or a zero-value default when none has
// been saved yet.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - domain.Profile: the stored or default profile.
//   - error: non-nil on database failure.
func (r *ProfileRepository) Load(ctx context.Context) (domain.Profile, error) {
	var record domain.ProfileRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", profileRecordID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Profile{}, nil
	}
	if err != nil {
		return domain.Profile{}, err
	}
	return record.ToProfile(), nil
}

// Save upserts the profile into the single record slot.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - profile: profile value to persist.
// Returns:
//   - error: non-nil if the upsert fails.
func (r *ProfileRepository) Save(ctx context.Context, profile domain.Profile) error {
	record := domain.ProfileRecord{
		ID:               profileRecordID,
		Gender:           profile.Gender,
		FaceShape:        profile.FaceShape,
		BodyType:         profile.BodyType,
		HairColor:        profile.HairColor,
		MusicGenres:      profile.MusicGenres,
		Location:         profile.Location,
		Temperature:      profile.Temperature,
		WeatherCondition: profile.WeatherCondition,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&record).Error
}
