package domain

import "strings"

// Occasion is one of the fixed use-case labels that parameterizes both
// recommendation content and image styling.
type Occasion string

const (
	OccasionCasual Occasion = "casual"
	OccasionWork   Occasion = "work"
	OccasionParty  Occasion = "party"
	OccasionSport  Occasion = "sport"
)

// Occasions lists all valid occasions in the order batch generation uses them.
var Occasions = []Occasion{OccasionCasual, OccasionWork, OccasionParty, OccasionSport}

// ParseOccasion normalizes a label to a known Occasion.
// Unknown or empty labels fall back to casual, so an occasion passed into the
// pipeline is always a member of the fixed set.
// Parameters:
//   - label: raw occasion label from the caller.
// Returns:
//   - Occasion: matching occasion or OccasionCasual.
//   - bool: true if the label matched a known occasion.
func ParseOccasion(label string) (Occasion, bool) {
	switch Occasion(strings.ToLower(strings.TrimSpace(label))) {
	case OccasionCasual:
		return OccasionCasual, true
	case OccasionWork:
		return OccasionWork, true
	case OccasionParty:
		return OccasionParty, true
	case OccasionSport:
		return OccasionSport, true
	}
	return OccasionCasual, false
}

// Profile is the immutable user style profile consumed by the pipeline.
// It is a plain value object: persistence belongs to the repository layer,
// never to the profile itself.
type Profile struct {
	Gender           string      `json:"gender"`
	FaceShape        string      `json:"face_shape,omitempty"`
	BodyType         string      `json:"body_type"`
	HairColor        string      `json:"hair_color"`
	MusicGenres      StringArray `json:"music_genres"`
	Location         string      `json:"location,omitempty"`
	Temperature      int         `json:"temperature"`
	WeatherCondition string      `json:"weather_condition"`
}

// ProfileRecord is the persisted form of Profile. A single row holds the
// current profile; the ID is fixed so load/save always address the same record.
type ProfileRecord struct {
	ID               string      `gorm:"type:text;primaryKey" json:"id"`
	Gender           string      `gorm:"type:text" json:"gender"`
	FaceShape        string      `gorm:"type:text" json:"face_shape"`
	BodyType         string      `gorm:"type:text" json:"body_type"`
	HairColor        string      `gorm:"type:text" json:"hair_color"`
	MusicGenres      StringArray `gorm:"type:text" json:"music_genres"`
	Location         string      `gorm:"type:text" json:"location"`
	Temperature      int         `json:"temperature"`
	WeatherCondition string      `gorm:"type:text" json:"weather_condition"`
}

// TableName returns the database table name for ProfileRecord.
func (ProfileRecord) TableName() string {
	return "profiles"
}

// ToProfile converts the persisted record into the pipeline value object.
func (r *ProfileRecord) ToProfile() Profile {
	return Profile{
		Gender:           r.Gender,
		FaceShape:        r.FaceShape,
		BodyType:         r.BodyType,
		HairColor:        r.HairColor,
		MusicGenres:      r.MusicGenres,
		Location:         r.Location,
		Temperature:      r.Temperature,
		WeatherCondition: r.WeatherCondition,
	}
}
