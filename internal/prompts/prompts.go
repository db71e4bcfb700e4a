package prompts

import (
	"fmt"
	"strings"

	"github.com/stylesync/stylesync/internal/domain"
)

// ============================================================================
// Occasion lookup tables
// ============================================================================

// occasionDescriptor maps an occasion to the English style descriptor used in
// image prompts. Unknown occasions get the generic default.
var occasionDescriptor = map[domain.Occasion]string{
	domain.OccasionCasual: "casual everyday",
	domain.OccasionWork:   "business professional",
	domain.OccasionParty:  "party festive",
	domain.OccasionSport:  "sports athletic",
}

// occasionAmbience maps an occasion to the setting phrase for image prompts.
var occasionAmbience = map[domain.Occasion]string{
	domain.OccasionCasual: "in a relaxed urban setting",
	domain.OccasionWork:   "in a modern office setting",
	domain.OccasionParty:  "in an elegant evening atmosphere",
	domain.OccasionSport:  "in a dynamic sports environment",
}

const (
	defaultDescriptor = "casual"
	defaultAmbience   = "in a neutral setting"
)

// OccasionDescriptor returns the English descriptor for an occasion.
func OccasionDescriptor(occasion domain.Occasion) string {
	if d, ok := occasionDescriptor[occasion]; ok {
		return d
	}
	return defaultDescriptor
}

// OccasionAmbience returns the ambience phrase for an occasion.
func OccasionAmbience(occasion domain.Occasion) string {
	if a, ok := occasionAmbience[occasion]; ok {
		return a
	}
	return defaultAmbience
}

// ============================================================================
// Gender mapping
// ============================================================================

// Free-text gender labels are matched case-insensitively against
// language-specific terms (the profile flow historically stored pt-BR labels).
var (
	maleTerms   = []string{"masculino", "homem", "male", "man"}
	femaleTerms = []string{"feminino", "mulher", "female", "woman"}
)

// GenderSubject maps free-text gender to the coarse image-prompt subject noun.
// Parameters:
//   - gender: free-text gender label from the profile.
// Returns:
//   - string: "man", "woman", or "person" when unspecified.
func GenderSubject(gender string) string {
	lower := strings.ToLower(strings.TrimSpace(gender))
	for _, term := range femaleTerms {
		if strings.Contains(lower, term) {
			return "woman"
		}
	}
	for _, term := range maleTerms {
		if strings.Contains(lower, term) {
			return "man"
		}
	}
	return "person"
}

// ============================================================================
// Text generation prompt
// ============================================================================

// BuildTextPrompt composes the natural-language instruction for the text
// model. The prompt demands a strict single-object JSON response and includes
// an example of the expected shape, because the downstream parser has no
// recovery beyond substring extraction.
// Parameters:
//   - profile: user style profile.
//   - occasion: target occasion.
// Returns:
//   - string: complete text-generation instruction.
func BuildTextPrompt(profile domain.Profile, occasion domain.Occasion) string {
	var b strings.Builder

	b.WriteString("You are a professional fashion stylist. Analyze this profile and create ONE outfit recommendation:\n\n")
	b.WriteString("PROFILE:\n")
	fmt.Fprintf(&b, "- Gender: %s\n", profile.Gender)
	fmt.Fprintf(&b, "- Body type: %s\n", profile.BodyType)
	fmt.Fprintf(&b, "- Hair color: %s\n", profile.HairColor)
	fmt.Fprintf(&b, "- Favorite music styles: %s\n", strings.Join(profile.MusicGenres, ", "))
	fmt.Fprintf(&b, "- Current temperature: %d°C\n", profile.Temperature)
	fmt.Fprintf(&b, "- Weather: %s\n", profile.WeatherCondition)
	fmt.Fprintf(&b, "- Occasion: %s\n\n", occasion)

	b.WriteString("Respond ONLY with a valid JSON object in exactly this format (no markdown, no extra text, just the JSON):\n")
	b.WriteString(`{"title":"Creative look name","description":"Short description of the main pieces","items":["piece 1","piece 2","piece 3","piece 4"],"styleNote":"Styling tip"}` + "\n\n")
	b.WriteString("Example of the expected response:\n")
	b.WriteString(`{"title":"Urban Chill","description":"Oversized hoodie, cargo pants and chunky sneakers","items":["Grey oversized hoodie","Black cargo pants","White chunky sneakers","Black cap"],"styleNote":"Pair with minimalist accessories for a modern urban look"}`)

	return b.String()
}

// ============================================================================
// Image generation prompt
// ============================================================================

// BuildImagePrompt composes the descriptive paragraph for the image model.
// The single-person and blank-background constraints are intentionally
// repeated: image models weight repeated constraints more heavily, so the
// redundancy is load-bearing, not an accident.
// Parameters:
//   - rec: the recommendation the image should depict.
//   - profile: user style profile (body type, hair color, gender subject).
//   - occasion: target occasion driving style and ambience wording.
// Returns:
//   - string: complete image-generation instruction.
func BuildImagePrompt(rec domain.Recommendation, profile domain.Profile, occasion domain.Occasion) string {
	subject := GenderSubject(profile.Gender)
	descriptor := OccasionDescriptor(occasion)
	items := strings.Join(rec.Items, ", ")

	var b strings.Builder

	fmt.Fprintf(&b, "A professional fashion photography of ONE SINGLE %s wearing a %s outfit %s. ", subject, descriptor, OccasionAmbience(occasion))
	b.WriteString("CRITICAL: Show ONLY ONE PERSON, complete FULL BODY from head to toes including feet visible.\n\n")

	b.WriteString("Person details:\n")
	fmt.Fprintf(&b, "- Gender: %s\n", subject)
	fmt.Fprintf(&b, "- Body type: %s\n", profile.BodyType)
	fmt.Fprintf(&b, "- Hair color: %s\n\n", profile.HairColor)

	b.WriteString("Outfit details:\n")
	fmt.Fprintf(&b, "- Style: %s\n", descriptor)
	fmt.Fprintf(&b, "- Items: %s\n", items)
	fmt.Fprintf(&b, "- Weather appropriate: %d°C\n\n", profile.Temperature)

	b.WriteString("BACKGROUND REQUIREMENTS (VERY IMPORTANT):\n")
	b.WriteString("- Plain solid WHITE WALL only\n")
	b.WriteString("- Completely EMPTY and CLEAN\n")
	b.WriteString("- NO decorations, NO objects, NO furniture, NO plants, NO windows, NO doors\n")
	b.WriteString("- NO patterns, NO texture, NO shadows on wall\n")
	b.WriteString("- Just a simple BLANK WHITE backdrop\n")
	b.WriteString("- The wall should be completely featureless to highlight the person 100%\n\n")

	b.WriteString("Composition:\n")
	b.WriteString("- Centered full-length portrait\n")
	b.WriteString("- Front facing view\n")
	b.WriteString("- Entire body visible including feet\n")
	b.WriteString("- Professional studio lighting\n")
	b.WriteString("- High fashion aesthetic\n")
	b.WriteString("- Sharp focus on person\n")
	b.WriteString("- Vibrant clothing colors\n")
	b.WriteString("- Modern and elegant presentation")

	return b.String()
}

// ============================================================================
// Trends prompt
// ============================================================================

// BuildTrendsPrompt composes the instruction for personalized weekly fashion
// trends. Same contract as BuildTextPrompt: strict JSON, example included.
// Parameters:
//   - profile: user style profile.
//   - period: human-readable current period, e.g. "August 2026".
// Returns:
//   - string: complete trends-generation instruction.
func BuildTrendsPrompt(profile domain.Profile, period string) string {
	var b strings.Builder

	b.WriteString("You are an international fashion trend expert. Analyze the profile and create 5 current fashion trends of the week, personalized for this profile.\n\n")
	fmt.Fprintf(&b, "CURRENT PERIOD: %s\n\n", period)
	b.WriteString("USER PROFILE:\n")
	fmt.Fprintf(&b, "- Gender: %s\n", profile.Gender)
	fmt.Fprintf(&b, "- Body type: %s\n", profile.BodyType)
	fmt.Fprintf(&b, "- Hair color: %s\n", profile.HairColor)
	fmt.Fprintf(&b, "- Favorite music styles: %s\n", strings.Join(profile.MusicGenres, ", "))
	fmt.Fprintf(&b, "- Temperature: %d°C\n\n", profile.Temperature)

	b.WriteString("Create REAL and CURRENT trends. Consider recent fashion weeks (Paris, Milan, New York, São Paulo), social media trends, sustainable fashion, streetwear and haute couture.\n\n")
	b.WriteString("Respond ONLY with a valid JSON object in this format:\n")
	b.WriteString(`{"trends":[{"title":"Trend name","description":"Short description","category":"Category","relevanceScore":95,"tags":["tag1","tag2"],"howToWear":"How to wear this trend"}]}` + "\n\n")
	b.WriteString("Example:\n")
	b.WriteString(`{"trends":[{"title":"Quiet Luxury","description":"Minimalist high-quality pieces in neutral tones","category":"Minimalism","relevanceScore":98,"tags":["minimalism","luxury","neutral"],"howToWear":"Combine timeless pieces in beige, grey and white with noble fabrics"}]}`)

	return b.String()
}
