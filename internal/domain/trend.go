package domain

// FashionTrend is a single personalized trend entry produced by the trends
// service, either by the remote model or by the deterministic fallback.
type FashionTrend struct {
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Category       string      `json:"category"`
	RelevanceScore int         `json:"relevanceScore"`
	Tags           StringArray `json:"tags"`
	HowToWear      string      `json:"howToWear"`
}
