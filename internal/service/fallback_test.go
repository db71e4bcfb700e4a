package service

import (
	"testing"

	"github.com/stylesync/stylesync/internal/domain"
)

func TestFallbackRecommendation_Total(t *testing.T) {
	// Every temperature and occasion combination must yield a complete
	// recommendation with no failure path.
	temperatures := []int{-30, -1, 0, 15, 19, 20, 24, 28, 29, 35, 50}

	for _, temp := range temperatures {
		for _, occasion := range domain.Occasions {
			rec := fallbackRecommendation(temp, occasion)
			if rec == nil {
				t.Fatalf("nil recommendation for temp=%d occasion=%s", temp, occasion)
			}
			if !rec.Complete() {
				t.Errorf("incomplete recommendation for temp=%d occasion=%s: %+v", temp, occasion, rec)
			}
		}
	}
}

func TestFallbackRecommendation_TemperatureBuckets(t *testing.T) {
	tests := []struct {
		name        string
		temperature int
		occasion    domain.Occasion
		wantTitle   string
	}{
		{name: "cold", temperature: 15, occasion: domain.OccasionCasual, wantTitle: "Conforto Térmico"},
		{name: "cold boundary is exclusive", temperature: 20, occasion: domain.OccasionCasual, wantTitle: "Versátil Casual"},
		{name: "hot", temperature: 32, occasion: domain.OccasionParty, wantTitle: "Frescor Urbano"},
		{name: "hot boundary is exclusive", temperature: 28, occasion: domain.OccasionWork, wantTitle: "Versátil Work"},
		{name: "mild sport", temperature: 24, occasion: domain.OccasionSport, wantTitle: "Versátil Sport"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := fallbackRecommendation(tt.temperature, tt.occasion)
			if rec.Title != tt.wantTitle {
				t.Errorf("got title %q, want %q", rec.Title, tt.wantTitle)
			}
		})
	}
}

func TestFallbackTrends(t *testing.T) {
	profile := testProfile()
	trends := fallbackTrends(profile)

	if len(trends) != 5 {
		t.Fatalf("expected 5 trends, got %d", len(trends))
	}
	for i, trend := range trends {
		if trend.Title == "" || trend.Description == "" || trend.HowToWear == "" {
			t.Errorf("trend %d has missing fields: %+v", i, trend)
		}
	}
	for i := 1; i < len(trends); i++ {
		if trends[i].RelevanceScore > trends[i-1].RelevanceScore {
			t.Errorf("trends not sorted by relevance at index %d", i)
		}
	}
}

func TestFallbackTrends_WeatherVariant(t *testing.T) {
	cold := testProfile()
	cold.Temperature = 10
	warm := testProfile()
	warm.Temperature = 25

	if !hasTrend(fallbackTrends(cold), "Layering Artístico") {
		t.Error("cold profile should include the layering trend")
	}
	if !hasTrend(fallbackTrends(warm), "Linho Contemporâneo") {
		t.Error("warm profile should include the linen trend")
	}
}

func TestFallbackTrends_MusicBoost(t *testing.T) {
	rocker := testProfile()
	rocker.MusicGenres = domain.StringArray{"Rock Alternativo"}

	trends := fallbackTrends(rocker)
	for _, trend := range trends {
		if trend.Title == "Tech Wear 2026" && trend.RelevanceScore != 96 {
			t.Errorf("rock profile should boost tech wear to 96, got %d", trend.RelevanceScore)
		}
	}
}

func hasTrend(trends []domain.FashionTrend, title string) bool {
	for _, t := range trends {
		if t.Title == title {
			return true
		}
	}
	return false
}
