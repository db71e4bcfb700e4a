package service

import (
	"sort"
	"strings"

	"github.com/stylesync/stylesync/internal/domain"
)

// Temperature buckets for the deterministic recommendation
const (
	coldThreshold = 20
	hotThreshold  = 28
)

// fallbackRecommendation returns a deterministic local recommendation keyed
// on temperature bucket and occasion. It is pure and total: every
// (temperature, occasion) combination yields a recommendation with all four
// fields populated.
func fallbackRecommendation(temperature int, occasion domain.Occasion) *domain.Recommendation {
	switch {
	case temperature < coldThreshold:
		return &domain.Recommendation{
			Title:       "Conforto Térmico",
			Description: "Suéter, calça jeans e botas",
			Items:       domain.StringArray{"Suéter de tricô", "Calça jeans", "Botas de couro", "Cachecol"},
			StyleNote:   "Adicione camadas para manter o calor com estilo",
		}
	case temperature > hotThreshold:
		return &domain.Recommendation{
			Title:       "Frescor Urbano",
			Description: "Camiseta leve, shorts e tênis",
			Items:       domain.StringArray{"Camiseta básica", "Shorts de sarja", "Tênis leve", "Óculos de sol"},
			StyleNote:   "Escolha tecidos leves e respiráveis",
		}
	default:
		return &domain.Recommendation{
			Title:       "Versátil " + capitalize(string(occasion)),
			Description: "Look equilibrado e confortável",
			Items:       domain.StringArray{"Camisa casual", "Calça chino", "Tênis branco", "Jaqueta leve"},
			StyleNote:   "Perfeito para transições de temperatura",
		}
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// fallbackTrends returns curated trends when the remote model is
// unavailable. Relevance scores shift with the profile's weather and music
// taste so the list does not look static.
func fallbackTrends(profile domain.Profile) []domain.FashionTrend {
	trends := []domain.FashionTrend{
		{
			Title:          "Quiet Luxury",
			Description:    "Minimalismo sofisticado com peças atemporais em tons neutros",
			Category:       "Minimalismo",
			RelevanceScore: 98,
			Tags:           domain.StringArray{"minimalismo", "luxo", "atemporal"},
			HowToWear:      "Combine peças de alfaiataria impecável em tons bege, cinza e branco. Foque em tecidos nobres como cashmere e seda.",
		},
		{
			Title:          "Tech Wear 2026",
			Description:    "Roupas funcionais com elementos tecnológicos e design futurista",
			Category:       "Streetwear",
			RelevanceScore: 92,
			Tags:           domain.StringArray{"tech", "futurista", "funcional"},
			HowToWear:      "Peças com bolsos utilitários, tecidos impermeáveis e silhuetas oversized. Combine preto com detalhes em neon.",
		},
		{
			Title:          "Moda Sustentável",
			Description:    "Peças eco-friendly e upcycling com consciência ambiental",
			Category:       "Sustentabilidade",
			RelevanceScore: 95,
			Tags:           domain.StringArray{"sustentável", "eco", "consciente"},
			HowToWear:      "Invista em peças vintage, brechó e marcas sustentáveis. Priorize qualidade sobre quantidade.",
		},
		{
			Title:          "Gorpcore Evolved",
			Description:    "Estética outdoor sofisticada para o dia a dia urbano",
			Category:       "Streetwear",
			RelevanceScore: 88,
			Tags:           domain.StringArray{"outdoor", "urbano", "conforto"},
			HowToWear:      "Combine jaquetas técnicas, cargo pants e tênis de trilha com peças casuais elegantes.",
		},
	}

	if profile.Temperature < coldThreshold {
		trends = append(trends, domain.FashionTrend{
			Title:          "Layering Artístico",
			Description:    "Sobreposição criativa de camadas para clima frio",
			Category:       "Inverno",
			RelevanceScore: 90,
			Tags:           domain.StringArray{"layering", "inverno", "criativo"},
			HowToWear:      "Combine diferentes texturas e comprimentos. Base térmica + camisa + suéter + jaqueta + casaco.",
		})
	} else {
		trends = append(trends, domain.FashionTrend{
			Title:          "Linho Contemporâneo",
			Description:    "Peças leves e sofisticadas para o calor",
			Category:       "Verão",
			RelevanceScore: 90,
			Tags:           domain.StringArray{"linho", "verão", "leve"},
			HowToWear:      "Camisas e calças de linho em tons claros. Combine com acessórios minimalistas.",
		})
	}

	if genreMatches(profile.MusicGenres, "rock", "metal") {
		trends[1].RelevanceScore = 96
	}
	if genreMatches(profile.MusicGenres, "jazz", "clássica", "classica") {
		trends[0].RelevanceScore = 99
	}

	sort.SliceStable(trends, func(i, j int) bool {
		return trends[i].RelevanceScore > trends[j].RelevanceScore
	})
	return trends
}

func genreMatches(genres []string, terms ...string) bool {
	for _, g := range genres {
		lower := strings.ToLower(g)
		for _, term := range terms {
			if strings.Contains(lower, term) {
				return true
			}
		}
	}
	return false
}
