package service

import (
	"bytes"
	"image/jpeg"
	"testing"

	"github.com/stylesync/stylesync/internal/domain"
)

func sampleRecommendation() *domain.Recommendation {
	return &domain.Recommendation{
		Title:       "Urban Chill",
		Description: "Moletom oversized, calça cargo e tênis chunky",
		Items:       domain.StringArray{"Moletom cinza", "Calça cargo preta", "Tênis chunky", "Boné preto"},
		StyleNote:   "Combine com acessórios minimalistas",
	}
}

func TestPlaceholderRenderer_Render(t *testing.T) {
	renderer := NewPlaceholderRenderer()
	img := renderer.Render(sampleRecommendation(), domain.OccasionCasual)

	if img.Source != domain.ImageSourcePlaceholder {
		t.Errorf("expected placeholder source, got %s", img.Source)
	}
	if img.Width != 512 || img.Height != 768 {
		t.Errorf("expected 512x768, got %dx%d", img.Width, img.Height)
	}
	if img.Format != "jpeg" {
		t.Errorf("expected jpeg format, got %s", img.Format)
	}

	decoded, err := jpeg.Decode(bytes.NewReader(img.Data))
	if err != nil {
		t.Fatalf("rendered bytes are not a valid JPEG: %v", err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() != 512 || bounds.Dy() != 768 {
		t.Errorf("decoded size %dx%d, want 512x768", bounds.Dx(), bounds.Dy())
	}
}

func TestPlaceholderRenderer_Deterministic(t *testing.T) {
	renderer := NewPlaceholderRenderer()
	rec := sampleRecommendation()

	first := renderer.Render(rec, domain.OccasionParty)
	second := renderer.Render(rec, domain.OccasionParty)

	if !bytes.Equal(first.Data, second.Data) {
		t.Error("same inputs must render byte-identical output")
	}

	other := renderer.Render(rec, domain.OccasionSport)
	if bytes.Equal(first.Data, other.Data) {
		t.Error("different occasions should render different output")
	}
}

func TestPlaceholderRenderer_NeverFails(t *testing.T) {
	renderer := NewPlaceholderRenderer()

	tests := []struct {
		name string
		rec  *domain.Recommendation
	}{
		{name: "nil recommendation", rec: nil},
		{name: "empty recommendation", rec: &domain.Recommendation{}},
		{
			name: "overlong content",
			rec: &domain.Recommendation{
				Title:       "A very long recommendation title that does not fit on one line at all",
				Description: "An extremely verbose description repeated over and over to force wrapping across many lines of the rendered card without breaking anything",
				Items:       domain.StringArray{"item one", "item two", "item three", "item four", "item five"},
				StyleNote:   "note",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := renderer.Render(tt.rec, domain.Occasion("unknown"))
			if img == nil || len(img.Data) == 0 {
				t.Fatal("render must always produce image bytes")
			}
			if _, err := jpeg.Decode(bytes.NewReader(img.Data)); err != nil {
				t.Fatalf("output not decodable: %v", err)
			}
		})
	}
}
