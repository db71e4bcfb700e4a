package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stylesync/stylesync/internal/domain"
)

func testProfile() domain.Profile {
	return domain.Profile{
		Gender:           "feminino",
		BodyType:         "ampulheta",
		HairColor:        "castanho",
		MusicGenres:      domain.StringArray{"indie", "pop"},
		Temperature:      22,
		WeatherCondition: "ensolarado",
	}
}

func TestExtractJSONCandidate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "bare object",
			input: `{"title":"Look"}`,
			want:  `{"title":"Look"}`,
		},
		{
			name:  "markdown fenced",
			input: "```json\n{\"title\":\"Look\"}\n```",
			want:  `{"title":"Look"}`,
		},
		{
			name:  "surrounded by commentary",
			input: "Sure! Here is your look:\n{\"title\":\"Look\"}\nHope you like it.",
			want:  `{"title":"Look"}`,
		},
		{
			name:  "nested braces kept",
			input: `prefix {"a":{"b":1}} suffix`,
			want:  `{"a":{"b":1}}`,
		},
		{
			name:    "no braces",
			input:   "I could not produce JSON, sorry.",
			wantErr: true,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
		{
			name:    "closing before opening",
			input:   "} nothing here {",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSONCandidate(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrNoJSONCandidate) {
					t.Fatalf("expected ErrNoJSONCandidate, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseRecommendation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:  "complete recommendation",
			input: `{"title":"Urban Chill","description":"Moletom e cargo","items":["Moletom","Calça cargo"],"styleNote":"Acessórios minimalistas"}`,
		},
		{
			name:    "missing style note",
			input:   `{"title":"Urban Chill","description":"Moletom e cargo","items":["Moletom"]}`,
			wantErr: true,
		},
		{
			name:    "empty items",
			input:   `{"title":"Urban Chill","description":"Moletom e cargo","items":[],"styleNote":"x"}`,
			wantErr: true,
		},
		{
			name:    "blank item entry",
			input:   `{"title":"Urban Chill","description":"Moletom","items":["Moletom","  "],"styleNote":"x"}`,
			wantErr: true,
		},
		{
			name:    "not JSON at all",
			input:   `{this is not json}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := parseRecommendation(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !rec.Complete() {
				t.Error("parsed recommendation should be complete")
			}
		})
	}
}

func TestTextGenService_NotConfigured(t *testing.T) {
	// Endpoint that must never be reached
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unconfigured client must not perform network I/O")
	}))
	defer server.Close()

	svc := NewTextGenService(&TextGenConfig{Endpoint: server.URL})

	if svc.IsConfigured() {
		t.Error("expected service to be unconfigured")
	}

	_, err := svc.Generate(context.Background(), testProfile(), domain.OccasionCasual)
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestTextGenService_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("unexpected auth header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"generated_text":"Here you go: {\"title\":\"Urban Chill\",\"description\":\"Moletom oversized e cargo\",\"items\":[\"Moletom\",\"Calça cargo\",\"Tênis\"],\"styleNote\":\"Combine com acessórios minimalistas\"}"}]`))
	}))
	defer server.Close()

	svc := NewTextGenService(&TextGenConfig{Endpoint: server.URL, APIKey: "test-token"})

	rec, err := svc.Generate(context.Background(), testProfile(), domain.OccasionCasual)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Title != "Urban Chill" {
		t.Errorf("expected title Urban Chill, got %q", rec.Title)
	}
	if len(rec.Items) != 3 {
		t.Errorf("expected 3 items, got %d", len(rec.Items))
	}
}

func TestTextGenService_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	svc := NewTextGenService(&TextGenConfig{Endpoint: server.URL, APIKey: "test-token"})

	if _, err := svc.Generate(context.Background(), testProfile(), domain.OccasionWork); err == nil {
		t.Fatal("expected error on HTTP 503")
	}
}

func TestTextGenService_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	svc := NewTextGenService(&TextGenConfig{Endpoint: server.URL, APIKey: "test-token"})

	if _, err := svc.Generate(context.Background(), testProfile(), domain.OccasionParty); !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}
