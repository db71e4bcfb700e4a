package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func trendsBody(t *testing.T, payload string) []byte {
	t.Helper()

	raw, err := json.Marshal([]map[string]string{{"generated_text": payload}})
	if err != nil {
		t.Fatalf("failed to marshal response body: %v", err)
	}
	return raw
}

func TestWeeklyTrendsRemoteResultSorted(t *testing.T) {
	payload := `{"trends":[
		{"title":"Low","description":"d","category":"c","relevanceScore":70},
		{"title":"High","description":"d","category":"c","relevanceScore":99},
		{"title":"Mid","description":"d","category":"c","relevanceScore":85}
	]}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(trendsBody(t, payload))
	}))
	defer server.Close()

	svc := NewTrendsService(&TextGenConfig{
		Endpoint: server.URL,
		APIKey:   "test-token",
		Timeout:  5 * time.Second,
	})

	trends := svc.WeeklyTrends(context.Background(), testProfile())
	if len(trends) != 3 {
		t.Fatalf("expected 3 trends, got %d", len(trends))
	}

	wantOrder := []string{"High", "Mid", "Low"}
	for i, want := range wantOrder {
		if trends[i].Title != want {
			t.Errorf("position %d: expected %q, got %q", i, want, trends[i].Title)
		}
	}
	for i := 1; i < len(trends); i++ {
		if trends[i].RelevanceScore > trends[i-1].RelevanceScore {
			t.Errorf("trends not sorted by relevance: %d before %d",
				trends[i-1].RelevanceScore, trends[i].RelevanceScore)
		}
	}
}

func TestWeeklyTrendsRemoteFailureUsesCuratedList(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewTrendsService(&TextGenConfig{
		Endpoint: server.URL,
		APIKey:   "test-token",
		Timeout:  5 * time.Second,
	})

	profile := testProfile()
	trends := svc.WeeklyTrends(context.Background(), profile)
	if len(trends) == 0 {
		t.Fatal("expected curated trends on remote failure, got none")
	}

	curated := fallbackTrends(profile)
	if trends[0].Title != curated[0].Title {
		t.Errorf("expected curated list starting with %q, got %q", curated[0].Title, trends[0].Title)
	}
}

func TestWeeklyTrendsNotConfiguredSkipsNetwork(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unconfigured trends client must not reach the network")
	}))
	defer server.Close()

	svc := NewTrendsService(&TextGenConfig{
		Endpoint: server.URL,
		Timeout:  5 * time.Second,
	})

	trends := svc.WeeklyTrends(context.Background(), testProfile())
	if len(trends) == 0 {
		t.Fatal("expected curated trends when unconfigured, got none")
	}
}
