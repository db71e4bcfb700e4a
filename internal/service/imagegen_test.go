package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stylesync/stylesync/internal/domain"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestImageGenService_NotConfigured(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unconfigured client must not perform network I/O")
	}))
	defer server.Close()

	svc := NewImageGenService(&ImageGenConfig{Endpoint: server.URL})

	_, err := svc.Generate(context.Background(), sampleRecommendation(), testProfile(), domain.OccasionCasual)
	if !errors.Is(err, ErrImageNotConfigured) {
		t.Fatalf("expected ErrImageNotConfigured, got %v", err)
	}
}

func TestImageGenService_Generate(t *testing.T) {
	asset := pngBytes(t, 64, 96)

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/asset.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(asset)
	})
	mux.HandleFunc("/v1/images/generations", func(w http.ResponseWriter, r *http.Request) {
		var req imageGenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if req.N != 1 || req.Size != "1024x1792" || req.Model != "dall-e-3" {
			t.Errorf("unexpected request parameters: %+v", req)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"data":[{"url":"%s/asset.png"}]}`, server.URL)
	})

	svc := NewImageGenService(&ImageGenConfig{
		Endpoint: server.URL + "/v1/images/generations",
		APIKey:   "test-key",
	})

	img, err := svc.Generate(context.Background(), sampleRecommendation(), testProfile(), domain.OccasionParty)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.Source != domain.ImageSourceRemote {
		t.Errorf("expected remote source, got %s", img.Source)
	}
	if img.Format != "png" {
		t.Errorf("expected png format, got %s", img.Format)
	}
	if img.Width != 64 || img.Height != 96 {
		t.Errorf("expected 64x96, got %dx%d", img.Width, img.Height)
	}
	if !bytes.Equal(img.Data, asset) {
		t.Error("image bytes must match the fetched asset")
	}
}

func TestImageGenService_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"content policy violation"}}`))
	}))
	defer server.Close()

	svc := NewImageGenService(&ImageGenConfig{Endpoint: server.URL, APIKey: "test-key"})

	_, err := svc.Generate(context.Background(), sampleRecommendation(), testProfile(), domain.OccasionWork)
	if err == nil {
		t.Fatal("expected error on HTTP 400")
	}
	if got := err.Error(); !bytes.Contains([]byte(got), []byte("content policy violation")) {
		t.Errorf("error should surface the API message, got %q", got)
	}
}

func TestImageGenService_EmptyData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	svc := NewImageGenService(&ImageGenConfig{Endpoint: server.URL, APIKey: "test-key"})

	_, err := svc.Generate(context.Background(), sampleRecommendation(), testProfile(), domain.OccasionSport)
	if !errors.Is(err, ErrNoImageURL) {
		t.Fatalf("expected ErrNoImageURL, got %v", err)
	}
}

func TestImageGenService_UndecodableAsset(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/asset", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not an image"))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"data":[{"url":"%s/asset"}]}`, server.URL)
	})

	svc := NewImageGenService(&ImageGenConfig{Endpoint: server.URL, APIKey: "test-key"})

	if _, err := svc.Generate(context.Background(), sampleRecommendation(), testProfile(), domain.OccasionCasual); err == nil {
		t.Fatal("expected error for undecodable asset")
	}
}
