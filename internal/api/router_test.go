package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/stylesync/stylesync/internal/api/middleware"
	"github.com/stylesync/stylesync/internal/domain"
	"github.com/stylesync/stylesync/internal/repository"
	"github.com/stylesync/stylesync/internal/service"
	"github.com/stylesync/stylesync/internal/storage"
)

// memoryStore is an in-memory ObjectStorage used to exercise the image
// export and retrieval paths without a real bucket.
type memoryStore struct {
	objects map[string][]byte
}

var _ storage.ObjectStorage = (*memoryStore)(nil)

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: make(map[string][]byte)}
}

func (m *memoryStore) EnsureBucket(ctx context.Context) error {
	return nil
}

func (m *memoryStore) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.objects[key] = data
	return nil
}

func (m *memoryStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	data, ok := m.objects[key]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memoryStore) GetURL(key string) string {
	return "http://storage.local/" + key
}

func (m *memoryStore) Delete(ctx context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func (m *memoryStore) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.objects[key]
	return ok, nil
}

// testRouter builds a router over an in-memory database with the pipeline
// pinned to the deterministic path, so no network is involved.
func testRouter(t *testing.T) http.Handler {
	return testRouterWithStore(t, nil)
}

func testRouterWithStore(t *testing.T, store storage.ObjectStorage) http.Handler {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&domain.ProfileRecord{}, &domain.FavoriteLook{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	textGen := service.NewTextGenService(&service.TextGenConfig{})
	imageGen := service.NewImageGenService(&service.ImageGenConfig{})
	lookService := service.NewLookService(textGen, imageGen, store, service.LookServiceOptions{
		PlaceholderOnly: true,
	})
	trendsService := service.NewTrendsService(&service.TextGenConfig{})

	return SetupRouter(RouterDeps{
		LookService:   lookService,
		TrendsService: trendsService,
		ProfileRepo:   repository.NewProfileRepository(db),
		FavoriteRepo:  repository.NewFavoriteRepository(db),
		Store:         store,
		CORS:          middleware.CORSConfig{AllowAllOrigins: true},
	}, "test")
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	w := doJSON(t, testRouter(t), http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	router := testRouter(t)

	profile := domain.Profile{
		Gender:           "feminino",
		BodyType:         "ampulheta",
		HairColor:        "castanho",
		MusicGenres:      domain.StringArray{"indie"},
		Temperature:      22,
		WeatherCondition: "ensolarado",
	}

	if w := doJSON(t, router, http.MethodPut, "/api/v1/profile", profile); w.Code != http.StatusOK {
		t.Fatalf("PUT profile: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w := doJSON(t, router, http.MethodGet, "/api/v1/profile", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET profile: expected 200, got %d", w.Code)
	}

	var got domain.Profile
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode profile: %v", err)
	}
	if got.Gender != "feminino" || got.Temperature != 22 {
		t.Errorf("profile mismatch: %+v", got)
	}
}

func TestGenerateLookEndpoint(t *testing.T) {
	router := testRouter(t)

	body := map[string]interface{}{
		"occasion": "casual",
		"profile": domain.Profile{
			Gender:      "masculino",
			BodyType:    "retângulo",
			HairColor:   "preto",
			Temperature: 15,
		},
	}

	w := doJSON(t, router, http.MethodPost, "/api/v1/looks", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		ID             string                `json:"id"`
		Recommendation domain.Recommendation `json:"recommendation"`
		ImageBase64    string                `json:"image_base64"`
		ImageSource    string                `json:"image_source"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.ID == "" {
		t.Error("look must carry an identifier")
	}
	// 15°C selects the cold deterministic template
	if resp.Recommendation.Title != "Conforto Térmico" {
		t.Errorf("expected cold template, got %q", resp.Recommendation.Title)
	}
	if resp.ImageSource != "placeholder" {
		t.Errorf("expected placeholder image, got %q", resp.ImageSource)
	}
	if resp.ImageBase64 == "" {
		t.Error("response must inline the image")
	}
}

func TestTrendsEndpoint(t *testing.T) {
	w := doJSON(t, testRouter(t), http.MethodGet, "/api/v1/trends", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Trends []domain.FashionTrend `json:"trends"`
		Count  int                   `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count == 0 || len(resp.Trends) == 0 {
		t.Error("trends endpoint must never return an empty list")
	}
}

func TestFavoriteToggleFlow(t *testing.T) {
	router := testRouter(t)

	// Generate a look to favorite
	w := doJSON(t, router, http.MethodPost, "/api/v1/looks", map[string]interface{}{
		"occasion": "party",
		"profile":  domain.Profile{Gender: "feminino", Temperature: 30},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("look generation failed: %d", w.Code)
	}

	var look struct {
		ID             string                `json:"id"`
		Recommendation domain.Recommendation `json:"recommendation"`
		Occasion       string                `json:"occasion"`
		ImageBase64    string                `json:"image_base64"`
		ImageFormat    string                `json:"image_format"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &look); err != nil {
		t.Fatalf("failed to decode look: %v", err)
	}

	toggleBody := map[string]interface{}{
		"id":             look.ID,
		"recommendation": look.Recommendation,
		"occasion":       look.Occasion,
		"image_base64":   look.ImageBase64,
		"image_format":   look.ImageFormat,
		"tags":           []string{"IA", "Festa"},
	}

	// First toggle favorites
	w = doJSON(t, router, http.MethodPost, "/api/v1/favorites/toggle", toggleBody)
	if w.Code != http.StatusOK {
		t.Fatalf("toggle failed: %d: %s", w.Code, w.Body.String())
	}
	var toggled struct {
		Favorited bool `json:"favorited"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &toggled); err != nil {
		t.Fatal(err)
	}
	if !toggled.Favorited {
		t.Fatal("first toggle must favorite")
	}

	// Listing shows one favorite
	w = doJSON(t, router, http.MethodGet, "/api/v1/favorites?tag=Festa", nil)
	var listed struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatal(err)
	}
	if listed.Count != 1 {
		t.Fatalf("expected 1 favorite, got %d", listed.Count)
	}

	// Second toggle with the same image bytes removes it
	w = doJSON(t, router, http.MethodPost, "/api/v1/favorites/toggle", toggleBody)
	if err := json.Unmarshal(w.Body.Bytes(), &toggled); err != nil {
		t.Fatal(err)
	}
	if toggled.Favorited {
		t.Fatal("second toggle must unfavorite")
	}
}

func TestLookImageRoundTrip(t *testing.T) {
	store := newMemoryStore()
	router := testRouterWithStore(t, store)

	w := doJSON(t, router, http.MethodPost, "/api/v1/looks", map[string]interface{}{
		"occasion": "work",
		"profile":  domain.Profile{Gender: "feminino", Temperature: 22},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("look generation failed: %d: %s", w.Code, w.Body.String())
	}

	var look struct {
		ID          string `json:"id"`
		ImageBase64 string `json:"image_base64"`
		ImageFormat string `json:"image_format"`
		ImageURL    string `json:"image_url"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &look); err != nil {
		t.Fatalf("failed to decode look: %v", err)
	}
	if look.ImageURL == "" {
		t.Error("exported look must carry the storage URL")
	}

	// The stored object is served back byte for byte
	w = doJSON(t, router, http.MethodGet, "/api/v1/looks/"+look.ID+"/image", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET image: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/"+look.ImageFormat {
		t.Errorf("expected content type image/%s, got %q", look.ImageFormat, ct)
	}
	want, err := base64.StdEncoding.DecodeString(look.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode inline image: %v", err)
	}
	if !bytes.Equal(w.Body.Bytes(), want) {
		t.Error("stored image differs from the generated one")
	}

	w = doJSON(t, router, http.MethodDelete, "/api/v1/looks/"+look.ID+"/image", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("DELETE image: expected 200, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/looks/"+look.ID+"/image", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
}

func TestLookImageStorageDisabled(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/looks/some-id/image", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without storage, got %d", w.Code)
	}
}
