package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// ObjectStorage abstracts the bucket that holds exported look images.
type ObjectStorage interface {
	// EnsureBucket creates the bucket on first run if it does not exist.
	EnsureBucket(ctx context.Context) error

	// Upload writes an object under key.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// Download returns a reader over the object at key.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// GetURL returns the public URL for an object.
	GetURL(key string) string

	// Delete removes the object at key.
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object is stored under key.
	Exists(ctx context.Context, key string) (bool, error)
}

// Config holds settings for any supported backend.
type Config struct {
	Type      string // "minio" or "s3"; empty auto-detects from endpoint
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	Region    string
	PublicURL string // optional CDN or public bucket prefix
}

// New creates the storage backend the configuration selects. MinIO gets the
// native client; everything else goes through the AWS SDK, which also covers
// R2 and other S3-compatible services.
// Parameters:
//   - cfg: backend selection, endpoint and credentials.
// Returns:
//   - ObjectStorage: initialized backend.
//   - error: non-nil if the client cannot be created.
func New(cfg *Config) (ObjectStorage, error) {
	backend := cfg.Type
	if backend == "" {
		backend = detectBackend(cfg.Endpoint)
	}

	switch backend {
	case "minio":
		return NewMinIOStorage(cfg)
	case "s3", "r2", "s3compatible":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// detectBackend guesses the backend from the endpoint host.
func detectBackend(endpoint string) string {
	endpoint = strings.ToLower(endpoint)

	switch {
	case strings.Contains(endpoint, "r2.cloudflarestorage.com"):
		return "r2"
	case strings.Contains(endpoint, "amazonaws.com"):
		return "s3"
	case strings.Contains(endpoint, "minio"):
		return "minio"
	default:
		return "s3compatible"
	}
}

// normalizeEndpoint strips the scheme, any path and trailing slashes so the
// remainder is a bare host suitable for both SDKs.
func normalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")
	if idx := strings.Index(endpoint, "/"); idx != -1 {
		endpoint = endpoint[:idx]
	}
	return strings.TrimSuffix(endpoint, "/")
}
