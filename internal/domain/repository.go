package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations.
// Values are opaque bytes so memory and redis backends behave the same.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// PageFetcher retrieves a recipe page. Transport failures are returned as errors;
// any HTTP status, including non-2xx, is returned on the RawPage.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*RawPage, error)
}
