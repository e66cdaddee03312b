package ports

import (
	"context"
	"time"
)

// ResultCache stores raw tool payloads.
type ResultCache interface {
	// Get returns the cached payload and true, or nil and false on a miss.
	Get(ctx context.Context, key string) (any, bool, error)

	// Set stores the payload under key for ttl. A zero ttl means no expiration.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}
