package domain

import (
	"context"
	"time"
)

// KeyValueStore backs the credential cache and OAuth sessions. A ttl of zero
// keeps the entry until it is overwritten or deleted.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
