package usecase

import (
	"context"
	"time"
)

// SearchCache memoizes search responses. Clear drops every entry at once.
type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Clear(ctx context.Context) error
}
