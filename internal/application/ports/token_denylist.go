package ports

import (
	"context"
	"time"
)

// TokenDenylist registra tokens revocados (logout) hasta que expiren por sí solos.
type TokenDenylist interface {
	Add(ctx context.Context, token string, ttl time.Duration) error
	Contains(ctx context.Context, token string) (bool, error)
}
