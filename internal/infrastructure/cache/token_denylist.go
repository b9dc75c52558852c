package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/ucoffee-api/internal/application/ports"
)

const denylistPrefix = "denylist:"

var (
	_ ports.TokenDenylist = (*RedisTokenDenylist)(nil)
	_ ports.TokenDenylist = (*MemoryTokenDenylist)(nil)
)

// denylistKey clave SHA-256 del token; el token nunca se guarda en claro.
func denylistKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return denylistPrefix + hex.EncodeToString(sum[:])
}

// RedisTokenDenylist denylist de tokens con expiración nativa de Redis.
type RedisTokenDenylist struct {
	redis *redis.Client
}

// NewRedisTokenDenylist construye la denylist sobre un cliente Redis.
func NewRedisTokenDenylist(rdb *redis.Client) *RedisTokenDenylist {
	return &RedisTokenDenylist{redis: rdb}
}

// Add revoca el token durante ttl.
func (d *RedisTokenDenylist) Add(ctx context.Context, token string, ttl time.Duration) error {
	return d.redis.Set(ctx, denylistKey(token), 1, ttl).Err()
}

// Contains indica si el token está revocado.
func (d *RedisTokenDenylist) Contains(ctx context.Context, token string) (bool, error) {
	_, err := d.redis.Get(ctx, denylistKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// MemoryTokenDenylist alternativa en proceso cuando no hay Redis configurado.
// Se pierde al reiniciar y no se comparte entre instancias.
type MemoryTokenDenylist struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewMemoryTokenDenylist construye una denylist vacía.
func NewMemoryTokenDenylist() *MemoryTokenDenylist {
	return &MemoryTokenDenylist{entries: make(map[string]time.Time), now: time.Now}
}

// Add revoca el token durante ttl y purga entradas vencidas.
func (d *MemoryTokenDenylist) Add(_ context.Context, token string, ttl time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := d.now()
	for k, exp := range d.entries {
		if !now.Before(exp) {
			delete(d.entries, k)
		}
	}
	d.entries[denylistKey(token)] = now.Add(ttl)
	return nil
}

// Contains indica si el token está revocado y aún no venció.
func (d *MemoryTokenDenylist) Contains(_ context.Context, token string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	exp, ok := d.entries[denylistKey(token)]
	return ok && d.now().Before(exp), nil
}
