package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/zenskecarape/storefront-api/pkg/logger"
	"github.com/zenskecarape/storefront-api/pkg/redis"
)

// Repository persists carts per token. A token that was never saved, expired,
// or holds unreadable data loads as an empty cart.
type Repository interface {
	Load(ctx context.Context, token string) (Cart, error)
	Save(ctx context.Context, token string, c Cart) error
	Delete(ctx context.Context, token string) error
}

// MemoryRepository keeps carts in process memory. Used in tests and as a
// fallback when no cache backend is configured.
type MemoryRepository struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{carts: map[string][]byte{}}
}

func (r *MemoryRepository) Load(ctx context.Context, token string) (Cart, error) {
	r.mu.RLock()
	raw, ok := r.carts[token]
	r.mu.RUnlock()
	if !ok {
		return Cart{}, nil
	}
	var c Cart
	if err := json.Unmarshal(raw, &c); err != nil {
		return Cart{}, nil
	}
	return c, nil
}

func (r *MemoryRepository) Save(ctx context.Context, token string, c Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.carts[token] = raw
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, token string) error {
	r.mu.Lock()
	delete(r.carts, token)
	r.mu.Unlock()
	return nil
}

// RedisRepository stores each cart as a JSON blob under the token's key with
// a sliding TTL.
type RedisRepository struct {
	rdb  *redis.Client
	ttl  time.Duration
	logg *logger.Logger
}

func NewRedisRepository(rdb *redis.Client, ttl time.Duration, logg *logger.Logger) *RedisRepository {
	return &RedisRepository{rdb: rdb, ttl: ttl, logg: logg}
}

func (r *RedisRepository) Load(ctx context.Context, token string) (Cart, error) {
	raw, err := r.rdb.Get(ctx, r.rdb.CartKey(token))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Cart{}, nil
		}
		return Cart{}, err
	}
	var c Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		// Unreadable payloads start the shopper over instead of erroring.
		r.logg.Warn(ctx, "discarding unreadable cart payload")
		return Cart{}, nil
	}
	return c, nil
}

func (r *RedisRepository) Save(ctx context.Context, token string, c Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, r.rdb.CartKey(token), raw, r.ttl)
}

func (r *RedisRepository) Delete(ctx context.Context, token string) error {
	return r.rdb.Del(ctx, r.rdb.CartKey(token))
}
