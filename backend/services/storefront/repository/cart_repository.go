package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yashrajoria/storefront/backend/services/storefront/models"
)

// CartRepository stores carts by cart id. GetCart returns (nil, nil) when no
// cart exists; carts expire after the configured TTL of inactivity.
type CartRepository interface {
	GetCart(ctx context.Context, cartID string) (*models.Cart, error)
	SaveCart(ctx context.Context, cart *models.Cart) error
	DeleteCart(ctx context.Context, cartID string) error
}

// RedisCartRepository keeps each cart as a JSON blob.
type RedisCartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCartRepository(client *redis.Client, ttl time.Duration) *RedisCartRepository {
	return &RedisCartRepository{client: client, ttl: ttl}
}

func (r *RedisCartRepository) key(cartID string) string {
	return fmt.Sprintf("cart:session:%s", cartID)
}

func (r *RedisCartRepository) GetCart(ctx context.Context, cartID string) (*models.Cart, error) {
	data, err := r.client.Get(ctx, r.key(cartID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("corrupt cart %s: %w", cartID, err)
	}
	return &cart, nil
}

func (r *RedisCartRepository) SaveCart(ctx context.Context, cart *models.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(cart.ID), data, r.ttl).Err()
}

func (r *RedisCartRepository) DeleteCart(ctx context.Context, cartID string) error {
	return r.client.Del(ctx, r.key(cartID)).Err()
}

type memoryEntry struct {
	lines     []models.CartLine
	expiresAt time.Time
}

// MemoryCartRepository is a process-local store used when redis is not
// configured.
type MemoryCartRepository struct {
	mu    sync.Mutex
	carts map[string]memoryEntry
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryCartRepository(ttl time.Duration) *MemoryCartRepository {
	return &MemoryCartRepository{
		carts: make(map[string]memoryEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (r *MemoryCartRepository) GetCart(_ context.Context, cartID string) (*models.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.carts[cartID]
	if !ok {
		return nil, nil
	}
	if r.now().After(entry.expiresAt) {
		delete(r.carts, cartID)
		return nil, nil
	}

	lines := make([]models.CartLine, len(entry.lines))
	copy(lines, entry.lines)
	return &models.Cart{ID: cartID, Lines: lines}, nil
}

func (r *MemoryCartRepository) SaveCart(_ context.Context, cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines := make([]models.CartLine, len(cart.Lines))
	copy(lines, cart.Lines)
	r.carts[cart.ID] = memoryEntry{lines: lines, expiresAt: r.now().Add(r.ttl)}
	return nil
}

func (r *MemoryCartRepository) DeleteCart(_ context.Context, cartID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, cartID)
	return nil
}
