package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cuatrovientos/retail-api/internal/domain/entity"
	domainRepo "github.com/cuatrovientos/retail-api/internal/domain/repository"
	"github.com/redis/go-redis/v9"
)

type redisStateRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisStateRepository stores each state record as a plain redis string under prefix:key
func NewRedisStateRepository(client *redis.Client, prefix string) domainRepo.StateRepository {
	return &redisStateRepository{client: client, prefix: prefix}
}

func (r *redisStateRepository) key(k string) string {
	if r.prefix == "" {
		return k
	}
	return r.prefix + ":" + k
}

func (r *redisStateRepository) Load(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

// SaveBatch writes all records in one MULTI/EXEC block
func (r *redisStateRepository) SaveBatch(ctx context.Context, records map[string][]byte) error {
	if len(records) == 0 {
		return nil
	}
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for k, v := range records {
			pipe.Set(ctx, r.key(k), v, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis batch write failed: %w", err)
	}
	return nil
}

func (r *redisStateRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

type redisIdempotencyRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisIdempotencyRepository stores idempotency keys as JSON with a TTL
func NewRedisIdempotencyRepository(client *redis.Client, prefix string) domainRepo.IdempotencyRepository {
	return &redisIdempotencyRepository{client: client, prefix: prefix}
}

func (r *redisIdempotencyRepository) key(key, userID string) string {
	k := "idempotency:" + userID + ":" + key
	if r.prefix == "" {
		return k
	}
	return r.prefix + ":" + k
}

func (r *redisIdempotencyRepository) GetByKey(ctx context.Context, key string, userID string) (*entity.IdempotencyKey, error) {
	raw, err := r.client.Get(ctx, r.key(key, userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var ikey entity.IdempotencyKey
	if err := json.Unmarshal(raw, &ikey); err != nil {
		return nil, fmt.Errorf("corrupt idempotency record: %w", err)
	}
	return &ikey, nil
}

func (r *redisIdempotencyRepository) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	if ikey.CreatedAt.IsZero() {
		ikey.CreatedAt = time.Now()
	}
	raw, err := json.Marshal(ikey)
	if err != nil {
		return err
	}
	ttl := time.Until(ikey.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	ok, err := r.client.SetNX(ctx, r.key(ikey.Key, ikey.UserID), raw, ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("idempotency key %q already stored", ikey.Key)
	}
	return nil
}

// DeleteExpired is a no-op: redis expires keys on its own
func (r *redisIdempotencyRepository) DeleteExpired(ctx context.Context) error {
	return nil
}
