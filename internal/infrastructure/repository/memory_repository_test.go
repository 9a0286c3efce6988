package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cuatrovientos/retail-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStateRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStateRepository()

	got, err := repo.Load(ctx, "products")
	require.NoError(t, err)
	assert.Nil(t, got)

	value := []byte(`[1,2]`)
	require.NoError(t, repo.SaveBatch(ctx, map[string][]byte{"products": value}))
	value[0] = 'X'

	got, err = repo.Load(ctx, "products")
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, string(got), "stored values are copied")
}

func TestMemoryStateRepository_FailNext(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStateRepository()
	repo.FailNext = errors.New("boom")

	err := repo.SaveBatch(ctx, map[string][]byte{"a": []byte("1")})
	assert.EqualError(t, err, "boom")
	got, _ := repo.Load(ctx, "a")
	assert.Nil(t, got)

	require.NoError(t, repo.SaveBatch(ctx, map[string][]byte{"a": []byte("1")}))
}

func TestMemoryStateRepository_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, NewMemoryStateRepository().SaveBatch(ctx, map[string][]byte{"a": nil}), context.Canceled)
}

func TestMemoryIdempotencyRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryIdempotencyRepository()

	live := &entity.IdempotencyKey{Key: "k", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)}
	stale := &entity.IdempotencyKey{Key: "old", UserID: "u1", ExpiresAt: time.Now().Add(-time.Minute)}
	require.NoError(t, repo.Create(ctx, live))
	require.NoError(t, repo.Create(ctx, stale))
	assert.Error(t, repo.Create(ctx, live))

	require.NoError(t, repo.DeleteExpired(ctx))

	got, err := repo.GetByKey(ctx, "k", "u1")
	require.NoError(t, err)
	assert.NotNil(t, got)
	gone, err := repo.GetByKey(ctx, "old", "u1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestMemoryIdempotencyRepository_ReplacesExpiredKey(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryIdempotencyRepository()

	stale := &entity.IdempotencyKey{Key: "k", UserID: "u1", ResponseCode: 201, ExpiresAt: time.Now().Add(-time.Minute)}
	require.NoError(t, repo.Create(ctx, stale))

	fresh := &entity.IdempotencyKey{Key: "k", UserID: "u1", ResponseCode: 200, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, fresh))

	got, err := repo.GetByKey(ctx, "k", "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 200, got.ResponseCode)
	assert.False(t, got.IsExpired(time.Now()))

	assert.Error(t, repo.Create(ctx, fresh), "a live key is not overwritten")
}
