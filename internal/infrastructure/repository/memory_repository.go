package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cuatrovientos/retail-api/internal/domain/entity"
	domainRepo "github.com/cuatrovientos/retail-api/internal/domain/repository"
)

// MemoryStateRepository keeps state in process memory. Values are copied in and out.
type MemoryStateRepository struct {
	mu      sync.RWMutex
	records map[string][]byte

	// FailNext, when set, makes the next SaveBatch return it. Used to exercise rollback paths.
	FailNext error
}

// NewMemoryStateRepository creates an empty in-memory state repository
func NewMemoryStateRepository() *MemoryStateRepository {
	return &MemoryStateRepository{records: make(map[string][]byte)}
}

var _ domainRepo.StateRepository = (*MemoryStateRepository)(nil)

func (r *MemoryStateRepository) Load(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.records[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (r *MemoryStateRepository) SaveBatch(ctx context.Context, records map[string][]byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailNext != nil {
		err := r.FailNext
		r.FailNext = nil
		return err
	}
	for k, v := range records {
		r.records[k] = append([]byte(nil), v...)
	}
	return nil
}

func (r *MemoryStateRepository) Ping(context.Context) error {
	return nil
}

type memoryIdempotencyRepository struct {
	mu   sync.Mutex
	keys map[string]entity.IdempotencyKey
}

// NewMemoryIdempotencyRepository creates an in-memory idempotency repository
func NewMemoryIdempotencyRepository() domainRepo.IdempotencyRepository {
	return &memoryIdempotencyRepository{keys: make(map[string]entity.IdempotencyKey)}
}

func (r *memoryIdempotencyRepository) GetByKey(_ context.Context, key string, userID string) (*entity.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ikey, ok := r.keys[userID+"/"+key]
	if !ok {
		return nil, nil
	}
	return &ikey, nil
}

func (r *memoryIdempotencyRepository) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	id := ikey.UserID + "/" + ikey.Key
	// an expired key may be reused before the sweep removes it
	if existing, exists := r.keys[id]; exists && !existing.IsExpired(now) {
		return fmt.Errorf("idempotency key %q already stored", ikey.Key)
	}
	if ikey.CreatedAt.IsZero() {
		ikey.CreatedAt = now
	}
	r.keys[id] = *ikey
	return nil
}

func (r *memoryIdempotencyRepository) DeleteExpired(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for id, ikey := range r.keys {
		if ikey.IsExpired(now) {
			delete(r.keys, id)
		}
	}
	return nil
}
