package repository

import (
	"context"
)

// Keys under which the store persists its state. Each holds one JSON document.
const (
	KeySession    = "session"
	KeyProducts   = "products"
	KeySales      = "sales"
	KeyMovements  = "movements"
	KeyCashCloses = "cash_closes"
)

// StateRepository persists serialized store state under stable keys
type StateRepository interface {
	// Load returns the stored value, or nil when the key has never been written
	Load(ctx context.Context, key string) ([]byte, error)
	// SaveBatch writes every record in one atomic step
	SaveBatch(ctx context.Context, records map[string][]byte) error
	// Ping checks that the backend is reachable
	Ping(ctx context.Context) error
}
