package entity

import (
	"time"
)

// IdempotencyKey stores a processed request so a retried one can be replayed
type IdempotencyKey struct {
	Key          string    `gorm:"primaryKey;size:255" json:"key"`              // The idempotency key from client
	UserID       string    `gorm:"primaryKey;size:64" json:"user_id"`           // Session user who made the request
	Endpoint     string    `gorm:"size:255;not null" json:"endpoint"`           // e.g. "POST /api/v1/sales"
	RequestHash  string    `gorm:"size:64" json:"request_hash,omitempty"`       // SHA256 of the request body
	ResponseCode int       `gorm:"not null" json:"response_code"`               // HTTP status of the original response
	ResponseBody string    `gorm:"type:text" json:"response_body"`              // cached JSON body
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	ExpiresAt    time.Time `gorm:"not null;index" json:"expires_at"`
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks if the key has expired at the given instant
func (i *IdempotencyKey) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// StateRecord is one serialized collection in the relational state store
type StateRecord struct {
	Key       string    `gorm:"primaryKey;size:255"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for StateRecord
func (StateRecord) TableName() string {
	return "state_records"
}
