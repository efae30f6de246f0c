package entity

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyKey stores a processed request so that retried submissions of
// the same donation do not mint a second receipt.
type IdempotencyKey struct {
	ID           uint      `gorm:"primary_key" json:"id"`
	Key          string    `gorm:"size:255;not null;uniqueIndex:idx_idempotency_key_user" json:"key"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_idempotency_key_user" json:"user_id"`
	Endpoint     string    `gorm:"size:255;not null" json:"endpoint"`
	ResponseCode int       `gorm:"not null" json:"response_code"`
	ResponseBody string    `gorm:"type:text" json:"response_body"`
	ExpiresAt    time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName returns the table name for the IdempotencyKey model
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired reports whether the key has passed its TTL
func (k *IdempotencyKey) IsExpired() bool {
	return time.Now().After(k.ExpiresAt)
}
