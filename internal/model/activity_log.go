package model

import (
	"time"

	"github.com/google/uuid"
)

// ActivityLog is an append-only audit trail entry. Rows are written
// asynchronously by the worker pool; a failed write is logged and dropped,
// never propagated to the operation that emitted the event.
type ActivityLog struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EventType   string    `gorm:"index;not null"` // e.g. "SaleRecorded"
	Description string    `gorm:"not null"`
	Entity      string    `gorm:"not null"`
	EntityID    string    `gorm:"index;not null"`
	PerformedBy string    `gorm:"not null"`
	CreatedAt   time.Time
}

func (ActivityLog) TableName() string { return "activity_log" }
