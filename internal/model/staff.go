package model

import (
	"time"

	"github.com/google/uuid"
)

// Staff is a pharmacist or other accountable staff member.
type Staff struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	StaffID       string    `gorm:"uniqueIndex;not null"`
	FullName      string    `gorm:"index;not null"`
	LicenseNumber *string
	Position      *string
	Phone         *string
	Email         *string
	DateCreated   time.Time
}

func (Staff) TableName() string { return "staff" }
