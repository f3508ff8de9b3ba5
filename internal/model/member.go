package model

import (
	"time"

	"github.com/google/uuid"
)

// Member is a registered pharmacy customer.
// Allergies is stored as a JSON-encoded string array.
type Member struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MemberID    string    `gorm:"uniqueIndex;not null"`
	FullName    string    `gorm:"index;not null"`
	NationalID  *string
	DOB         *string `gorm:"column:dob"`
	Phone       *string `gorm:"index"`
	Allergies   *string
	Disease     *string
	DateCreated time.Time
}

func (Member) TableName() string { return "members" }
