package model

import (
	"time"

	"github.com/google/uuid"
)

// Drug is a formulary entry — the static reference data for one SKU.
// DrugID is the caller-assigned join key used by inventory and sale rows.
// The catalog is read-only to the sale/report core; rows referencing an
// unknown DrugID are tolerated and reported with degraded display data.
type Drug struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DrugID         string    `gorm:"uniqueIndex;not null"`
	TradeName      string    `gorm:"index;not null"`
	GenericName    string
	LegalCategory  string // free-text legal class, drives regulatory reporting
	PharmaCategory string
	Strength       string
	Unit           string
	Indication     *string
	Caution        *string
	ImageURL       *string
	Interaction1   *string
	Interaction2   *string
	Interaction3   *string
	Interaction4   *string
	Interaction5   *string
	// MinStock/MaxStock are reorder policy thresholds; 0 means no policy.
	MinStock  int `gorm:"not null;default:0"`
	MaxStock  int `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Drug) TableName() string { return "formulary" }
