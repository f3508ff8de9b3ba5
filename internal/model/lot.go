package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Lot is one physically received batch of a drug, tracked separately for
// expiry and quantity. Quantity is mutated only by sale decrements; it may
// reach 0 but never goes negative (enforced by a compare-and-decrement
// UPDATE). Lots referenced by a sale line are never deleted.
type Lot struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InventoryID string    `gorm:"uniqueIndex;not null"`
	DrugID      string    `gorm:"index;not null"`
	LotNumber   string    `gorm:"not null"`
	ExpiryDate  time.Time `gorm:"type:date;not null"`
	Quantity    int       `gorm:"not null;check:quantity >= 0"`
	CostPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// SellingPrice is the price-in-effect snapshot at receiving time, not
	// re-derived from the catalog.
	SellingPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ReferenceID  *string
	Barcode      *string `gorm:"index"`
	DateReceived time.Time
}

func (Lot) TableName() string { return "inventory" }
