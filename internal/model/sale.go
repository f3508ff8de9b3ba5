package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AnonymousMemberID is the sentinel stored when a sale has no member
// (walk-in customer).
const AnonymousMemberID = "N/A"

// SaleLine is one item of a multi-item checkout. All lines of a cart share
// one SaleID and one SaleDate and are written atomically with their
// inventory decrements. SaleID is deliberately NOT unique — one row per
// cart line. Sale lines are append-only: never updated, never deleted.
type SaleLine struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID   string    `gorm:"index;not null"`
	SaleDate time.Time `gorm:"index;not null"`
	MemberID string    `gorm:"index;not null;default:'N/A'"`
	// PharmacistID/Pharmacist identify the accountable staff member; a sale
	// without one is rejected before any write.
	PharmacistID string `gorm:"not null"`
	Pharmacist   string `gorm:"not null"`
	// TotalAmount is the cart-level total, recomputed server-side from the
	// line sum (the caller-declared total is only tolerance-checked).
	TotalAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	InventoryID  string          `gorm:"index;not null"`
	QuantitySold int             `gorm:"not null"`
	PricePerUnit decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DrugID       string          `gorm:"index;not null"`
	// LotNumber is a denormalized copy of the lot's number at sale time, so
	// history survives later lot mutation.
	LotNumber string `gorm:"not null"`
}

func (SaleLine) TableName() string { return "sales" }

// LineTotal is the revenue contribution of this line.
func (l *SaleLine) LineTotal() decimal.Decimal {
	return l.PricePerUnit.Mul(decimal.NewFromInt(int64(l.QuantitySold)))
}
