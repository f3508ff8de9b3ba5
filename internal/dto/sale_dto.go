package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// SaleItemRequest is one cart line. The caller picks the lot explicitly;
// DrugID and LotNumber must match the lot identified by InventoryID.
type SaleItemRequest struct {
	InventoryID  string          `json:"inventory_id"   validate:"required"`
	DrugID       string          `json:"drug_id"        validate:"required"`
	Quantity     int             `json:"quantity"       validate:"required,min=1"`
	PricePerUnit decimal.Decimal `json:"price_per_unit" validate:"min=0"`
	LotNumber    string          `json:"lot_number"     validate:"required"`
}

// RecordSaleRequest is the full checkout cart.
type RecordSaleRequest struct {
	MemberID       *string           `json:"member_id"`
	PharmacistID   string            `json:"pharmacist_id"   validate:"required"`
	PharmacistName string            `json:"pharmacist_name" validate:"required"`
	Items          []SaleItemRequest `json:"items"           validate:"required,min=1,dive"`
	// DeclaredTotal is the client-computed cart total. It is only checked
	// against the server-side line sum within a tolerance and is never
	// recorded as-is.
	DeclaredTotal decimal.Decimal `json:"declared_total" validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleItemResponse struct {
	InventoryID  string          `json:"inventory_id"`
	DrugID       string          `json:"drug_id"`
	TradeName    string          `json:"trade_name,omitempty"`
	LotNumber    string          `json:"lot_number"`
	Quantity     int             `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

type SaleResponse struct {
	SaleID      string             `json:"sale_id"`
	SaleDate    string             `json:"sale_date"`
	MemberID    string             `json:"member_id"`
	Pharmacist  string             `json:"pharmacist"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
	Items       []SaleItemResponse `json:"items"`
}

// PurchaseRow is one line of a member's purchase history.
type PurchaseRow struct {
	SaleID       string          `json:"sale_id"`
	SaleDate     string          `json:"sale_date"`
	TradeName    string          `json:"trade_name"`
	GenericName  string          `json:"generic_name"`
	LotNumber    string          `json:"lot_number"`
	QuantitySold int             `json:"quantity_sold"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	ItemTotal    decimal.Decimal `json:"item_total"`
	Pharmacist   string          `json:"pharmacist"`
}
