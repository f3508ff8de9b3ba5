package dto

import "github.com/shopspring/decimal"

// ReceiveLotRequest registers a newly received batch.
type ReceiveLotRequest struct {
	DrugID       string          `json:"drug_id"       validate:"required"`
	LotNumber    string          `json:"lot_number"    validate:"required"`
	ExpiryDate   string          `json:"expiry_date"   validate:"required"` // YYYY-MM-DD
	Quantity     int             `json:"quantity"      validate:"min=0"`
	CostPrice    decimal.Decimal `json:"cost_price"    validate:"min=0"`
	SellingPrice decimal.Decimal `json:"selling_price" validate:"min=0"`
	ReferenceID  *string         `json:"reference_id"`
	Barcode      *string         `json:"barcode"`
}

type LotResponse struct {
	InventoryID  string          `json:"inventory_id"`
	DrugID       string          `json:"drug_id"`
	LotNumber    string          `json:"lot_number"`
	ExpiryDate   string          `json:"expiry_date"`
	Quantity     int             `json:"quantity"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	DateReceived string          `json:"date_received"`
}

// DrugStockSummary aggregates all in-stock lots of one drug.
type DrugStockSummary struct {
	DrugID            string `json:"drug_id"`
	DisplayName       string `json:"display_name"`
	TotalQuantity     int    `json:"total_quantity"`
	EarliestLotNumber string `json:"earliest_lot_number"`
	EarliestExpiry    string `json:"earliest_expiry"`
}

// PriceCheckResponse is the public barcode price lookup payload.
type PriceCheckResponse struct {
	DrugID       string          `json:"drug_id"`
	TradeName    string          `json:"trade_name"`
	LotNumber    string          `json:"lot_number"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Quantity     int             `json:"quantity"`
}
