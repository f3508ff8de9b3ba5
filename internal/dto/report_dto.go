package dto

import "github.com/shopspring/decimal"

// Export section names. Stable — they are the values accepted by the
// report export endpoints' `sections` parameter.
const (
	SectionSales     = "sales"
	SectionInventory = "inventory"
	SectionThaiFDA   = "thaiFda"
)

// Report is the derived KPI document for one reporting window. It has no
// identity or lifecycle: it is recomputed from Sales/Inventory/Formulary
// state on every request.
type Report struct {
	Period    string           `json:"period"`
	Label     string           `json:"label"`
	StartDate string           `json:"start_date"` // RFC3339, inclusive
	EndDate   string           `json:"end_date"`   // RFC3339, inclusive
	Sales     SalesMetrics     `json:"sales"`
	Inventory InventoryHealth  `json:"inventory"`
	ThaiFDA   RegulatorySummary `json:"thaiFda"`
}

// ─── Sales metrics ───────────────────────────────────────────────────────────

// RevenueEntry is one row of a top-movers ranking.
type RevenueEntry struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type SalesMetrics struct {
	// TotalRevenue is Σ(quantity × pricePerUnit) over in-window lines —
	// always recomputed from lines, never from the recorded cart totals.
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TransactionCount int             `json:"transaction_count"` // distinct sale IDs
	AverageTicket    decimal.Decimal `json:"average_ticket"`
	UniqueCustomers  int             `json:"unique_customers"`
	TotalUnitsSold   int             `json:"total_units_sold"`
	TopProducts      []RevenueEntry  `json:"top_products"`
	TopCategories    []RevenueEntry  `json:"top_categories"`
}

// ─── Inventory health ────────────────────────────────────────────────────────

type LowStockItem struct {
	DrugID        string `json:"drug_id"`
	TradeName     string `json:"trade_name"`
	TotalQuantity int    `json:"total_quantity"`
	MinStock      int    `json:"min_stock"`
}

type NearExpiryItem struct {
	DrugID        string `json:"drug_id"`
	TradeName     string `json:"trade_name"`
	LotNumber     string `json:"lot_number"`
	ExpiryDate    string `json:"expiry_date"`
	DaysRemaining int    `json:"days_remaining"`
}

type SlowMovingItem struct {
	DrugID        string  `json:"drug_id"`
	TradeName     string  `json:"trade_name"`
	TotalQuantity int     `json:"total_quantity"`
	// LastSaleDate is nil for drugs that have never sold.
	LastSaleDate  *string `json:"last_sale_date"`
	DaysSinceSale *int    `json:"days_since_sale"`
}

type InventoryHealth struct {
	LowStock   []LowStockItem   `json:"low_stock"`
	NearExpiry []NearExpiryItem `json:"near_expiry"`
	SlowMoving []SlowMovingItem `json:"slow_moving"`
}

// ─── Regulatory summary ──────────────────────────────────────────────────────

type RegulatoryCategory struct {
	LegalCategory  string          `json:"legal_category"`
	Classification string          `json:"classification"` // dangerous | controlled
	Transactions   int             `json:"transactions"`
	Quantity       int             `json:"quantity"`
	Revenue        decimal.Decimal `json:"revenue"`
}

// FlaggedLine is an individual sale line of a regulated drug, kept flat for
// regulator-facing export.
type FlaggedLine struct {
	SaleID         string          `json:"sale_id"`
	SaleDate       string          `json:"sale_date"`
	DrugID         string          `json:"drug_id"`
	TradeName      string          `json:"trade_name"`
	LegalCategory  string          `json:"legal_category"`
	Classification string          `json:"classification"`
	Quantity       int             `json:"quantity"`
	Revenue        decimal.Decimal `json:"revenue"`
	Pharmacist     string          `json:"pharmacist"`
}

type RegulatorySummary struct {
	Categories []RegulatoryCategory `json:"categories"`
	Flagged    []FlaggedLine        `json:"flagged"`
}
