package service

import (
	"context"
	"sort"
	"time"

	"github.com/wirunw/pms2025/internal/dto"
	"github.com/wirunw/pms2025/internal/model"
	"github.com/wirunw/pms2025/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// InventoryService manages the lot-tracked inventory ledger. Lots are
// appended by receiving and decremented only through the sale path.
type InventoryService interface {
	Receive(ctx context.Context, req dto.ReceiveLotRequest) (*dto.LotResponse, error)
	// ListSellableLots returns the drug's lots with stock and a valid expiry,
	// earliest-expiring first. The ordering is a FEFO recommendation for the
	// caller; lot choice stays caller-supplied.
	ListSellableLots(ctx context.Context, drugID string, asOf time.Time) ([]dto.LotResponse, error)
	// SummarizeByDrug aggregates in-stock lots per drug with the earliest
	// expiry and its lot number.
	SummarizeByDrug(ctx context.Context) ([]dto.DrugStockSummary, error)
	// VerifyLine checks a cart line against its lot without touching stock:
	// the lot must exist, match the line's drug/lot number, and hold at
	// least the requested quantity.
	VerifyLine(ctx context.Context, item dto.SaleItemRequest) error
	// DecrementLotTx is called within a sale transaction. It verifies the
	// cart line matches the lot and applies a compare-and-decrement; any
	// failure leaves the lot untouched.
	DecrementLotTx(ctx context.Context, tx *gorm.DB, item dto.SaleItemRequest) error
}

type inventoryService struct {
	lots  repository.LotRepository
	drugs repository.DrugRepository
}

func NewInventoryService(lots repository.LotRepository, drugs repository.DrugRepository) InventoryService {
	return &inventoryService{lots: lots, drugs: drugs}
}

func (s *inventoryService) Receive(ctx context.Context, req dto.ReceiveLotRequest) (*dto.LotResponse, error) {
	if req.Quantity < 0 {
		return nil, newValidationError("quantity must not be negative")
	}
	if req.CostPrice.IsNegative() || req.SellingPrice.IsNegative() {
		return nil, newValidationError("prices must not be negative")
	}
	expiry, err := time.ParseInLocation(dateLayout, req.ExpiryDate, time.UTC)
	if err != nil {
		return nil, newValidationError("expiry_date %q is not a valid YYYY-MM-DD date", req.ExpiryDate)
	}
	// Receiving requires an existing catalog entry; tolerance for unknown
	// drug IDs applies only on the read side.
	if _, err := s.drugs.FindByDrugID(ctx, req.DrugID); err != nil {
		return nil, newValidationError("drug %q is not in the formulary", req.DrugID)
	}

	lot := &model.Lot{
		InventoryID:  uuid.New().String(),
		DrugID:       req.DrugID,
		LotNumber:    req.LotNumber,
		ExpiryDate:   expiry,
		Quantity:     req.Quantity,
		CostPrice:    req.CostPrice,
		SellingPrice: req.SellingPrice,
		ReferenceID:  req.ReferenceID,
		Barcode:      req.Barcode,
		DateReceived: time.Now().UTC(),
	}
	if err := s.lots.Create(ctx, lot); err != nil {
		return nil, err
	}
	resp := lotToResponse(lot)
	return &resp, nil
}

func (s *inventoryService) ListSellableLots(ctx context.Context, drugID string, asOf time.Time) ([]dto.LotResponse, error) {
	lots, err := s.lots.SellableByDrug(ctx, drugID, asOf)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LotResponse, 0, len(lots))
	for i := range lots {
		out = append(out, lotToResponse(&lots[i]))
	}
	return out, nil
}

func (s *inventoryService) SummarizeByDrug(ctx context.Context) ([]dto.DrugStockSummary, error) {
	lots, err := s.lots.InStock(ctx)
	if err != nil {
		return nil, err
	}
	formulary, err := s.drugs.All(ctx)
	if err != nil {
		return nil, err
	}

	byDrug := make(map[string]*dto.DrugStockSummary)
	earliest := make(map[string]time.Time)
	order := make([]string, 0)
	for i := range lots {
		lot := &lots[i]
		sum, ok := byDrug[lot.DrugID]
		if !ok {
			sum = &dto.DrugStockSummary{
				DrugID:      lot.DrugID,
				DisplayName: drugDisplayName(formulary, lot.DrugID),
			}
			byDrug[lot.DrugID] = sum
			order = append(order, lot.DrugID)
		}
		sum.TotalQuantity += lot.Quantity
		if prev, seen := earliest[lot.DrugID]; !seen || lot.ExpiryDate.Before(prev) {
			earliest[lot.DrugID] = lot.ExpiryDate
			sum.EarliestExpiry = lot.ExpiryDate.Format(dateLayout)
			sum.EarliestLotNumber = lot.LotNumber
		}
	}

	out := make([]dto.DrugStockSummary, 0, len(order))
	for _, id := range order {
		out = append(out, *byDrug[id])
	}
	// DisplayName is not unique (two SKUs can share a trade name); DrugID
	// breaks ties so repeated calls order identically.
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayName != out[j].DisplayName {
			return out[i].DisplayName < out[j].DisplayName
		}
		return out[i].DrugID < out[j].DrugID
	})
	return out, nil
}

func (s *inventoryService) VerifyLine(ctx context.Context, item dto.SaleItemRequest) error {
	lot, err := s.verifyLineLot(ctx, item)
	if err != nil {
		return err
	}
	if lot.Quantity < item.Quantity {
		return &InsufficientStockError{
			InventoryID: item.InventoryID,
			Requested:   item.Quantity,
			Available:   lot.Quantity,
		}
	}
	return nil
}

// verifyLineLot resolves the line's lot and enforces that its (drugId,
// lotNumber) pair matches the lot it claims to sell from.
func (s *inventoryService) verifyLineLot(ctx context.Context, item dto.SaleItemRequest) (*model.Lot, error) {
	lot, err := s.lots.FindByInventoryID(ctx, item.InventoryID)
	if err != nil {
		return nil, &InsufficientStockError{InventoryID: item.InventoryID, Requested: item.Quantity, Available: -1}
	}
	if lot.DrugID != item.DrugID || lot.LotNumber != item.LotNumber {
		return nil, newValidationError("line for lot %s does not match its drug/lot number", item.InventoryID)
	}
	return lot, nil
}

func (s *inventoryService) DecrementLotTx(ctx context.Context, tx *gorm.DB, item dto.SaleItemRequest) error {
	lot, err := s.verifyLineLot(ctx, item)
	if err != nil {
		return err
	}
	affected, err := s.lots.DecrementTx(tx, item.InventoryID, item.Quantity)
	if err != nil {
		return err
	}
	if affected == 0 {
		return &InsufficientStockError{
			InventoryID: item.InventoryID,
			Requested:   item.Quantity,
			Available:   lot.Quantity,
		}
	}
	return nil
}

// drugDisplayName degrades to the raw drugID when the formulary has no entry
// (IntegrityWarning path — degraded data, not an error).
func drugDisplayName(formulary map[string]model.Drug, drugID string) string {
	if d, ok := formulary[drugID]; ok {
		if d.GenericName != "" {
			return d.TradeName + " (" + d.GenericName + ")"
		}
		return d.TradeName
	}
	return drugID
}

func lotToResponse(l *model.Lot) dto.LotResponse {
	return dto.LotResponse{
		InventoryID:  l.InventoryID,
		DrugID:       l.DrugID,
		LotNumber:    l.LotNumber,
		ExpiryDate:   l.ExpiryDate.Format(dateLayout),
		Quantity:     l.Quantity,
		CostPrice:    l.CostPrice,
		SellingPrice: l.SellingPrice,
		DateReceived: l.DateReceived.Format(time.RFC3339),
	}
}
