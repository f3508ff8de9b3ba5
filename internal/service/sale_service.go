package service

import (
	"context"
	"time"

	"github.com/wirunw/pms2025/internal/dto"
	"github.com/wirunw/pms2025/internal/model"
	"github.com/wirunw/pms2025/internal/repository"
	"github.com/wirunw/pms2025/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleService is the sale transaction processor: it validates a cart and
// commits its sale lines together with their inventory decrements as one
// atomic unit.
type SaleService interface {
	RecordSale(ctx context.Context, req dto.RecordSaleRequest) (*dto.SaleResponse, error)
	MemberPurchases(ctx context.Context, memberID string) ([]dto.PurchaseRow, error)
	RecentSales(ctx context.Context, limit int) ([]dto.PurchaseRow, error)
}

type saleService struct {
	sales      repository.SaleRepository
	inventory  InventoryService
	drugs      repository.DrugRepository
	dispatcher *worker.Dispatcher
	// tolerance bounds |declaredTotal − Σ(qty×price)|; the stored total is
	// always the server-computed line sum.
	tolerance decimal.Decimal
}

func NewSaleService(
	sales repository.SaleRepository,
	inventory InventoryService,
	drugs repository.DrugRepository,
	dispatcher *worker.Dispatcher,
	tolerance decimal.Decimal,
) SaleService {
	return &saleService{
		sales:      sales,
		inventory:  inventory,
		drugs:      drugs,
		dispatcher: dispatcher,
		tolerance:  tolerance,
	}
}

// RecordSale commits a cart:
//  1. Validate preconditions — items present, accountable pharmacist named.
//  2. Recompute the cart total from the lines and tolerance-check the
//     caller-declared total.
//  3. One saleId + server-assigned saleDate for the whole cart.
//  4. BEGIN TX: per line, verify the lot and compare-and-decrement its
//     quantity, then insert the line row. Any failure rolls back everything.
//  5. COMMIT, then fire-and-forget the SaleRecorded activity event.
func (s *saleService) RecordSale(ctx context.Context, req dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	if len(req.Items) == 0 {
		return nil, newValidationError("cart has no items")
	}
	if req.PharmacistID == "" || req.PharmacistName == "" {
		return nil, newValidationError("a sale requires an accountable pharmacist")
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, newValidationError("quantity for lot %s must be at least 1", item.InventoryID)
		}
		if item.PricePerUnit.IsNegative() {
			return nil, newValidationError("price for lot %s must not be negative", item.InventoryID)
		}
	}

	total := decimal.Zero
	for _, item := range req.Items {
		total = total.Add(item.PricePerUnit.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if req.DeclaredTotal.Sub(total).Abs().GreaterThan(s.tolerance) {
		return nil, newValidationError(
			"declared total %s does not match line sum %s", req.DeclaredTotal, total)
	}

	// Preflight every line before opening the transaction so an invalid or
	// short line rejects the whole cart up front. The in-transaction
	// compare-and-decrement still guards against concurrent sales.
	for _, item := range req.Items {
		if err := s.inventory.VerifyLine(ctx, item); err != nil {
			return nil, err
		}
	}

	memberID := model.AnonymousMemberID
	if req.MemberID != nil && *req.MemberID != "" {
		memberID = *req.MemberID
	}

	saleID := uuid.New().String()
	saleDate := time.Now().UTC()

	txErr := runTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
		for _, item := range req.Items {
			if err := s.inventory.DecrementLotTx(ctx, tx, item); err != nil {
				return err
			}
			line := &model.SaleLine{
				SaleID:       saleID,
				SaleDate:     saleDate,
				MemberID:     memberID,
				PharmacistID: req.PharmacistID,
				Pharmacist:   req.PharmacistName,
				TotalAmount:  total,
				InventoryID:  item.InventoryID,
				QuantitySold: item.Quantity,
				PricePerUnit: item.PricePerUnit,
				DrugID:       item.DrugID,
				LotNumber:    item.LotNumber,
			}
			if err := s.sales.CreateLineTx(tx, line); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Advisory audit event — failure must never roll back the sale.
	if s.dispatcher != nil {
		_ = s.dispatcher.EnqueueActivity(ctx, worker.ActivityPayload{
			EventType:   "SaleRecorded",
			Description: "sale " + saleID + " total " + total.StringFixed(2),
			Entity:      "sale",
			EntityID:    saleID,
			PerformedBy: req.PharmacistID,
		})
	}

	resp := &dto.SaleResponse{
		SaleID:      saleID,
		SaleDate:    saleDate.Format(time.RFC3339),
		MemberID:    memberID,
		Pharmacist:  req.PharmacistName,
		TotalAmount: total,
		Items:       make([]dto.SaleItemResponse, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			InventoryID:  item.InventoryID,
			DrugID:       item.DrugID,
			LotNumber:    item.LotNumber,
			Quantity:     item.Quantity,
			PricePerUnit: item.PricePerUnit,
			Subtotal:     item.PricePerUnit.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}
	return resp, nil
}

func (s *saleService) MemberPurchases(ctx context.Context, memberID string) ([]dto.PurchaseRow, error) {
	lines, err := s.sales.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return s.linesToPurchaseRows(ctx, lines)
}

func (s *saleService) RecentSales(ctx context.Context, limit int) ([]dto.PurchaseRow, error) {
	if limit < 1 || limit > 1000 {
		limit = 1000
	}
	lines, err := s.sales.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return s.linesToPurchaseRows(ctx, lines)
}

func (s *saleService) linesToPurchaseRows(ctx context.Context, lines []model.SaleLine) ([]dto.PurchaseRow, error) {
	formulary, err := s.drugs.All(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.PurchaseRow, 0, len(lines))
	for i := range lines {
		line := &lines[i]
		tradeName := line.DrugID
		genericName := ""
		if d, ok := formulary[line.DrugID]; ok {
			tradeName = d.TradeName
			genericName = d.GenericName
		}
		rows = append(rows, dto.PurchaseRow{
			SaleID:       line.SaleID,
			SaleDate:     line.SaleDate.Format(time.RFC3339),
			TradeName:    tradeName,
			GenericName:  genericName,
			LotNumber:    line.LotNumber,
			QuantitySold: line.QuantitySold,
			PricePerUnit: line.PricePerUnit,
			ItemTotal:    line.LineTotal(),
			Pharmacist:   line.Pharmacist,
		})
	}
	return rows, nil
}
