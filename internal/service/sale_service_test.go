package service

import (
	"context"
	"testing"

	"github.com/wirunw/pms2025/internal/dto"
	"github.com/wirunw/pms2025/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSaleFixture(t *testing.T) (*stubSaleRepo, *stubLotRepo, SaleService) {
	t.Helper()
	lots := newStubLotRepo(
		model.Lot{InventoryID: "L1", DrugID: "D001", LotNumber: "A", ExpiryDate: day("2027-01-01"), Quantity: 10, SellingPrice: decimal.NewFromInt(5)},
		model.Lot{InventoryID: "L2", DrugID: "D002", LotNumber: "B", ExpiryDate: day("2026-06-01"), Quantity: 5, SellingPrice: decimal.NewFromInt(10)},
	)
	drugs := newStubDrugRepo(paracetamol(), amoxicillin())
	sales := newStubSaleRepo()
	inventory := NewInventoryService(lots, drugs)
	svc := NewSaleService(sales, inventory, drugs, nil, decimal.NewFromFloat(0.01))
	return sales, lots, svc
}

func cartRequest() dto.RecordSaleRequest {
	return dto.RecordSaleRequest{
		PharmacistID:   "S001",
		PharmacistName: "Somchai",
		Items: []dto.SaleItemRequest{
			{InventoryID: "L2", DrugID: "D002", LotNumber: "B", Quantity: 3, PricePerUnit: decimal.NewFromInt(10)},
			{InventoryID: "L1", DrugID: "D001", LotNumber: "A", Quantity: 2, PricePerUnit: decimal.NewFromInt(5)},
		},
		DeclaredTotal: decimal.NewFromInt(40),
	}
}

func TestRecordSaleCommitsAllLines(t *testing.T) {
	sales, lots, svc := newSaleFixture(t)

	resp, err := svc.RecordSale(context.Background(), cartRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.SaleID)
	assert.Equal(t, model.AnonymousMemberID, resp.MemberID)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(40)), "total %s", resp.TotalAmount)
	require.Len(t, resp.Items, 2)
	assert.True(t, resp.Items[0].Subtotal.Equal(decimal.NewFromInt(30)))

	// stock decremented per line
	assert.Equal(t, 2, lots.quantity("L2"))
	assert.Equal(t, 8, lots.quantity("L1"))

	// all lines share the cart's sale id and total
	lines, err := sales.LinesBySaleID(context.Background(), resp.SaleID)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Equal(t, resp.SaleID, line.SaleID)
		assert.True(t, line.TotalAmount.Equal(decimal.NewFromInt(40)))
		assert.Equal(t, "Somchai", line.Pharmacist)
	}
}

func TestRecordSaleKeepsMemberID(t *testing.T) {
	_, _, svc := newSaleFixture(t)
	req := cartRequest()
	member := "M100"
	req.MemberID = &member

	resp, err := svc.RecordSale(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "M100", resp.MemberID)
}

func TestRecordSaleInsufficientLineAbortsWholeCart(t *testing.T) {
	sales, lots, svc := newSaleFixture(t)

	req := cartRequest()
	// third line asks for more than L2 has left after its own first line
	req.Items = append(req.Items, dto.SaleItemRequest{
		InventoryID: "L2", DrugID: "D002", LotNumber: "B", Quantity: 99, PricePerUnit: decimal.NewFromInt(10),
	})
	req.DeclaredTotal = decimal.NewFromInt(1030)

	_, err := svc.RecordSale(context.Background(), req)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "L2", stockErr.InventoryID)

	// nothing was written, nothing was decremented
	assert.Equal(t, 5, lots.quantity("L2"))
	assert.Equal(t, 10, lots.quantity("L1"))
	recent, _ := sales.Recent(context.Background(), 10)
	assert.Empty(t, recent)
}

func TestRecordSaleDeclaredTotalTolerance(t *testing.T) {
	t.Run("mismatch beyond tolerance rejected", func(t *testing.T) {
		sales, lots, svc := newSaleFixture(t)
		req := cartRequest()
		req.DeclaredTotal = decimal.NewFromInt(100)

		_, err := svc.RecordSale(context.Background(), req)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Detail, "declared total")

		assert.Equal(t, 5, lots.quantity("L2"))
		recent, _ := sales.Recent(context.Background(), 10)
		assert.Empty(t, recent)
	})

	t.Run("penny rounding within tolerance accepted", func(t *testing.T) {
		_, _, svc := newSaleFixture(t)
		req := cartRequest()
		req.DeclaredTotal = decimal.NewFromFloat(40.01)

		resp, err := svc.RecordSale(context.Background(), req)
		require.NoError(t, err)
		// the stored total is the recomputed line sum, not the declared one
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(40)))
	})
}

func TestRecordSalePreconditions(t *testing.T) {
	_, _, svc := newSaleFixture(t)
	ctx := context.Background()

	t.Run("empty cart", func(t *testing.T) {
		req := cartRequest()
		req.Items = nil
		_, err := svc.RecordSale(ctx, req)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
	})

	t.Run("missing pharmacist", func(t *testing.T) {
		req := cartRequest()
		req.PharmacistID = ""
		_, err := svc.RecordSale(ctx, req)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
	})

	t.Run("zero quantity line", func(t *testing.T) {
		req := cartRequest()
		req.Items[0].Quantity = 0
		_, err := svc.RecordSale(ctx, req)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
	})

	t.Run("mismatched drug id", func(t *testing.T) {
		req := cartRequest()
		req.Items[0].DrugID = "D001"
		req.DeclaredTotal = decimal.NewFromInt(40)
		_, err := svc.RecordSale(ctx, req)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
	})
}

func TestMemberPurchasesResolvesNames(t *testing.T) {
	_, _, svc := newSaleFixture(t)
	req := cartRequest()
	member := "M7"
	req.MemberID = &member
	_, err := svc.RecordSale(context.Background(), req)
	require.NoError(t, err)

	rows, err := svc.MemberPurchases(context.Background(), "M7")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	names := map[string]bool{}
	for _, row := range rows {
		names[row.TradeName] = true
		assert.Equal(t, "Somchai", row.Pharmacist)
	}
	assert.True(t, names["Amoxil"])
	assert.True(t, names["Tylenol"])
}
