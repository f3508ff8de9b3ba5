package service

import (
	"context"
	"testing"
	"time"

	"github.com/wirunw/pms2025/internal/dto"
	"github.com/wirunw/pms2025/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func paracetamol() model.Drug {
	return model.Drug{
		DrugID:         "D001",
		TradeName:      "Tylenol",
		GenericName:    "Paracetamol",
		LegalCategory:  "ยาสามัญประจำบ้าน",
		PharmaCategory: "Analgesic",
		MinStock:       10,
	}
}

func amoxicillin() model.Drug {
	return model.Drug{
		DrugID:         "D002",
		TradeName:      "Amoxil",
		GenericName:    "Amoxicillin",
		LegalCategory:  "ยาอันตราย",
		PharmaCategory: "Antibiotic",
		MinStock:       5,
	}
}

func TestReceiveCreatesLot(t *testing.T) {
	lots := newStubLotRepo()
	svc := NewInventoryService(lots, newStubDrugRepo(paracetamol()))

	resp, err := svc.Receive(context.Background(), dto.ReceiveLotRequest{
		DrugID:       "D001",
		LotNumber:    "LOT-A",
		ExpiryDate:   "2027-06-30",
		Quantity:     100,
		CostPrice:    decimal.NewFromFloat(3.50),
		SellingPrice: decimal.NewFromFloat(5.00),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.InventoryID)
	assert.Equal(t, "D001", resp.DrugID)
	assert.Equal(t, 100, resp.Quantity)
	assert.Equal(t, "2027-06-30", resp.ExpiryDate)
	assert.Equal(t, 100, lots.quantity(resp.InventoryID))
}

func TestReceiveValidation(t *testing.T) {
	svc := NewInventoryService(newStubLotRepo(), newStubDrugRepo(paracetamol()))
	ctx := context.Background()

	cases := []struct {
		name string
		req  dto.ReceiveLotRequest
	}{
		{"unknown drug", dto.ReceiveLotRequest{DrugID: "NOPE", LotNumber: "L", ExpiryDate: "2027-01-01", Quantity: 1}},
		{"bad expiry", dto.ReceiveLotRequest{DrugID: "D001", LotNumber: "L", ExpiryDate: "30/06/2027", Quantity: 1}},
		{"negative quantity", dto.ReceiveLotRequest{DrugID: "D001", LotNumber: "L", ExpiryDate: "2027-01-01", Quantity: -1}},
		{"negative price", dto.ReceiveLotRequest{DrugID: "D001", LotNumber: "L", ExpiryDate: "2027-01-01", Quantity: 1, CostPrice: decimal.NewFromInt(-1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Receive(ctx, tc.req)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
		})
	}
}

func TestReceiveAcceptsZeroQuantity(t *testing.T) {
	svc := NewInventoryService(newStubLotRepo(), newStubDrugRepo(paracetamol()))
	resp, err := svc.Receive(context.Background(), dto.ReceiveLotRequest{
		DrugID: "D001", LotNumber: "L0", ExpiryDate: "2027-01-01", Quantity: 0,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Quantity)
}

func TestListSellableLotsFEFOOrder(t *testing.T) {
	lots := newStubLotRepo(
		model.Lot{InventoryID: "L1", DrugID: "D001", LotNumber: "A", ExpiryDate: day("2027-12-01"), Quantity: 50},
		model.Lot{InventoryID: "L2", DrugID: "D001", LotNumber: "B", ExpiryDate: day("2026-03-01"), Quantity: 5},
		model.Lot{InventoryID: "L3", DrugID: "D001", LotNumber: "C", ExpiryDate: day("2027-01-01"), Quantity: 0},
		model.Lot{InventoryID: "L4", DrugID: "D001", LotNumber: "D", ExpiryDate: day("2024-01-01"), Quantity: 30},
		model.Lot{InventoryID: "L5", DrugID: "D002", LotNumber: "E", ExpiryDate: day("2026-01-01"), Quantity: 10},
	)
	svc := NewInventoryService(lots, newStubDrugRepo(paracetamol(), amoxicillin()))

	out, err := svc.ListSellableLots(context.Background(), "D001", day("2025-06-01"))
	require.NoError(t, err)
	require.Len(t, out, 2)
	// earliest expiry first; zero-quantity and expired lots excluded
	assert.Equal(t, "L2", out[0].InventoryID)
	assert.Equal(t, "L1", out[1].InventoryID)
}

func TestSummarizeByDrug(t *testing.T) {
	lots := newStubLotRepo(
		model.Lot{InventoryID: "L1", DrugID: "D001", LotNumber: "A", ExpiryDate: day("2027-12-01"), Quantity: 50},
		model.Lot{InventoryID: "L2", DrugID: "D001", LotNumber: "B", ExpiryDate: day("2026-03-01"), Quantity: 5},
		model.Lot{InventoryID: "L3", DrugID: "GHOST", LotNumber: "X", ExpiryDate: day("2026-01-01"), Quantity: 7},
	)
	svc := NewInventoryService(lots, newStubDrugRepo(paracetamol()))

	out, err := svc.SummarizeByDrug(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)

	byID := make(map[string]dto.DrugStockSummary)
	for _, s := range out {
		byID[s.DrugID] = s
	}
	d1 := byID["D001"]
	assert.Equal(t, 55, d1.TotalQuantity)
	assert.Equal(t, "B", d1.EarliestLotNumber)
	assert.Equal(t, "2026-03-01", d1.EarliestExpiry)
	assert.Equal(t, "Tylenol (Paracetamol)", d1.DisplayName)

	// unknown drug degrades to its raw id, never an error
	ghost := byID["GHOST"]
	assert.Equal(t, "GHOST", ghost.DisplayName)
	assert.Equal(t, 7, ghost.TotalQuantity)
}

func TestSummarizeByDrugOrderStableOnNameTies(t *testing.T) {
	sameName := func(id string) model.Drug {
		return model.Drug{DrugID: id, TradeName: "Paramol", GenericName: "Paracetamol"}
	}
	svc := NewInventoryService(
		newStubLotRepo(
			model.Lot{InventoryID: "L1", DrugID: "D103", LotNumber: "A", ExpiryDate: day("2027-01-01"), Quantity: 1},
			model.Lot{InventoryID: "L2", DrugID: "D100", LotNumber: "A", ExpiryDate: day("2027-01-01"), Quantity: 2},
			model.Lot{InventoryID: "L3", DrugID: "D102", LotNumber: "A", ExpiryDate: day("2027-01-01"), Quantity: 3},
			model.Lot{InventoryID: "L4", DrugID: "D101", LotNumber: "A", ExpiryDate: day("2027-01-01"), Quantity: 4},
		),
		newStubDrugRepo(sameName("D103"), sameName("D100"), sameName("D102"), sameName("D101")),
	)
	ctx := context.Background()

	first, err := svc.SummarizeByDrug(ctx)
	require.NoError(t, err)
	require.Len(t, first, 4)
	for i, want := range []string{"D100", "D101", "D102", "D103"} {
		assert.Equal(t, want, first[i].DrugID)
	}

	for i := 0; i < 50; i++ {
		again, err := svc.SummarizeByDrug(ctx)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestDecrementLotTx(t *testing.T) {
	ctx := context.Background()
	line := func(inv, drug, lotNo string, qty int) dto.SaleItemRequest {
		return dto.SaleItemRequest{InventoryID: inv, DrugID: drug, LotNumber: lotNo, Quantity: qty, PricePerUnit: decimal.NewFromInt(5)}
	}

	t.Run("happy path decrements", func(t *testing.T) {
		lots := newStubLotRepo(model.Lot{InventoryID: "L1", DrugID: "D001", LotNumber: "A", ExpiryDate: day("2027-01-01"), Quantity: 10})
		svc := NewInventoryService(lots, newStubDrugRepo(paracetamol()))
		require.NoError(t, svc.DecrementLotTx(ctx, nil, line("L1", "D001", "A", 3)))
		assert.Equal(t, 7, lots.quantity("L1"))
	})

	t.Run("missing lot", func(t *testing.T) {
		svc := NewInventoryService(newStubLotRepo(), newStubDrugRepo(paracetamol()))
		err := svc.DecrementLotTx(ctx, nil, line("NOPE", "D001", "A", 1))
		var stockErr *InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, -1, stockErr.Available)
	})

	t.Run("drug or lot number mismatch", func(t *testing.T) {
		lots := newStubLotRepo(model.Lot{InventoryID: "L1", DrugID: "D001", LotNumber: "A", ExpiryDate: day("2027-01-01"), Quantity: 10})
		svc := NewInventoryService(lots, newStubDrugRepo(paracetamol()))
		err := svc.DecrementLotTx(ctx, nil, line("L1", "D002", "A", 1))
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, 10, lots.quantity("L1"))
	})

	t.Run("insufficient quantity leaves lot untouched", func(t *testing.T) {
		lots := newStubLotRepo(model.Lot{InventoryID: "L1", DrugID: "D001", LotNumber: "A", ExpiryDate: day("2027-01-01"), Quantity: 2})
		svc := NewInventoryService(lots, newStubDrugRepo(paracetamol()))
		err := svc.DecrementLotTx(ctx, nil, line("L1", "D001", "A", 3))
		var stockErr *InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, 3, stockErr.Requested)
		assert.Equal(t, 2, stockErr.Available)
		assert.Equal(t, 2, lots.quantity("L1"))
	})
}
