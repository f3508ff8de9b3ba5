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

func sampleReport() *dto.Report {
	return &dto.Report{
		Period:    PeriodMonthly,
		Label:     "2024-01",
		StartDate: "2024-01-01T00:00:00Z",
		EndDate:   "2024-01-31T23:59:59Z",
		Sales: dto.SalesMetrics{
			TotalRevenue:     decimal.NewFromFloat(1234.5),
			TransactionCount: 7,
			AverageTicket:    decimal.NewFromFloat(176.36),
			UniqueCustomers:  3,
			TotalUnitsSold:   42,
			TopProducts: []dto.RevenueEntry{
				{Name: "Paracetamol", Quantity: 20, Revenue: decimal.NewFromInt(100)},
			},
			TopCategories: []dto.RevenueEntry{},
		},
		Inventory: dto.InventoryHealth{
			LowStock:   []dto.LowStockItem{},
			NearExpiry: []dto.NearExpiryItem{},
			SlowMoving: []dto.SlowMovingItem{},
		},
		ThaiFDA: dto.RegulatorySummary{
			Categories: []dto.RegulatoryCategory{
				{LegalCategory: "ยาอันตราย", Classification: ClassDangerous, Transactions: 2, Quantity: 4, Revenue: decimal.NewFromInt(40)},
			},
			Flagged: []dto.FlaggedLine{},
		},
	}
}

func newExportFixture() ExportService {
	return NewExportService(&stubMemberRepo{}, &stubStaffRepo{}, newStubLotRepo(), newStubSaleRepo(), newStubDrugRepo())
}

func TestReportRowsAllSectionsByDefault(t *testing.T) {
	rows, err := newExportFixture().ReportRows(sampleReport(), nil)
	require.NoError(t, err)

	flat := map[string]bool{}
	for _, row := range rows {
		if len(row) == 1 {
			flat[row[0]] = true
		}
	}
	assert.True(t, flat["== Sales =="])
	assert.True(t, flat["== Inventory =="])
	assert.True(t, flat["== Thai FDA =="])
}

func TestReportRowsSectionSubset(t *testing.T) {
	rows, err := newExportFixture().ReportRows(sampleReport(), []string{dto.SectionThaiFDA})
	require.NoError(t, err)

	var headings []string
	for _, row := range rows {
		if len(row) == 1 {
			headings = append(headings, row[0])
		}
	}
	assert.Equal(t, []string{"== Thai FDA =="}, headings)
}

func TestReportRowsMoneyHasTwoDecimals(t *testing.T) {
	rows, err := newExportFixture().ReportRows(sampleReport(), []string{dto.SectionSales})
	require.NoError(t, err)

	var revenue, ticket string
	for _, row := range rows {
		if len(row) == 2 && row[0] == "Total Revenue" {
			revenue = row[1]
		}
		if len(row) == 2 && row[0] == "Average Ticket" {
			ticket = row[1]
		}
	}
	assert.Equal(t, "1234.50", revenue)
	assert.Equal(t, "176.36", ticket)
}

func TestReportRowsUnknownSection(t *testing.T) {
	_, err := newExportFixture().ReportRows(sampleReport(), []string{"bogus"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestTableRows(t *testing.T) {
	members := &stubMemberRepo{}
	allergies := `["penicillin","aspirin"]`
	require.NoError(t, members.Create(context.Background(), &model.Member{
		MemberID: "M1", FullName: "Malee", Allergies: &allergies,
	}))
	lots := newStubLotRepo(model.Lot{
		InventoryID: "L1", DrugID: "D001", LotNumber: "A",
		ExpiryDate: day("2026-01-01"), Quantity: 3,
		CostPrice: decimal.NewFromFloat(1.5), SellingPrice: decimal.NewFromInt(2),
	})
	svc := NewExportService(members, &stubStaffRepo{}, lots, newStubSaleRepo(), newStubDrugRepo(paracetamol()))
	ctx := context.Background()

	t.Run("members", func(t *testing.T) {
		rows, err := svc.TableRows(ctx, TableMembers)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Malee", rows[1][1])
		assert.Equal(t, "penicillin, aspirin", rows[1][3])
	})

	t.Run("inventory", func(t *testing.T) {
		rows, err := svc.TableRows(ctx, TableInventory)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "1.50", rows[1][5])
		assert.Equal(t, "2.00", rows[1][6])
	})

	t.Run("unknown table", func(t *testing.T) {
		_, err := svc.TableRows(ctx, "nope")
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
	})
}
