package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/wirunw/pms2025/internal/dto"
	"github.com/wirunw/pms2025/internal/repository"
)

// Raw table names accepted by TableRows.
const (
	TableMembers   = "members"
	TableStaff     = "staff"
	TableInventory = "inventory"
	TableSales     = "sales"
	TableFormulary = "formulary"
)

// ExportService flattens reports and raw tables into ordered string rows.
// The rows are format-neutral: the HTTP layer renders them as CSV or PDF.
type ExportService interface {
	// ReportRows serializes the requested report sections. A nil/empty
	// sections slice means all sections, in stable order.
	ReportRows(report *dto.Report, sections []string) ([][]string, error)
	// TableRows dumps one raw table, header row first.
	TableRows(ctx context.Context, table string) ([][]string, error)
}

type exportService struct {
	members repository.MemberRepository
	staff   repository.StaffRepository
	lots    repository.LotRepository
	sales   repository.SaleRepository
	drugs   repository.DrugRepository
}

func NewExportService(
	members repository.MemberRepository,
	staff repository.StaffRepository,
	lots repository.LotRepository,
	sales repository.SaleRepository,
	drugs repository.DrugRepository,
) ExportService {
	return &exportService{members: members, staff: staff, lots: lots, sales: sales, drugs: drugs}
}

// allSections is the default serialization order.
var allSections = []string{dto.SectionSales, dto.SectionInventory, dto.SectionThaiFDA}

func (s *exportService) ReportRows(report *dto.Report, sections []string) ([][]string, error) {
	if len(sections) == 0 {
		sections = allSections
	}
	for _, sec := range sections {
		switch sec {
		case dto.SectionSales, dto.SectionInventory, dto.SectionThaiFDA:
		default:
			return nil, newValidationError("unknown report section %q", sec)
		}
	}

	rows := [][]string{
		{"Report", report.Label},
		{"Period", report.Period},
		{"Start", report.StartDate},
		{"End", report.EndDate},
		{},
	}
	for _, sec := range sections {
		switch sec {
		case dto.SectionSales:
			rows = append(rows, salesRows(&report.Sales)...)
		case dto.SectionInventory:
			rows = append(rows, inventoryRows(&report.Inventory)...)
		case dto.SectionThaiFDA:
			rows = append(rows, regulatoryRows(&report.ThaiFDA)...)
		}
	}
	return rows, nil
}

func salesRows(m *dto.SalesMetrics) [][]string {
	rows := [][]string{
		{"== Sales =="},
		{"Total Revenue", m.TotalRevenue.StringFixed(2)},
		{"Transactions", strconv.Itoa(m.TransactionCount)},
		{"Average Ticket", m.AverageTicket.StringFixed(2)},
		{"Unique Customers", strconv.Itoa(m.UniqueCustomers)},
		{"Units Sold", strconv.Itoa(m.TotalUnitsSold)},
		{},
		{"Top Products", "Quantity", "Revenue"},
	}
	for _, e := range m.TopProducts {
		rows = append(rows, []string{e.Name, strconv.Itoa(e.Quantity), e.Revenue.StringFixed(2)})
	}
	rows = append(rows, []string{}, []string{"Top Categories", "Quantity", "Revenue"})
	for _, e := range m.TopCategories {
		rows = append(rows, []string{e.Name, strconv.Itoa(e.Quantity), e.Revenue.StringFixed(2)})
	}
	rows = append(rows, []string{})
	return rows
}

func inventoryRows(h *dto.InventoryHealth) [][]string {
	rows := [][]string{
		{"== Inventory =="},
		{"Low Stock", "Drug ID", "Quantity", "Min Stock"},
	}
	for _, item := range h.LowStock {
		rows = append(rows, []string{
			item.TradeName, item.DrugID,
			strconv.Itoa(item.TotalQuantity), strconv.Itoa(item.MinStock),
		})
	}
	rows = append(rows, []string{}, []string{"Near Expiry", "Drug ID", "Lot", "Expiry", "Days Left"})
	for _, item := range h.NearExpiry {
		rows = append(rows, []string{
			item.TradeName, item.DrugID, item.LotNumber,
			item.ExpiryDate, strconv.Itoa(item.DaysRemaining),
		})
	}
	rows = append(rows, []string{}, []string{"Slow Moving", "Drug ID", "Quantity", "Last Sale", "Days Since"})
	for _, item := range h.SlowMoving {
		lastSale, daysSince := "never", ""
		if item.LastSaleDate != nil {
			lastSale = *item.LastSaleDate
		}
		if item.DaysSinceSale != nil {
			daysSince = strconv.Itoa(*item.DaysSinceSale)
		}
		rows = append(rows, []string{
			item.TradeName, item.DrugID,
			strconv.Itoa(item.TotalQuantity), lastSale, daysSince,
		})
	}
	rows = append(rows, []string{})
	return rows
}

func regulatoryRows(r *dto.RegulatorySummary) [][]string {
	rows := [][]string{
		{"== Thai FDA =="},
		{"Legal Category", "Class", "Transactions", "Quantity", "Revenue"},
	}
	for _, cat := range r.Categories {
		rows = append(rows, []string{
			cat.LegalCategory, cat.Classification,
			strconv.Itoa(cat.Transactions), strconv.Itoa(cat.Quantity),
			cat.Revenue.StringFixed(2),
		})
	}
	rows = append(rows, []string{}, []string{
		"Sale ID", "Date", "Drug", "Legal Category", "Class", "Quantity", "Revenue", "Pharmacist",
	})
	for _, line := range r.Flagged {
		rows = append(rows, []string{
			line.SaleID, line.SaleDate, line.TradeName, line.LegalCategory,
			line.Classification, strconv.Itoa(line.Quantity),
			line.Revenue.StringFixed(2), line.Pharmacist,
		})
	}
	rows = append(rows, []string{})
	return rows
}

func (s *exportService) TableRows(ctx context.Context, table string) ([][]string, error) {
	switch table {
	case TableMembers:
		return s.memberRows(ctx)
	case TableStaff:
		return s.staffRows(ctx)
	case TableInventory:
		return s.inventoryTableRows(ctx)
	case TableSales:
		return s.salesTableRows(ctx)
	case TableFormulary:
		return s.formularyRows(ctx)
	default:
		return nil, newValidationError("unknown export table %q", table)
	}
}

func (s *exportService) memberRows(ctx context.Context) ([][]string, error) {
	members, err := s.members.List(ctx)
	if err != nil {
		return nil, err
	}
	rows := [][]string{{"Member ID", "Full Name", "Phone", "Allergies", "Chronic Disease", "Registered"}}
	for i := range members {
		m := &members[i]
		rows = append(rows, []string{
			m.MemberID, m.FullName, deref(m.Phone),
			allergiesText(m.Allergies), deref(m.Disease),
			m.DateCreated.Format(time.RFC3339),
		})
	}
	return rows, nil
}

// allergiesText renders the JSON string array as a comma list; malformed
// values pass through untouched.
func allergiesText(raw *string) string {
	if raw == nil || *raw == "" {
		return ""
	}
	var items []string
	if err := json.Unmarshal([]byte(*raw), &items); err != nil {
		return *raw
	}
	out := ""
	for i, item := range items {
		if i > 0 {
			out += ", "
		}
		out += item
	}
	return out
}

func (s *exportService) staffRows(ctx context.Context) ([][]string, error) {
	staff, err := s.staff.List(ctx)
	if err != nil {
		return nil, err
	}
	rows := [][]string{{"Staff ID", "Full Name", "License", "Position", "Phone", "Email"}}
	for i := range staff {
		st := &staff[i]
		rows = append(rows, []string{
			st.StaffID, st.FullName, deref(st.LicenseNumber),
			deref(st.Position), deref(st.Phone), deref(st.Email),
		})
	}
	return rows, nil
}

func (s *exportService) inventoryTableRows(ctx context.Context) ([][]string, error) {
	lots, err := s.lots.List(ctx)
	if err != nil {
		return nil, err
	}
	rows := [][]string{{"Inventory ID", "Drug ID", "Lot", "Expiry", "Quantity", "Cost", "Price", "Received"}}
	for i := range lots {
		l := &lots[i]
		rows = append(rows, []string{
			l.InventoryID, l.DrugID, l.LotNumber,
			l.ExpiryDate.Format(dateLayout), strconv.Itoa(l.Quantity),
			l.CostPrice.StringFixed(2), l.SellingPrice.StringFixed(2),
			l.DateReceived.Format(time.RFC3339),
		})
	}
	return rows, nil
}

func (s *exportService) salesTableRows(ctx context.Context) ([][]string, error) {
	lines, err := s.sales.Recent(ctx, 10000)
	if err != nil {
		return nil, err
	}
	rows := [][]string{{"Sale ID", "Date", "Member", "Pharmacist", "Drug ID", "Lot", "Quantity", "Unit Price", "Line Total"}}
	for i := range lines {
		l := &lines[i]
		rows = append(rows, []string{
			l.SaleID, l.SaleDate.Format(time.RFC3339), l.MemberID, l.Pharmacist,
			l.DrugID, l.LotNumber, strconv.Itoa(l.QuantitySold),
			l.PricePerUnit.StringFixed(2), l.LineTotal().StringFixed(2),
		})
	}
	return rows, nil
}

func (s *exportService) formularyRows(ctx context.Context) ([][]string, error) {
	drugs, err := s.drugs.List(ctx)
	if err != nil {
		return nil, err
	}
	rows := [][]string{{"Drug ID", "Trade Name", "Generic Name", "Legal Category", "Pharma Category", "Strength", "Unit", "Min Stock", "Max Stock"}}
	for i := range drugs {
		d := &drugs[i]
		rows = append(rows, []string{
			d.DrugID, d.TradeName, d.GenericName, d.LegalCategory, d.PharmaCategory,
			d.Strength, d.Unit, strconv.Itoa(d.MinStock), strconv.Itoa(d.MaxStock),
		})
	}
	return rows, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
