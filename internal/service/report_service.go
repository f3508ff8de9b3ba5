package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/wirunw/pms2025/internal/dto"
	"github.com/wirunw/pms2025/internal/model"
	"github.com/wirunw/pms2025/internal/repository"

	"github.com/shopspring/decimal"
)

const topMoversLimit = 5

// Reporting periods accepted by BuildReport.
const (
	PeriodDaily     = "daily"
	PeriodWeekly    = "weekly"
	PeriodMonthly   = "monthly"
	PeriodQuarterly = "quarterly"
	PeriodYearly    = "yearly"
)

// ReportService is the KPI aggregation engine. A report is a pure function of
// the ledger and inventory state at request time — nothing is persisted.
type ReportService interface {
	// BuildReport computes the KPI document for the period window containing
	// ref. An empty ref means "now".
	BuildReport(ctx context.Context, period, ref string) (*dto.Report, error)
}

// ReportOptions tunes the inventory-health thresholds. Now is injectable so
// reports are reproducible in tests; when nil it defaults to time.Now.
type ReportOptions struct {
	NearExpiryDays int
	SlowMovingDays int
	Now            func() time.Time
}

type reportService struct {
	sales      repository.SaleRepository
	lots       repository.LotRepository
	drugs      repository.DrugRepository
	classifier *RegulatoryClassifier
	opts       ReportOptions
}

func NewReportService(
	sales repository.SaleRepository,
	lots repository.LotRepository,
	drugs repository.DrugRepository,
	classifier *RegulatoryClassifier,
	opts ReportOptions,
) ReportService {
	if opts.NearExpiryDays <= 0 {
		opts.NearExpiryDays = 90
	}
	if opts.SlowMovingDays <= 0 {
		opts.SlowMovingDays = 90
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &reportService{sales: sales, lots: lots, drugs: drugs, classifier: classifier, opts: opts}
}

func (s *reportService) BuildReport(ctx context.Context, period, ref string) (*dto.Report, error) {
	window, err := s.resolveWindow(period, ref)
	if err != nil {
		return nil, err
	}

	lines, err := s.sales.LinesInWindow(ctx, window.start, window.end)
	if err != nil {
		return nil, err
	}
	formulary, err := s.drugs.All(ctx)
	if err != nil {
		return nil, err
	}

	report := &dto.Report{
		Period:    period,
		Label:     window.label,
		StartDate: window.start.Format(time.RFC3339),
		EndDate:   window.end.Format(time.RFC3339),
		Sales:     s.salesMetrics(lines, formulary),
		ThaiFDA:   s.regulatorySummary(lines, formulary),
	}

	health, err := s.inventoryHealth(ctx, formulary)
	if err != nil {
		return nil, err
	}
	report.Inventory = *health
	return report, nil
}

// ─── Window resolution ───────────────────────────────────────────────────────

type reportWindow struct {
	start time.Time
	end   time.Time
	label string
}

// reference date formats tried in order
var refLayouts = []string{time.RFC3339, "2006-01-02", "2006-01", "2006"}

func (s *reportService) resolveWindow(period, ref string) (*reportWindow, error) {
	at := s.opts.Now().UTC()
	if ref != "" {
		parsed, ok := parseReference(ref)
		if !ok {
			return nil, &InvalidPeriodError{Period: period, Reference: ref}
		}
		at = parsed
	}

	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)

	var start, next time.Time
	var label string
	switch period {
	case PeriodDaily:
		start, next = day, day.AddDate(0, 0, 1)
		label = start.Format("2006-01-02")
	case PeriodWeekly:
		// ISO weeks: Monday is day one.
		offset := (int(day.Weekday()) + 6) % 7
		start = day.AddDate(0, 0, -offset)
		next = start.AddDate(0, 0, 7)
		year, week := start.ISOWeek()
		label = fmt.Sprintf("%d-W%02d", year, week)
	case PeriodMonthly:
		start = time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, time.UTC)
		next = start.AddDate(0, 1, 0)
		label = start.Format("2006-01")
	case PeriodQuarterly:
		qm := time.Month((int(at.Month())-1)/3*3 + 1)
		start = time.Date(at.Year(), qm, 1, 0, 0, 0, 0, time.UTC)
		next = start.AddDate(0, 3, 0)
		label = fmt.Sprintf("%d-Q%d", at.Year(), (int(at.Month())-1)/3+1)
	case PeriodYearly:
		start = time.Date(at.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		next = start.AddDate(1, 0, 0)
		label = start.Format("2006")
	default:
		return nil, &InvalidPeriodError{Period: period, Reference: ref}
	}

	// Inclusive window: end is the last representable instant before the
	// next period starts.
	return &reportWindow{start: start, end: next.Add(-time.Nanosecond), label: label}, nil
}

func parseReference(ref string) (time.Time, bool) {
	for _, layout := range refLayouts {
		if t, err := time.Parse(layout, ref); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ─── Sales metrics ───────────────────────────────────────────────────────────

func (s *reportService) salesMetrics(lines []model.SaleLine, formulary map[string]model.Drug) dto.SalesMetrics {
	metrics := dto.SalesMetrics{
		TotalRevenue:  decimal.Zero,
		AverageTicket: decimal.Zero,
		TopProducts:   []dto.RevenueEntry{},
		TopCategories: []dto.RevenueEntry{},
	}

	saleIDs := make(map[string]struct{})
	members := make(map[string]struct{})
	products := newRanking()
	categories := newRanking()

	for i := range lines {
		line := &lines[i]
		lineRevenue := line.LineTotal()

		metrics.TotalRevenue = metrics.TotalRevenue.Add(lineRevenue)
		metrics.TotalUnitsSold += line.QuantitySold
		saleIDs[line.SaleID] = struct{}{}
		if line.MemberID != "" && line.MemberID != model.AnonymousMemberID {
			members[line.MemberID] = struct{}{}
		}

		productName := line.DrugID
		categoryName := "unclassified"
		if d, ok := formulary[line.DrugID]; ok {
			if d.GenericName != "" {
				productName = d.GenericName
			} else {
				productName = d.TradeName
			}
			if d.PharmaCategory != "" {
				categoryName = d.PharmaCategory
			}
		}
		products.add(productName, line.QuantitySold, lineRevenue)
		categories.add(categoryName, line.QuantitySold, lineRevenue)
	}

	metrics.TransactionCount = len(saleIDs)
	metrics.UniqueCustomers = len(members)
	if metrics.TransactionCount > 0 {
		metrics.AverageTicket = metrics.TotalRevenue.
			DivRound(decimal.NewFromInt(int64(metrics.TransactionCount)), 2)
	}
	metrics.TopProducts = products.top(topMoversLimit)
	metrics.TopCategories = categories.top(topMoversLimit)
	return metrics
}

// ranking accumulates revenue per key preserving first-seen order, so equal
// revenues rank deterministically.
type ranking struct {
	order   []string
	entries map[string]*dto.RevenueEntry
}

func newRanking() *ranking {
	return &ranking{entries: make(map[string]*dto.RevenueEntry)}
}

func (r *ranking) add(name string, qty int, revenue decimal.Decimal) {
	e, ok := r.entries[name]
	if !ok {
		e = &dto.RevenueEntry{Name: name, Revenue: decimal.Zero}
		r.entries[name] = e
		r.order = append(r.order, name)
	}
	e.Quantity += qty
	e.Revenue = e.Revenue.Add(revenue)
}

func (r *ranking) top(n int) []dto.RevenueEntry {
	out := make([]dto.RevenueEntry, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, *r.entries[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Revenue.GreaterThan(out[j].Revenue)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// ─── Inventory health ────────────────────────────────────────────────────────

func (s *reportService) inventoryHealth(ctx context.Context, formulary map[string]model.Drug) (*dto.InventoryHealth, error) {
	lots, err := s.lots.InStock(ctx)
	if err != nil {
		return nil, err
	}
	lastSales, err := s.sales.LastSaleDates(ctx)
	if err != nil {
		return nil, err
	}

	now := s.opts.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	health := &dto.InventoryHealth{
		LowStock:   []dto.LowStockItem{},
		NearExpiry: []dto.NearExpiryItem{},
		SlowMoving: []dto.SlowMovingItem{},
	}

	totals := make(map[string]int)
	for i := range lots {
		totals[lots[i].DrugID] += lots[i].Quantity
	}

	// Low stock is a formulary-wide view: a drug with a reorder threshold
	// and zero remaining lots still shows up.
	for _, d := range formulary {
		if d.MinStock > 0 && totals[d.DrugID] <= d.MinStock {
			health.LowStock = append(health.LowStock, dto.LowStockItem{
				DrugID:        d.DrugID,
				TradeName:     d.TradeName,
				TotalQuantity: totals[d.DrugID],
				MinStock:      d.MinStock,
			})
		}
	}
	// TradeName alone is not a total order (names can repeat across SKUs);
	// DrugID breaks ties so the report is reproducible.
	sort.Slice(health.LowStock, func(i, j int) bool {
		a, b := health.LowStock[i], health.LowStock[j]
		if a.TradeName != b.TradeName {
			return a.TradeName < b.TradeName
		}
		return a.DrugID < b.DrugID
	})

	for i := range lots {
		lot := &lots[i]
		days := int(lot.ExpiryDate.Sub(today).Hours() / 24)
		if days < 0 || days > s.opts.NearExpiryDays {
			continue
		}
		health.NearExpiry = append(health.NearExpiry, dto.NearExpiryItem{
			DrugID:        lot.DrugID,
			TradeName:     tradeNameOf(formulary, lot.DrugID),
			LotNumber:     lot.LotNumber,
			ExpiryDate:    lot.ExpiryDate.Format(dateLayout),
			DaysRemaining: days,
		})
	}
	sort.Slice(health.NearExpiry, func(i, j int) bool {
		a, b := health.NearExpiry[i], health.NearExpiry[j]
		if a.DaysRemaining != b.DaysRemaining {
			return a.DaysRemaining < b.DaysRemaining
		}
		if a.DrugID != b.DrugID {
			return a.DrugID < b.DrugID
		}
		return a.LotNumber < b.LotNumber
	})

	// Slow movers: stocked drugs that have not sold within the threshold.
	// Never-sold drugs come first, then the stalest sellers.
	for drugID, qty := range totals {
		if qty == 0 {
			continue
		}
		item := dto.SlowMovingItem{
			DrugID:        drugID,
			TradeName:     tradeNameOf(formulary, drugID),
			TotalQuantity: qty,
		}
		if last, ok := lastSales[drugID]; ok {
			days := int(today.Sub(last.UTC()).Hours() / 24)
			if days <= s.opts.SlowMovingDays {
				continue
			}
			lastStr := last.UTC().Format(time.RFC3339)
			item.LastSaleDate = &lastStr
			item.DaysSinceSale = &days
		}
		health.SlowMoving = append(health.SlowMoving, item)
	}
	sort.Slice(health.SlowMoving, func(i, j int) bool {
		a, b := health.SlowMoving[i], health.SlowMoving[j]
		if (a.DaysSinceSale == nil) != (b.DaysSinceSale == nil) {
			return a.DaysSinceSale == nil
		}
		if a.DaysSinceSale != nil && *a.DaysSinceSale != *b.DaysSinceSale {
			return *a.DaysSinceSale > *b.DaysSinceSale
		}
		if a.TradeName != b.TradeName {
			return a.TradeName < b.TradeName
		}
		return a.DrugID < b.DrugID
	})

	return health, nil
}

func tradeNameOf(formulary map[string]model.Drug, drugID string) string {
	if d, ok := formulary[drugID]; ok {
		return d.TradeName
	}
	return drugID
}

// ─── Regulatory summary ──────────────────────────────────────────────────────

func (s *reportService) regulatorySummary(lines []model.SaleLine, formulary map[string]model.Drug) dto.RegulatorySummary {
	summary := dto.RegulatorySummary{
		Categories: []dto.RegulatoryCategory{},
		Flagged:    []dto.FlaggedLine{},
	}

	type catAgg struct {
		entry   dto.RegulatoryCategory
		saleIDs map[string]struct{}
	}
	var order []string
	byCategory := make(map[string]*catAgg)

	for i := range lines {
		line := &lines[i]
		drug, ok := formulary[line.DrugID]
		if !ok {
			continue
		}
		class := s.classifier.Classify(drug.LegalCategory)
		if class == "" {
			continue
		}
		lineRevenue := line.LineTotal()

		agg, ok := byCategory[drug.LegalCategory]
		if !ok {
			agg = &catAgg{
				entry: dto.RegulatoryCategory{
					LegalCategory:  drug.LegalCategory,
					Classification: class,
					Revenue:        decimal.Zero,
				},
				saleIDs: make(map[string]struct{}),
			}
			byCategory[drug.LegalCategory] = agg
			order = append(order, drug.LegalCategory)
		}
		agg.saleIDs[line.SaleID] = struct{}{}
		agg.entry.Quantity += line.QuantitySold
		agg.entry.Revenue = agg.entry.Revenue.Add(lineRevenue)

		summary.Flagged = append(summary.Flagged, dto.FlaggedLine{
			SaleID:         line.SaleID,
			SaleDate:       line.SaleDate.Format(time.RFC3339),
			DrugID:         line.DrugID,
			TradeName:      drug.TradeName,
			LegalCategory:  drug.LegalCategory,
			Classification: class,
			Quantity:       line.QuantitySold,
			Revenue:        lineRevenue,
			Pharmacist:     line.Pharmacist,
		})
	}

	for _, cat := range order {
		agg := byCategory[cat]
		agg.entry.Transactions = len(agg.saleIDs)
		summary.Categories = append(summary.Categories, agg.entry)
	}
	return summary
}
