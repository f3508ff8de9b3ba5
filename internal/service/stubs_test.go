package service

// stubs_test.go
// In-memory repository stubs shared by the service tests. DB() returns nil,
// which makes runTx execute its callback without a real transaction.

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/wirunw/pms2025/internal/model"
	"github.com/wirunw/pms2025/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── DrugRepository stub ──────────────────────────────────────────────────────

type stubDrugRepo struct {
	drugs map[string]model.Drug
}

func newStubDrugRepo(drugs ...model.Drug) *stubDrugRepo {
	r := &stubDrugRepo{drugs: make(map[string]model.Drug)}
	for _, d := range drugs {
		r.drugs[d.DrugID] = d
	}
	return r
}

func (r *stubDrugRepo) Create(_ context.Context, d *model.Drug) error {
	r.drugs[d.DrugID] = *d
	return nil
}

func (r *stubDrugRepo) FindByDrugID(_ context.Context, drugID string) (*model.Drug, error) {
	d, ok := r.drugs[drugID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &d, nil
}

func (r *stubDrugRepo) List(_ context.Context) ([]model.Drug, error) {
	out := make([]model.Drug, 0, len(r.drugs))
	for _, d := range r.drugs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DrugID < out[j].DrugID })
	return out, nil
}

func (r *stubDrugRepo) Search(_ context.Context, term string) ([]model.Drug, error) {
	var out []model.Drug
	for _, d := range r.drugs {
		if strings.Contains(strings.ToLower(d.TradeName), strings.ToLower(term)) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *stubDrugRepo) FindByDrugIDs(_ context.Context, drugIDs []string) (map[string]model.Drug, error) {
	out := make(map[string]model.Drug)
	for _, id := range drugIDs {
		if d, ok := r.drugs[id]; ok {
			out[id] = d
		}
	}
	return out, nil
}

func (r *stubDrugRepo) All(_ context.Context) (map[string]model.Drug, error) {
	out := make(map[string]model.Drug, len(r.drugs))
	for id, d := range r.drugs {
		out[id] = d
	}
	return out, nil
}

func (r *stubDrugRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.drugs)), nil
}

var _ repository.DrugRepository = (*stubDrugRepo)(nil)

// ── LotRepository stub ───────────────────────────────────────────────────────

type stubLotRepo struct {
	lots map[string]*model.Lot
}

func newStubLotRepo(lots ...model.Lot) *stubLotRepo {
	r := &stubLotRepo{lots: make(map[string]*model.Lot)}
	for i := range lots {
		cloned := lots[i]
		r.lots[cloned.InventoryID] = &cloned
	}
	return r
}

func (r *stubLotRepo) Create(_ context.Context, l *model.Lot) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	cloned := *l
	r.lots[l.InventoryID] = &cloned
	return nil
}

func (r *stubLotRepo) FindByInventoryID(_ context.Context, inventoryID string) (*model.Lot, error) {
	l, ok := r.lots[inventoryID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cloned := *l
	return &cloned, nil
}

func (r *stubLotRepo) SellableByDrug(_ context.Context, drugID string, asOf time.Time) ([]model.Lot, error) {
	var out []model.Lot
	for _, l := range r.lots {
		if l.DrugID == drugID && l.Quantity > 0 && !l.ExpiryDate.Before(asOf) {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpiryDate.Before(out[j].ExpiryDate) })
	return out, nil
}

func (r *stubLotRepo) DecrementTx(_ *gorm.DB, inventoryID string, qty int) (int64, error) {
	l, ok := r.lots[inventoryID]
	if !ok || l.Quantity < qty {
		return 0, nil
	}
	l.Quantity -= qty
	return 1, nil
}

func (r *stubLotRepo) InStock(_ context.Context) ([]model.Lot, error) {
	var out []model.Lot
	for _, l := range r.lots {
		if l.Quantity > 0 {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InventoryID < out[j].InventoryID })
	return out, nil
}

func (r *stubLotRepo) List(_ context.Context) ([]model.Lot, error) {
	var out []model.Lot
	for _, l := range r.lots {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InventoryID < out[j].InventoryID })
	return out, nil
}

func (r *stubLotRepo) FindByBarcode(_ context.Context, barcode string) (*model.Lot, error) {
	for _, l := range r.lots {
		if l.Barcode != nil && *l.Barcode == barcode {
			cloned := *l
			return &cloned, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubLotRepo) DB() *gorm.DB { return nil }

func (r *stubLotRepo) quantity(inventoryID string) int {
	if l, ok := r.lots[inventoryID]; ok {
		return l.Quantity
	}
	return -1
}

var _ repository.LotRepository = (*stubLotRepo)(nil)

// ── SaleRepository stub ──────────────────────────────────────────────────────

type stubSaleRepo struct {
	lines []model.SaleLine
}

func newStubSaleRepo(lines ...model.SaleLine) *stubSaleRepo {
	return &stubSaleRepo{lines: lines}
}

func (r *stubSaleRepo) CreateLineTx(_ *gorm.DB, line *model.SaleLine) error {
	if line.ID == uuid.Nil {
		line.ID = uuid.New()
	}
	r.lines = append(r.lines, *line)
	return nil
}

func (r *stubSaleRepo) LinesInWindow(_ context.Context, start, end time.Time) ([]model.SaleLine, error) {
	var out []model.SaleLine
	for _, l := range r.lines {
		if !l.SaleDate.Before(start) && !l.SaleDate.After(end) {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SaleDate.Before(out[j].SaleDate) })
	return out, nil
}

func (r *stubSaleRepo) LinesBySaleID(_ context.Context, saleID string) ([]model.SaleLine, error) {
	var out []model.SaleLine
	for _, l := range r.lines {
		if l.SaleID == saleID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *stubSaleRepo) ListByMember(_ context.Context, memberID string) ([]model.SaleLine, error) {
	var out []model.SaleLine
	for _, l := range r.lines {
		if l.MemberID == memberID {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SaleDate.After(out[j].SaleDate) })
	return out, nil
}

func (r *stubSaleRepo) Recent(_ context.Context, limit int) ([]model.SaleLine, error) {
	out := make([]model.SaleLine, len(r.lines))
	copy(out, r.lines)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SaleDate.After(out[j].SaleDate) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubSaleRepo) LastSaleDates(_ context.Context) (map[string]time.Time, error) {
	out := make(map[string]time.Time)
	for _, l := range r.lines {
		if prev, ok := out[l.DrugID]; !ok || l.SaleDate.After(prev) {
			out[l.DrugID] = l.SaleDate
		}
	}
	return out, nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// ── MemberRepository stub ────────────────────────────────────────────────────

type stubMemberRepo struct {
	members []model.Member
}

func (r *stubMemberRepo) Create(_ context.Context, m *model.Member) error {
	r.members = append(r.members, *m)
	return nil
}

func (r *stubMemberRepo) FindByMemberID(_ context.Context, memberID string) (*model.Member, error) {
	for i := range r.members {
		if r.members[i].MemberID == memberID {
			return &r.members[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubMemberRepo) List(_ context.Context) ([]model.Member, error) {
	return append([]model.Member{}, r.members...), nil
}

func (r *stubMemberRepo) Search(_ context.Context, term string) ([]model.Member, error) {
	var out []model.Member
	for _, m := range r.members {
		if strings.Contains(m.FullName, term) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMemberRepo) FindByMemberIDs(_ context.Context, ids []string) (map[string]model.Member, error) {
	out := make(map[string]model.Member)
	for _, m := range r.members {
		for _, id := range ids {
			if m.MemberID == id {
				out[id] = m
			}
		}
	}
	return out, nil
}

func (r *stubMemberRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.members)), nil
}

var _ repository.MemberRepository = (*stubMemberRepo)(nil)

// ── StaffRepository stub ─────────────────────────────────────────────────────

type stubStaffRepo struct {
	staff []model.Staff
}

func (r *stubStaffRepo) Create(_ context.Context, s *model.Staff) error {
	r.staff = append(r.staff, *s)
	return nil
}

func (r *stubStaffRepo) FindByStaffID(_ context.Context, staffID string) (*model.Staff, error) {
	for i := range r.staff {
		if r.staff[i].StaffID == staffID {
			return &r.staff[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubStaffRepo) List(_ context.Context) ([]model.Staff, error) {
	return append([]model.Staff{}, r.staff...), nil
}

var _ repository.StaffRepository = (*stubStaffRepo)(nil)
