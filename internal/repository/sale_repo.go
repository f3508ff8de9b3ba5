package repository

import (
	"context"
	"time"

	"github.com/wirunw/pms2025/internal/model"

	"gorm.io/gorm"
)

// SaleRepository is the data access contract for the append-only sale ledger.
// Lines are only ever inserted, inside the sale transaction.
type SaleRepository interface {
	CreateLineTx(tx *gorm.DB, line *model.SaleLine) error
	// LinesInWindow returns all sale lines with saleDate in [start, end].
	LinesInWindow(ctx context.Context, start, end time.Time) ([]model.SaleLine, error)
	LinesBySaleID(ctx context.Context, saleID string) ([]model.SaleLine, error)
	ListByMember(ctx context.Context, memberID string) ([]model.SaleLine, error)
	Recent(ctx context.Context, limit int) ([]model.SaleLine, error)
	// LastSaleDates maps each drugID that has ever sold to its most recent
	// sale date — input to the slow-moving view.
	LastSaleDates(ctx context.Context) (map[string]time.Time, error)
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) CreateLineTx(tx *gorm.DB, line *model.SaleLine) error {
	return tx.Create(line).Error
}

func (r *saleRepo) LinesInWindow(ctx context.Context, start, end time.Time) ([]model.SaleLine, error) {
	var lines []model.SaleLine
	err := r.db.WithContext(ctx).
		Where("sale_date >= ? AND sale_date <= ?", start, end).
		Order("sale_date ASC").
		Find(&lines).Error
	return lines, err
}

func (r *saleRepo) LinesBySaleID(ctx context.Context, saleID string) ([]model.SaleLine, error) {
	var lines []model.SaleLine
	err := r.db.WithContext(ctx).Where("sale_id = ?", saleID).Find(&lines).Error
	return lines, err
}

func (r *saleRepo) ListByMember(ctx context.Context, memberID string) ([]model.SaleLine, error) {
	var lines []model.SaleLine
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("sale_date DESC").
		Find(&lines).Error
	return lines, err
}

func (r *saleRepo) Recent(ctx context.Context, limit int) ([]model.SaleLine, error) {
	var lines []model.SaleLine
	err := r.db.WithContext(ctx).Order("sale_date DESC").Limit(limit).Find(&lines).Error
	return lines, err
}

func (r *saleRepo) LastSaleDates(ctx context.Context) (map[string]time.Time, error) {
	type row struct {
		DrugID   string
		LastSale time.Time
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.SaleLine{}).
		Select("drug_id, MAX(sale_date) AS last_sale").
		Group("drug_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]time.Time, len(rows))
	for _, rw := range rows {
		out[rw.DrugID] = rw.LastSale
	}
	return out, nil
}
