package repository

import (
	"context"
	"time"

	"github.com/wirunw/pms2025/internal/model"

	"gorm.io/gorm"
)

// LotRepository is the data access contract for inventory lots.
type LotRepository interface {
	Create(ctx context.Context, l *model.Lot) error
	FindByInventoryID(ctx context.Context, inventoryID string) (*model.Lot, error)
	// SellableByDrug returns lots with quantity > 0 and expiry >= asOf,
	// earliest-expiring first (the FEFO recommendation order).
	SellableByDrug(ctx context.Context, drugID string, asOf time.Time) ([]model.Lot, error)
	// DecrementTx atomically subtracts qty from a lot inside a transaction.
	// Returns the number of affected rows: 0 means the lot was missing or the
	// decrement would have driven quantity negative, and nothing was applied.
	DecrementTx(tx *gorm.DB, inventoryID string, qty int) (int64, error)
	// InStock returns all lots with quantity > 0.
	InStock(ctx context.Context) ([]model.Lot, error)
	List(ctx context.Context) ([]model.Lot, error)
	FindByBarcode(ctx context.Context, barcode string) (*model.Lot, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type lotRepo struct{ db *gorm.DB }

func NewLotRepository(db *gorm.DB) LotRepository { return &lotRepo{db: db} }

func (r *lotRepo) DB() *gorm.DB { return r.db }

func (r *lotRepo) Create(ctx context.Context, l *model.Lot) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *lotRepo) FindByInventoryID(ctx context.Context, inventoryID string) (*model.Lot, error) {
	var l model.Lot
	err := r.db.WithContext(ctx).Where("inventory_id = ?", inventoryID).First(&l).Error
	return &l, err
}

func (r *lotRepo) SellableByDrug(ctx context.Context, drugID string, asOf time.Time) ([]model.Lot, error) {
	var lots []model.Lot
	err := r.db.WithContext(ctx).
		Where("drug_id = ? AND quantity > 0 AND expiry_date >= ?", drugID, asOf).
		Order("expiry_date ASC").
		Find(&lots).Error
	return lots, err
}

func (r *lotRepo) DecrementTx(tx *gorm.DB, inventoryID string, qty int) (int64, error) {
	// Compare-and-decrement: the WHERE guard makes concurrent sales against
	// the same lot serialize at the row level — quantity can never go
	// negative regardless of interleaving.
	res := tx.Model(&model.Lot{}).
		Where("inventory_id = ? AND quantity >= ?", inventoryID, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	return res.RowsAffected, res.Error
}

func (r *lotRepo) InStock(ctx context.Context) ([]model.Lot, error) {
	var lots []model.Lot
	err := r.db.WithContext(ctx).Where("quantity > 0").Find(&lots).Error
	return lots, err
}

func (r *lotRepo) List(ctx context.Context) ([]model.Lot, error) {
	var lots []model.Lot
	err := r.db.WithContext(ctx).Order("drug_id ASC, expiry_date ASC").Find(&lots).Error
	return lots, err
}

func (r *lotRepo) FindByBarcode(ctx context.Context, barcode string) (*model.Lot, error) {
	var l model.Lot
	err := r.db.WithContext(ctx).Where("barcode = ? AND quantity > 0", barcode).
		Order("expiry_date ASC").First(&l).Error
	return &l, err
}
