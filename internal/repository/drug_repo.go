package repository

import (
	"context"

	"github.com/wirunw/pms2025/internal/model"

	"gorm.io/gorm"
)

// DrugRepository is the data access contract for the formulary catalog.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory stubs.
type DrugRepository interface {
	Create(ctx context.Context, d *model.Drug) error
	FindByDrugID(ctx context.Context, drugID string) (*model.Drug, error)
	List(ctx context.Context) ([]model.Drug, error)
	Search(ctx context.Context, term string) ([]model.Drug, error)
	// FindByDrugIDs resolves a set of join keys in one query; unknown IDs are
	// simply absent from the result.
	FindByDrugIDs(ctx context.Context, drugIDs []string) (map[string]model.Drug, error)
	All(ctx context.Context) (map[string]model.Drug, error)
	Count(ctx context.Context) (int64, error)
}

type drugRepo struct{ db *gorm.DB }

func NewDrugRepository(db *gorm.DB) DrugRepository { return &drugRepo{db: db} }

func (r *drugRepo) Create(ctx context.Context, d *model.Drug) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *drugRepo) FindByDrugID(ctx context.Context, drugID string) (*model.Drug, error) {
	var d model.Drug
	err := r.db.WithContext(ctx).Where("drug_id = ?", drugID).First(&d).Error
	return &d, err
}

func (r *drugRepo) List(ctx context.Context) ([]model.Drug, error) {
	var drugs []model.Drug
	err := r.db.WithContext(ctx).Order("trade_name ASC").Find(&drugs).Error
	return drugs, err
}

func (r *drugRepo) Search(ctx context.Context, term string) ([]model.Drug, error) {
	var drugs []model.Drug
	pattern := "%" + term + "%"
	err := r.db.WithContext(ctx).
		Where("trade_name ILIKE ? OR generic_name ILIKE ?", pattern, pattern).
		Order("trade_name ASC").
		Find(&drugs).Error
	return drugs, err
}

func (r *drugRepo) FindByDrugIDs(ctx context.Context, drugIDs []string) (map[string]model.Drug, error) {
	var drugs []model.Drug
	if err := r.db.WithContext(ctx).Where("drug_id IN ?", drugIDs).Find(&drugs).Error; err != nil {
		return nil, err
	}
	out := make(map[string]model.Drug, len(drugs))
	for _, d := range drugs {
		out[d.DrugID] = d
	}
	return out, nil
}

func (r *drugRepo) All(ctx context.Context) (map[string]model.Drug, error) {
	var drugs []model.Drug
	if err := r.db.WithContext(ctx).Find(&drugs).Error; err != nil {
		return nil, err
	}
	out := make(map[string]model.Drug, len(drugs))
	for _, d := range drugs {
		out[d.DrugID] = d
	}
	return out, nil
}

func (r *drugRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Drug{}).Count(&n).Error
	return n, err
}
