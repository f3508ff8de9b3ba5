package repository

import (
	"context"

	"github.com/wirunw/pms2025/internal/model"

	"gorm.io/gorm"
)

type StaffRepository interface {
	Create(ctx context.Context, s *model.Staff) error
	FindByStaffID(ctx context.Context, staffID string) (*model.Staff, error)
	List(ctx context.Context) ([]model.Staff, error)
}

type staffRepo struct{ db *gorm.DB }

func NewStaffRepository(db *gorm.DB) StaffRepository { return &staffRepo{db: db} }

func (r *staffRepo) Create(ctx context.Context, s *model.Staff) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *staffRepo) FindByStaffID(ctx context.Context, staffID string) (*model.Staff, error) {
	var s model.Staff
	err := r.db.WithContext(ctx).Where("staff_id = ?", staffID).First(&s).Error
	return &s, err
}

func (r *staffRepo) List(ctx context.Context) ([]model.Staff, error) {
	var staff []model.Staff
	err := r.db.WithContext(ctx).Order("full_name ASC").Find(&staff).Error
	return staff, err
}
