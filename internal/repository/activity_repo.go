package repository

import (
	"context"

	"github.com/wirunw/pms2025/internal/model"

	"gorm.io/gorm"
)

type ActivityRepository interface {
	Create(ctx context.Context, e *model.ActivityLog) error
	Recent(ctx context.Context, limit int) ([]model.ActivityLog, error)
}

type activityRepo struct{ db *gorm.DB }

func NewActivityRepository(db *gorm.DB) ActivityRepository { return &activityRepo{db: db} }

func (r *activityRepo) Create(ctx context.Context, e *model.ActivityLog) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *activityRepo) Recent(ctx context.Context, limit int) ([]model.ActivityLog, error) {
	var entries []model.ActivityLog
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
