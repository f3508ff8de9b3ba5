package repository

import (
	"context"

	"github.com/wirunw/pms2025/internal/model"

	"gorm.io/gorm"
)

type MemberRepository interface {
	Create(ctx context.Context, m *model.Member) error
	FindByMemberID(ctx context.Context, memberID string) (*model.Member, error)
	List(ctx context.Context) ([]model.Member, error)
	Search(ctx context.Context, term string) ([]model.Member, error)
	FindByMemberIDs(ctx context.Context, memberIDs []string) (map[string]model.Member, error)
	Count(ctx context.Context) (int64, error)
}

type memberRepo struct{ db *gorm.DB }

func NewMemberRepository(db *gorm.DB) MemberRepository { return &memberRepo{db: db} }

func (r *memberRepo) Create(ctx context.Context, m *model.Member) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *memberRepo) FindByMemberID(ctx context.Context, memberID string) (*model.Member, error) {
	var m model.Member
	err := r.db.WithContext(ctx).Where("member_id = ?", memberID).First(&m).Error
	return &m, err
}

func (r *memberRepo) List(ctx context.Context) ([]model.Member, error) {
	var members []model.Member
	err := r.db.WithContext(ctx).Order("full_name ASC").Find(&members).Error
	return members, err
}

func (r *memberRepo) Search(ctx context.Context, term string) ([]model.Member, error) {
	var members []model.Member
	pattern := "%" + term + "%"
	err := r.db.WithContext(ctx).
		Where("full_name ILIKE ? OR phone ILIKE ?", pattern, pattern).
		Find(&members).Error
	return members, err
}

func (r *memberRepo) FindByMemberIDs(ctx context.Context, memberIDs []string) (map[string]model.Member, error) {
	var members []model.Member
	if err := r.db.WithContext(ctx).Where("member_id IN ?", memberIDs).Find(&members).Error; err != nil {
		return nil, err
	}
	out := make(map[string]model.Member, len(members))
	for _, m := range members {
		out[m.MemberID] = m
	}
	return out, nil
}

func (r *memberRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Member{}).Count(&n).Error
	return n, err
}
