package repository

import (
	"context"

	"github.com/sugar258596/experiment-server-sub001/internal/model"
	"gorm.io/gorm"
)

// FavoriteRepository 收藏仓储接口
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *model.Favorite) error
	FindByID(ctx context.Context, id uint) (*model.Favorite, error)
	FindByTarget(ctx context.Context, userID uint, targetType string, targetID uint) (*model.Favorite, error)
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*model.Favorite, int64, error)
	Delete(ctx context.Context, id uint) error
}

// favoriteRepository 收藏仓储实现
type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository 创建收藏仓储
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Create 创建收藏
func (r *favoriteRepository) Create(ctx context.Context, favorite *model.Favorite) error {
	return r.db.WithContext(ctx).Create(favorite).Error
}

// FindByID 根据 ID 查找收藏
func (r *favoriteRepository) FindByID(ctx context.Context, id uint) (*model.Favorite, error) {
	var favorite model.Favorite
	if err := r.db.WithContext(ctx).First(&favorite, id).Error; err != nil {
		return nil, err
	}
	return &favorite, nil
}

// FindByTarget 查找用户对某个目标的收藏
func (r *favoriteRepository) FindByTarget(ctx context.Context, userID uint, targetType string, targetID uint) (*model.Favorite, error) {
	var favorite model.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		First(&favorite).Error
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

// ListByUser 分页查询用户的收藏
func (r *favoriteRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*model.Favorite, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Favorite{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var favorites []*model.Favorite
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&favorites).Error
	return favorites, total, err
}

// Delete 软删除收藏
func (r *favoriteRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Favorite{}, id).Error
}
