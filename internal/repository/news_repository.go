package repository

import (
	"context"

	"github.com/sugar258596/experiment-server-sub001/internal/model"
	"gorm.io/gorm"
)

// NewsRepository 新闻公告仓储接口
type NewsRepository interface {
	Save(ctx context.Context, news *model.News) error
	FindByID(ctx context.Context, id uint) (*model.News, error)
	List(ctx context.Context, offset, limit int) ([]*model.News, int64, error)
	IncrementViews(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

// newsRepository 新闻公告仓储实现
type newsRepository struct {
	db *gorm.DB
}

// NewNewsRepository 创建新闻公告仓储
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

// Save 保存新闻
func (r *newsRepository) Save(ctx context.Context, news *model.News) error {
	return r.db.WithContext(ctx).Save(news).Error
}

// FindByID 根据 ID 查找新闻
func (r *newsRepository) FindByID(ctx context.Context, id uint) (*model.News, error) {
	var news model.News
	if err := r.db.WithContext(ctx).First(&news, id).Error; err != nil {
		return nil, err
	}
	return &news, nil
}

// List 分页查询新闻
func (r *newsRepository) List(ctx context.Context, offset, limit int) ([]*model.News, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.News{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*model.News
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error
	return items, total, err
}

// IncrementViews 浏览量加一
func (r *newsRepository) IncrementViews(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.News{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// Delete 软删除新闻
func (r *newsRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.News{}, id).Error
}
