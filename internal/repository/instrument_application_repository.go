package repository

import (
	"context"

	"github.com/sugar258596/experiment-server-sub001/internal/model"
	"gorm.io/gorm"
)

// InstrumentApplicationRepository 仪器使用申请查询仓储接口
type InstrumentApplicationRepository interface {
	FindByID(ctx context.Context, id uint) (*model.InstrumentApplication, error)
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*model.InstrumentApplication, int64, error)
	ListByStatus(ctx context.Context, status string, offset, limit int) ([]*model.InstrumentApplication, int64, error)
}

// instrumentApplicationRepository 仪器使用申请查询仓储实现
type instrumentApplicationRepository struct {
	db *gorm.DB
}

// NewInstrumentApplicationRepository 创建仪器使用申请查询仓储
func NewInstrumentApplicationRepository(db *gorm.DB) InstrumentApplicationRepository {
	return &instrumentApplicationRepository{db: db}
}

// FindByID 根据 ID 查找申请
func (r *instrumentApplicationRepository) FindByID(ctx context.Context, id uint) (*model.InstrumentApplication, error) {
	var m model.InstrumentApplication
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ListByUser 分页查询用户的申请
func (r *instrumentApplicationRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*model.InstrumentApplication, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.InstrumentApplication{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*model.InstrumentApplication
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error
	return items, total, err
}

// ListByStatus 分页查询指定状态的申请
func (r *instrumentApplicationRepository) ListByStatus(ctx context.Context, status string, offset, limit int) ([]*model.InstrumentApplication, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.InstrumentApplication{}).Where("status = ?", status)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*model.InstrumentApplication
	err := query.Order("created_at ASC").Offset(offset).Limit(limit).Find(&items).Error
	return items, total, err
}
