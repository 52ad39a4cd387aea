package repository

import (
	"context"

	"github.com/sugar258596/experiment-server-sub001/internal/model"
	"gorm.io/gorm"
)

// InstrumentFilter 仪器查询过滤器
type InstrumentFilter struct {
	LabID  *uint
	Name   *string
	Status *string
}

// InstrumentRepository 仪器仓储接口
type InstrumentRepository interface {
	Save(ctx context.Context, instrument *model.Instrument) error
	FindByID(ctx context.Context, id uint) (*model.Instrument, error)
	List(ctx context.Context, filter *InstrumentFilter, offset, limit int) ([]*model.Instrument, int64, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
}

// instrumentRepository 仪器仓储实现
type instrumentRepository struct {
	db *gorm.DB
}

// NewInstrumentRepository 创建仪器仓储
func NewInstrumentRepository(db *gorm.DB) InstrumentRepository {
	return &instrumentRepository{db: db}
}

// Save 保存仪器
func (r *instrumentRepository) Save(ctx context.Context, instrument *model.Instrument) error {
	return r.db.WithContext(ctx).Save(instrument).Error
}

// FindByID 根据 ID 查找仪器
func (r *instrumentRepository) FindByID(ctx context.Context, id uint) (*model.Instrument, error) {
	var instrument model.Instrument
	if err := r.db.WithContext(ctx).First(&instrument, id).Error; err != nil {
		return nil, err
	}
	return &instrument, nil
}

// List 按过滤器分页查询仪器
func (r *instrumentRepository) List(ctx context.Context, filter *InstrumentFilter, offset, limit int) ([]*model.Instrument, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Instrument{})
	if filter != nil {
		if filter.LabID != nil {
			query = query.Where("lab_id = ?", *filter.LabID)
		}
		if filter.Name != nil {
			query = query.Where("name LIKE ?", "%"+*filter.Name+"%")
		}
		if filter.Status != nil {
			query = query.Where("status = ?", *filter.Status)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var instruments []*model.Instrument
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&instruments).Error
	return instruments, total, err
}

// UpdateStatus 更新仪器状态
func (r *instrumentRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).Model(&model.Instrument{}).Where("id = ?", id).Update("status", status).Error
}

// Delete 软删除仪器
func (r *instrumentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Instrument{}, id).Error
}
