package repository

import (
	"context"

	"github.com/sugar258596/experiment-server-sub001/internal/model"
	"gorm.io/gorm"
)

// LabFilter 实验室查询过滤器
type LabFilter struct {
	Name   *string
	Status *string
}

// LabRepository 实验室仓储接口
type LabRepository interface {
	Save(ctx context.Context, lab *model.Lab) error
	FindByID(ctx context.Context, id uint) (*model.Lab, error)
	List(ctx context.Context, filter *LabFilter, offset, limit int) ([]*model.Lab, int64, error)
	Delete(ctx context.Context, id uint) error
}

// labRepository 实验室仓储实现
type labRepository struct {
	db *gorm.DB
}

// NewLabRepository 创建实验室仓储
func NewLabRepository(db *gorm.DB) LabRepository {
	return &labRepository{db: db}
}

// Save 保存实验室
func (r *labRepository) Save(ctx context.Context, lab *model.Lab) error {
	return r.db.WithContext(ctx).Save(lab).Error
}

// FindByID 根据 ID 查找实验室
func (r *labRepository) FindByID(ctx context.Context, id uint) (*model.Lab, error) {
	var lab model.Lab
	if err := r.db.WithContext(ctx).First(&lab, id).Error; err != nil {
		return nil, err
	}
	return &lab, nil
}

// List 按过滤器分页查询实验室
func (r *labRepository) List(ctx context.Context, filter *LabFilter, offset, limit int) ([]*model.Lab, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Lab{})
	if filter != nil {
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

	var labs []*model.Lab
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&labs).Error
	return labs, total, err
}

// Delete 软删除实验室
func (r *labRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Lab{}, id).Error
}
