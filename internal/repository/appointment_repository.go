package repository

import (
	"context"

	"github.com/sugar258596/experiment-server-sub001/internal/model"
	"gorm.io/gorm"
)

// AppointmentRepository 预约查询仓储接口
// 状态流转不经过这里,由 WorkflowStore 的条件更新完成
type AppointmentRepository interface {
	FindByID(ctx context.Context, id uint) (*model.Appointment, error)
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*model.Appointment, int64, error)
	ListByStatus(ctx context.Context, status string, offset, limit int) ([]*model.Appointment, int64, error)
}

// appointmentRepository 预约查询仓储实现
type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository 创建预约查询仓储
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

// FindByID 根据 ID 查找预约
func (r *appointmentRepository) FindByID(ctx context.Context, id uint) (*model.Appointment, error) {
	var m model.Appointment
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ListByUser 分页查询用户的预约
func (r *appointmentRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*model.Appointment, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Appointment{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*model.Appointment
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error
	return items, total, err
}

// ListByStatus 分页查询指定状态的预约
func (r *appointmentRepository) ListByStatus(ctx context.Context, status string, offset, limit int) ([]*model.Appointment, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Appointment{}).Where("status = ?", status)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*model.Appointment
	err := query.Order("created_at ASC").Offset(offset).Limit(limit).Find(&items).Error
	return items, total, err
}
