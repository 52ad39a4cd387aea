package repository

import (
	"context"

	"github.com/sugar258596/experiment-server-sub001/internal/model"
	"gorm.io/gorm"
)

// RepairTicketRepository 报修工单查询仓储接口
type RepairTicketRepository interface {
	FindByID(ctx context.Context, id uint) (*model.RepairTicket, error)
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*model.RepairTicket, int64, error)
	ListByStatus(ctx context.Context, status string, offset, limit int) ([]*model.RepairTicket, int64, error)
}

// repairTicketRepository 报修工单查询仓储实现
type repairTicketRepository struct {
	db *gorm.DB
}

// NewRepairTicketRepository 创建报修工单查询仓储
func NewRepairTicketRepository(db *gorm.DB) RepairTicketRepository {
	return &repairTicketRepository{db: db}
}

// FindByID 根据 ID 查找工单
func (r *repairTicketRepository) FindByID(ctx context.Context, id uint) (*model.RepairTicket, error) {
	var m model.RepairTicket
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ListByUser 分页查询用户的工单
func (r *repairTicketRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*model.RepairTicket, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.RepairTicket{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*model.RepairTicket
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error
	return items, total, err
}

// ListByStatus 分页查询指定状态的工单
func (r *repairTicketRepository) ListByStatus(ctx context.Context, status string, offset, limit int) ([]*model.RepairTicket, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.RepairTicket{}).Where("status = ?", status)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []*model.RepairTicket
	err := query.Order("created_at ASC").Offset(offset).Limit(limit).Find(&items).Error
	return items, total, err
}
