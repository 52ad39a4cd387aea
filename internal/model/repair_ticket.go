package model

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// RepairTicket 仪器报修工单数据模型
// 状态词汇表为 reported / in_progress / resolved / cancelled,
// 列结构与预约、使用申请保持一致
type RepairTicket struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"not null;index" json:"user_id"`       // 报修人
	InstrumentID uint           `gorm:"not null;index" json:"instrument_id"` // 报修的仪器
	Title        string         `gorm:"type:varchar(128);not null" json:"title"` // 故障概述
	Description  string         `gorm:"type:text" json:"description"`            // 故障详情
	Images       string         `gorm:"type:text" json:"images"`                 // 故障图片,逗号分隔
	Status       string         `gorm:"type:varchar(32);not null;default:reported;index" json:"status"`
	ReviewerID   *uint          `gorm:"index" json:"reviewer_id"` // 处理人
	ReviewTime   *time.Time     `json:"review_time"`
	RejectReason string         `gorm:"type:varchar(255)" json:"reject_reason"` // 关闭工单时的说明
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (RepairTicket) TableName() string {
	return "repair_tickets"
}

// Validate 验证报修工单模型
func (t *RepairTicket) Validate() error {
	if t.UserID == 0 {
		return errors.New("user ID is required")
	}
	if t.InstrumentID == 0 {
		return errors.New("instrument ID is required")
	}
	if t.Title == "" {
		return errors.New("title is required")
	}
	return nil
}
