package model

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// InstrumentApplication 仪器使用申请数据模型
type InstrumentApplication struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"not null;index" json:"user_id"`       // 申请人
	InstrumentID uint           `gorm:"not null;index" json:"instrument_id"` // 申请使用的仪器
	StartTime    time.Time      `gorm:"not null;index" json:"start_time"`
	EndTime      time.Time      `gorm:"not null" json:"end_time"`
	Purpose      string         `gorm:"type:varchar(255)" json:"purpose"` // 用途说明
	Supervisor   string         `gorm:"type:varchar(64)" json:"supervisor"` // 指导教师
	Status       string         `gorm:"type:varchar(32);not null;default:pending;index" json:"status"`
	ReviewerID   *uint          `gorm:"index" json:"reviewer_id"`
	ReviewTime   *time.Time     `json:"review_time"`
	RejectReason string         `gorm:"type:varchar(255)" json:"reject_reason"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (InstrumentApplication) TableName() string {
	return "instrument_applications"
}

// Validate 验证仪器使用申请模型
func (a *InstrumentApplication) Validate() error {
	if a.UserID == 0 {
		return errors.New("user ID is required")
	}
	if a.InstrumentID == 0 {
		return errors.New("instrument ID is required")
	}
	if a.StartTime.IsZero() || a.EndTime.IsZero() {
		return errors.New("start time and end time are required")
	}
	if !a.EndTime.After(a.StartTime) {
		return errors.New("end time must be after start time")
	}
	return nil
}
