package model

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Appointment 实验室预约数据模型
// 审核相关列(status/reviewer_id/review_time/reject_reason)与其他两类
// 审核资源保持同名,供通用审核引擎做条件更新
type Appointment struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"not null;index" json:"user_id"` // 申请人
	LabID        uint           `gorm:"not null;index" json:"lab_id"`  // 预约的实验室
	StartTime    time.Time      `gorm:"not null;index" json:"start_time"`
	EndTime      time.Time      `gorm:"not null" json:"end_time"`
	Purpose      string         `gorm:"type:varchar(255)" json:"purpose"`   // 用途说明
	Attendees    int            `gorm:"not null;default:1" json:"attendees"` // 使用人数
	Status       string         `gorm:"type:varchar(32);not null;default:pending;index" json:"status"`
	ReviewerID   *uint          `gorm:"index" json:"reviewer_id"` // 审核人,仅审核通过/驳回时写入
	ReviewTime   *time.Time     `json:"review_time"`
	RejectReason string         `gorm:"type:varchar(255)" json:"reject_reason"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Appointment) TableName() string {
	return "appointments"
}

// Validate 验证预约模型
func (a *Appointment) Validate() error {
	if a.UserID == 0 {
		return errors.New("user ID is required")
	}
	if a.LabID == 0 {
		return errors.New("lab ID is required")
	}
	if a.StartTime.IsZero() || a.EndTime.IsZero() {
		return errors.New("start time and end time are required")
	}
	if !a.EndTime.After(a.StartTime) {
		return errors.New("end time must be after start time")
	}
	return nil
}
