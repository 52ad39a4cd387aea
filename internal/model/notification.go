package model

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// 通知类型
const (
	NotificationTypeReviewResult   = "review_result"   // 审核结果
	NotificationTypeRepairProgress = "repair_progress" // 报修进度
	NotificationTypeReminder       = "reminder"        // 使用提醒
	NotificationTypeSystem         = "system"          // 系统公告
)

// Notification 站内通知数据模型
// 每次状态流转只产生一条通知,只有接收人可以标记已读或删除
type Notification struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"` // 接收人
	Type      string         `gorm:"type:varchar(32);not null;index" json:"type"`
	Title     string         `gorm:"type:varchar(128);not null" json:"title"`
	Content   string         `gorm:"type:text" json:"content"`
	IsRead    bool           `gorm:"not null;default:false;index" json:"is_read"`
	RelatedID uint           `gorm:"index" json:"related_id"` // 关联的业务记录 ID
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Notification) TableName() string {
	return "notifications"
}

// Validate 验证通知模型
func (n *Notification) Validate() error {
	if n.UserID == 0 {
		return errors.New("user ID is required")
	}
	if n.Type == "" {
		return errors.New("notification type is required")
	}
	if n.Title == "" {
		return errors.New("title is required")
	}
	return nil
}
