package model

import (
	"time"

	"gorm.io/gorm"
)

// News 新闻公告数据模型
type News struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"type:varchar(128);not null;index" json:"title"`
	Content   string         `gorm:"type:text" json:"content"`
	Cover     string         `gorm:"type:varchar(255)" json:"cover"`
	AuthorID  uint           `gorm:"not null;index" json:"author_id"` // 发布人
	Views     int            `gorm:"not null;default:0" json:"views"` // 浏览量
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (News) TableName() string {
	return "news"
}
