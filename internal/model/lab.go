package model

import (
	"time"

	"gorm.io/gorm"
)

// Lab 实验室数据模型
type Lab struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"type:varchar(128);not null;index" json:"name"` // 实验室名称
	Location    string         `gorm:"type:varchar(255)" json:"location"`            // 位置
	Capacity    int            `gorm:"not null;default:0" json:"capacity"`           // 容纳人数
	Description string         `gorm:"type:text" json:"description"`
	OpenTime    string         `gorm:"type:varchar(32)" json:"open_time"`  // 开放时段,如 08:00-22:00
	Status      string         `gorm:"type:varchar(32);not null;default:open" json:"status"` // open / closed / maintenance
	Cover       string         `gorm:"type:varchar(255)" json:"cover"`     // 封面图地址
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Lab) TableName() string {
	return "labs"
}
