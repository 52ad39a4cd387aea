package model

import (
	"time"

	"gorm.io/gorm"
)

// Instrument 仪器设备数据模型
type Instrument struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	LabID       uint           `gorm:"not null;index" json:"lab_id"`                 // 所属实验室
	Name        string         `gorm:"type:varchar(128);not null;index" json:"name"` // 仪器名称
	ModelNo     string         `gorm:"type:varchar(64)" json:"model_no"`             // 型号
	SerialNo    string         `gorm:"type:varchar(64);index" json:"serial_no"`      // 出厂编号
	Description string         `gorm:"type:text" json:"description"`
	Status      string         `gorm:"type:varchar(32);not null;default:available" json:"status"` // available / in_use / repairing / retired
	Image       string         `gorm:"type:varchar(255)" json:"image"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Instrument) TableName() string {
	return "instruments"
}
