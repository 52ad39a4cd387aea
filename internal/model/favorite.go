package model

import (
	"time"

	"gorm.io/gorm"
)

// 收藏目标类型
const (
	FavoriteTargetLab        = "lab"
	FavoriteTargetInstrument = "instrument"
)

// Favorite 收藏数据模型
type Favorite struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;index:idx_favorites_user_target,unique" json:"user_id"`
	TargetType string         `gorm:"type:varchar(32);not null;index:idx_favorites_user_target,unique" json:"target_type"` // lab / instrument
	TargetID   uint           `gorm:"not null;index:idx_favorites_user_target,unique" json:"target_id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (Favorite) TableName() string {
	return "favorites"
}
