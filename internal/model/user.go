package model

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Role 用户角色
type Role string

const (
	RoleStudent    Role = "STUDENT"     // 学生
	RoleTeacher    Role = "TEACHER"     // 教师
	RoleAdmin      Role = "ADMIN"       // 管理员
	RoleSuperAdmin Role = "SUPER_ADMIN" // 超级管理员
)

// Valid 判断角色是否合法
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// User 用户数据模型
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"username"` // 登录名
	Password  string         `gorm:"type:varchar(128);not null" json:"-"`                   // bcrypt 密码散列
	Nickname  string         `gorm:"type:varchar(64)" json:"nickname"`                      // 显示名称
	Email     string         `gorm:"type:varchar(128)" json:"email"`
	Phone     string         `gorm:"type:varchar(32)" json:"phone"`
	Role      Role           `gorm:"type:varchar(32);not null;default:STUDENT;index" json:"role"` // 角色
	Avatar    string         `gorm:"type:varchar(255)" json:"avatar"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// Validate 验证用户模型
func (u *User) Validate() error {
	if u.Username == "" {
		return errors.New("username is required")
	}
	if u.Password == "" {
		return errors.New("password is required")
	}
	if !u.Role.Valid() {
		return errors.New("invalid role")
	}
	return nil
}
