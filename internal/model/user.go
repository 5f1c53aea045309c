package model

import (
	"time"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleAdmin   UserRole = "admin"
)

// LandingPath 登录后前端应跳转的页面
func (r UserRole) LandingPath() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleStudent:
		return "/student"
	}
	return "/login"
}

// User 认证身份，只保存邮箱和密码哈希；展示信息在 Profile
// swagger:model User
type User struct {
	Base
	Email     string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"size:100;not null" json:"-"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

func (User) TableName() string {
	return "users"
}
