package model

import (
	"time"
)

// UserRole 用户角色
type UserRole string

const (
	UserRoleFarmer   UserRole = "farmer"   // 农户
	UserRoleInvestor UserRole = "investor" // 投资人
	UserRoleAdmin    UserRole = "admin"    // 管理员
)

// User 平台用户
// 角色档案按 Role 二选一：farmer 时 UserableId 指向 farmer 表，
// investor 时指向 investor 表，admin 没有档案。
type User struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name     string   `json:"name" gorm:"not null"`
	Email    string   `json:"email" gorm:"uniqueIndex;not null"`
	Password string   `json:"-" gorm:"not null"`
	Phone    string   `json:"phone"`
	Role     UserRole `json:"role" gorm:"not null"`

	// 角色档案ID（farmer.id 或 investor.id）
	UserableId int64 `json:"userable_id"`
}

// TableName 自定义表名
func (User) TableName() string {
	return "user"
}

// IsFarmer 是否为农户
func (u *User) IsFarmer() bool {
	return u.Role == UserRoleFarmer
}

// IsInvestor 是否为投资人
func (u *User) IsInvestor() bool {
	return u.Role == UserRoleInvestor
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}
