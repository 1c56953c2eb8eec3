package model

import (
	"time"
)

// Farmer 农户档案
type Farmer struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	FirstName string `json:"first_name" gorm:"not null"`
	LastName  string `json:"last_name" gorm:"not null"`
	Contact   string `json:"contact"`
}

// TableName 自定义表名
func (Farmer) TableName() string {
	return "farmer"
}
