package model

import (
	"time"
)

// Investor 投资人档案
type Investor struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name        string `json:"name" gorm:"not null"`
	Contact     string `json:"contact"`
	BudgetRange string `json:"budget_range" gorm:"default:'0-0'"`
	Type        string `json:"type" gorm:"default:'individual'"`
}

// TableName 自定义表名
func (Investor) TableName() string {
	return "investor"
}
