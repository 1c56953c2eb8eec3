package model

import (
	"time"
)

// Project 农业项目，由农户发起，创建后不再修改
type Project struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	Location    string `json:"location" gorm:"not null"`

	// 融资信息
	CapitalNeeded  float64 `json:"capital_needed" gorm:"not null"`
	DurationMonths int     `json:"duration_months" gorm:"not null"`

	// 项目说明
	Benefits string `json:"benefits" gorm:"type:text"`
	Risks    string `json:"risks" gorm:"type:text"`

	// 发起农户
	FarmerId int64 `json:"farmer_id" gorm:"not null"`

	// 关联
	Farmer *Farmer `json:"farmer,omitempty" gorm:"foreignKey:FarmerId"`
}

// TableName 自定义表名
func (Project) TableName() string {
	return "project"
}
