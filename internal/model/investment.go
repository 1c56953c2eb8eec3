package model

import (
	"time"
)

// Investment 投资记录，只增不改的流水
type Investment struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	CampaignId int64   `json:"campaign_id" gorm:"not null;index"`
	InvestorId int64   `json:"investor_id" gorm:"not null;index"`
	Amount     float64 `json:"amount" gorm:"not null"`

	// 关联
	Campaign *Campaign `json:"campaign,omitempty" gorm:"foreignKey:CampaignId"`
	Investor *Investor `json:"investor,omitempty" gorm:"foreignKey:InvestorId"`
}

// TableName 自定义表名
func (Investment) TableName() string {
	return "investment"
}
