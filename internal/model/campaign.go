package model

import (
	"time"
)

// CampaignStatus 众筹活动状态
type CampaignStatus string

const (
	CampaignStatusPending  CampaignStatus = "pending"  // 待审核
	CampaignStatusActive   CampaignStatus = "active"   // 进行中
	CampaignStatusRejected CampaignStatus = "rejected" // 已驳回
)

// Campaign 众筹活动，与项目一一对应
// 生命周期：pending -> active（审核通过）或 pending -> rejected（驳回）。
// active 状态没有"已满额"终态，超过目标金额后仍保持 active。
type Campaign struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectId    int64          `json:"project_id" gorm:"not null"`
	TargetAmount float64        `json:"target_amount" gorm:"not null"`
	StartDate    time.Time      `json:"start_date" gorm:"not null"`
	EndDate      time.Time      `json:"end_date" gorm:"not null"`
	Status       CampaignStatus `json:"status" gorm:"default:'pending'"`

	// 关联
	Project     *Project     `json:"project,omitempty" gorm:"foreignKey:ProjectId"`
	Investments []Investment `json:"investments,omitempty" gorm:"foreignKey:CampaignId"`
}

// TableName 自定义表名
func (Campaign) TableName() string {
	return "campaign"
}

// CanBeFunded 是否可以接受投资
// 仅 active 状态可投；截止日当天仍可投，严格晚于截止日才拒绝。
func (c *Campaign) CanBeFunded(now time.Time) bool {
	return c.Status == CampaignStatusActive && !now.After(c.EndDate)
}

// TotalFunds 已加载投资记录的金额合计
func (c *Campaign) TotalFunds() float64 {
	var total float64
	for _, inv := range c.Investments {
		total += inv.Amount
	}
	return total
}
