package handler

import (
	"github.com/blues/afs/internal/logic"
	"github.com/blues/afs/internal/model"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// AuthPayload 注册/登录响应
type AuthPayload struct {
	User      *model.User `json:"user"`
	Token     string      `json:"token"`
	TokenType string      `json:"token_type"`
	ExpiresIn int         `json:"expires_in"`
}

// CampaignResponse 活动响应模型，附带现算的融资汇总
type CampaignResponse struct {
	Id              int64                `json:"id"`
	ProjectId       int64                `json:"project_id"`
	TargetAmount    float64              `json:"target_amount"`
	StartDate       string               `json:"start_date"`
	EndDate         string               `json:"end_date"`
	Status          model.CampaignStatus `json:"status"`
	CreatedAt       string               `json:"created_at"`
	Project         *model.Project       `json:"project,omitempty"`
	Investments     []model.Investment   `json:"investments,omitempty"`
	TotalFunds      float64              `json:"total_funds"`
	FundingProgress float64              `json:"funding_progress"`
	RemainingAmount float64              `json:"remaining_amount"`
}

// ToCampaignResponse 将数据库模型转换为响应模型
func ToCampaignResponse(campaign *model.Campaign) CampaignResponse {
	totalFunds := campaign.TotalFunds()
	return CampaignResponse{
		Id:              campaign.Id,
		ProjectId:       campaign.ProjectId,
		TargetAmount:    campaign.TargetAmount,
		StartDate:       campaign.StartDate.Format(dateLayout),
		EndDate:         campaign.EndDate.Format(dateLayout),
		Status:          campaign.Status,
		CreatedAt:       campaign.CreatedAt.Format(dateTimeLayout),
		Project:         campaign.Project,
		Investments:     campaign.Investments,
		TotalFunds:      totalFunds,
		FundingProgress: logic.FundingProgress(totalFunds, campaign.TargetAmount),
		RemainingAmount: logic.RemainingAmount(totalFunds, campaign.TargetAmount),
	}
}

// ToCampaignResponseList 将数据库模型列表转换为响应模型列表
func ToCampaignResponseList(campaigns []model.Campaign) []CampaignResponse {
	result := make([]CampaignResponse, len(campaigns))
	for i := range campaigns {
		result[i] = ToCampaignResponse(&campaigns[i])
	}
	return result
}
