package handler

import (
	"net/http"

	"github.com/blues/afs/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ReportHandler 报表处理器
type ReportHandler struct {
	reportLogic *logic.ReportLogic
}

// NewReportHandler 创建报表处理器
func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{
		reportLogic: logic.NewReportLogic(db),
	}
}

// AdminDashboard 管理员看板（仅管理员）
func (h *ReportHandler) AdminDashboard(c *gin.Context) {
	users, err := h.reportLogic.UserStatistics()
	if err != nil {
		FailResponse(c, err, "Failed to retrieve admin dashboard data")
		return
	}

	campaigns, err := h.reportLogic.CampaignReports(0)
	if err != nil {
		FailResponse(c, err, "Failed to retrieve admin dashboard data")
		return
	}

	totalFunds, err := h.reportLogic.TotalFunds()
	if err != nil {
		FailResponse(c, err, "Failed to retrieve admin dashboard data")
		return
	}

	fundsByStatus, err := h.reportLogic.FundsByStatus()
	if err != nil {
		FailResponse(c, err, "Failed to retrieve admin dashboard data")
		return
	}

	SuccessResponse(c, http.StatusOK, "Admin dashboard data retrieved successfully", gin.H{
		"users":           users,
		"campaigns":       campaigns,
		"total_funds":     totalFunds,
		"funds_by_status": fundsByStatus,
	})
}

// AdminCampaignsReport 管理员活动报表（仅管理员）
func (h *ReportHandler) AdminCampaignsReport(c *gin.Context) {
	campaigns, err := h.reportLogic.CampaignReports(0)
	if err != nil {
		FailResponse(c, err, "Failed to retrieve campaigns report")
		return
	}

	SuccessResponse(c, http.StatusOK, "Campaigns report retrieved successfully", gin.H{
		"campaigns": campaigns,
	})
}

// FarmerDashboard 农户看板（仅农户）
func (h *ReportHandler) FarmerDashboard(c *gin.Context) {
	dashboard, err := h.reportLogic.GetFarmerDashboard(CurrentUser(c))
	if err != nil {
		FailResponse(c, err, "Failed to retrieve farmer dashboard data")
		return
	}

	SuccessResponse(c, http.StatusOK, "Farmer dashboard data retrieved successfully", dashboard)
}

// FarmerCampaignsReport 农户活动报表（仅农户）
func (h *ReportHandler) FarmerCampaignsReport(c *gin.Context) {
	report, err := h.reportLogic.GetFarmerCampaignsReport(CurrentUser(c))
	if err != nil {
		FailResponse(c, err, "Failed to retrieve farmer campaigns report")
		return
	}

	SuccessResponse(c, http.StatusOK, "Farmer campaigns report retrieved successfully", report)
}

// FarmerCampaignReport 农户单个活动报表（仅农户）
func (h *ReportHandler) FarmerCampaignReport(c *gin.Context) {
	id, ok := campaignId(c)
	if !ok {
		return
	}

	campaign, details, err := h.reportLogic.GetFarmerCampaignReport(CurrentUser(c), id)
	if err != nil {
		FailResponse(c, err, "Failed to retrieve campaign report")
		return
	}

	SuccessResponse(c, http.StatusOK, "Campaign report retrieved successfully", gin.H{
		"campaign":           campaign,
		"investment_details": details,
	})
}

// InvestorDashboard 投资人看板（仅投资人）
func (h *ReportHandler) InvestorDashboard(c *gin.Context) {
	dashboard, err := h.reportLogic.GetInvestorDashboard(CurrentUser(c))
	if err != nil {
		FailResponse(c, err, "Failed to retrieve investor dashboard data")
		return
	}

	SuccessResponse(c, http.StatusOK, "Investor dashboard data retrieved successfully", dashboard)
}
