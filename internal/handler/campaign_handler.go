package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/afs/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CampaignHandler 众筹活动处理器
type CampaignHandler struct {
	campaignLogic *logic.CampaignLogic
}

// NewCampaignHandler 创建众筹活动处理器
func NewCampaignHandler(db *gorm.DB) *CampaignHandler {
	return &CampaignHandler{
		campaignLogic: logic.NewCampaignLogic(db),
	}
}

// Index 获取活动列表
func (h *CampaignHandler) Index(c *gin.Context) {
	campaigns, err := h.campaignLogic.ListCampaigns()
	if err != nil {
		FailResponse(c, err, "Failed to fetch campaigns")
		return
	}

	SuccessResponse(c, http.StatusOK, "Campaigns retrieved successfully", gin.H{
		"campaigns": ToCampaignResponseList(campaigns),
	})
}

// Show 获取活动详情
func (h *CampaignHandler) Show(c *gin.Context) {
	id, ok := campaignId(c)
	if !ok {
		return
	}

	campaign, err := h.campaignLogic.GetCampaign(id)
	if err != nil {
		FailResponse(c, err, "Failed to fetch campaign")
		return
	}

	SuccessResponse(c, http.StatusOK, "Campaign retrieved successfully", gin.H{
		"campaign": ToCampaignResponse(campaign),
	})
}

// StoreCampaignRequest 发起活动请求
type StoreCampaignRequest struct {
	ProjectName        string   `json:"project_name" binding:"required,max=255"`
	ProjectDescription string   `json:"project_description" binding:"required"`
	ProjectCapital     *float64 `json:"project_capital" binding:"required,gte=0"`
	ProjectDuration    *int     `json:"project_duration" binding:"required,gte=1"`
	ProjectLocation    string   `json:"project_location" binding:"required,max=255"`
	ProjectBenefits    string   `json:"project_benefits" binding:"required"`
	ProjectRisks       string   `json:"project_risks" binding:"required"`
}

// Store 发起活动（仅农户，中间件已拦）
func (h *CampaignHandler) Store(c *gin.Context) {
	var req StoreCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusUnprocessableEntity, "Validation failed", err.Error())
		return
	}

	campaign, err := h.campaignLogic.CreateCampaign(CurrentUser(c), logic.StoreCampaignInput{
		ProjectName:        req.ProjectName,
		ProjectDescription: req.ProjectDescription,
		ProjectLocation:    req.ProjectLocation,
		ProjectCapital:     *req.ProjectCapital,
		ProjectDuration:    *req.ProjectDuration,
		ProjectBenefits:    req.ProjectBenefits,
		ProjectRisks:       req.ProjectRisks,
	})
	if err != nil {
		FailResponse(c, err, "Failed to create campaign")
		return
	}

	SuccessResponse(c, http.StatusCreated, "Campaign created successfully", gin.H{
		"campaign": ToCampaignResponse(campaign),
	})
}

// Approve 审核通过（仅管理员）
func (h *CampaignHandler) Approve(c *gin.Context) {
	id, ok := campaignId(c)
	if !ok {
		return
	}

	campaign, err := h.campaignLogic.Approve(id)
	if err != nil {
		FailResponse(c, err, "Failed to approve campaign")
		return
	}

	SuccessResponse(c, http.StatusOK, "Campaign approved successfully", gin.H{
		"campaign": ToCampaignResponse(campaign),
	})
}

// Reject 驳回（仅管理员）
func (h *CampaignHandler) Reject(c *gin.Context) {
	id, ok := campaignId(c)
	if !ok {
		return
	}

	campaign, err := h.campaignLogic.Reject(id)
	if err != nil {
		FailResponse(c, err, "Failed to reject campaign")
		return
	}

	SuccessResponse(c, http.StatusOK, "Campaign rejected successfully", gin.H{
		"campaign": ToCampaignResponse(campaign),
	})
}

// FundRequest 投资请求
type FundRequest struct {
	Amount *float64 `json:"amount" binding:"required,gte=0"`
}

// Fund 投资活动（仅投资人）
func (h *CampaignHandler) Fund(c *gin.Context) {
	id, ok := campaignId(c)
	if !ok {
		return
	}

	var req FundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusUnprocessableEntity, "Validation failed", err.Error())
		return
	}

	investment, campaign, err := h.campaignLogic.Fund(CurrentUser(c), id, *req.Amount)
	if err != nil {
		FailResponse(c, err, "Failed to fund campaign")
		return
	}

	SuccessResponse(c, http.StatusOK, "Campaign funded successfully", gin.H{
		"investment": investment,
		"campaign":   ToCampaignResponse(campaign),
	})
}

// campaignId 解析路径里的活动ID，非数字按不存在处理
func campaignId(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusNotFound, "Campaign not found", "The requested campaign does not exist.")
		return 0, false
	}
	return id, true
}
