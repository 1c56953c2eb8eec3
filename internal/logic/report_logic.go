package logic

import (
	"errors"
	"math"

	"github.com/blues/afs/internal/model"
	"gorm.io/gorm"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// ReportLogic 报表业务逻辑，纯读取聚合
// 所有数值都在请求时从库里现算，不做缓存。
type ReportLogic struct {
	db *gorm.DB
}

// NewReportLogic 创建报表业务逻辑
func NewReportLogic(db *gorm.DB) *ReportLogic {
	return &ReportLogic{db: db}
}

// FundingProgress 融资进度百分比，保留两位小数；目标为0时记0
func FundingProgress(totalFunds, targetAmount float64) float64 {
	if targetAmount <= 0 {
		return 0
	}
	return math.Round(totalFunds/targetAmount*100*100) / 100
}

// RemainingAmount 剩余待筹金额，不出现负数
func RemainingAmount(totalFunds, targetAmount float64) float64 {
	return math.Max(0, targetAmount-totalFunds)
}

// UserReport 管理员看板的用户条目
type UserReport struct {
	Id               int64          `json:"id"`
	Name             string         `json:"name"`
	Email            string         `json:"email"`
	Phone            string         `json:"phone"`
	Role             model.UserRole `json:"role"`
	JoinedAt         string         `json:"joined_at"`
	TotalCampaigns   int64          `json:"total_campaigns"`
	TotalInvestments float64        `json:"total_investments"`
}

// FundingDetails 单个活动的融资汇总
type FundingDetails struct {
	TotalFunds      float64 `json:"total_funds"`
	InvestorCount   int     `json:"investor_count"`
	FundingProgress float64 `json:"funding_progress"`
	RemainingAmount float64 `json:"remaining_amount"`
}

// InvestmentLine 活动下的单笔投资
type InvestmentLine struct {
	InvestorName string  `json:"investor_name"`
	Amount       float64 `json:"amount"`
	InvestedAt   string  `json:"invested_at"`
}

// CampaignReport 活动报表条目
type CampaignReport struct {
	Id                 int64                `json:"id"`
	ProjectName        string               `json:"project_name"`
	ProjectDescription string               `json:"project_description,omitempty"`
	FarmerName         string               `json:"farmer_name,omitempty"`
	TargetAmount       float64              `json:"target_amount"`
	StartDate          string               `json:"start_date"`
	EndDate            string               `json:"end_date"`
	Status             model.CampaignStatus `json:"status"`
	FundingDetails     FundingDetails       `json:"funding_details"`
	Investments        []InvestmentLine     `json:"investments"`
}

// FarmerDashboard 农户看板
type FarmerDashboard struct {
	TotalCampaigns   int64            `json:"total_campaigns"`
	TotalInvestments float64          `json:"total_investments"`
	Campaigns        []CampaignReport `json:"campaigns"`
}

// FarmerCampaignsReport 农户活动报表
type FarmerCampaignsReport struct {
	TotalCampaigns     int              `json:"total_campaigns"`
	TotalFundsReceived float64          `json:"total_funds_received"`
	Campaigns          []CampaignReport `json:"campaigns"`
}

// CampaignSnapshot 投资人看板里的活动快照
type CampaignSnapshot struct {
	Id              int64                `json:"id"`
	ProjectName     string               `json:"project_name"`
	FarmerName      string               `json:"farmer_name"`
	TargetAmount    float64              `json:"target_amount"`
	FundingProgress float64              `json:"funding_progress"`
	Status          model.CampaignStatus `json:"status"`
}

// InvestorInvestment 投资人看板的投资条目
type InvestorInvestment struct {
	InvestmentId int64            `json:"investment_id"`
	Amount       float64          `json:"amount"`
	InvestedAt   string           `json:"invested_at"`
	Campaign     CampaignSnapshot `json:"campaign"`
}

// InvestorDashboard 投资人看板
type InvestorDashboard struct {
	TotalInvestments    int                  `json:"total_investments"`
	TotalAmountInvested float64              `json:"total_amount_invested"`
	Investments         []InvestorInvestment `json:"investments"`
}

// UserStatistics 全量用户及其活动/投资累计
func (l *ReportLogic) UserStatistics() ([]UserReport, error) {
	var users []model.User
	if err := l.db.Order("id").Find(&users).Error; err != nil {
		return nil, err
	}

	reports := make([]UserReport, 0, len(users))
	for _, user := range users {
		report := UserReport{
			Id:       user.Id,
			Name:     user.Name,
			Email:    user.Email,
			Phone:    user.Phone,
			Role:     user.Role,
			JoinedAt: user.CreatedAt.Format(dateTimeLayout),
		}

		switch user.Role {
		case model.UserRoleFarmer:
			if err := l.db.Model(&model.Project{}).
				Where("farmer_id = ?", user.UserableId).
				Count(&report.TotalCampaigns).Error; err != nil {
				return nil, err
			}
		case model.UserRoleInvestor:
			if err := l.db.Model(&model.Investment{}).
				Where("investor_id = ?", user.UserableId).
				Select("COALESCE(SUM(amount), 0)").
				Scan(&report.TotalInvestments).Error; err != nil {
				return nil, err
			}
		}

		reports = append(reports, report)
	}
	return reports, nil
}

// CampaignReports 活动报表，farmerId 为 0 时覆盖全部活动
func (l *ReportLogic) CampaignReports(farmerId int64) ([]CampaignReport, error) {
	campaigns, err := l.loadCampaigns(farmerId)
	if err != nil {
		return nil, err
	}

	reports := make([]CampaignReport, 0, len(campaigns))
	for i := range campaigns {
		reports = append(reports, l.buildCampaignReport(&campaigns[i]))
	}
	return reports, nil
}

// TotalFunds 平台全部投资金额合计
func (l *ReportLogic) TotalFunds() (float64, error) {
	var total float64
	err := l.db.Model(&model.Investment{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

// FundsByStatus 按活动状态分组的投资金额
func (l *ReportLogic) FundsByStatus() (map[string]float64, error) {
	var rows []struct {
		Status string
		Total  float64
	}
	err := l.db.Table("campaign").
		Select("campaign.status AS status, COALESCE(SUM(investment.amount), 0) AS total").
		Joins("LEFT JOIN investment ON investment.campaign_id = campaign.id").
		Group("campaign.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]float64, len(rows))
	for _, row := range rows {
		result[row.Status] = row.Total
	}
	return result, nil
}

// GetFarmerDashboard 农户看板数据
func (l *ReportLogic) GetFarmerDashboard(farmer *model.User) (*FarmerDashboard, error) {
	var totalCampaigns int64
	if err := l.db.Model(&model.Campaign{}).
		Joins("JOIN project ON project.id = campaign.project_id").
		Where("project.farmer_id = ?", farmer.UserableId).
		Count(&totalCampaigns).Error; err != nil {
		return nil, err
	}

	var totalInvestments float64
	if err := l.db.Model(&model.Investment{}).
		Joins("JOIN campaign ON campaign.id = investment.campaign_id").
		Joins("JOIN project ON project.id = campaign.project_id").
		Where("project.farmer_id = ?", farmer.UserableId).
		Select("COALESCE(SUM(investment.amount), 0)").
		Scan(&totalInvestments).Error; err != nil {
		return nil, err
	}

	campaigns, err := l.CampaignReports(farmer.UserableId)
	if err != nil {
		return nil, err
	}

	return &FarmerDashboard{
		TotalCampaigns:   totalCampaigns,
		TotalInvestments: totalInvestments,
		Campaigns:        campaigns,
	}, nil
}

// GetFarmerCampaignsReport 农户活动明细报表
func (l *ReportLogic) GetFarmerCampaignsReport(farmer *model.User) (*FarmerCampaignsReport, error) {
	campaigns, err := l.CampaignReports(farmer.UserableId)
	if err != nil {
		return nil, err
	}

	var totalFunds float64
	for _, c := range campaigns {
		totalFunds += c.FundingDetails.TotalFunds
	}

	return &FarmerCampaignsReport{
		TotalCampaigns:     len(campaigns),
		TotalFundsReceived: totalFunds,
		Campaigns:          campaigns,
	}, nil
}

// GetFarmerCampaignReport 农户单个活动报表，投资明细按时间倒序
func (l *ReportLogic) GetFarmerCampaignReport(farmer *model.User, campaignId int64) (*CampaignReport, []InvestmentLine, error) {
	var campaign model.Campaign
	err := l.db.Preload("Project.Farmer").Preload("Investments.Investor").
		Joins("JOIN project ON project.id = campaign.project_id").
		Where("project.farmer_id = ?", farmer.UserableId).
		First(&campaign, "campaign.id = ?", campaignId).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound("Campaign not found", "The requested campaign does not exist.")
		}
		return nil, nil, err
	}

	report := l.buildCampaignReport(&campaign)

	var investments []model.Investment
	if err := l.db.Preload("Investor").
		Where("campaign_id = ?", campaign.Id).
		Order("created_at DESC").
		Find(&investments).Error; err != nil {
		return nil, nil, err
	}

	return &report, investmentLines(investments), nil
}

// GetInvestorDashboard 投资人看板数据，投资记录按时间倒序
func (l *ReportLogic) GetInvestorDashboard(investor *model.User) (*InvestorDashboard, error) {
	var investments []model.Investment
	err := l.db.Preload("Campaign.Project.Farmer").Preload("Campaign.Investments").
		Where("investor_id = ?", investor.UserableId).
		Order("created_at DESC").
		Find(&investments).Error
	if err != nil {
		return nil, err
	}

	dashboard := &InvestorDashboard{
		Investments: make([]InvestorInvestment, 0, len(investments)),
	}

	for _, inv := range investments {
		dashboard.TotalInvestments++
		dashboard.TotalAmountInvested += inv.Amount

		snapshot := CampaignSnapshot{}
		if inv.Campaign != nil {
			totalFunds := inv.Campaign.TotalFunds()
			snapshot = CampaignSnapshot{
				Id:              inv.Campaign.Id,
				TargetAmount:    inv.Campaign.TargetAmount,
				FundingProgress: FundingProgress(totalFunds, inv.Campaign.TargetAmount),
				Status:          inv.Campaign.Status,
			}
			if inv.Campaign.Project != nil {
				snapshot.ProjectName = inv.Campaign.Project.Name
				snapshot.FarmerName = farmerName(inv.Campaign.Project.Farmer)
			}
		}

		dashboard.Investments = append(dashboard.Investments, InvestorInvestment{
			InvestmentId: inv.Id,
			Amount:       inv.Amount,
			InvestedAt:   inv.CreatedAt.Format(dateTimeLayout),
			Campaign:     snapshot,
		})
	}

	return dashboard, nil
}

// loadCampaigns 加载活动及报表需要的关联
func (l *ReportLogic) loadCampaigns(farmerId int64) ([]model.Campaign, error) {
	query := l.db.Preload("Project.Farmer").Preload("Investments.Investor")
	if farmerId > 0 {
		query = query.
			Joins("JOIN project ON project.id = campaign.project_id").
			Where("project.farmer_id = ?", farmerId)
	}

	var campaigns []model.Campaign
	if err := query.Order("campaign.id").Find(&campaigns).Error; err != nil {
		return nil, err
	}
	return campaigns, nil
}

// buildCampaignReport 从已加载关联的活动组装报表条目
func (l *ReportLogic) buildCampaignReport(campaign *model.Campaign) CampaignReport {
	totalFunds := campaign.TotalFunds()

	report := CampaignReport{
		Id:           campaign.Id,
		TargetAmount: campaign.TargetAmount,
		StartDate:    campaign.StartDate.Format(dateLayout),
		EndDate:      campaign.EndDate.Format(dateLayout),
		Status:       campaign.Status,
		FundingDetails: FundingDetails{
			TotalFunds:      totalFunds,
			InvestorCount:   len(campaign.Investments),
			FundingProgress: FundingProgress(totalFunds, campaign.TargetAmount),
			RemainingAmount: RemainingAmount(totalFunds, campaign.TargetAmount),
		},
		Investments: investmentLines(campaign.Investments),
	}

	if campaign.Project != nil {
		report.ProjectName = campaign.Project.Name
		report.ProjectDescription = campaign.Project.Description
		report.FarmerName = farmerName(campaign.Project.Farmer)
	}
	return report
}

// investmentLines 投资明细
func investmentLines(investments []model.Investment) []InvestmentLine {
	lines := make([]InvestmentLine, 0, len(investments))
	for _, inv := range investments {
		line := InvestmentLine{
			Amount:     inv.Amount,
			InvestedAt: inv.CreatedAt.Format(dateTimeLayout),
		}
		if inv.Investor != nil {
			line.InvestorName = inv.Investor.Name
		}
		lines = append(lines, line)
	}
	return lines
}

// farmerName 农户显示名
func farmerName(farmer *model.Farmer) string {
	if farmer == nil {
		return ""
	}
	if farmer.FirstName == farmer.LastName {
		return farmer.FirstName
	}
	return farmer.FirstName + " " + farmer.LastName
}
