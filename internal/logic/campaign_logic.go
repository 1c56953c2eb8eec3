package logic

import (
	"errors"
	"net/http"
	"time"

	"github.com/blues/afs/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CampaignLogic 众筹活动业务逻辑
type CampaignLogic struct {
	db *gorm.DB
}

// NewCampaignLogic 创建众筹活动业务逻辑
func NewCampaignLogic(db *gorm.DB) *CampaignLogic {
	return &CampaignLogic{db: db}
}

// ListCampaigns 获取全部活动，附带项目和投资记录
func (l *CampaignLogic) ListCampaigns() ([]model.Campaign, error) {
	var campaigns []model.Campaign
	if err := l.db.Preload("Project").Preload("Investments").Find(&campaigns).Error; err != nil {
		return nil, err
	}
	return campaigns, nil
}

// GetCampaign 获取活动详情
func (l *CampaignLogic) GetCampaign(id int64) (*model.Campaign, error) {
	var campaign model.Campaign
	if err := l.db.Preload("Project").Preload("Investments").First(&campaign, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("Campaign not found", "The requested campaign does not exist.")
		}
		return nil, err
	}
	return &campaign, nil
}

// StoreCampaignInput 发起活动参数
type StoreCampaignInput struct {
	ProjectName        string
	ProjectDescription string
	ProjectLocation    string
	ProjectCapital     float64
	ProjectDuration    int
	ProjectBenefits    string
	ProjectRisks       string
}

// CreateCampaign 创建项目和对应活动
// 两条记录在同一事务内创建，活动初始为 pending，
// 融资窗口从当前时间起按月数顺延，目标金额即项目所需资金。
func (l *CampaignLogic) CreateCampaign(farmer *model.User, input StoreCampaignInput) (*model.Campaign, error) {
	now := time.Now()
	var campaign model.Campaign

	err := l.db.Transaction(func(tx *gorm.DB) error {
		project := model.Project{
			Name:           input.ProjectName,
			Description:    input.ProjectDescription,
			Location:       input.ProjectLocation,
			CapitalNeeded:  input.ProjectCapital,
			DurationMonths: input.ProjectDuration,
			Benefits:       input.ProjectBenefits,
			Risks:          input.ProjectRisks,
			FarmerId:       farmer.UserableId,
		}
		if err := tx.Create(&project).Error; err != nil {
			return err
		}

		campaign = model.Campaign{
			ProjectId:    project.Id,
			TargetAmount: input.ProjectCapital,
			StartDate:    now,
			EndDate:      now.AddDate(0, input.ProjectDuration, 0),
			Status:       model.CampaignStatusPending,
		}
		return tx.Create(&campaign).Error
	})
	if err != nil {
		return nil, err
	}

	return l.GetCampaign(campaign.Id)
}

// Approve 审核通过，pending/rejected -> active
func (l *CampaignLogic) Approve(id int64) (*model.Campaign, error) {
	campaign, err := l.GetCampaign(id)
	if err != nil {
		return nil, err
	}

	if campaign.Status == model.CampaignStatusActive {
		return nil, ErrInvalidOperation(http.StatusBadRequest, "Campaign is already approved.")
	}

	if err := l.updateStatus(campaign, model.CampaignStatusActive); err != nil {
		return nil, err
	}
	return campaign, nil
}

// Reject 驳回，仅拦截重复驳回（驳回 active 活动是允许的）
func (l *CampaignLogic) Reject(id int64) (*model.Campaign, error) {
	campaign, err := l.GetCampaign(id)
	if err != nil {
		return nil, err
	}

	if campaign.Status == model.CampaignStatusRejected {
		return nil, ErrInvalidOperation(http.StatusBadRequest, "Campaign is already rejected.")
	}

	if err := l.updateStatus(campaign, model.CampaignStatusRejected); err != nil {
		return nil, err
	}
	return campaign, nil
}

// Fund 投资活动
// 事务内加行锁重读并复核投资窗口，避免截止边界上的并发穿越；
// 累计金额没有上限，超过目标金额后仍可继续投。
func (l *CampaignLogic) Fund(investor *model.User, id int64, amount float64) (*model.Investment, *model.Campaign, error) {
	if _, err := l.GetCampaign(id); err != nil {
		return nil, nil, err
	}

	var investment model.Investment
	err := l.db.Transaction(func(tx *gorm.DB) error {
		query := tx
		if tx.Dialector.Name() == "postgres" {
			// sqlite 没有行锁，仅在 postgres 上加 FOR UPDATE
			query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var campaign model.Campaign
		if err := query.First(&campaign, id).Error; err != nil {
			return err
		}

		if !campaign.CanBeFunded(time.Now()) {
			return ErrInvalidOperation(http.StatusForbidden, "Campaign cannot be funded at this time.")
		}

		investment = model.Investment{
			CampaignId: campaign.Id,
			InvestorId: investor.UserableId,
			Amount:     amount,
		}
		return tx.Create(&investment).Error
	})
	if err != nil {
		return nil, nil, err
	}

	campaign, err := l.GetCampaign(id)
	if err != nil {
		return nil, nil, err
	}
	return &investment, campaign, nil
}

// updateStatus 持久化状态变更
func (l *CampaignLogic) updateStatus(campaign *model.Campaign, status model.CampaignStatus) error {
	if err := l.db.Model(campaign).Update("status", status).Error; err != nil {
		return err
	}
	campaign.Status = status
	return nil
}
