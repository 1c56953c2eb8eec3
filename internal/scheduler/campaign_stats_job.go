package scheduler

import (
	"sync"
	"time"

	"github.com/blues/afs/internal/config"
	"github.com/blues/afs/internal/logger"
	"github.com/blues/afs/internal/logic"
	"github.com/blues/afs/internal/model"
	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// CampaignStatsJob 活动融资进度巡检任务
// 定期汇总 active 活动的融资进度写进日志，供运营观察；
// 不改任何状态——活动过了截止日也不会被这里关掉。
type CampaignStatsJob struct {
	db     *gorm.DB
	config *config.Config
}

// NewCampaignStatsJob 创建活动融资进度巡检任务
func NewCampaignStatsJob(db *gorm.DB, cfg *config.Config) *CampaignStatsJob {
	return &CampaignStatsJob{
		db:     db,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *CampaignStatsJob) GetName() string {
	return "campaign_stats_snapshot"
}

// GetSchedule 获取调度配置
func (j *CampaignStatsJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Scheduler.CampaignStatsInterval) * time.Second)
}

// Execute 执行任务
func (j *CampaignStatsJob) Execute() {
	var campaigns []model.Campaign
	if err := j.db.Where("status = ?", model.CampaignStatusActive).Find(&campaigns).Error; err != nil {
		logger.Error("Failed to fetch active campaigns: %v", err)
		return
	}

	if len(campaigns) == 0 {
		return
	}

	// 用协程池并发聚合每个活动的投资金额
	pool, err := ants.NewPool(8)
	if err != nil {
		logger.Error("Failed to create stats pool: %v", err)
		return
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := range campaigns {
		campaign := campaigns[i]
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			j.snapshot(&campaign)
		})
		if err != nil {
			wg.Done()
			logger.Error("Failed to submit stats task: %v", err)
		}
	}
	wg.Wait()

	logger.Info("Campaign stats snapshot completed for %d active campaigns", len(campaigns))
}

// snapshot 记录单个活动的融资进度
func (j *CampaignStatsJob) snapshot(campaign *model.Campaign) {
	var totalFunds float64
	err := j.db.Model(&model.Investment{}).
		Where("campaign_id = ?", campaign.Id).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&totalFunds).Error
	if err != nil {
		logger.Error("Failed to aggregate funds for campaign %d: %v", campaign.Id, err)
		return
	}

	logger.Info("Campaign %d funding progress %.2f%% (%.2f / %.2f)",
		campaign.Id, logic.FundingProgress(totalFunds, campaign.TargetAmount),
		totalFunds, campaign.TargetAmount)
}
