package scheduler

import (
	"time"

	"github.com/blues/afs/internal/config"
	"github.com/blues/afs/internal/logger"
	"github.com/blues/afs/internal/model"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// TokenCleanupJob 过期令牌清理任务
// 过期令牌在认证中间件里已经不可用，这里只是定期回收存量。
type TokenCleanupJob struct {
	db     *gorm.DB
	config *config.Config
}

// NewTokenCleanupJob 创建过期令牌清理任务
func NewTokenCleanupJob(db *gorm.DB, cfg *config.Config) *TokenCleanupJob {
	return &TokenCleanupJob{
		db:     db,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *TokenCleanupJob) GetName() string {
	return "access_token_cleanup"
}

// GetSchedule 获取调度配置
func (j *TokenCleanupJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Scheduler.TokenCleanupInterval) * time.Second)
}

// Execute 执行任务
func (j *TokenCleanupJob) Execute() {
	result := j.db.Where("expires_at < ?", time.Now()).Delete(&model.AccessToken{})
	if result.Error != nil {
		logger.Error("Failed to clean up expired tokens: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		logger.Info("Cleaned up %d expired access tokens", result.RowsAffected)
	}
}
