package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/closetly/styleloop/models"
	"github.com/closetly/styleloop/utils"
)

// StatsController provides service-wide aggregates for dashboards.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

type globalStats struct {
	TrackedUsers  int64 `json:"tracked_users"`
	UnlockedTotal int64 `json:"unlocked_total"`
	DailyActive   int64 `json:"daily_active_count"`
	LongestStreak int64 `json:"longest_streak"`
}

// GetStats returns aggregate progression statistics, cached briefly.
func (s *StatsController) GetStats(ctx *gin.Context) {
	const cacheKey = "progression:stats:global"
	var stats globalStats
	if utils.CacheGetJSON(cacheKey, &stats) {
		utils.Success(ctx, stats)
		return
	}

	// Fall back to 0 per aggregate instead of failing the whole endpoint.
	if err := s.db.Model(&models.StreakRecord{}).Count(&stats.TrackedUsers).Error; err != nil {
		stats.TrackedUsers = 0
	}
	if err := s.db.Model(&models.UserAchievementProgress{}).
		Where("unlocked_at IS NOT NULL").
		Count(&stats.UnlockedTotal).Error; err != nil {
		stats.UnlockedTotal = 0
	}
	if err := s.db.Model(&models.StreakRecord{}).
		Select("COALESCE(MAX(longest_streak),0)").
		Scan(&stats.LongestStreak).Error; err != nil {
		stats.LongestStreak = 0
	}

	// Daily active: distinct users in today's rollup rows.
	today := time.Now().UTC().Format("2006-01-02")
	if err := s.db.Model(&models.DailyActivity{}).
		Where("date = ?", today).
		Count(&stats.DailyActive).Error; err != nil {
		stats.DailyActive = 0
	}

	utils.CacheSetJSON(cacheKey, stats, time.Minute)
	utils.Success(ctx, stats)
}
