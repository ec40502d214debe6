package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/closetly/styleloop/models"
	"github.com/closetly/styleloop/utils"
)

// DailyActiveRecorder upserts one (day, user) rollup row per authenticated
// request, feeding the daily-active aggregate. Runs after the handler so only
// successful requests count.
func DailyActiveRecorder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 400 {
			return
		}

		v, ok := c.Get(ContextUserIDKey)
		if !ok {
			return
		}
		userID, ok := v.(uint)
		if !ok || userID == 0 {
			return
		}

		// UTC midnight to align with the DATE column.
		now := time.Now().UTC()
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

		// Atomic upsert to avoid duplicate key errors under concurrency.
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("count + 1"), "updated_at": time.Now()}),
		}).Create(&models.DailyActivity{Date: day, UserID: userID, Count: 1}).Error
		// Best effort, but a broken rollup table should show up in the logs.
		if err != nil && utils.Sugar != nil {
			utils.Sugar.Warnw("daily active upsert failed", "user_id", userID, "err", err)
		}
	}
}
