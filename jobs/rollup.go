package jobs

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"

	"github.com/closetly/styleloop/config"
	"github.com/closetly/styleloop/models"
	"github.com/closetly/styleloop/utils"
)

// StartRollupScheduler runs daily maintenance: ages out activity rollup rows
// past the retention window and refreshes the cached global stats. Best
// effort; failures are logged and retried on the next run.
func StartRollupScheduler(db *gorm.DB) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(3, 15, 0))),
		gocron.NewTask(func() {
			retention := config.Get().ActivityRetentionDays
			cutoff := time.Now().UTC().AddDate(0, 0, -retention)

			res := db.Where("date < ?", cutoff).Delete(&models.DailyActivity{})
			if res.Error != nil {
				utils.Sugar.Errorw("activity rollup prune failed", "err", res.Error)
				return
			}
			if res.RowsAffected > 0 {
				utils.Sugar.Infow("activity rollup pruned", "rows", res.RowsAffected, "cutoff", cutoff.Format("2006-01-02"))
			}

			utils.InvalidateByPrefix("progression:stats:")
		}),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	return sched, nil
}
