package main

import (
	"github.com/closetly/styleloop/config"
	"github.com/closetly/styleloop/jobs"
	"github.com/closetly/styleloop/models"
	"github.com/closetly/styleloop/routes"
	"github.com/closetly/styleloop/services"
	"github.com/closetly/styleloop/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	utils.InitMetrics()

	db := config.InitDatabase(
		&models.StreakRecord{},
		&models.UserStatCounters{},
		&models.AchievementDefinition{},
		&models.UserAchievementProgress{},
		&models.StylePreferenceVector{},
		&models.DailyActivity{},
	)

	// Seed the default achievement catalog on an empty table.
	if err := services.SeedCatalog(db); err != nil {
		utils.Sugar.Fatalf("achievement catalog seed failed: %v", err)
	}

	if _, err := jobs.StartRollupScheduler(db); err != nil {
		utils.Sugar.Errorf("rollup scheduler failed to start: %v", err)
	}

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
