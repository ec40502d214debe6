package services

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/closetly/styleloop/models"
	"github.com/closetly/styleloop/utils"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret")
	utils.Logger = zap.NewNop()
	utils.Sugar = utils.Logger.Sugar()
	os.Exit(m.Run())
}

// testDB opens an isolated in-memory database per test. The shared-cache DSN
// keeps all pooled connections on the same memory store.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.StreakRecord{},
		&models.UserStatCounters{},
		&models.AchievementDefinition{},
		&models.UserAchievementProgress{},
		&models.StylePreferenceVector{},
		&models.DailyActivity{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}
