package services

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/closetly/styleloop/models"
)

func seedWardrobe(t *testing.T, db *gorm.DB) {
	t.Helper()
	defs := []models.AchievementDefinition{
		{ID: "wardrobe_first_item", Category: models.CategoryWardrobe, Title: "First Thread", TargetProgress: 1, DisplayOrder: 1},
		{ID: "wardrobe_5_items", Category: models.CategoryWardrobe, Title: "Starter Closet", TargetProgress: 5, DisplayOrder: 2},
		{ID: "wardrobe_25_items", Category: models.CategoryWardrobe, Title: "Full Rack", TargetProgress: 25, DisplayOrder: 3},
	}
	if err := db.Create(&defs).Error; err != nil {
		t.Fatalf("seed definitions: %v", err)
	}
}

func TestEvaluateUnlocksCrossedThresholds(t *testing.T) {
	db := testDB(t)
	seedWardrobe(t, db)
	svc := NewAchievementService(db)

	unlocked, err := svc.Evaluate(1, models.CategoryWardrobe, 5, time.Now())
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(unlocked) != 2 {
		t.Fatalf("want 2 unlocks, got %d", len(unlocked))
	}
	// Definitions come back in display order.
	if unlocked[0].ID != "wardrobe_first_item" || unlocked[1].ID != "wardrobe_5_items" {
		t.Fatalf("unexpected unlock order: %s, %s", unlocked[0].ID, unlocked[1].ID)
	}
}

func TestEvaluateIsIdempotent(t *testing.T) {
	db := testDB(t)
	seedWardrobe(t, db)
	svc := NewAchievementService(db)

	if _, err := svc.Evaluate(1, models.CategoryWardrobe, 5, time.Now()); err != nil {
		t.Fatalf("first evaluate: %v", err)
	}
	again, err := svc.Evaluate(1, models.CategoryWardrobe, 5, time.Now())
	if err != nil {
		t.Fatalf("second evaluate: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("re-evaluating the same value must unlock nothing, got %d", len(again))
	}
}

func TestEvaluateUnlockIsSticky(t *testing.T) {
	db := testDB(t)
	seedWardrobe(t, db)
	svc := NewAchievementService(db)

	when := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	if _, err := svc.Evaluate(1, models.CategoryWardrobe, 5, when); err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	// A later call with a lower value overwrites progress but never re-locks.
	unlocked, err := svc.Evaluate(1, models.CategoryWardrobe, 0, time.Now())
	if err != nil {
		t.Fatalf("evaluate lower value: %v", err)
	}
	if len(unlocked) != 0 {
		t.Fatalf("lower value must unlock nothing, got %d", len(unlocked))
	}

	var prog models.UserAchievementProgress
	if err := db.Where("user_id = ? AND achievement_id = ?", 1, "wardrobe_5_items").First(&prog).Error; err != nil {
		t.Fatalf("load progress: %v", err)
	}
	if prog.UnlockedAt == nil {
		t.Fatal("unlock timestamp must survive a lower progress value")
	}
	if !prog.UnlockedAt.Equal(when) {
		t.Fatalf("unlock timestamp changed: got %v, want %v", prog.UnlockedAt, when)
	}
	if prog.CurrentProgress != 0 {
		t.Fatalf("current progress must track the latest value, got %d", prog.CurrentProgress)
	}
}

func TestEvaluateUnknownCategory(t *testing.T) {
	db := testDB(t)
	seedWardrobe(t, db)
	svc := NewAchievementService(db)

	unlocked, err := svc.Evaluate(1, "no_such_category", 100, time.Now())
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if unlocked != nil {
		t.Fatalf("unknown category must yield no unlocks, got %v", unlocked)
	}
}

func TestListWithStatus(t *testing.T) {
	db := testDB(t)
	seedWardrobe(t, db)
	svc := NewAchievementService(db)

	if _, err := svc.Evaluate(1, models.CategoryWardrobe, 5, time.Now()); err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	rows, err := svc.ListWithStatus(1, models.CategoryWardrobe)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("want 3 rows, got %d", len(rows))
	}
	byID := map[string]models.AchievementWithStatus{}
	for _, r := range rows {
		byID[r.ID] = r
	}
	if !byID["wardrobe_5_items"].Unlocked {
		t.Fatal("wardrobe_5_items should be unlocked")
	}
	if byID["wardrobe_25_items"].Unlocked {
		t.Fatal("wardrobe_25_items should still be locked")
	}
	if byID["wardrobe_25_items"].CurrentProgress != 5 {
		t.Fatalf("locked rows still show latest progress, got %d", byID["wardrobe_25_items"].CurrentProgress)
	}
}

func TestSeedCatalog(t *testing.T) {
	db := testDB(t)

	if err := SeedCatalog(db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	var count int64
	if err := db.Model(&models.AchievementDefinition{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != int64(len(models.DefaultCatalog)) {
		t.Fatalf("seeded %d definitions, want %d", count, len(models.DefaultCatalog))
	}

	// A populated table is left untouched.
	if err := SeedCatalog(db); err != nil {
		t.Fatalf("re-seed: %v", err)
	}
	var after int64
	if err := db.Model(&models.AchievementDefinition{}).Count(&after).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if after != count {
		t.Fatalf("re-seed changed the catalog: %d -> %d", count, after)
	}
}
