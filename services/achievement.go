package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/closetly/styleloop/models"
)

// AchievementService evaluates unlock thresholds against caller-computed
// progress counters. It trusts the caller's counter as an absolute value and
// never increments internally, which makes retries safe: evaluating twice with
// the same or higher value can never unlock an achievement twice.
type AchievementService struct {
	db *gorm.DB
}

// NewAchievementService creates a new service instance.
func NewAchievementService(db *gorm.DB) *AchievementService {
	return &AchievementService{db: db}
}

// Evaluate overwrites each progress row in category with progressValue and
// returns the definitions crossing their threshold for the first time. An
// unknown or empty category yields zero unlocks, not an error. Unlock
// timestamps are sticky: once set they are never cleared, even if a later
// call passes a lower value.
func (s *AchievementService) Evaluate(userID uint, category models.AchievementCategory, progressValue int, now time.Time) ([]models.AchievementDefinition, error) {
	if userID == 0 {
		return nil, ErrValidation
	}

	var defs []models.AchievementDefinition
	if err := s.db.Where("category = ?", category).Order("display_order ASC").Find(&defs).Error; err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, nil
	}

	var unlocked []models.AchievementDefinition
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, def := range defs {
			var prog models.UserAchievementProgress
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("user_id = ? AND achievement_id = ?", userID, def.ID).First(&prog).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				prog = models.UserAchievementProgress{UserID: userID, AchievementID: def.ID}
			} else if err != nil {
				return err
			}

			wasUnlocked := prog.UnlockedAt != nil
			prog.CurrentProgress = progressValue
			if !wasUnlocked && progressValue >= def.TargetProgress {
				ts := now
				prog.UnlockedAt = &ts
				unlocked = append(unlocked, def)
			}

			if err := tx.Save(&prog).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// A failed progress write must never report its achievement as unlocked.
		return nil, err
	}
	return unlocked, nil
}

// ListWithStatus returns the catalog for a category joined with one user's
// progress, in display order. Rows without progress show zero/locked.
func (s *AchievementService) ListWithStatus(userID uint, category models.AchievementCategory) ([]models.AchievementWithStatus, error) {
	if userID == 0 {
		return nil, ErrValidation
	}

	query := s.db.Model(&models.AchievementDefinition{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var defs []models.AchievementDefinition
	if err := query.Order("category ASC, display_order ASC").Find(&defs).Error; err != nil {
		return nil, err
	}

	var rows []models.UserAchievementProgress
	if err := s.db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	progress := make(map[string]models.UserAchievementProgress, len(rows))
	for _, r := range rows {
		progress[r.AchievementID] = r
	}

	out := make([]models.AchievementWithStatus, 0, len(defs))
	for _, def := range defs {
		st := models.AchievementWithStatus{AchievementDefinition: def}
		if p, ok := progress[def.ID]; ok {
			st.CurrentProgress = p.CurrentProgress
			st.Unlocked = p.UnlockedAt != nil
			st.UnlockedAt = p.UnlockedAt
		}
		out = append(out, st)
	}
	return out, nil
}

// SeedCatalog inserts the default achievement catalog when the definitions
// table is empty. An operator-supplied catalog is left untouched.
func SeedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.AchievementDefinition{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(&models.DefaultCatalog).Error
}
