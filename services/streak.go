package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/closetly/styleloop/models"
)

// StreakService maintains one streak record per user, advancing or resetting
// it from calendar-day gaps between activity. Days are UTC calendar days.
type StreakService struct {
	db *gorm.DB
}

// NewStreakService creates a new service instance.
func NewStreakService(db *gorm.DB) *StreakService {
	return &StreakService{db: db}
}

// StreakResult reports the streak state after one activity call and whether
// this call changed it.
type StreakResult struct {
	Record    models.StreakRecord
	Increased bool
	Reset     bool
}

// utcDay truncates t to midnight UTC.
func utcDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	return utcDay(a).Equal(utcDay(b))
}

// RecordActivity applies one qualifying activity at time now. The transition
// is keyed by the relation between the stored last-active date and
// {today, yesterday, anything else}; a last-active date in the future counts
// as "anything else" and resets like a gap. Re-entry on the same day is a
// no-op. No in-memory mutation is durable until the store confirms the write.
func (s *StreakService) RecordActivity(userID uint, now time.Time) (*StreakResult, error) {
	if userID == 0 {
		return nil, ErrValidation
	}

	today := utcDay(now)
	yesterday := today.AddDate(0, 0, -1)

	res := &StreakResult{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var rec models.StreakRecord
		// Row lock so concurrent same-user requests serialize on the record.
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).First(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			rec = models.StreakRecord{
				UserID:          userID,
				CurrentStreak:   1,
				LongestStreak:   1,
				LastActiveDate:  &today,
				TotalDaysActive: 1,
			}
			if err := tx.Create(&rec).Error; err != nil {
				return err
			}
			res.Record = rec
			res.Increased = true
			return nil
		}
		if err != nil {
			return err
		}

		switch {
		case rec.LastActiveDate != nil && sameDay(*rec.LastActiveDate, today):
			// Already counted today; idempotent re-entry.
			res.Record = rec
			return nil

		case rec.LastActiveDate != nil && sameDay(*rec.LastActiveDate, yesterday):
			rec.CurrentStreak++
			if rec.CurrentStreak > rec.LongestStreak {
				rec.LongestStreak = rec.CurrentStreak
			}
			rec.TotalDaysActive++
			rec.LastActiveDate = &today
			res.Increased = true

		default:
			// Gap of two or more days, or a future date from clock skew.
			rec.CurrentStreak = 1
			rec.TotalDaysActive++
			rec.LastActiveDate = &today
			res.Reset = true
		}

		if err := tx.Save(&rec).Error; err != nil {
			return err
		}
		res.Record = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Get returns the user's streak record, or a zero-valued record before the
// first activity.
func (s *StreakService) Get(userID uint) (*models.StreakRecord, error) {
	var rec models.StreakRecord
	err := s.db.Where("user_id = ?", userID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.StreakRecord{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
