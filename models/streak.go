package models

import (
	"time"
)

// StreakRecord tracks consecutive-day activity per user. One row per user,
// created on first qualifying activity, mutated at most once per UTC calendar
// day, never deleted. LongestStreak >= CurrentStreak holds after any mutation.
type StreakRecord struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	CurrentStreak   int        `gorm:"not null;default:0" json:"current_streak"`
	LongestStreak   int        `gorm:"not null;default:0" json:"longest_streak"`
	LastActiveDate  *time.Time `json:"last_active_date"`
	TotalDaysActive int        `gorm:"not null;default:0" json:"total_days_active"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
