package models

import "time"

// DailyActivity stores one row per (day, user) used for daily-active stats.
// Rows are upserted by the activity middleware and aged out by the rollup job.
type DailyActivity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      time.Time `gorm:"index:idx_activity_date_user,unique;type:date;not null" json:"date"`
	UserID    uint      `gorm:"index:idx_activity_date_user,unique;not null" json:"user_id"`
	Count     int64     `gorm:"not null;default:0" json:"count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
