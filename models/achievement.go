package models

import "time"

// AchievementDefinition is one entry of the static achievement catalog. The
// engine treats the catalog as read-only, externally supplied input.
type AchievementDefinition struct {
	ID             string              `gorm:"primaryKey;size:64" json:"id"`
	Category       AchievementCategory `gorm:"index;size:32;not null" json:"category"`
	Title          string              `gorm:"size:128;not null" json:"title"`
	Description    string              `gorm:"size:255" json:"description"`
	Icon           string              `gorm:"size:64" json:"icon"`
	TargetProgress int                 `gorm:"not null" json:"target_progress"`
	Rarity         string              `gorm:"size:16" json:"rarity"`
	RewardPoints   int                 `gorm:"not null;default:0" json:"reward_points"`
	DisplayOrder   int                 `gorm:"not null;default:0" json:"display_order"`
	CreatedAt      time.Time           `json:"created_at"`
}

// UserAchievementProgress tracks one user's progress toward one achievement.
// UnlockedAt is set exactly once and never cleared afterwards.
type UserAchievementProgress struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          uint       `gorm:"uniqueIndex:idx_user_achievement;not null" json:"user_id"`
	AchievementID   string     `gorm:"uniqueIndex:idx_user_achievement;size:64;not null" json:"achievement_id"`
	CurrentProgress int        `gorm:"not null;default:0" json:"current_progress"`
	UnlockedAt      *time.Time `json:"unlocked_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// AchievementWithStatus pairs a definition with one user's progress for reads.
type AchievementWithStatus struct {
	AchievementDefinition
	CurrentProgress int        `json:"current_progress"`
	Unlocked        bool       `json:"unlocked"`
	UnlockedAt      *time.Time `json:"unlocked_at,omitempty"`
}

// DefaultCatalog seeds the definitions table when it is empty at boot. An
// operator-managed catalog in the database always wins over this list.
var DefaultCatalog = []AchievementDefinition{
	{ID: "wardrobe_first_item", Category: CategoryWardrobe, Title: "First Thread", Description: "Add your first item", Icon: "tshirt", TargetProgress: 1, Rarity: "common", RewardPoints: 10, DisplayOrder: 1},
	{ID: "wardrobe_5_items", Category: CategoryWardrobe, Title: "Starter Closet", Description: "Add 5 items", Icon: "hanger", TargetProgress: 5, Rarity: "common", RewardPoints: 25, DisplayOrder: 2},
	{ID: "wardrobe_25_items", Category: CategoryWardrobe, Title: "Full Rack", Description: "Add 25 items", Icon: "closet", TargetProgress: 25, Rarity: "rare", RewardPoints: 100, DisplayOrder: 3},
	{ID: "wardrobe_100_items", Category: CategoryWardrobe, Title: "Archivist", Description: "Add 100 items", Icon: "warehouse", TargetProgress: 100, Rarity: "epic", RewardPoints: 500, DisplayOrder: 4},

	{ID: "generation_first", Category: CategoryGeneration, Title: "Stylist's Debut", Description: "Generate your first outfit", Icon: "sparkles", TargetProgress: 1, Rarity: "common", RewardPoints: 10, DisplayOrder: 1},
	{ID: "generation_20", Category: CategoryGeneration, Title: "Lookbook", Description: "Generate 20 outfits", Icon: "book", TargetProgress: 20, Rarity: "rare", RewardPoints: 100, DisplayOrder: 2},
	{ID: "generation_100", Category: CategoryGeneration, Title: "Haute Couture", Description: "Generate 100 outfits", Icon: "crown", TargetProgress: 100, Rarity: "legendary", RewardPoints: 1000, DisplayOrder: 3},

	{ID: "wear_first", Category: CategoryWear, Title: "Out the Door", Description: "Wear a generated outfit", Icon: "door", TargetProgress: 1, Rarity: "common", RewardPoints: 15, DisplayOrder: 1},
	{ID: "wear_10", Category: CategoryWear, Title: "Regular Rotation", Description: "Wear 10 outfits", Icon: "repeat", TargetProgress: 10, Rarity: "rare", RewardPoints: 75, DisplayOrder: 2},
	{ID: "wear_50", Category: CategoryWear, Title: "Signature Look", Description: "Wear 50 outfits", Icon: "star", TargetProgress: 50, Rarity: "epic", RewardPoints: 400, DisplayOrder: 3},

	{ID: "social_first_share", Category: CategorySocial, Title: "Show and Tell", Description: "Share an outfit", Icon: "share", TargetProgress: 1, Rarity: "common", RewardPoints: 15, DisplayOrder: 1},
	{ID: "social_10_shares", Category: CategorySocial, Title: "Trendsetter", Description: "Share 10 outfits", Icon: "megaphone", TargetProgress: 10, Rarity: "rare", RewardPoints: 100, DisplayOrder: 2},

	{ID: "streak_3", Category: CategoryStreaks, Title: "Warming Up", Description: "3-day streak", Icon: "flame", TargetProgress: 3, Rarity: "common", RewardPoints: 20, DisplayOrder: 1},
	{ID: "streak_7", Category: CategoryStreaks, Title: "One Week Strong", Description: "7-day streak", Icon: "fire", TargetProgress: 7, Rarity: "rare", RewardPoints: 70, DisplayOrder: 2},
	{ID: "streak_30", Category: CategoryStreaks, Title: "Habit Formed", Description: "30-day streak", Icon: "calendar", TargetProgress: 30, Rarity: "epic", RewardPoints: 300, DisplayOrder: 3},
	{ID: "streak_100", Category: CategoryStreaks, Title: "Century Club", Description: "100-day streak", Icon: "trophy", TargetProgress: 100, Rarity: "legendary", RewardPoints: 1500, DisplayOrder: 4},
}
