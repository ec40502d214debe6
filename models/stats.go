package models

import "time"

// UserStatCounters keeps per-user progress counters, one column per stat.
// Each qualifying action increments exactly one counter by exactly 1.
type UserStatCounters struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	ItemsAdded       int       `gorm:"not null;default:0" json:"items_added"`
	OutfitsGenerated int       `gorm:"not null;default:0" json:"outfits_generated"`
	OutfitsWorn      int       `gorm:"not null;default:0" json:"outfits_worn"`
	OutfitsSaved     int       `gorm:"not null;default:0" json:"outfits_saved"`
	OutfitsShared    int       `gorm:"not null;default:0" json:"outfits_shared"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Get returns the current value of the named counter.
func (c *UserStatCounters) Get(stat StatName) int {
	switch stat {
	case StatItemsAdded:
		return c.ItemsAdded
	case StatOutfitsGenerated:
		return c.OutfitsGenerated
	case StatOutfitsWorn:
		return c.OutfitsWorn
	case StatOutfitsSaved:
		return c.OutfitsSaved
	case StatOutfitsShared:
		return c.OutfitsShared
	}
	return 0
}

// Incr bumps the named counter by one and returns the new value.
func (c *UserStatCounters) Incr(stat StatName) int {
	switch stat {
	case StatItemsAdded:
		c.ItemsAdded++
		return c.ItemsAdded
	case StatOutfitsGenerated:
		c.OutfitsGenerated++
		return c.OutfitsGenerated
	case StatOutfitsWorn:
		c.OutfitsWorn++
		return c.OutfitsWorn
	case StatOutfitsSaved:
		c.OutfitsSaved++
		return c.OutfitsSaved
	case StatOutfitsShared:
		c.OutfitsShared++
		return c.OutfitsShared
	}
	return 0
}

// Map renders all counters keyed by stat name for API responses.
func (c *UserStatCounters) Map() map[StatName]int {
	return map[StatName]int{
		StatItemsAdded:       c.ItemsAdded,
		StatOutfitsGenerated: c.OutfitsGenerated,
		StatOutfitsWorn:      c.OutfitsWorn,
		StatOutfitsSaved:     c.OutfitsSaved,
		StatOutfitsShared:    c.OutfitsShared,
	}
}
