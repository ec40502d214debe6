package models

import (
	"time"

	"gorm.io/datatypes"
)

// StylePreferenceVector is one user's aesthetic taste summary: a fixed-dimension
// vector kept L2-normalized after every update (the zero vector only before the
// first applying interaction), plus explicit preferred/avoided tag labels. A tag
// never appears in both sets at once.
type StylePreferenceVector struct {
	ID               uint                         `gorm:"primaryKey" json:"id"`
	UserID           uint                         `gorm:"uniqueIndex;not null" json:"user_id"`
	Vector           datatypes.JSONSlice[float64] `json:"vector"`
	InteractionCount int                          `gorm:"not null;default:0" json:"interaction_count"`
	PreferredTags    datatypes.JSONSlice[string]  `json:"preferred_tags"`
	AvoidedTags      datatypes.JSONSlice[string]  `json:"avoided_tags"`
	CreatedAt        time.Time                    `json:"created_at"`
	UpdatedAt        time.Time                    `json:"updated_at"`
}
