package models

// ActionType enumerates progression-relevant actions reported by the app.
type ActionType string

const (
	ActionAddItem        ActionType = "add_item"
	ActionGenerateOutfit ActionType = "generate_outfit"
	ActionWearOutfit     ActionType = "wear_outfit"
	ActionSaveOutfit     ActionType = "save_outfit"
	ActionShareOutfit    ActionType = "share_outfit"
	// ActionUpdateStreak routes to the streak path and never increments a counter.
	ActionUpdateStreak ActionType = "update_streak"
)

// AchievementCategory groups achievement definitions sharing a progress source.
type AchievementCategory string

const (
	CategoryWardrobe   AchievementCategory = "wardrobe"
	CategoryGeneration AchievementCategory = "generation"
	CategoryWear       AchievementCategory = "wear"
	CategorySocial     AchievementCategory = "social"
	CategoryStreaks    AchievementCategory = "streaks"
)

// StatName identifies one per-user progress counter.
type StatName string

const (
	StatItemsAdded       StatName = "items_added"
	StatOutfitsGenerated StatName = "outfits_generated"
	StatOutfitsWorn      StatName = "outfits_worn"
	StatOutfitsSaved     StatName = "outfits_saved"
	StatOutfitsShared    StatName = "outfits_shared"
)

// ActionRoute binds an action to the counter it increments and the achievement
// category evaluated afterwards.
type ActionRoute struct {
	Stat     StatName
	Category AchievementCategory
}

// ActionRoutes is the fixed action dispatch table. ActionUpdateStreak is absent
// on purpose: streak progress is read live from the streak record, not counted.
var ActionRoutes = map[ActionType]ActionRoute{
	ActionAddItem:        {Stat: StatItemsAdded, Category: CategoryWardrobe},
	ActionGenerateOutfit: {Stat: StatOutfitsGenerated, Category: CategoryGeneration},
	ActionWearOutfit:     {Stat: StatOutfitsWorn, Category: CategoryWear},
	ActionSaveOutfit:     {Stat: StatOutfitsSaved, Category: CategoryWear},
	ActionShareOutfit:    {Stat: StatOutfitsShared, Category: CategorySocial},
}

// InteractionType enumerates style-signal interactions fed into the preference
// vector.
type InteractionType string

const (
	InteractionWear          InteractionType = "wear"
	InteractionLike          InteractionType = "like"
	InteractionSave          InteractionType = "save"
	InteractionSkip          InteractionType = "skip"
	InteractionDislike       InteractionType = "dislike"
	InteractionTagCorrection InteractionType = "tag_correction"
)

// InteractionWeights holds the fixed evidence weight per interaction type.
// Unknown types weigh 0 and leave the vector untouched.
var InteractionWeights = map[InteractionType]float64{
	InteractionWear:          1.0,
	InteractionLike:          0.5,
	InteractionSave:          0.7,
	InteractionSkip:          -0.1,
	InteractionDislike:       -0.5,
	InteractionTagCorrection: 2.0,
}

// TagCorrection carries the old/new label pair of a tag-correction interaction.
type TagCorrection struct {
	OldTag string `json:"old_tag"`
	NewTag string `json:"new_tag"`
}
