package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/closetly/styleloop/models"
	"github.com/closetly/styleloop/utils"
)

// ProgressionService is the root of the progression engine. It routes incoming
// events to the streak tracker, the achievement evaluator and the style vector
// updater, and consolidates their outcomes. Sub-operations of one event are
// independent: each is attempted even when a sibling fails, and failures are
// reported back as partial failures instead of aborting the whole event.
type ProgressionService struct {
	db           *gorm.DB
	streaks      *StreakService
	achievements *AchievementService
	style        *StyleVectorService
}

// NewProgressionService wires the engine on top of one database handle.
func NewProgressionService(db *gorm.DB) *ProgressionService {
	return &ProgressionService{
		db:           db,
		streaks:      NewStreakService(db),
		achievements: NewAchievementService(db),
		style:        NewStyleVectorService(db),
	}
}

// Streaks exposes the streak tracker for read paths.
func (p *ProgressionService) Streaks() *StreakService { return p.streaks }

// Achievements exposes the evaluator for read paths.
func (p *ProgressionService) Achievements() *AchievementService { return p.achievements }

// Style exposes the vector updater for read paths.
func (p *ProgressionService) Style() *StyleVectorService { return p.style }

// ActivityResult is the consolidated outcome of one streak-advancing event.
type ActivityResult struct {
	CurrentStreak   int                            `json:"current_streak"`
	LongestStreak   int                            `json:"longest_streak"`
	TotalDaysActive int                            `json:"total_days_active"`
	StreakIncreased bool                           `json:"streak_increased"`
	StreakReset     bool                           `json:"streak_reset"`
	NewlyUnlocked   []models.AchievementDefinition `json:"newly_unlocked"`
	Partial         []string                       `json:"-"`
}

// InteractionEvent is one progression-relevant user action, with the optional
// style evidence attached to it.
type InteractionEvent struct {
	Action        models.ActionType
	Interaction   models.InteractionType
	Embeddings    [][]float64
	TagCorrection *models.TagCorrection
}

// InteractionResult is the consolidated outcome of one interaction event.
type InteractionResult struct {
	Stats         map[models.StatName]int        `json:"stats"`
	NewlyUnlocked []models.AchievementDefinition `json:"newly_unlocked"`
	VectorUpdated bool                           `json:"vector_updated"`
	Partial       []string                       `json:"-"`
}

// RecordActivity advances the user's streak and, only when the streak changed,
// re-evaluates streak achievements against the live current-streak value.
func (p *ProgressionService) RecordActivity(ctx context.Context, userID uint, now time.Time) (*ActivityResult, error) {
	if userID == 0 {
		return nil, ErrValidation
	}

	sr, err := p.streaks.RecordActivity(userID, now)
	if err != nil {
		return nil, err
	}

	res := &ActivityResult{
		CurrentStreak:   sr.Record.CurrentStreak,
		LongestStreak:   sr.Record.LongestStreak,
		TotalDaysActive: sr.Record.TotalDaysActive,
		StreakIncreased: sr.Increased,
		StreakReset:     sr.Reset,
	}
	if sr.Reset {
		utils.StreakResets.Inc()
	}

	if sr.Increased || sr.Reset {
		unlocked, err := p.achievements.Evaluate(userID, models.CategoryStreaks, sr.Record.CurrentStreak, now)
		if err != nil {
			utils.Sugar.Errorw("streak achievement evaluation failed", "user_id", userID, "err", err)
			res.Partial = append(res.Partial, "achievements")
		} else {
			res.NewlyUnlocked = unlocked
		}
	}

	p.reportUnlocks(ctx, userID, res.NewlyUnlocked)
	return res, nil
}

// RecordInteraction increments the action's stat counter, re-evaluates the
// action's achievement category with the new counter value, and independently
// applies the style evidence when present. The update_streak action carries no
// counter and routes to the streak path instead.
func (p *ProgressionService) RecordInteraction(ctx context.Context, userID uint, ev InteractionEvent, now time.Time) (*InteractionResult, error) {
	if userID == 0 {
		return nil, ErrValidation
	}

	if ev.Action == models.ActionUpdateStreak {
		ar, err := p.RecordActivity(ctx, userID, now)
		if err != nil {
			return nil, err
		}
		stats, statsErr := p.statsMap(userID)
		res := &InteractionResult{Stats: stats, NewlyUnlocked: ar.NewlyUnlocked, Partial: ar.Partial}
		if statsErr != nil {
			res.Partial = append(res.Partial, "stat_counters")
		}
		return res, nil
	}

	route, ok := models.ActionRoutes[ev.Action]
	if !ok {
		return nil, ErrUnknownAction
	}

	res := &InteractionResult{}

	// Sub-operation 1: counter increment.
	newValue, haveValue := 0, false
	if err := p.db.Transaction(func(tx *gorm.DB) error {
		var counters models.UserStatCounters
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).First(&counters).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			counters = models.UserStatCounters{UserID: userID}
		} else if err != nil {
			return err
		}
		newValue = counters.Incr(route.Stat)
		if err := tx.Save(&counters).Error; err != nil {
			return err
		}
		res.Stats = counters.Map()
		return nil
	}); err != nil {
		utils.Sugar.Errorw("stat counter update failed", "user_id", userID, "action", ev.Action, "err", err)
		res.Partial = append(res.Partial, "stat_counters")
	} else {
		haveValue = true
	}

	// Sub-operation 2: achievement evaluation against the new absolute value.
	if haveValue {
		unlocked, err := p.achievements.Evaluate(userID, route.Category, newValue, now)
		if err != nil {
			utils.Sugar.Errorw("achievement evaluation failed", "user_id", userID, "category", route.Category, "err", err)
			res.Partial = append(res.Partial, "achievements")
		} else {
			res.NewlyUnlocked = unlocked
		}
	} else {
		res.Partial = append(res.Partial, "achievements")
	}

	// Sub-operation 3: style evidence, independent of the two above.
	if len(ev.Embeddings) > 0 || ev.TagCorrection != nil {
		_, updated, err := p.style.ApplyInteraction(userID, ev.Interaction, ev.Embeddings, ev.TagCorrection)
		if err != nil {
			utils.Sugar.Errorw("style vector update failed", "user_id", userID, "err", err)
			res.Partial = append(res.Partial, "style_vector")
		} else {
			res.VectorUpdated = updated
		}
	}

	p.reportUnlocks(ctx, userID, res.NewlyUnlocked)
	return res, nil
}

// ApplyStylePreference applies a pure style event without touching counters or
// achievements.
func (p *ProgressionService) ApplyStylePreference(userID uint, interaction models.InteractionType, embeddings [][]float64, correction *models.TagCorrection) (bool, error) {
	_, updated, err := p.style.ApplyInteraction(userID, interaction, embeddings, correction)
	return updated, err
}

// Summary aggregates the user's streak, counters and style state for reads.
type Summary struct {
	Streak        models.StreakRecord     `json:"streak"`
	Stats         map[models.StatName]int `json:"stats"`
	StyleUpdates  int                     `json:"style_updates"`
	PreferredTags []string                `json:"preferred_tags"`
	AvoidedTags   []string                `json:"avoided_tags"`
}

// GetSummary loads the consolidated progression state for one user.
func (p *ProgressionService) GetSummary(userID uint) (*Summary, error) {
	if userID == 0 {
		return nil, ErrValidation
	}
	streak, err := p.streaks.Get(userID)
	if err != nil {
		return nil, err
	}
	stats, err := p.statsMap(userID)
	if err != nil {
		return nil, err
	}
	style, err := p.style.Get(userID)
	if err != nil {
		return nil, err
	}
	return &Summary{
		Streak:        *streak,
		Stats:         stats,
		StyleUpdates:  style.InteractionCount,
		PreferredTags: style.PreferredTags,
		AvoidedTags:   style.AvoidedTags,
	}, nil
}

func (p *ProgressionService) statsMap(userID uint) (map[models.StatName]int, error) {
	var counters models.UserStatCounters
	err := p.db.Where("user_id = ?", userID).First(&counters).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		counters = models.UserStatCounters{UserID: userID}
	} else if err != nil {
		return nil, err
	}
	return counters.Map(), nil
}

// reportUnlocks bumps metrics and notifies the downstream personalization
// service. Notification failures are swallowed by the notifier.
func (p *ProgressionService) reportUnlocks(ctx context.Context, userID uint, unlocked []models.AchievementDefinition) {
	if len(unlocked) == 0 {
		return
	}
	for _, def := range unlocked {
		utils.AchievementUnlocks.WithLabelValues(string(def.Category)).Inc()
	}
	utils.NotifyPersonalization(ctx, "achievements_unlocked", map[string]interface{}{
		"user_id":      userID,
		"achievements": unlocked,
	})
}
