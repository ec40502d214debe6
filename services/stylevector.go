package services

import (
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/closetly/styleloop/models"
	"github.com/closetly/styleloop/utils"
)

const (
	// VectorDim is the fixed dimension of item embeddings and the preference
	// vector. Embeddings of any other length are ignored.
	VectorDim = 512
	// emaAlpha is the decay constant of the preference update rule: old
	// evidence keeps 95% of its weight per interaction.
	emaAlpha = 0.95
)

// StyleVectorService blends interaction evidence into a per-user preference
// vector with an exponential moving average, and maintains the explicit
// preferred/avoided tag sets.
type StyleVectorService struct {
	db  *gorm.DB
	dim int
}

// NewStyleVectorService creates a new service instance.
func NewStyleVectorService(db *gorm.DB) *StyleVectorService {
	return &StyleVectorService{db: db, dim: VectorDim}
}

// NewStyleVectorServiceWithDim creates a service with a non-default dimension.
// Used by tests; production always runs with VectorDim.
func NewStyleVectorServiceWithDim(db *gorm.DB, dim int) *StyleVectorService {
	return &StyleVectorService{db: db, dim: dim}
}

// ApplyInteraction folds one interaction into the user's preference state.
// Embeddings of the wrong dimension are dropped from the mean; when none
// qualify the vector is left untouched. The tag-correction side effect is
// applied independently of the vector path, so it lands even when the
// interaction carries no embeddings. Returns the persisted row and whether
// the vector itself changed.
func (s *StyleVectorService) ApplyInteraction(userID uint, interaction models.InteractionType, embeddings [][]float64, correction *models.TagCorrection) (*models.StylePreferenceVector, bool, error) {
	if userID == 0 {
		return nil, false, ErrValidation
	}

	weight := models.InteractionWeights[interaction] // unknown types weigh 0

	var row models.StylePreferenceVector
	vectorUpdated := false

	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = models.StylePreferenceVector{UserID: userID}
		} else if err != nil {
			return err
		}

		if avg := utils.MeanVector(embeddings, s.dim); avg != nil {
			blended := utils.BlendEMA(row.Vector, avg, emaAlpha, weight)
			utils.Normalize(blended)
			row.Vector = datatypes.NewJSONSlice(blended)
			row.InteractionCount++
			vectorUpdated = true
		}

		if correction != nil {
			s.applyTagCorrection(&row, correction)
		}

		return tx.Save(&row).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &row, vectorUpdated, nil
}

// applyTagCorrection moves the old label out of the preferred set and promotes
// the new label into it, keeping preferred and avoided mutually exclusive.
func (s *StyleVectorService) applyTagCorrection(row *models.StylePreferenceVector, corr *models.TagCorrection) {
	oldTag := utils.NormalizeTag(corr.OldTag)
	newTag := utils.NormalizeTag(corr.NewTag)

	preferred := []string(row.PreferredTags)
	avoided := []string(row.AvoidedTags)

	if oldTag != "" {
		preferred = utils.RemoveTag(preferred, oldTag)
	}
	if newTag != "" {
		preferred = utils.AddTag(preferred, newTag)
		avoided = utils.RemoveTag(avoided, newTag)
	}

	row.PreferredTags = datatypes.NewJSONSlice(preferred)
	row.AvoidedTags = datatypes.NewJSONSlice(avoided)
}

// Get returns the user's preference state, or an empty row before any
// interaction (zero vector, zero count).
func (s *StyleVectorService) Get(userID uint) (*models.StylePreferenceVector, error) {
	var row models.StylePreferenceVector
	err := s.db.Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.StylePreferenceVector{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
