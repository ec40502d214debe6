package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/closetly/styleloop/config"
	"github.com/closetly/styleloop/middleware"
	"github.com/closetly/styleloop/models"
	"github.com/closetly/styleloop/services"
	"github.com/closetly/styleloop/utils"
)

// ProgressionController exposes the progression engine over HTTP.
type ProgressionController struct {
	svc *services.ProgressionService
}

// NewProgressionController creates a new controller instance.
func NewProgressionController(db *gorm.DB) *ProgressionController {
	return &ProgressionController{svc: services.NewProgressionService(db)}
}

func getUserID(ctx *gin.Context) (uint, bool) {
	v, ok := ctx.Get(middleware.ContextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// RecordActivity advances the caller's daily streak.
func (p *ProgressionController) RecordActivity(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	res, err := p.svc.RecordActivity(ctx.Request.Context(), userID, time.Now())
	if err != nil {
		utils.Sugar.Errorw("record activity failed", "user_id", userID, "err", err)
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to record activity")
		return
	}

	if len(res.Partial) > 0 {
		utils.PartialSuccess(ctx, res, res.Partial)
		return
	}
	utils.Success(ctx, res)
}

// InteractionRequest is the body of a progression interaction submission.
type InteractionRequest struct {
	Action        models.ActionType      `json:"action" binding:"required"`
	Interaction   models.InteractionType `json:"interaction_type"`
	ItemIDs       []string               `json:"item_ids"`
	Embeddings    [][]float64            `json:"embeddings"`
	TagCorrection *models.TagCorrection  `json:"tag_correction"`
}

// RecordInteraction counts one action, evaluates achievements and feeds any
// attached style evidence. An optional Idempotency-Key header deduplicates
// retried submissions.
func (p *ProgressionController) RecordInteraction(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req InteractionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid request body")
		return
	}

	idemKey := ctx.GetHeader("Idempotency-Key")
	ttl := time.Duration(config.Get().IdempotencyTTLMinutes) * time.Minute
	if !utils.ClaimIdempotencyKey(idemKey, ttl) {
		utils.Respond(ctx, http.StatusOK, 20910, "duplicate submission ignored", nil)
		return
	}

	ev := services.InteractionEvent{
		Action:        req.Action,
		Interaction:   req.Interaction,
		Embeddings:    req.Embeddings,
		TagCorrection: req.TagCorrection,
	}
	res, err := p.svc.RecordInteraction(ctx.Request.Context(), userID, ev, time.Now())
	if err != nil {
		// The event never applied; let the caller retry with the same key.
		utils.ReleaseIdempotencyKey(idemKey)
		if errors.Is(err, services.ErrUnknownAction) || errors.Is(err, services.ErrValidation) {
			utils.Error(ctx, http.StatusBadRequest, 40011, "unknown action type")
			return
		}
		utils.Sugar.Errorw("record interaction failed", "user_id", userID, "action", req.Action, "err", err)
		utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to record interaction")
		return
	}

	if len(res.Partial) > 0 {
		utils.PartialSuccess(ctx, res, res.Partial)
		return
	}
	utils.Success(ctx, res)
}

// StyleUpdateRequest is the body of a pure style preference update.
type StyleUpdateRequest struct {
	Interaction   models.InteractionType `json:"interaction_type" binding:"required"`
	ItemIDs       []string               `json:"item_ids"`
	Embeddings    [][]float64            `json:"embeddings"`
	TagCorrection *models.TagCorrection  `json:"tag_correction"`
}

// ApplyStylePreference updates the caller's preference vector and tag sets
// without touching counters or achievements.
func (p *ProgressionController) ApplyStylePreference(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req StyleUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40012, "invalid request body")
		return
	}

	updated, err := p.svc.ApplyStylePreference(userID, req.Interaction, req.Embeddings, req.TagCorrection)
	if err != nil {
		utils.Sugar.Errorw("style preference update failed", "user_id", userID, "err", err)
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to update style preference")
		return
	}

	utils.Success(ctx, gin.H{"updated": updated})
}

// GetSummary returns the caller's consolidated progression state.
func (p *ProgressionController) GetSummary(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	summary, err := p.svc.GetSummary(userID)
	if err != nil {
		utils.Sugar.Errorw("load summary failed", "user_id", userID, "err", err)
		utils.Error(ctx, http.StatusInternalServerError, 50013, "failed to load summary")
		return
	}
	utils.Success(ctx, summary)
}
