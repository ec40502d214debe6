package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/closetly/styleloop/config"
	"github.com/closetly/styleloop/models"
	"github.com/closetly/styleloop/services"
	"github.com/closetly/styleloop/utils"
)

// AchievementController serves the achievement catalog with per-user status.
type AchievementController struct {
	db  *gorm.DB
	svc *services.AchievementService
}

// NewAchievementController creates a new controller instance.
func NewAchievementController(db *gorm.DB) *AchievementController {
	return &AchievementController{db: db, svc: services.NewAchievementService(db)}
}

// List returns catalog entries joined with the caller's progress, optionally
// filtered by ?category=. The raw catalog is cached; progress is always fresh.
func (a *AchievementController) List(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	category := models.AchievementCategory(ctx.Query("category"))

	rows, err := a.svc.ListWithStatus(userID, category)
	if err != nil {
		utils.Sugar.Errorw("list achievements failed", "user_id", userID, "err", err)
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to list achievements")
		return
	}

	utils.Success(ctx, gin.H{
		"achievements": rows,
		"total":        len(rows),
	})
}

// Catalog returns the raw definitions for a category, cached in Redis so the
// hot mobile path skips the database.
func (a *AchievementController) Catalog(ctx *gin.Context) {
	category := ctx.Query("category")

	cacheKey := "achievements:defs:" + category
	var defs []models.AchievementDefinition
	if utils.CacheGetJSON(cacheKey, &defs) {
		utils.Success(ctx, gin.H{"achievements": defs, "total": len(defs)})
		return
	}

	query := a.db.Model(&models.AchievementDefinition{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Order("category ASC, display_order ASC").Find(&defs).Error; err != nil {
		utils.Sugar.Errorw("load catalog failed", "err", err)
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to load catalog")
		return
	}

	ttl := time.Duration(config.Get().CacheTTLSeconds) * time.Second
	utils.CacheSetJSON(cacheKey, defs, ttl)
	utils.Success(ctx, gin.H{"achievements": defs, "total": len(defs)})
}
