// Achievement HTTP handlers.
//
// Display only: the catalog is seeded at startup and there is no award path.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lingocoach/go-backend/internal/domain"
)

// AchievementService defines the achievement operations consumed by HTTP
// handlers.
type AchievementService interface {
	// Overview returns the static catalog and the caller's earned set.
	Overview(ctx context.Context, userID string) ([]domain.Achievement, []domain.UserAchievement, error)
}

// AchievementsResponse pairs the catalog with the caller's earned entries.
type AchievementsResponse struct {
	Achievements []domain.Achievement     `json:"achievements"`
	Earned       []domain.UserAchievement `json:"earned"`
}

// ListAchievements godoc
// @ID          listAchievements
// @Summary     Achievement overview
// @Description Returns the active achievement catalog together with the caller's earned set.
// @Tags        Achievements
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {object}  handlers.AchievementsResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /achievements [get]
func (h *Handlers) ListAchievements(c *gin.Context) {
	catalog, earned, err := h.achSvc.Overview(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not load achievements")
		return
	}
	ok(c, http.StatusOK, AchievementsResponse{Achievements: catalog, Earned: earned})
}
