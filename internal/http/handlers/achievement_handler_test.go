package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/lingocoach/go-backend/internal/domain"
)

type stubAchSvc struct {
	overview func(context.Context, string) ([]domain.Achievement, []domain.UserAchievement, error)
}

func (s stubAchSvc) Overview(ctx context.Context, uid string) ([]domain.Achievement, []domain.UserAchievement, error) {
	if s.overview != nil {
		return s.overview(ctx, uid)
	}
	return nil, nil, nil
}

func TestListAchievements_CatalogPlusEarned(t *testing.T) {
	h := New(Options{Achievements: stubAchSvc{
		overview: func(_ context.Context, uid string) ([]domain.Achievement, []domain.UserAchievement, error) {
			return []domain.Achievement{
					{ID: "a1", Name: "First Steps", Points: 10},
					{ID: "a2", Name: "Conversationalist", Points: 25},
				}, []domain.UserAchievement{
					{UserID: uid, AchievementID: "a1"},
				}, nil
		},
	}})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/achievements", asUser("u1"), h.ListAchievements)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/achievements", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp AchievementsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(resp.Achievements) != 2 || len(resp.Earned) != 1 {
		t.Fatalf("resp = %+v", resp)
	}
	if resp.Earned[0].AchievementID != "a1" {
		t.Fatalf("earned = %+v", resp.Earned)
	}
}
