package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/lingocoach/go-backend/internal/domain"
	"github.com/lingocoach/go-backend/internal/repo"
	"github.com/lingocoach/go-backend/internal/services"
)

type stubUserSvc struct {
	profile     func(context.Context, string) (*domain.User, error)
	updProfile  func(context.Context, string, string, string) (*domain.User, error)
	prefs       func(context.Context, string) (*domain.UserPreferences, error)
	updatePrefs func(context.Context, string, repo.PreferencesUpdate) (*domain.UserPreferences, error)
}

func (s stubUserSvc) Profile(ctx context.Context, uid string) (*domain.User, error) {
	if s.profile != nil {
		return s.profile(ctx, uid)
	}
	return &domain.User{ID: uid}, nil
}

func (s stubUserSvc) UpdateProfile(ctx context.Context, uid, name, image string) (*domain.User, error) {
	if s.updProfile != nil {
		return s.updProfile(ctx, uid, name, image)
	}
	return &domain.User{ID: uid, Name: name, Image: image}, nil
}

func (s stubUserSvc) Preferences(ctx context.Context, uid string) (*domain.UserPreferences, error) {
	if s.prefs != nil {
		return s.prefs(ctx, uid)
	}
	return &domain.UserPreferences{UserID: uid, Language: "en", TargetLanguage: "es", LearningLevel: "beginner", DailyGoal: 15}, nil
}

func (s stubUserSvc) UpdatePreferences(ctx context.Context, uid string, upd repo.PreferencesUpdate) (*domain.UserPreferences, error) {
	if s.updatePrefs != nil {
		return s.updatePrefs(ctx, uid, upd)
	}
	return &domain.UserPreferences{UserID: uid}, nil
}

func newUserRouter(t *testing.T, h *Handlers) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(asUser("u1"))
	r.GET("/users/profile", h.GetProfile)
	r.PUT("/users/profile", h.UpdateProfile)
	r.GET("/users/preferences", h.GetPreferences)
	r.PUT("/users/preferences", h.UpdatePreferences)
	return r
}

func putJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetProfile_NotFound(t *testing.T) {
	h := New(Options{Users: stubUserSvc{
		profile: func(context.Context, string) (*domain.User, error) {
			return nil, services.ErrUserNotFound
		},
	}})
	r := newUserRouter(t, h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/profile", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestUpdateProfile_PassesFields(t *testing.T) {
	var gotName, gotImage string
	h := New(Options{Users: stubUserSvc{
		updProfile: func(_ context.Context, uid, name, image string) (*domain.User, error) {
			gotName, gotImage = name, image
			return &domain.User{ID: uid, Name: name, Image: image}, nil
		},
	}})
	r := newUserRouter(t, h)

	w := putJSON(t, r, "/users/profile", UpdateProfileRequest{Name: "Ana", Image: "https://cdn/x.png"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if gotName != "Ana" || gotImage != "https://cdn/x.png" {
		t.Fatalf("name=%q image=%q", gotName, gotImage)
	}
}

func TestGetPreferences_Defaults(t *testing.T) {
	h := New(Options{Users: stubUserSvc{}})
	r := newUserRouter(t, h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/preferences", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var p domain.UserPreferences
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("json: %v", err)
	}
	if p.TargetLanguage != "es" || p.DailyGoal != 15 {
		t.Fatalf("prefs = %+v", p)
	}
}

func TestUpdatePreferences_PartialUpdate(t *testing.T) {
	var gotUpd repo.PreferencesUpdate
	h := New(Options{Users: stubUserSvc{
		updatePrefs: func(_ context.Context, uid string, upd repo.PreferencesUpdate) (*domain.UserPreferences, error) {
			gotUpd = upd
			return &domain.UserPreferences{UserID: uid, DailyGoal: 45}, nil
		},
	}})
	r := newUserRouter(t, h)

	w := putJSON(t, r, "/users/preferences", map[string]any{"dailyGoal": 45})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if gotUpd.DailyGoal == nil || *gotUpd.DailyGoal != 45 {
		t.Fatalf("dailyGoal = %v", gotUpd.DailyGoal)
	}
	// Omitted fields must stay nil so stored values survive.
	if gotUpd.Language != nil || gotUpd.TargetLanguage != nil || gotUpd.LearningLevel != nil {
		t.Fatalf("unexpected non-nil fields: %+v", gotUpd)
	}
}
