// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, idempotency, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/lingocoach/go-backend/internal/ai"
	"github.com/lingocoach/go-backend/internal/config"
	"github.com/lingocoach/go-backend/internal/http/handlers"
	"github.com/lingocoach/go-backend/internal/http/middleware"
	"github.com/lingocoach/go-backend/internal/services"
	"github.com/lingocoach/go-backend/internal/ws"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), idempotency and rate
// limiting, CORS and security headers, health and metrics endpoints, mounts
// the public API under cfg.APIBasePath, and attaches the realtime endpoint
// at /ws.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Idempotency-Key validation (replay lookup happens in the handler)
//  8. Rate limiter (per user/IP)
//  9. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, gw *ai.Gateway, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"X-API-Key", // project-specific sensitive header example
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit: 1 MiB for JSON, the configured upload cap
	// for multipart bodies.
	r.Use(limitBody(1<<20, cfg.Upload.MaxBytes))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Idempotency-Key validation
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{
		MaxLen: 200,
	}))

	// 8) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderIdempotencyKey},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Dependency injection: services ← db/gateway/config
	authSvc := &services.AuthService{
		DB:       db,
		Secret:   cfg.Auth.JWTSecret,
		TokenTTL: cfg.Auth.TokenTTL,
	}
	convSvc := &services.ConversationService{
		DB:              db,
		Gateway:         gw,
		MaxMessageRunes: 2000,
		TitleMaxLen:     60,
		TitleLocale:     language.English,
	}
	lessonSvc := &services.LessonService{DB: db}
	dashSvc := &services.DashboardService{DB: db}
	userSvc := &services.UserService{DB: db}
	pronSvc := &services.PronunciationService{DB: db, Gateway: gw}
	practiceSvc := &services.PracticeService{DB: db}
	achSvc := &services.AchievementService{DB: db}

	h := handlers.New(handlers.Options{
		Auth:            authSvc,
		Conversations:   convSvc,
		Lessons:         lessonSvc,
		Dashboard:       dashSvc,
		Users:           userSvc,
		Pronunciation:   pronSvc,
		Practice:        practiceSvc,
		Achievements:    achSvc,
		DB:              db,
		IdempotencyTTL:  cfg.IdempotencyTTL,
		UploadDir:       cfg.Upload.Dir,
		MaxUploadBytes:  cfg.Upload.MaxBytes,
		AIKeyConfigured: cfg.AI.APIKey != "",
	})

	// Liveness/readiness
	r.GET("/health", h.Health)
	r.GET("/health/full", h.HealthFull)

	// Stored audio, served as-is
	r.Static("/uploads", cfg.Upload.Dir)

	auth := middleware.RequireAuth(authSvc)

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath) // e.g. "/api"
	{
		// Auth (register/login are the only unauthenticated API routes)
		api.POST("/auth/register", h.Register)
		api.POST("/auth/login", h.Login)
		api.POST("/auth/logout", auth, h.Logout)
		api.GET("/auth/me", auth, h.Me)

		// Conversations
		api.POST("/conversations", auth, h.SendMessage)
		api.GET("/conversations", auth, h.ListConversations)
		api.GET("/conversations/:id", auth, h.GetConversation)
		api.DELETE("/conversations/:id", auth, h.DeleteConversation)

		// Lessons
		api.GET("/lessons", auth, h.ListLessons)
		api.GET("/lessons/:id", auth, h.GetLesson)
		api.POST("/lessons/complete", auth, h.CompleteLesson)

		// Dashboard
		api.GET("/dashboard/stats", auth, h.DashboardStats)
		api.GET("/dashboard/progress", auth, h.DashboardProgress)
		api.GET("/dashboard/weekly", auth, h.DashboardWeekly)
		api.GET("/dashboard/languages", auth, h.DashboardLanguages)
		api.GET("/dashboard/next-lesson", auth, h.DashboardNextLesson)

		// Users
		api.GET("/users/profile", auth, h.GetProfile)
		api.PUT("/users/profile", auth, h.UpdateProfile)
		api.GET("/users/preferences", auth, h.GetPreferences)
		api.PUT("/users/preferences", auth, h.UpdatePreferences)

		// Pronunciation
		api.POST("/pronunciation/analyze", auth, h.AnalyzePronunciation)
		api.GET("/pronunciation/history", auth, h.PronunciationHistory)

		// Practice
		api.GET("/practice", auth, h.ListPractice)
		api.POST("/practice", auth, h.CreatePractice)
		api.DELETE("/practice/:id", auth, h.DeletePractice)

		// Achievements
		api.GET("/achievements", auth, h.ListAchievements)
	}

	// Realtime transport: same SendTurn use-case as the HTTP path.
	hub := ws.NewHub()
	wsHandler := ws.NewHandler(hub, convSvc)
	r.GET("/ws", auth, wsHandler.Serve)
}

// limitBody returns a Gin middleware that caps the request body size using
// http.MaxBytesReader. Multipart bodies (audio uploads) get uploadMax when it
// is larger; everything else gets jsonMax. Requests exceeding the cap will
// cause downstream body reads to error.
func limitBody(jsonMax, uploadMax int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := jsonMax
		if uploadMax > jsonMax && strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data") {
			limit = uploadMax
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
