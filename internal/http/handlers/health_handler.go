// Health HTTP handlers.
//
// This file exposes:
//   - GET /health       (liveness: process is up)
//   - GET /health/full  (readiness: DB ping, AI key, upload dir)
//
// The full check returns 503 when the database is unreachable; degraded
// ancillary checks (AI key, upload dir) are reported but do not flip the
// status code, since the API can still serve persisted data without them.
package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// HealthChecks itemizes the readiness probes of /health/full.
type HealthChecks struct {
	Database  string `json:"database" example:"ok"`
	AIKey     string `json:"ai_key" example:"configured"`
	UploadDir string `json:"upload_dir" example:"ok"`
}

// HealthResponse is the body of the full health report.
type HealthResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks HealthChecks `json:"checks"`
}

// Health godoc
// @ID          health
// @Summary     Liveness probe
// @Description Reports that the process is accepting requests.
// @Tags        Health
// @Produce     json
//
// @Success     200  {object}  map[string]string
// @Router      /health [get]
func (h *Handlers) Health(c *gin.Context) {
	ok(c, http.StatusOK, gin.H{"status": "ok"})
}

// HealthFull godoc
// @ID          healthFull
// @Summary     Readiness probe
// @Description Pings the database and verifies AI credentials and upload storage. Returns 503 when the database is down.
// @Tags        Health
// @Produce     json
//
// @Success     200  {object}  handlers.HealthResponse
// @Failure     503  {object}  handlers.HealthResponse  "Database unreachable"
// @Router      /health/full [get]
func (h *Handlers) HealthFull(c *gin.Context) {
	checks := HealthChecks{Database: "ok", AIKey: "configured", UploadDir: "ok"}
	status := http.StatusOK

	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		checks.Database = "down"
		status = http.StatusServiceUnavailable
	}
	if !h.aiKeySet {
		checks.AIKey = "missing"
	}
	if fi, err := os.Stat(h.uploadDir); err != nil || !fi.IsDir() {
		checks.UploadDir = "missing"
	}

	body := HealthResponse{Status: "ok", Checks: checks}
	if status != http.StatusOK {
		body.Status = "degraded"
	}
	ok(c, status, body)
}
