package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// envelopeRouter wires the minimal middleware the response helpers expect: a
// request id on the response and, optionally, a request-scoped logger.
func envelopeRouter(rid string, logger *zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("X-Request-ID", rid)
		if logger != nil {
			c.Set("logger", logger)
		}
		c.Next()
	})
	return r
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("error body: %v", err)
	}
	return resp
}

func Test_fail_ServerErrorLogsAndEnvelopes(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	r := envelopeRouter("rid-500", &logger)
	r.GET("/lessons/:id", func(c *gin.Context) {
		fail(c, http.StatusInternalServerError, "internal_error", "lesson lookup failed")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/lessons/l1", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	resp := decodeError(t, w)
	if resp.RequestID != "rid-500" || resp.Code != "internal_error" || resp.Message != "lesson lookup failed" {
		t.Fatalf("unexpected body: %+v", resp)
	}
	// 5xx failures land in the request-scoped logger at error level.
	if !strings.Contains(buf.String(), `"level":"error"`) {
		t.Fatalf("expected error log, got: %s", buf.String())
	}
}

func Test_Fail_ClientError(t *testing.T) {
	r := envelopeRouter("rid-404", nil)
	r.GET("/conversations/:id", func(c *gin.Context) {
		Fail(c, http.StatusNotFound, "not_found", "conversation not found")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/conversations/c1", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	resp := decodeError(t, w)
	if resp.RequestID != "rid-404" || resp.Code != "not_found" || resp.Message != "conversation not found" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func Test_SuccessHelpers(t *testing.T) {
	r := envelopeRouter("rid-ok", nil)
	r.POST("/conversations", func(c *gin.Context) {
		ok(c, http.StatusCreated, gin.H{"id": "c1", "language": "es"})
	})
	r.DELETE("/conversations/:id", func(c *gin.Context) {
		noContent(c)
	})

	t.Run("ok writes the payload verbatim", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/conversations", nil))
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("json: %v", err)
		}
		if body["id"] != "c1" || body["language"] != "es" {
			t.Fatalf("unexpected body: %#v", body)
		}
	})

	t.Run("noContent writes nothing", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/conversations/c1", nil))
		if w.Code != http.StatusNoContent {
			t.Fatalf("status = %d", w.Code)
		}
		if w.Body.Len() != 0 {
			t.Fatalf("expected empty body for 204, got %q", w.Body.String())
		}
	})
}
