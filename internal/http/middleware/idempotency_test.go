package middleware

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestGetIdempotencyKey_Accessor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	// Not set
	if k, ok := GetIdempotencyKey(c); k != "" || ok {
		t.Fatalf("expected no key, got %q/%v", k, ok)
	}

	c.Set(ctxKeyIdemKey, "abc-123")
	if k, ok := GetIdempotencyKey(c); !ok || k != "abc-123" {
		t.Fatalf("expected stored key, got %q/%v", k, ok)
	}

	// Non-string value should read as absent, not panic
	c.Set(ctxKeyIdemKey, 42)
	if _, ok := GetIdempotencyKey(c); ok {
		t.Fatalf("expected absent for non-string value")
	}
}

func TestIdempotencyValidator(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(opts IdempotencyOptions) (*gin.Engine, *string) {
		var seen string
		r := gin.New()
		r.Use(IdempotencyValidator(opts))
		r.POST("/x", func(c *gin.Context) {
			seen, _ = GetIdempotencyKey(c)
			c.String(http.StatusOK, "ok")
		})
		return r, &seen
	}

	t.Run("absent header is a no-op", func(t *testing.T) {
		r, seen := newRouter(IdempotencyOptions{})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", nil))
		if w.Code != http.StatusOK || *seen != "" {
			t.Fatalf("code=%d seen=%q", w.Code, *seen)
		}
	})

	t.Run("valid key is stashed", func(t *testing.T) {
		r, seen := newRouter(IdempotencyOptions{})
		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		req.Header.Set(HeaderIdempotencyKey, "retry-1.call_2~x:9")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("code=%d", w.Code)
		}
		if *seen != "retry-1.call_2~x:9" {
			t.Fatalf("seen=%q", *seen)
		}
	})

	t.Run("invalid characters rejected", func(t *testing.T) {
		r, _ := newRouter(IdempotencyOptions{})
		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		req.Header.Set(HeaderIdempotencyKey, "bad key with spaces")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("code=%d, want 400", w.Code)
		}
		if !strings.Contains(w.Body.String(), "bad_idempotency_key") {
			t.Fatalf("body = %s", w.Body.String())
		}
	})

	t.Run("over-length key rejected", func(t *testing.T) {
		r, _ := newRouter(IdempotencyOptions{MaxLen: 8})
		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		req.Header.Set(HeaderIdempotencyKey, "123456789")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("code=%d, want 400", w.Code)
		}
	})

	t.Run("custom pattern honored", func(t *testing.T) {
		r, seen := newRouter(IdempotencyOptions{Pattern: regexp.MustCompile(`^[0-9]+$`)})
		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		req.Header.Set(HeaderIdempotencyKey, "0042")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK || *seen != "0042" {
			t.Fatalf("code=%d seen=%q", w.Code, *seen)
		}
	})
}
