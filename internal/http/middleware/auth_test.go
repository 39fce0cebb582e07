package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakeVerifier struct {
	uid string
	err error
}

func (f fakeVerifier) VerifyToken(string) (string, error) { return f.uid, f.err }

func TestBearerToken(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"Bearer", ""},
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"bearer abc.def.ghi", "abc.def.ghi"}, // scheme is case-insensitive
		{"Basic dXNlcjpwYXNz", ""},
		{"Bearer   padded  ", "padded"},
	}
	for _, tc := range cases {
		if got := bearerToken(tc.in); got != tc.want {
			t.Errorf("bearerToken(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(v TokenVerifier) (*gin.Engine, *string) {
		var seen string
		r := gin.New()
		r.Use(RequireAuth(v))
		r.GET("/p", func(c *gin.Context) {
			seen = c.GetString("userID")
			c.String(http.StatusOK, "ok")
		})
		return r, &seen
	}

	t.Run("missing header", func(t *testing.T) {
		r, _ := newRouter(fakeVerifier{uid: "u1"})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/p", nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("code = %d, want 401", w.Code)
		}
		if !strings.Contains(w.Body.String(), `"unauthorized"`) {
			t.Fatalf("body = %s", w.Body.String())
		}
	})

	t.Run("wrong scheme", func(t *testing.T) {
		r, _ := newRouter(fakeVerifier{uid: "u1"})
		req := httptest.NewRequest(http.MethodGet, "/p", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("code = %d, want 401", w.Code)
		}
	})

	t.Run("verifier rejects", func(t *testing.T) {
		r, seen := newRouter(fakeVerifier{err: errors.New("expired")})
		req := httptest.NewRequest(http.MethodGet, "/p", nil)
		req.Header.Set("Authorization", "Bearer whatever")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized || *seen != "" {
			t.Fatalf("code=%d seen=%q", w.Code, *seen)
		}
	})

	t.Run("valid token sets userID", func(t *testing.T) {
		r, seen := newRouter(fakeVerifier{uid: "u42"})
		req := httptest.NewRequest(http.MethodGet, "/p", nil)
		req.Header.Set("Authorization", "Bearer good.token")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("code = %d", w.Code)
		}
		if *seen != "u42" {
			t.Fatalf("userID = %q, want u42", *seen)
		}
	})
}
