package middleware

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func secRouter(opt SecurityOptions, pre ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	for _, mw := range pre {
		r.Use(mw)
	}
	r.Use(SecurityHeaders(opt))
	r.GET("/dashboard", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func TestSecurityHeaders_Baseline(t *testing.T) {
	r := secRouter(SecurityOptions{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	h := w.Header()
	if h.Get("X-Content-Type-Options") != "nosniff" ||
		h.Get("X-Frame-Options") != "DENY" ||
		h.Get("Referrer-Policy") != "no-referrer" {
		t.Fatalf("baseline headers missing: %#v", h)
	}

	// Nothing optional was requested.
	for _, hdr := range []string{
		"Permissions-Policy", "X-Permitted-Cross-Domain-Policies",
		"Cache-Control", "Pragma", "Expires",
		"Strict-Transport-Security",
	} {
		if h.Get(hdr) != "" {
			t.Fatalf("unexpected %s: %q", hdr, h.Get(hdr))
		}
	}
}

func TestSecurityHeaders_ExposeRequestID(t *testing.T) {
	withHeaders := func(hdrs map[string]string) gin.HandlerFunc {
		return func(c *gin.Context) {
			for k, v := range hdrs {
				c.Header(k, v)
			}
			c.Next()
		}
	}

	cases := []struct {
		name string
		pre  map[string]string
		want string
	}{
		{
			"added when absent",
			map[string]string{"X-Request-ID": "rid-1"},
			"X-Request-ID",
		},
		{
			"appended after CORS exposure",
			map[string]string{"X-Request-ID": "rid-2", "Access-Control-Expose-Headers": "Content-Length"},
			"Content-Length, X-Request-ID",
		},
		{
			"never duplicated",
			map[string]string{"X-Request-ID": "rid-3", "Access-Control-Expose-Headers": "X-Request-ID, Content-Length"},
			"X-Request-ID, Content-Length",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := secRouter(SecurityOptions{}, withHeaders(tc.pre))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
			if got := w.Header().Get("Access-Control-Expose-Headers"); got != tc.want {
				t.Fatalf("expose header = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSecurityHeaders_FullHardening(t *testing.T) {
	r := secRouter(SecurityOptions{
		EnableHSTS:   true,
		HSTSMaxAge:   24 * time.Hour,
		NoStore:      true,
		EnablePolicy: true,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.TLS = &tls.ConnectionState{}
	r.ServeHTTP(w, req)

	h := w.Header()
	if h.Get("Permissions-Policy") == "" || h.Get("X-Permitted-Cross-Domain-Policies") != "none" {
		t.Fatalf("missing policy headers: %#v", h)
	}
	if h.Get("Cache-Control") != "no-store" || h.Get("Pragma") != "no-cache" || h.Get("Expires") != "0" {
		t.Fatalf("missing cache headers: %#v", h)
	}
	if got, want := h.Get("Strict-Transport-Security"), "max-age=86400; includeSubDomains; preload"; got != want {
		t.Fatalf("HSTS = %q, want %q", got, want)
	}
}

func TestSecurityHeaders_HSTS(t *testing.T) {
	t.Run("honored behind a TLS-terminating proxy", func(t *testing.T) {
		r := secRouter(SecurityOptions{EnableHSTS: true, HSTSMaxAge: time.Hour})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.Header.Set("X-Forwarded-Proto", "https")
		r.ServeHTTP(w, req)
		if got := w.Header().Get("Strict-Transport-Security"); !strings.HasPrefix(got, "max-age=") {
			t.Fatalf("expected HSTS header, got %q", got)
		}
	})

	t.Run("suppressed on plain HTTP", func(t *testing.T) {
		r := secRouter(SecurityOptions{EnableHSTS: true, HSTSMaxAge: time.Hour})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
		if got := w.Header().Get("Strict-Transport-Security"); got != "" {
			t.Fatalf("HSTS must not be sent over HTTP, got %q", got)
		}
	})

	t.Run("zero max-age defaults to 180 days", func(t *testing.T) {
		r := secRouter(SecurityOptions{EnableHSTS: true})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.TLS = &tls.ConnectionState{}
		r.ServeHTTP(w, req)
		if got := w.Header().Get("Strict-Transport-Security"); !strings.HasPrefix(got, "max-age=15552000") {
			t.Fatalf("expected 180-day default, got %q", got)
		}
	})
}

func Test_isHTTPS(t *testing.T) {
	plain := httptest.NewRequest(http.MethodGet, "/", nil)
	if isHTTPS(plain) {
		t.Fatalf("plain HTTP reported as https")
	}

	tlsReq := httptest.NewRequest(http.MethodGet, "/", nil)
	tlsReq.TLS = &tls.ConnectionState{}
	if !isHTTPS(tlsReq) {
		t.Fatalf("TLS request not reported as https")
	}

	proxied := httptest.NewRequest(http.MethodGet, "/", nil)
	proxied.Header.Set("X-Forwarded-Proto", "HTTPS")
	if !isHTTPS(proxied) {
		t.Fatalf("X-Forwarded-Proto match should be case-insensitive")
	}
}
