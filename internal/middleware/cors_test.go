package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestParseWildcardOrigin(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		wantNil bool
		scheme  string
		suffix  string
	}{
		{
			name:    "valid https wildcard",
			pattern: "https://*.example.com",
			wantNil: false,
			scheme:  "https://",
			suffix:  ".example.com",
		},
		{
			name:    "valid http wildcard",
			pattern: "http://*.localhost.dev",
			wantNil: false,
			scheme:  "http://",
			suffix:  ".localhost.dev",
		},
		{
			name:    "valid cloudflare pages pattern",
			pattern: "https://*.remindr-web.pages.dev",
			wantNil: false,
			scheme:  "https://",
			suffix:  ".remindr-web.pages.dev",
		},
		{
			name:    "invalid - no scheme",
			pattern: "*.example.com",
			wantNil: true,
		},
		{
			name:    "invalid - bare wildcard",
			pattern: "*",
			wantNil: true,
		},
		{
			name:    "invalid - wildcard at end",
			pattern: "https://example.*",
			wantNil: true,
		},
		{
			name:    "invalid - multiple wildcards",
			pattern: "https://*.*.example.com",
			wantNil: true,
		},
		{
			name:    "invalid - no dot after wildcard",
			pattern: "https://*example.com",
			wantNil: true,
		},
		{
			name:    "invalid - single part domain",
			pattern: "https://*.com",
			wantNil: true,
		},
		{
			name:    "exact origin - not a wildcard",
			pattern: "https://example.com",
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseWildcardOrigin(tt.pattern)
			if tt.wantNil {
				if got != nil {
					t.Errorf("parseWildcardOrigin(%q) = %+v, want nil", tt.pattern, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("parseWildcardOrigin(%q) = nil, want non-nil", tt.pattern)
			}
			if got.scheme != tt.scheme {
				t.Errorf("scheme = %q, want %q", got.scheme, tt.scheme)
			}
			if got.suffix != tt.suffix {
				t.Errorf("suffix = %q, want %q", got.suffix, tt.suffix)
			}
		})
	}
}

func TestWildcardOriginMatches(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		origin  string
		want    bool
	}{
		{
			name:    "simple subdomain match",
			pattern: "https://*.example.com",
			origin:  "https://app.example.com",
			want:    true,
		},
		{
			name:    "cloudflare pages deployment",
			pattern: "https://*.remindr-web.pages.dev",
			origin:  "https://abc123.remindr-web.pages.dev",
			want:    true,
		},
		{
			name:    "cloudflare pages with hash",
			pattern: "https://*.remindr-web.pages.dev",
			origin:  "https://a1b2c3d4.remindr-web.pages.dev",
			want:    true,
		},
		{
			name:    "wrong scheme",
			pattern: "https://*.example.com",
			origin:  "http://app.example.com",
			want:    false,
		},
		{
			name:    "wrong domain",
			pattern: "https://*.example.com",
			origin:  "https://app.other.com",
			want:    false,
		},
		{
			name:    "nested subdomain - should not match",
			pattern: "https://*.example.com",
			origin:  "https://a.b.example.com",
			want:    false,
		},
		{
			name:    "no subdomain - should not match",
			pattern: "https://*.example.com",
			origin:  "https://example.com",
			want:    false,
		},
		{
			name:    "partial match attack - should not match",
			pattern: "https://*.example.com",
			origin:  "https://evil-example.com",
			want:    false,
		},
		{
			name:    "suffix injection attack - should not match",
			pattern: "https://*.example.com",
			origin:  "https://app.example.com.evil.com",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wildcard := parseWildcardOrigin(tt.pattern)
			if wildcard == nil {
				t.Fatalf("parseWildcardOrigin(%q) = nil", tt.pattern)
			}
			got := wildcard.matches(tt.origin)
			if got != tt.want {
				t.Errorf("wildcard.matches(%q) = %v, want %v", tt.origin, got, tt.want)
			}
		})
	}
}

func corsRequest(t *testing.T, origins []string, method, origin string) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.Use(CORS(origins))
	r.GET("/api/v1/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.OPTIONS("/api/v1/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(method, "/api/v1/health", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCORSAllowAll(t *testing.T) {
	for _, origins := range [][]string{nil, {"*"}} {
		w := corsRequest(t, origins, http.MethodGet, "https://anything.test")
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("origins %v: Allow-Origin = %q, want *", origins, got)
		}
		if w.Code != http.StatusOK {
			t.Errorf("origins %v: status = %d, want 200", origins, w.Code)
		}
	}
}

func TestCORSAllowList(t *testing.T) {
	origins := []string{"https://app.remindr.dev", " https://*.remindr-web.pages.dev "}

	tests := []struct {
		name       string
		method     string
		origin     string
		wantOrigin string
		wantStatus int
	}{
		{"exact match", http.MethodGet, "https://app.remindr.dev", "https://app.remindr.dev", http.StatusOK},
		{"wildcard match", http.MethodGet, "https://pr-12.remindr-web.pages.dev", "https://pr-12.remindr-web.pages.dev", http.StatusOK},
		{"unknown origin still served", http.MethodGet, "https://evil.test", "", http.StatusOK},
		{"preflight allowed", http.MethodOptions, "https://app.remindr.dev", "https://app.remindr.dev", http.StatusNoContent},
		{"preflight rejected", http.MethodOptions, "https://evil.test", "", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := corsRequest(t, origins, tt.method, tt.origin)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
		})
	}
}
