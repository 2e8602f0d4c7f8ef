package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsAllowHeaders  = "Content-Type, Content-Length, Accept-Encoding, Accept, Origin, Cache-Control, X-Requested-With, X-Request-ID, Idempotency-Key"
	corsAllowMethods  = "POST, OPTIONS, GET, PUT, DELETE, PATCH"
	corsExposeHeaders = "X-Request-ID, X-Idempotency-Replayed, Content-Disposition, Retry-After"
)

// wildcardOrigin matches origins of the form scheme://<label>.suffix where
// <label> is a single DNS label.
type wildcardOrigin struct {
	scheme string
	suffix string
}

// parseWildcardOrigin parses patterns like "https://*.example.com". It returns
// nil for exact origins and malformed patterns.
func parseWildcardOrigin(pattern string) *wildcardOrigin {
	schemeEnd := strings.Index(pattern, "://")
	if schemeEnd < 0 {
		return nil
	}
	scheme := pattern[:schemeEnd+3]
	host := pattern[schemeEnd+3:]

	if !strings.HasPrefix(host, "*.") || strings.Count(host, "*") != 1 {
		return nil
	}
	suffix := host[1:]
	// The suffix needs at least a registrable domain, e.g. ".example.com"
	if strings.Count(suffix, ".") < 2 {
		return nil
	}
	return &wildcardOrigin{scheme: scheme, suffix: suffix}
}

func (w *wildcardOrigin) matches(origin string) bool {
	if !strings.HasPrefix(origin, w.scheme) {
		return false
	}
	host := origin[len(w.scheme):]
	if !strings.HasSuffix(host, w.suffix) {
		return false
	}
	label := host[:len(host)-len(w.suffix)]
	return label != "" && !strings.ContainsAny(label, "./:")
}

// CORS handles cross-origin requests. An empty list, or a list containing
// "*", allows every origin. Entries may be exact origins or single-label
// wildcards such as "https://*.example.com".
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowAll := len(allowedOrigins) == 0
	exact := make(map[string]bool)
	var wildcards []*wildcardOrigin

	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		switch {
		case origin == "":
		case origin == "*":
			allowAll = true
		default:
			if w := parseWildcardOrigin(origin); w != nil {
				wildcards = append(wildcards, w)
			} else {
				exact[origin] = true
			}
		}
	}

	allowed := func(origin string) bool {
		if exact[origin] {
			return true
		}
		for _, w := range wildcards {
			if w.matches(origin) {
				return true
			}
		}
		return false
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if allowAll {
			c.Header("Access-Control-Allow-Origin", "*")
		} else if origin != "" && allowed(origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Vary", "Origin")
		} else if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		c.Header("Access-Control-Allow-Headers", corsAllowHeaders)
		c.Header("Access-Control-Allow-Methods", corsAllowMethods)
		c.Header("Access-Control-Expose-Headers", corsExposeHeaders)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
