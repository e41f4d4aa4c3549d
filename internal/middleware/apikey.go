// Package middleware contains the request interceptors mounted on the engine
// before any route logic: the API-key access gate and the CORS policy.
package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// APIKeyHeader is the request header carrying the shared secret.
// Header lookup is case-insensitive per RFC 9110; gin canonicalizes for us.
const APIKeyHeader = "X-API-Key"

// bypassPrefixes are path prefixes served without credentials. Documentation
// and health introspection must stay reachable for browsers and load
// balancers that cannot present a key.
var bypassPrefixes = []string{
	"/docs",
	"/openapi",
	"/swagger",
	"/live",
	"/ready",
}

// Decision is the gate's per-request verdict. Transient, never persisted.
type Decision struct {
	Allowed bool
	Reason  string
}

// Authorize applies the gate rules in order, each short-circuiting to allow:
// OPTIONS preflight, bypass path prefixes, unconfigured key.
//
// SECURITY: an empty configuredKey means FAIL-OPEN, every request passes.
// This is intentional, it lets the key roll out gradually without breaking
// existing clients, but it must never be left unset in production.
func Authorize(configuredKey, method, path, providedKey string) Decision {
	if method == http.MethodOptions {
		return Decision{Allowed: true, Reason: "cors preflight"}
	}
	for _, prefix := range bypassPrefixes {
		if strings.HasPrefix(path, prefix) {
			return Decision{Allowed: true, Reason: "introspection path"}
		}
	}
	if configuredKey == "" {
		return Decision{Allowed: true, Reason: "no api key configured"}
	}
	// Constant-time compare; the key is a shared secret.
	if subtle.ConstantTimeCompare([]byte(providedKey), []byte(configuredKey)) == 1 {
		return Decision{Allowed: true, Reason: "api key match"}
	}
	return Decision{Allowed: false, Reason: "invalid or missing api key"}
}

// APIKeyAuth mounts the gate as gin middleware. It runs before every
// handler; a rejected request is aborted with 401 and never reaches a
// handler or the store.
func APIKeyAuth(configuredKey string, logger zerolog.Logger) gin.HandlerFunc {
	log := logger.With().Str("module", "middleware").Str("component", "apikey").Logger()
	return func(c *gin.Context) {
		d := Authorize(configuredKey, c.Request.Method, c.Request.URL.Path, c.GetHeader(APIKeyHeader))
		if !d.Allowed {
			log.Warn().
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Msg("request rejected by api key gate")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing API key"})
			return
		}
		c.Next()
	}
}
