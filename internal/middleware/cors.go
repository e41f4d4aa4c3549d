package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/mkotlyarov/todo-items-service/internal/config"
)

// CORS builds the cross-origin policy from the configured origin allow-list.
// The pagination metadata headers must be exposed explicitly or browsers
// strip them from cross-origin responses.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", APIKeyHeader},
		ExposeHeaders: []string{"X-Total-Count", "X-Page-Number", "X-Page-Size", "X-Total-Pages"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.AllowedOrigins
	}
	return cors.New(c)
}
