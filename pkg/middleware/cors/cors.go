package cors

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// New returns CORS middleware honoring a list of allowed origins. An empty
// list allows every origin, which is what a kiosk on the local network needs.
func New(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "X-Requested-With", "X-Request-ID"}
	cfg.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	cfg.MaxAge = 10 * time.Minute

	origins := normalise(allowedOrigins)
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}

	return cors.New(cfg)
}

func normalise(origins []string) []string {
	result := make([]string, 0, len(origins))
	for _, origin := range origins {
		trimmed := strings.TrimRight(strings.TrimSpace(origin), "/")
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
