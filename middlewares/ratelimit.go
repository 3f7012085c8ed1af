package middlewares

import (
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit returns a per-client-IP token bucket middleware. Limits are
// expressed in events per minute to match the API documentation.
// Rate limiting is disabled when TESTING=true so the test suite can hammer
// the endpoints freely.
func RateLimit(perMinute int) gin.HandlerFunc {
	disabled := strings.EqualFold(os.Getenv("TESTING"), "true")

	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		if lim, ok := limiters[ip]; ok {
			return lim
		}
		lim := rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute)
		limiters[ip] = lim
		return lim
	}

	return func(c *gin.Context) {
		if disabled {
			c.Next()
			return
		}
		if !limiterFor(c.ClientIP()).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}
