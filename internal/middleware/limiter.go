package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"cartmart-be/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Rate limit tiers. Checkout and auth endpoints get the strict tier; catalog
// browsing gets the frontend tier.
const (
	limitStrict = rate.Limit(2)
	burstStrict = 5

	limitGeneral = rate.Limit(10)
	burstGeneral = 20

	limitFrontend = rate.Limit(20)
	burstFrontend = 40
)

type Tier string

const (
	TierStrict   Tier = "strict"
	TierGeneral  Tier = "general"
	TierFrontend Tier = "frontend"
)

// visitor holds the rate limiter and the last time it was seen.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	visitors = make(map[string]*visitor)
	mu       sync.Mutex
)

func init() {
	go cleanupVisitors()
}

func getVisitor(key string, r rate.Limit, b int) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	v, exists := visitors[key]
	if !exists {
		limiter := rate.NewLimiter(r, b)
		visitors[key] = &visitor{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// cleanupVisitors removes stale entries so the bucket map cannot grow without
// bound.
func cleanupVisitors() {
	for {
		time.Sleep(time.Minute)

		mu.Lock()
		for key, v := range visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(visitors, key)
			}
		}
		mu.Unlock()
	}
}

func tierLimits(tier Tier) (rate.Limit, int) {
	switch tier {
	case TierStrict:
		return limitStrict, burstStrict
	case TierFrontend:
		return limitFrontend, burstFrontend
	default:
		return limitGeneral, burstGeneral
	}
}

// RateLimit buckets by authenticated user when possible, falling back to
// client IP. The same caller has separate quotas per tier, so a burst of
// catalog reads cannot starve a checkout.
func RateLimit(tier Tier) gin.HandlerFunc {
	limit, burst := tierLimits(tier)

	return func(c *gin.Context) {
		var identity string
		if userID, ok := utils.GetUserIDFromContext(c.Request.Context()); ok {
			identity = fmt.Sprintf("user:%d", userID)
		} else {
			identity = "ip:" + c.ClientIP()
		}

		key := fmt.Sprintf("%s:%s", identity, tier)
		if !getVisitor(key, limit, burst).Allow() {
			abortWithError(c, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests")
			return
		}

		c.Next()
	}
}
