package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"newsroom-backend/internal/config"
	"newsroom-backend/internal/shared/response"
)

// clientLimiter giữ limiter + thời điểm truy cập cuối cho một client IP
type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter áp dụng token bucket per-client-IP.
// Window/threshold từ config: MaxRequests trong mỗi Window.
type RateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientLimiter
	ratePerS rate.Limit
	burst    int
	stopCh   chan struct{}
}

// NewRateLimiter tạo limiter và start background cleanup loop
// để map không grow vô hạn theo số IP đã từng thấy.
func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	rl := &RateLimiter{
		clients:  make(map[string]*clientLimiter),
		ratePerS: rate.Limit(float64(cfg.MaxRequests) / cfg.Window.Seconds()),
		burst:    cfg.MaxRequests,
		stopCh:   make(chan struct{}),
	}

	go rl.cleanupLoop(10 * time.Minute)

	return rl
}

// Stop dừng cleanup goroutine (dùng trong shutdown và tests)
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// Middleware trả về gin handler check limit theo client IP
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := rl.getOrCreate(c.ClientIP())

		if !limiter.Allow() {
			log.Warn().
				Str("ip", c.ClientIP()).
				Str("path", c.Request.URL.Path).
				Msg("rate limit exceeded")

			c.Header("Retry-After", "1")
			response.Error(c, http.StatusTooManyRequests, "Too many requests")
			c.Abort()
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) getOrCreate(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if cl, ok := rl.clients[ip]; ok {
		cl.lastAccess = time.Now()
		return cl.limiter
	}

	limiter := rate.NewLimiter(rl.ratePerS, rl.burst)
	rl.clients[ip] = &clientLimiter{limiter: limiter, lastAccess: time.Now()}
	return limiter
}

// ClientCount trả về số entries đang được track (cho tests)
func (rl *RateLimiter) ClientCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

func (rl *RateLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup(interval * 2)
		case <-rl.stopCh:
			return
		}
	}
}

// cleanup xóa entries không truy cập trong ttl
func (rl *RateLimiter) cleanup(ttl time.Duration) {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, cl := range rl.clients {
		if now.Sub(cl.lastAccess) > ttl {
			delete(rl.clients, ip)
		}
	}
}
