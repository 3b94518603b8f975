package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-menu/utils"
	"golang.org/x/time/rate"
)

// RateLimiter is a sliding-window limit of requests per client IP.
type RateLimiter struct {
	rate      int
	interval  time.Duration
	ips       map[string][]time.Time
	lastSweep time.Time
	mu        sync.Mutex
}

func NewRateLimiter(rate int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		rate:     rate,
		interval: interval,
		ips:      make(map[string][]time.Time),
	}
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP(), time.Now()) {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := now.Add(-rl.interval)
	rl.sweep(now, cutoff)

	valid := rl.ips[ip][:0]
	for _, t := range rl.ips[ip] {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}

	if len(valid) >= rl.rate {
		rl.ips[ip] = valid
		return false
	}
	rl.ips[ip] = append(valid, now)
	return true
}

// sweep drops clients whose newest request left the window. It runs at
// most once per interval. Callers hold rl.mu.
func (rl *RateLimiter) sweep(now, cutoff time.Time) {
	if now.Sub(rl.lastSweep) < rl.interval {
		return
	}
	rl.lastSweep = now
	for ip, times := range rl.ips {
		if len(times) == 0 || !times[len(times)-1].After(cutoff) {
			delete(rl.ips, ip)
		}
	}
}

// loginLimiter hands each client IP its own token bucket for the
// sign-in exchange.
type loginLimiter struct {
	every     rate.Limit
	burst     int
	idle      time.Duration
	clients   map[string]*loginClient
	lastSweep time.Time
	mu        sync.Mutex
}

type loginClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLoginLimiter(perMinute int) *loginLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &loginLimiter{
		every: rate.Every(time.Minute / time.Duration(perMinute)),
		burst: perMinute,
		// an empty bucket is full again after a minute
		idle:    time.Minute,
		clients: make(map[string]*loginClient),
	}
}

func (ll *loginLimiter) allow(ip string, now time.Time) bool {
	ll.mu.Lock()
	defer ll.mu.Unlock()

	if now.Sub(ll.lastSweep) >= ll.idle {
		ll.lastSweep = now
		for key, client := range ll.clients {
			if now.Sub(client.lastSeen) >= ll.idle {
				delete(ll.clients, key)
			}
		}
	}

	client, ok := ll.clients[ip]
	if !ok {
		client = &loginClient{limiter: rate.NewLimiter(ll.every, ll.burst)}
		ll.clients[ip] = client
	}
	client.lastSeen = now
	return client.limiter.AllowN(now, 1)
}

// NewStrictRateLimiter guards the sign-in exchange: perMinute requests
// per client IP, with a burst of the same size.
func NewStrictRateLimiter(perMinute int) gin.HandlerFunc {
	limiter := newLoginLimiter(perMinute)

	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP(), time.Now()) {
			utils.ErrorLogger.Printf("Sign-in rate limit hit from %s", c.ClientIP())
			utils.RespondJSON(c, http.StatusTooManyRequests, "Too many sign-in attempts, please wait", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
