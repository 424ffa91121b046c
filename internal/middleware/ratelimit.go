package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
)

const sweepInterval = 5 * time.Minute

// RateLimitConfig describes one limited route group.
type RateLimitConfig struct {
	Name   string                   // route group, reported in rejection logs
	Max    int                      // requests allowed per window
	Window time.Duration            // fixed window length
	KeyFn  func(c fiber.Ctx) string // client key
}

type window struct {
	count int
	end   time.Time
}

// RateLimiter is an in-memory fixed-window limiter.
type RateLimiter struct {
	cfg RateLimitConfig
	now func() time.Time

	mu      sync.Mutex
	windows map[string]*window

	stop     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a limiter and starts sweeping expired windows in the
// background until Close is called.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.KeyFn == nil {
		cfg.KeyFn = KeyByIP
	}
	rl := &RateLimiter{
		cfg:     cfg,
		now:     time.Now,
		windows: make(map[string]*window),
		stop:    make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

// Close stops the background sweep.
func (rl *RateLimiter) Close() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// take counts one request for key and returns what is left of its window.
func (rl *RateLimiter) take(key string) (remaining int, reset time.Time, ok bool) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, found := rl.windows[key]
	if !found || !now.Before(w.end) {
		w = &window{end: now.Add(rl.cfg.Window)}
		rl.windows[key] = w
	}
	w.count++
	return rl.cfg.Max - w.count, w.end, w.count <= rl.cfg.Max
}

// Allow counts one request for key and reports whether it is within the limit.
func (rl *RateLimiter) Allow(key string) bool {
	_, _, ok := rl.take(key)
	return ok
}

// Handler returns the Fiber middleware enforcing the limit.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		remaining, reset, ok := rl.take(rl.cfg.KeyFn(c))

		c.Set("X-RateLimit-Limit", strconv.Itoa(rl.cfg.Max))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(max(remaining, 0)))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

		if ok {
			return c.Next()
		}

		retryAfter := int(reset.Sub(rl.now()).Seconds()) + 1
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
		Logger.Debug().
			Str("limiter", rl.cfg.Name).
			Str("ip_hash", hashIPForLog(c.IP())).
			Int("retry_after", retryAfter).
			Msg("rate limited")

		return ErrorResponse(c, fiber.StatusTooManyRequests, "RATE_LIMITED",
			"Too many requests. Try again in "+strconv.Itoa(retryAfter)+" seconds.")
	}
}

func (rl *RateLimiter) sweep() {
	now := rl.now()
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, w := range rl.windows {
		if !now.Before(w.end) {
			delete(rl.windows, key)
		}
	}
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.sweep()
		case <-rl.stop:
			return
		}
	}
}

// KeyByIP keys requests on the client IP.
func KeyByIP(c fiber.Ctx) string {
	return "ip:" + c.IP()
}

// NewRenderRateLimiter allows 30 renders per minute per IP; a render draws up
// to five charts.
func NewRenderRateLimiter() *RateLimiter {
	return NewRateLimiter(RateLimitConfig{Name: "render", Max: 30, Window: time.Minute})
}

// NewPayloadWriteRateLimiter allows 60 payload writes per minute per IP.
func NewPayloadWriteRateLimiter() *RateLimiter {
	return NewRateLimiter(RateLimitConfig{Name: "payload_write", Max: 60, Window: time.Minute})
}

// NewExportRateLimiter allows 6 dashboard exports per hour per IP.
func NewExportRateLimiter() *RateLimiter {
	return NewRateLimiter(RateLimitConfig{Name: "export", Max: 6, Window: time.Hour})
}
