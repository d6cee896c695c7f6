package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"clinical-assistant/config"
	"clinical-assistant/pkg/response"

	"golang.org/x/time/rate"
)

// Idle clients are forgotten after this long
const limiterIdleTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware throttles credential endpoints per client IP.
// X-Forwarded-For is only read when the peer is a trusted proxy.
type RateLimitMiddleware struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	limit     rate.Limit
	burst     int
	trusted   map[string]bool
	lastSweep time.Time
	now       func() time.Time
}

func NewRateLimitMiddleware(cfg config.RateLimitConfig) *RateLimitMiddleware {
	trusted := make(map[string]bool, len(cfg.TrustedProxies))
	for _, proxy := range cfg.TrustedProxies {
		trusted[proxy] = true
	}

	return &RateLimitMiddleware{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Limit(cfg.LoginPerSecond),
		burst:   cfg.LoginBurst,
		trusted: trusted,
		now:     time.Now,
	}
}

func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	if m.limit <= 0 {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.allow(m.clientIP(r)) {
			w.Header().Set("Retry-After", "1")
			response.TooManyRequests(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *RateLimitMiddleware) allow(ip string) bool {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if now.Sub(m.lastSweep) > time.Minute {
		for key, c := range m.clients {
			if now.Sub(c.lastSeen) > limiterIdleTTL {
				delete(m.clients, key)
			}
		}
		m.lastSweep = now
	}

	c, ok := m.clients[ip]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(m.limit, m.burst)}
		m.clients[ip] = c
	}
	c.lastSeen = now

	return c.limiter.AllowN(now, 1)
}

func (m *RateLimitMiddleware) clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if !m.trusted[host] {
		return host
	}

	// the trusted proxy appends the address it saw last
	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop != "" && !m.trusted[hop] {
			return hop
		}
	}
	return host
}
