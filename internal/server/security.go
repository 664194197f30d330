package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/undercity-game/undercity/internal/logger"
)

// Abuse thresholds, counted per source IP over a rolling window.
const (
	abuseWindow          = 5 * time.Minute
	failedAuthAlertAfter = 5
	requestsPerWindow    = 1000
	rateLimitLogEvery    = 100 // log every Nth rejection, not all of them
)

// publicPrefixes bypass authentication: docs, probes, and the metrics
// scrape endpoint.
var publicPrefixes = []string{
	"/swagger/",
	"/healthz",
	"/readyz",
	"/metrics",
}

func isPublic(path string) bool {
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Guard enforces the shared API key and per-IP abuse limits on every
// non-public route. One Guard is shared by the whole middleware chain
// so failed auth and rate counts land in the same tracker.
type Guard struct {
	apiKey  string
	proxies map[string]struct{}
	tracker *abuseTracker
}

// NewGuard builds a guard. trustedProxies lists the only peers whose
// X-Forwarded-For header is believed.
func NewGuard(apiKey string, trustedProxies []string) *Guard {
	proxies := make(map[string]struct{}, len(trustedProxies))
	for _, p := range trustedProxies {
		proxies[p] = struct{}{}
	}
	return &Guard{
		apiKey:  apiKey,
		proxies: proxies,
		tracker: newAbuseTracker(),
	}
}

// Authenticate rejects requests without the correct API key.
func (g *Guard) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublic(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		provided := r.Header.Get(HeaderAPIKey)

		// Constant time comparison to prevent timing attacks
		if subtle.ConstantTimeCompare([]byte(provided), []byte(g.apiKey)) != 1 {
			ip := g.clientIP(r)
			g.tracker.noteFailedAuth(ip)

			logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
				"remote_addr", r.RemoteAddr,
				"path", r.URL.Path,
				"has_key", provided != "",
				"ip", ip)

			http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RateLimit rejects requests from IPs over the per-window budget.
func (g *Guard) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.tracker.allow(g.clientIP(r)) {
			http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP resolves the source address. X-Forwarded-For is only
// believed when the direct peer is a trusted proxy, and then the
// rightmost entry wins: that is the address the proxy itself saw.
func (g *Guard) clientIP(r *http.Request) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	if _, trusted := g.proxies[remoteIP]; trusted {
		if forwarded := r.Header.Get(HeaderForwardedFor); forwarded != "" {
			hops := strings.Split(forwarded, ",")
			return strings.TrimSpace(hops[len(hops)-1])
		}
	}
	return remoteIP
}

// abuseTracker counts failed auth attempts and requests per IP inside
// a rolling window.
type abuseTracker struct {
	mu          sync.Mutex
	failedAuth  map[string]int
	requests    map[string]int
	windowStart time.Time
}

func newAbuseTracker() *abuseTracker {
	return &abuseTracker{
		failedAuth:  make(map[string]int),
		requests:    make(map[string]int),
		windowStart: time.Now(),
	}
}

func (t *abuseTracker) noteFailedAuth(ip string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rollWindow()
	t.failedAuth[ip]++

	if t.failedAuth[ip] >= failedAuthAlertAfter {
		slog.Warn("Repeated failed authentication attempts",
			"ip", ip,
			"count", t.failedAuth[ip])
	}
}

// allow counts the request and reports whether the IP is still under
// its window budget.
func (t *abuseTracker) allow(ip string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rollWindow()
	t.requests[ip]++

	if t.requests[ip] > requestsPerWindow {
		if t.requests[ip]%rateLimitLogEvery == 0 {
			slog.Warn("Blocking high request rate",
				"ip", ip,
				"count_in_window", t.requests[ip])
		}
		return false
	}
	return true
}

// rollWindow resets the counters once the window has elapsed. Caller
// holds the mutex.
func (t *abuseTracker) rollWindow() {
	if time.Since(t.windowStart) > abuseWindow {
		t.failedAuth = make(map[string]int)
		t.requests = make(map[string]int)
		t.windowStart = time.Now()
	}
}

// SecureHeaders sets the browser hardening headers on every response.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(HeaderContentType, HeaderValueNoSniff)
		w.Header().Set(HeaderFrameOptions, HeaderValueSameOrigin)
		w.Header().Set(HeaderXSSProtection, HeaderValueXSSBlock)
		w.Header().Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
		next.ServeHTTP(w, r)
	})
}

// LimitBodySize caps request bodies at maxBytes.
func LimitBodySize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
