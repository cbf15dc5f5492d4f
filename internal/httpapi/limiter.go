package httpapi

import (
	"net"
	"net/http"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/ppiankov/greenlie/internal/model"
)

const (
	// defaultIdleTTL evicts the bucket of a client that has been quiet this long
	defaultIdleTTL = 10 * time.Minute

	// defaultMaxClients bounds the tracked buckets; clients beyond it share one
	defaultMaxClients = 10000
)

// Limiter implements per-client rate limiting. Buckets of idle clients expire,
// and once maxClients are tracked new clients share an overflow bucket.
type Limiter struct {
	limiters     *gocache.Cache
	overrides    map[string]*rate.Limiter
	overflow     *rate.Limiter
	mu           sync.Mutex
	defaultRate  rate.Limit
	defaultBurst int
	maxClients   int
}

// NewLimiter creates a new rate limiter
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}

	return &Limiter{
		limiters:     gocache.New(defaultIdleTTL, defaultIdleTTL),
		overrides:    make(map[string]*rate.Limiter),
		overflow:     rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		defaultRate:  rate.Limit(requestsPerSecond),
		defaultBurst: burst,
		maxClients:   defaultMaxClients,
	}
}

// Allow reports whether the client may make a request now
func (l *Limiter) Allow(client string) bool {
	return l.getLimiter(client).Allow()
}

func (l *Limiter) getLimiter(client string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, ok := l.overrides[client]; ok {
		return limiter
	}

	if v, ok := l.limiters.Get(client); ok {
		limiter := v.(*rate.Limiter)
		// refresh the idle deadline
		l.limiters.SetDefault(client, limiter)
		return limiter
	}

	if l.limiters.ItemCount() >= l.maxClients {
		l.limiters.DeleteExpired()
		if l.limiters.ItemCount() >= l.maxClients {
			return l.overflow
		}
	}

	limiter := rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters.SetDefault(client, limiter)
	return limiter
}

// SetClientRate sets a custom rate limit for one client. Overrides never expire.
func (l *Limiter) SetClientRate(client string, requestsPerSecond float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if burst <= 0 {
		burst = l.defaultBurst
	}

	l.overrides[client] = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}

// ApplyClientRates installs the configured per-client overrides
func (l *Limiter) ApplyClientRates(rates []model.ClientRate) {
	for _, r := range rates {
		l.SetClientRate(r.Client, r.RequestsPerSecond, r.Burst)
	}
}

// Clients returns the number of tracked clients, overrides excluded
func (l *Limiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.limiters.ItemCount()
}

// clientKey identifies the caller by remote host
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Middleware answers 429 once a client exceeds its rate
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(clientKey(r)) {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}
