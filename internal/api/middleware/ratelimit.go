package middleware

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-BeautyBooking/internal/api/handlers"
)

const msgRateLimited = "слишком много запросов, попробуйте позже"

// RateLimiter ограничивает частоту запросов с одного IP
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*visitor
	rps       rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
	trusted   []netip.Prefix
	logger    Logger
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter создает лимитер: rps запросов в секунду с запасом burst.
// Записи IP, не появлявшихся дольше ttl, удаляются.
// trustedProxies (IP или CIDR) единственные, чьим X-Forwarded-For и X-Real-IP верим.
func NewRateLimiter(rps float64, burst int, ttl time.Duration, trustedProxies []string, logger Logger) (*RateLimiter, error) {
	trusted, err := parseProxies(trustedProxies)
	if err != nil {
		return nil, err
	}

	return &RateLimiter{
		limiters:  make(map[string]*visitor),
		rps:       rate.Limit(rps),
		burst:     burst,
		ttl:       ttl,
		lastSweep: time.Now(),
		trusted:   trusted,
		logger:    logger,
	}, nil
}

func parseProxies(proxies []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(proxies))
	for _, raw := range proxies {
		raw = strings.TrimSpace(raw)
		if prefix, err := netip.ParsePrefix(raw); err == nil {
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", raw, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// Middleware отклоняет запросы сверх лимита с кодом 429
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := rl.clientIP(r)
		if !rl.allow(ip, time.Now()) {
			rl.logger.Warn("Rate limit exceeded: ip=%s, path=%s, request_id=%s", ip, r.URL.Path, GetRequestID(r.Context()))
			handlers.RespondTooManyRequests(w, msgRateLimited)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.ttl > 0 && now.Sub(rl.lastSweep) > rl.ttl {
		for key, v := range rl.limiters {
			if now.Sub(v.lastSeen) > rl.ttl {
				delete(rl.limiters, key)
			}
		}
		rl.lastSweep = now
	}

	v, ok := rl.limiters[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.limiters[ip] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

func (rl *RateLimiter) isTrusted(addr netip.Addr) bool {
	for _, prefix := range rl.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// clientIP адрес соединения. Заголовки прокси читаются, только если соединение
// пришло от доверенного прокси: X-Forwarded-For разбирается справа налево до
// первого недоверенного адреса, затем X-Real-IP.
func (rl *RateLimiter) clientIP(r *http.Request) string {
	peer := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		peer = host
	}

	peerAddr, err := netip.ParseAddr(peer)
	if err != nil || !rl.isTrusted(peerAddr.Unmap()) {
		return peer
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		client := ""
		for i := len(hops) - 1; i >= 0; i-- {
			addr, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
			if err != nil {
				break
			}
			client = addr.Unmap().String()
			if !rl.isTrusted(addr.Unmap()) {
				return client
			}
		}
		if client != "" {
			return client
		}
	}

	if addr, err := netip.ParseAddr(strings.TrimSpace(r.Header.Get("X-Real-IP"))); err == nil {
		return addr.Unmap().String()
	}

	return peer
}
