package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyBooking/pkg/logger"
)

func TestAuth(t *testing.T) {
	var gotID int64
	var gotOK bool
	h := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = GetUserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name     string
		header   string
		wantCode int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not a number", "abc", http.StatusUnauthorized},
		{"negative", "-5", http.StatusUnauthorized},
		{"valid", "42", http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotID, gotOK = 0, false
			req := httptest.NewRequest(http.MethodGet, "/bookings/1", nil)
			if tt.header != "" {
				req.Header.Set(UserIDHeader, tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusNoContent {
				assert.True(t, gotOK)
				assert.Equal(t, int64(42), gotID)
			}
		})
	}
}

type recordedRequest struct {
	method string
	route  string
	status int
}

type fakeHTTPMetrics struct {
	calls []recordedRequest
}

func (f *fakeHTTPMetrics) ObserveHTTPRequest(method, route string, status int, _ time.Duration) {
	f.calls = append(f.calls, recordedRequest{method: method, route: route, status: status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := &fakeHTTPMetrics{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/providers/{providerId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/providers/17", nil))

	require.Len(t, m.calls, 1)
	assert.Equal(t, recordedRequest{method: "GET", route: "/providers/{providerId}", status: 404}, m.calls[0])
}

func TestRequestID(t *testing.T) {
	var fromCtx string
	h := RequestID(logger.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = GetRequestID(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		id := rec.Header().Get(RequestIDHeader)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, fromCtx)
	})

	t.Run("propagated", func(t *testing.T) {
		incoming := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, incoming)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, incoming, rec.Header().Get(RequestIDHeader))
	})

	t.Run("garbage replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "<script>")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.NotEqual(t, "<script>", rec.Header().Get(RequestIDHeader))
	})
}

func newTestLimiter(t *testing.T, rps float64, burst int, trusted ...string) *RateLimiter {
	t.Helper()
	rl, err := NewRateLimiter(rps, burst, time.Minute, trusted, logger.NewNop())
	require.NoError(t, err)
	return rl
}

func TestRateLimiter(t *testing.T) {
	rl := newTestLimiter(t, 1, 2)
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/providers/search", nil)
		req.RemoteAddr = ip + ":5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1"))
	assert.Equal(t, http.StatusOK, do("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1"))

	// другой IP имеет свой лимит
	assert.Equal(t, http.StatusOK, do("10.0.0.2"))
}

func TestRateLimiter_ForwardedHeadersFromUntrustedPeerIgnored(t *testing.T) {
	rl := newTestLimiter(t, 1, 2)
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	allowed := 0
	for i := 0; i < 100; i++ {
		req := httptest.NewRequest(http.MethodGet, "/providers/search", nil)
		req.RemoteAddr = "198.51.100.20:40000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		req.Header.Set("X-Real-IP", fmt.Sprintf("192.0.2.%d", i))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code == http.StatusOK {
			allowed++
		}
	}

	assert.Equal(t, 2, allowed)
	assert.Len(t, rl.limiters, 1)
	assert.Contains(t, rl.limiters, "198.51.100.20")
}

func TestRateLimiter_SweepsStaleVisitors(t *testing.T) {
	rl := newTestLimiter(t, 1, 1)
	start := time.Now()

	assert.True(t, rl.allow("10.0.0.1", start))
	assert.Len(t, rl.limiters, 1)

	assert.True(t, rl.allow("10.0.0.2", start.Add(2*time.Minute)))
	assert.Len(t, rl.limiters, 1)
	assert.Contains(t, rl.limiters, "10.0.0.2")
}

func TestNewRateLimiter_InvalidProxy(t *testing.T) {
	_, err := NewRateLimiter(1, 1, time.Minute, []string{"proxy.local"}, logger.NewNop())
	assert.Error(t, err)
}

func TestClientIP(t *testing.T) {
	newRequest := func(remote string, headers map[string]string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = remote
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		return req
	}

	t.Run("no trusted proxies", func(t *testing.T) {
		rl := newTestLimiter(t, 1, 1)
		req := newRequest("192.168.1.5:1234", map[string]string{
			"X-Forwarded-For": "203.0.113.7",
			"X-Real-IP":       "172.16.0.9",
		})
		assert.Equal(t, "192.168.1.5", rl.clientIP(req))
	})

	rl := newTestLimiter(t, 1, 1, "10.0.0.0/8", "192.168.1.5")

	tests := []struct {
		name    string
		remote  string
		headers map[string]string
		want    string
	}{
		{
			name:    "untrusted peer",
			remote:  "198.51.100.1:1234",
			headers: map[string]string{"X-Forwarded-For": "203.0.113.7"},
			want:    "198.51.100.1",
		},
		{
			name:    "rightmost untrusted hop",
			remote:  "10.0.0.3:1234",
			headers: map[string]string{"X-Forwarded-For": "1.2.3.4, 203.0.113.7, 10.0.0.2"},
			want:    "203.0.113.7",
		},
		{
			name:    "real ip from trusted peer",
			remote:  "192.168.1.5:1234",
			headers: map[string]string{"X-Real-IP": "172.16.0.9"},
			want:    "172.16.0.9",
		},
		{
			name:    "garbage header",
			remote:  "10.0.0.3:1234",
			headers: map[string]string{"X-Forwarded-For": "not-an-ip"},
			want:    "10.0.0.3",
		},
		{
			name:   "trusted peer without headers",
			remote: "10.0.0.3:1234",
			want:   "10.0.0.3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rl.clientIP(newRequest(tt.remote, tt.headers)))
		})
	}
}
