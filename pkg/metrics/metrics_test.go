package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveHTTPRequest(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry(), "test")

	m.ObserveHTTPRequest("GET", "/api/v1/providers/search", 200, 15*time.Millisecond)
	m.ObserveHTTPRequest("GET", "/api/v1/providers/search", 200, 5*time.Millisecond)
	m.ObserveHTTPRequest("GET", "/api/v1/providers/search", 400, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/providers/search", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/providers/search", "400")))
}

func TestObserveSearch(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry(), "test")

	m.ObserveSearch(3, []string{"text", "distance"})
	m.ObserveSearch(0, []string{"text"})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SearchRequests.WithLabelValues("text")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SearchRequests.WithLabelValues("distance")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.SearchRequests.WithLabelValues("availability")))
}
