package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveOperation(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveOperation("countryQuery", time.Now(), nil)
	m.ObserveOperation("countryQuery", time.Now(), nil)
	m.ObserveOperation("countryQuery", time.Now(), errors.New("country not found"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Operations.WithLabelValues("countryQuery", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("countryQuery", OutcomeError)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.OperationDuration))
}

func TestIncrementHTTPRequest(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementHTTPRequest("/graphql", 200)
	m.IncrementHTTPRequest("/graphql", 400)
	m.IncrementHTTPRequest("/graphql", 404)
	m.IncrementHTTPRequest("/healthz", 503)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/graphql", "2xx")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/graphql", "4xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/healthz", "5xx")))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveOperation("countriesQuery", time.Now(), nil)
		m.IncrementHTTPRequest("/", 200)
	})
}

func TestNew_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
