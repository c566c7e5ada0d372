package telemetry

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBusinessMetrics_NilSafe(t *testing.T) {
	var m *BusinessMetrics
	assert.NotPanics(t, func() {
		m.CartMutation("add")
		m.ReadFailure("cart")
		m.OrderPlaced("cod", decimal.NewFromInt(1))
		m.SessionsDeleted(3)
	})
}

func TestBusinessMetrics_Counters(t *testing.T) {
	m := NewBusinessMetrics("test", prometheus.NewRegistry())

	m.CartMutation("add")
	m.CartMutation("add")
	m.CartMutation("remove")
	m.ReadFailure("cart")
	m.ReadFailure("products")
	m.SessionsDeleted(4)
	m.SessionsDeleted(0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CartMutations.WithLabelValues("add")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CartMutations.WithLabelValues("remove")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CartRefetchFails))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BackendReadFailures.WithLabelValues("products")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.SessionsSwept))
}
