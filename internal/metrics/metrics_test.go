package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncrementOutcome("completed", "")
	m.IncrementOutcome("failed", "out_of_range")
	m.IncrementOutcome("failed", "out_of_range")
	m.IncrementLink("gps")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.VerificationOutcome.WithLabelValues("completed", "")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.VerificationOutcome.WithLabelValues("failed", "out_of_range")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LinkOutcome.WithLabelValues("gps")))
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncrementOutcome("completed", "")
		m.ObserveDistance(10)
		m.ObserveCheckinLatency(time.Second)
		m.IncrementLink("none")
	})
}
