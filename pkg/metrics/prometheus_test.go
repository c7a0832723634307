package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordReading("analyze")
	r.RecordReading("analyze")
	r.RecordCache(true)
	r.RecordCache(false)
	r.RecordCache(false)
	r.RecordError("")
	r.RecordNumber("wood")
	r.RecordInvalidation()
	r.RecordLatency("analyze", time.Now())

	require.Equal(t, 2.0, testutil.ToFloat64(r.readings.WithLabelValues("analyze")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.cache.WithLabelValues("hit")))
	require.Equal(t, 2.0, testutil.ToFloat64(r.cache.WithLabelValues("miss")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.errorsSeen.WithLabelValues("unknown")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.numbers.WithLabelValues("wood")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.refreshes))

	count, err := testutil.GatherAndCount(reg, "saju_operation_duration_seconds")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}
