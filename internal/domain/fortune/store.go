package fortune

import (
	"context"
	"time"
)

// SnapshotStore caches dashboards and tallies recommended numbers.
type SnapshotStore interface {
	GetDashboard(ctx context.Context, key string) (Dashboard, bool, error)
	SaveDashboard(ctx context.Context, key string, d Dashboard, ttl time.Duration) error
	// InvalidateAll drops every cached dashboard.
	InvalidateAll(ctx context.Context) error
	RecordNumbers(ctx context.Context, numbers []int) error
	TopNumbers(ctx context.Context, limit int) ([]NumberCount, error)
}

// Metrics receives service-level observations.
type Metrics interface {
	RecordReading(kind string)
	RecordCache(hit bool)
	RecordNumber(element string)
	RecordLatency(op string, start time.Time)
}

type noopMetrics struct{}

func (noopMetrics) RecordReading(string) {}
func (noopMetrics) RecordCache(bool) {}
func (noopMetrics) RecordNumber(string) {}
func (noopMetrics) RecordLatency(string, time.Time) {}
