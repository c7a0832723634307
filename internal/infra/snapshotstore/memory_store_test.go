package snapshotstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/space-cap/saju-lotto-firebase/internal/domain/fortune"
)

func TestMemoryStoreDashboardTTL(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.SaveDashboard(ctx, "k", fortune.Dashboard{Key: "k", Date: "2026-10-15"}, time.Hour))

	got, found, err := store.GetDashboard(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "2026-10-15", got.Date)

	now = now.Add(time.Hour)
	_, found, err = store.GetDashboard(ctx, "k")
	require.NoError(t, err)
	require.False(t, found)
}

func TestMemoryStoreInvalidateAll(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.SaveDashboard(ctx, "a", fortune.Dashboard{Key: "a"}, 0))
	require.NoError(t, store.SaveDashboard(ctx, "b", fortune.Dashboard{Key: "b"}, 0))
	require.NoError(t, store.RecordNumbers(ctx, []int{7}))
	require.NoError(t, store.InvalidateAll(ctx))

	for _, key := range []string{"a", "b"} {
		_, found, err := store.GetDashboard(ctx, key)
		require.NoError(t, err)
		require.False(t, found)
	}
	top, err := store.TopNumbers(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, []fortune.NumberCount{{Number: 7, Count: 1}}, top)
}

func TestMemoryStoreTopNumbers(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.RecordNumbers(ctx, []int{13, 18, 32, 34, 38, 44}))
	require.NoError(t, store.RecordNumbers(ctx, []int{3, 4, 8, 13, 28, 44}))

	top, err := store.TopNumbers(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, []fortune.NumberCount{
		{Number: 13, Count: 2},
		{Number: 44, Count: 2},
		{Number: 3, Count: 1},
	}, top)
}
