package fortune

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/space-cap/saju-lotto-firebase/internal/domain/saju"
	apperrors "github.com/space-cap/saju-lotto-firebase/pkg/errors"
	"github.com/space-cap/saju-lotto-firebase/pkg/logger"
)

var (
	seoul      = time.FixedZone("KST", 9*60*60)
	testNow    = time.Date(2026, 10, 15, 5, 30, 0, 0, time.UTC) // 14:30 in Seoul
	testBirth  = saju.BirthInput{Year: 1990, Month: 5, Day: 15, Hour: 10, Calendar: saju.Solar, Gender: saju.Male}
	lunarBirth = saju.BirthInput{Year: 1990, Month: 1, Day: 1, Hour: 10, Calendar: saju.Lunar, Gender: saju.Female}
)

func newTestService(store SnapshotStore, strict bool) *service {
	svc := NewService(Config{
		Location:    seoul,
		StrictLunar: strict,
		SnapshotTTL: time.Hour,
		MaxSets:     3,
	}, store, nil, logger.Discard()).(*service)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestServiceAnalyze(t *testing.T) {
	store := newStubStore()
	svc := newTestService(store, false)

	got, err := svc.Analyze(context.Background(), AnalyzeRequest{BirthInput: testBirth, Sets: 2})
	require.NoError(t, err)
	require.Equal(t, 57, got.Fortune.Score)
	require.Len(t, got.NumberSets, 2)
	require.Equal(t, []int{13, 18, 32, 34, 38, 44}, got.NumberSets[0].Values())
	require.Equal(t, []int{3, 8, 13, 18, 23, 28}, got.Consultation.CoreNumbers)
	require.Equal(t, testNow.In(seoul), got.GeneratedAt)
	require.Equal(t, int64(1), store.tally[13])
}

func TestServiceAnalyzeValidation(t *testing.T) {
	svc := newTestService(newStubStore(), false)
	ctx := context.Background()

	_, err := svc.Analyze(ctx, AnalyzeRequest{BirthInput: testBirth, Sets: 4})
	require.True(t, apperrors.IsCode(err, CodeInvalidRequest))

	bad := testBirth
	bad.Hour = 25
	_, err = svc.Analyze(ctx, AnalyzeRequest{BirthInput: bad})
	require.True(t, apperrors.IsCode(err, saju.CodeInvalidBirthInput))
}

func TestServiceStrictLunar(t *testing.T) {
	ctx := context.Background()

	_, err := newTestService(newStubStore(), true).Analyze(ctx, AnalyzeRequest{BirthInput: lunarBirth})
	require.True(t, apperrors.IsCode(err, saju.CodeLunarConversionUncertain))

	lenient, err := newTestService(newStubStore(), false).Analyze(ctx, AnalyzeRequest{BirthInput: lunarBirth})
	require.NoError(t, err)
	require.True(t, lenient.Birth.LunarUncertain)
}

func TestServiceDashboardCachesUntilRefresh(t *testing.T) {
	store := newStubStore()
	svc := newTestService(store, false)
	ctx := context.Background()

	first, err := svc.Dashboard(ctx, DashboardRequest{BirthInput: testBirth})
	require.NoError(t, err)
	require.False(t, first.Cached)
	require.Equal(t, "2026-10-15", first.Date)
	require.Equal(t, "19900515T10-solar-male:20261015", first.Key)
	require.Equal(t, []int{3, 4, 8, 13, 28, 44}, first.Numbers.Values())
	require.Equal(t, 57, first.Numbers.Confidence)
	require.Equal(t, saju.East, first.Direction)
	require.Equal(t, 7, first.QuickPick.Branch.Ordinal) // 14:30 is 未
	require.Equal(t, 70, first.Today.Score)
	require.Equal(t, 1, store.saves)

	second, err := svc.Dashboard(ctx, DashboardRequest{BirthInput: testBirth})
	require.NoError(t, err)
	require.True(t, second.Cached)
	require.Equal(t, 1, store.saves)

	refreshed, err := svc.Refresh(ctx, DashboardRequest{BirthInput: testBirth})
	require.NoError(t, err)
	require.False(t, refreshed.Cached)
	require.Equal(t, 2, store.saves)

	require.NoError(t, store.InvalidateAll(ctx))
	third, err := svc.Dashboard(ctx, DashboardRequest{BirthInput: testBirth})
	require.NoError(t, err)
	require.False(t, third.Cached)
}

func TestServiceDashboardSurvivesStoreFailure(t *testing.T) {
	store := newStubStore()
	store.err = errors.New("valkey down")
	svc := newTestService(store, false)

	dash, err := svc.Dashboard(context.Background(), DashboardRequest{BirthInput: testBirth})
	require.NoError(t, err)
	require.Equal(t, 57, dash.Fortune.Score)
}

func TestServiceCalendar(t *testing.T) {
	svc := newTestService(newStubStore(), false)
	ctx := context.Background()

	cal, err := svc.Calendar(ctx, CalendarRequest{BirthInput: testBirth, Year: 2026, Month: 2})
	require.NoError(t, err)
	require.Len(t, cal.Days, 28)
	require.Len(t, cal.BestDays, bestDaysPerMonth)
	require.True(t, sort.IntsAreSorted(cal.BestDays))

	_, err = svc.Calendar(ctx, CalendarRequest{BirthInput: testBirth, Year: 2026, Month: 13})
	require.True(t, apperrors.IsCode(err, CodeInvalidRequest))
}

func TestServiceQuickPick(t *testing.T) {
	svc := newTestService(newStubStore(), false)
	ctx := context.Background()

	hour := 10
	pick, err := svc.QuickPick(ctx, QuickPickRequest{Hour: &hour})
	require.NoError(t, err)
	require.Equal(t, []int{12, 22, 32, 42, 7, 17}, pick.Values())

	now, err := svc.QuickPick(ctx, QuickPickRequest{})
	require.NoError(t, err)
	require.Equal(t, 7, now.Branch.Ordinal)

	bad := 24
	_, err = svc.QuickPick(ctx, QuickPickRequest{Hour: &bad})
	require.True(t, apperrors.IsCode(err, CodeInvalidRequest))
}

func TestServiceTopNumbers(t *testing.T) {
	store := newStubStore()
	svc := newTestService(store, false)
	ctx := context.Background()

	_, err := svc.Analyze(ctx, AnalyzeRequest{BirthInput: testBirth})
	require.NoError(t, err)
	_, err = svc.Dashboard(ctx, DashboardRequest{BirthInput: testBirth})
	require.NoError(t, err)

	top, err := svc.TopNumbers(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, []NumberCount{{Number: 13, Count: 2}, {Number: 44, Count: 2}}, top)
}

func TestBestDays(t *testing.T) {
	days := []saju.DayFortune{
		{Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Score: 50},
		{Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), Score: 90},
		{Date: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), Score: 70},
		{Date: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), Score: 90},
	}
	require.Equal(t, []int{2, 3, 4}, bestDays(days, 3))
	require.Equal(t, []int{2}, bestDays(days, 1))
}

type stubStore struct {
	dashboards map[string]Dashboard
	tally      map[int]int64
	saves      int
	err        error
}

func newStubStore() *stubStore {
	return &stubStore{dashboards: map[string]Dashboard{}, tally: map[int]int64{}}
}

func (s *stubStore) GetDashboard(_ context.Context, key string) (Dashboard, bool, error) {
	if s.err != nil {
		return Dashboard{}, false, s.err
	}
	d, ok := s.dashboards[key]
	return d, ok, nil
}

func (s *stubStore) SaveDashboard(_ context.Context, key string, d Dashboard, _ time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.saves++
	s.dashboards[key] = d
	return nil
}

func (s *stubStore) InvalidateAll(context.Context) error {
	s.dashboards = map[string]Dashboard{}
	return nil
}

func (s *stubStore) RecordNumbers(_ context.Context, numbers []int) error {
	if s.err != nil {
		return s.err
	}
	for _, n := range numbers {
		s.tally[n]++
	}
	return nil
}

func (s *stubStore) TopNumbers(_ context.Context, limit int) ([]NumberCount, error) {
	out := make([]NumberCount, 0, len(s.tally))
	for n, c := range s.tally {
		out = append(out, NumberCount{Number: n, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Number < out[j].Number
		}
		return out[i].Count > out[j].Count
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
