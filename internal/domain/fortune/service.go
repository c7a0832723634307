package fortune

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/space-cap/saju-lotto-firebase/internal/domain/saju"
	apperrors "github.com/space-cap/saju-lotto-firebase/pkg/errors"
	"github.com/space-cap/saju-lotto-firebase/pkg/util"
)

// Error codes returned by the service besides the saju engine codes.
const (
	// CodeInvalidRequest marks request fields outside the birth input.
	CodeInvalidRequest = "invalid_request"
	CodeFortuneError   = "fortune_error"
)

const (
	defaultTopNumbers = 10
	bestDaysPerMonth  = 3
)

// Service exposes readings, the daily dashboard and the fortune calendar.
type Service interface {
	Analyze(ctx context.Context, req AnalyzeRequest) (Analysis, error)
	Dashboard(ctx context.Context, req DashboardRequest) (Dashboard, error)
	Refresh(ctx context.Context, req DashboardRequest) (Dashboard, error)
	Calendar(ctx context.Context, req CalendarRequest) (Calendar, error)
	QuickPick(ctx context.Context, req QuickPickRequest) (saju.QuickPick, error)
	TopNumbers(ctx context.Context, limit int) ([]NumberCount, error)
}

type service struct {
	cfg     Config
	store   SnapshotStore
	metrics Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// NewService wires the fortune domain. metrics may be nil.
func NewService(cfg Config, store SnapshotStore, metrics Metrics, logger *slog.Logger) Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.MaxSets < 1 {
		cfg.MaxSets = 1
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &service{
		cfg:     cfg,
		store:   store,
		metrics: metrics,
		logger:  logger.With("component", "fortune.service"),
		now:     util.NowUTC,
	}
}

func (s *service) Analyze(ctx context.Context, req AnalyzeRequest) (Analysis, error) {
	defer s.metrics.RecordLatency("analyze", time.Now())

	sets := req.Sets
	if sets == 0 {
		sets = 1
	}
	if sets < 1 || sets > s.cfg.MaxSets {
		return Analysis{}, apperrors.Wrap(CodeInvalidRequest, fmt.Sprintf("sets must be between 1 and %d", s.cfg.MaxSets), nil)
	}

	asOf := s.localNow()
	chart, err := s.chart(req.BirthInput, asOf)
	if err != nil {
		return Analysis{}, err
	}
	reading := saju.Read(chart, asOf, sets)
	s.tally(ctx, reading.NumberSets[0])
	s.metrics.RecordReading("analyze")

	return Analysis{
		Reading:      reading,
		Consultation: saju.Consult(chart.Pillars, chart.Profile, chart.Favorable, reading.Luck.GreatLuck.Age),
		GeneratedAt:  asOf,
	}, nil
}

func (s *service) Dashboard(ctx context.Context, req DashboardRequest) (Dashboard, error) {
	defer s.metrics.RecordLatency("dashboard", time.Now())

	asOf := s.localNow()
	key := dashboardKey(req.BirthInput, asOf)
	cached, found, err := s.store.GetDashboard(ctx, key)
	if err != nil {
		s.logger.Warn("snapshot lookup failed", "key", key, "error", err)
	}
	s.metrics.RecordCache(found)
	if found {
		cached.Cached = true
		return cached, nil
	}
	return s.rebuild(ctx, req, key, asOf)
}

func (s *service) Refresh(ctx context.Context, req DashboardRequest) (Dashboard, error) {
	defer s.metrics.RecordLatency("refresh", time.Now())

	asOf := s.localNow()
	return s.rebuild(ctx, req, dashboardKey(req.BirthInput, asOf), asOf)
}

func (s *service) rebuild(ctx context.Context, req DashboardRequest, key string, asOf time.Time) (Dashboard, error) {
	chart, err := s.chart(req.BirthInput, asOf)
	if err != nil {
		return Dashboard{}, err
	}
	reading := saju.Read(chart, asOf, 1)
	dash := Dashboard{
		Key:         key,
		Date:        asOf.Format(time.DateOnly),
		Favorable:   chart.Favorable,
		Luck:        reading.Luck,
		Fortune:     reading.Fortune,
		Numbers:     reading.FortuneNumbers,
		QuickPick:   saju.NewQuickPick(asOf),
		Direction:   reading.Direction,
		LuckyColors: reading.LuckyColors,
		Caution:     reading.Caution,
		Today:       saju.ScoreDay(asOf, chart.Favorable, reading.Luck.GreatLuck.Current.Pillar),
		GeneratedAt: asOf,
	}
	if err := s.store.SaveDashboard(ctx, key, dash, s.cfg.SnapshotTTL); err != nil {
		s.logger.Warn("snapshot save failed", "key", key, "error", err)
	}
	s.tally(ctx, dash.Numbers)
	s.metrics.RecordReading("dashboard")
	s.logger.Info("dashboard built", "key", key, "score", dash.Fortune.Score, "tier", dash.Fortune.Tier.Level)
	return dash, nil
}

func (s *service) Calendar(ctx context.Context, req CalendarRequest) (Calendar, error) {
	defer s.metrics.RecordLatency("calendar", time.Now())

	if req.Year < saju.MinYear || req.Year > saju.MaxYear || req.Month < 1 || req.Month > 12 {
		return Calendar{}, apperrors.Wrap(CodeInvalidRequest, "calendar year or month out of range", nil)
	}
	chart, err := s.chart(req.BirthInput, s.localNow())
	if err != nil {
		return Calendar{}, err
	}

	mid := time.Date(req.Year, time.Month(req.Month), 15, 12, 0, 0, 0, s.cfg.Location)
	great := saju.ComputeLuckSnapshot(chart.Pillars, chart.Birth, mid, chart.Birth.Gender).GreatLuck.Current.Pillar
	days := saju.FortuneCalendar(req.Year, req.Month, chart.Favorable, great)
	s.metrics.RecordReading("calendar")

	return Calendar{
		Year:     req.Year,
		Month:    req.Month,
		Days:     days,
		BestDays: bestDays(days, bestDaysPerMonth),
	}, nil
}

func (s *service) QuickPick(_ context.Context, req QuickPickRequest) (saju.QuickPick, error) {
	at := s.localNow()
	if req.Hour != nil {
		if *req.Hour < 0 || *req.Hour > 23 {
			return saju.QuickPick{}, apperrors.Wrap(CodeInvalidRequest, "hour must be between 0 and 23", nil)
		}
		at = time.Date(at.Year(), at.Month(), at.Day(), *req.Hour, 0, 0, 0, s.cfg.Location)
	}
	s.metrics.RecordReading("quick_pick")
	return saju.NewQuickPick(at), nil
}

func (s *service) TopNumbers(ctx context.Context, limit int) ([]NumberCount, error) {
	if limit <= 0 {
		limit = defaultTopNumbers
	}
	if limit > saju.MaxNumber {
		limit = saju.MaxNumber
	}
	top, err := s.store.TopNumbers(ctx, limit)
	if err != nil {
		return nil, apperrors.Wrap(CodeFortuneError, "failed to load number statistics", err)
	}
	return top, nil
}

func (s *service) chart(in saju.BirthInput, asOf time.Time) (saju.Chart, error) {
	chart, err := saju.NewChart(in, asOf)
	if err != nil {
		return saju.Chart{}, err
	}
	if s.cfg.StrictLunar && chart.Birth.LunarUncertain {
		return saju.Chart{}, apperrors.Wrap(saju.CodeLunarConversionUncertain,
			fmt.Sprintf("lunar date converts to %s with confidence %.2f; enter the solar date instead",
				chart.Birth.Date.Format(time.DateOnly), chart.Birth.LunarConfidence), nil)
	}
	return chart, nil
}

// tally records recommended numbers for the statistics endpoint. Failures
// are logged and never fail the request.
func (s *service) tally(ctx context.Context, sel saju.NumberSelection) {
	for _, p := range sel.Numbers {
		s.metrics.RecordNumber(p.Element.String())
	}
	if err := s.store.RecordNumbers(ctx, sel.Values()); err != nil {
		s.logger.Warn("number tally failed", "error", err)
	}
}

func (s *service) localNow() time.Time {
	return s.now().In(s.cfg.Location)
}

func dashboardKey(in saju.BirthInput, asOf time.Time) string {
	leap := ""
	if in.LeapMonth {
		leap = "L"
	}
	return fmt.Sprintf("%04d%02d%02d%sT%02d-%s-%s:%s",
		in.Year, in.Month, in.Day, leap, in.Hour, in.Calendar, in.Gender, asOf.Format("20060102"))
}

// bestDays returns the n highest-scoring days of month, ascending by day.
// Ties go to the earlier day.
func bestDays(days []saju.DayFortune, n int) []int {
	ranked := make([]saju.DayFortune, len(days))
	copy(ranked, days)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	out := make([]int, len(ranked))
	for i, d := range ranked {
		out[i] = d.Date.Day()
	}
	sort.Ints(out)
	return out
}
