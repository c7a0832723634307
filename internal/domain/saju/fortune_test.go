package saju

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type referenceFixture struct {
	birth   NormalizedDate
	fp      FourPillars
	profile ElementProfile
	fav     FavorableElements
	snap    LuckSnapshot
}

func newReferenceFixture(t *testing.T) referenceFixture {
	t.Helper()
	birth := referenceBirth(t)
	fp := ComputeFourPillars(birth)
	profile := ComputeElementProfile(fp)
	return referenceFixture{
		birth:   birth,
		fp:      fp,
		profile: profile,
		fav:     ResolveFavorableElements(fp, profile),
		snap:    ComputeLuckSnapshot(fp, birth, referenceAsOf, Male),
	}
}

func TestScoreFortuneReference(t *testing.T) {
	f := newReferenceFixture(t)
	score := ScoreFortune(f.fp, f.fav, f.snap, f.profile)

	// +20 great luck wood, -8 monthly earth, -5 daily earth.
	require.Equal(t, 57, score.Score)
	require.Equal(t, "normal", score.Tier.Level)
	require.Equal(t, 0.0, score.Balance)
	require.Len(t, score.Influences, 3)
	require.Contains(t, score.Influences[0], "great luck")
	require.NotEmpty(t, score.Recommendation)
}

func TestScoreFortuneClampsToRange(t *testing.T) {
	f := newReferenceFixture(t)
	even := profileFromTotals(ElementTotals{2, 2, 2, 2, 2})

	allWood := f.snap
	allWood.GreatLuck.Current.Pillar = NewPillar(0, 2)
	allWood.YearlyLuck.Pillar = NewPillar(0, 2)
	allWood.MonthlyLuck.Pillar = NewPillar(1, 3)
	allWood.DailyLuck.Pillar = NewPillar(0, 2)
	high := ScoreFortune(f.fp, f.fav, allWood, even)
	require.Equal(t, 100, high.Score)
	require.Equal(t, "excellent", high.Tier.Level)

	allEarth := f.snap
	allEarth.GreatLuck.Current.Pillar = NewPillar(4, 4)
	allEarth.YearlyLuck.Pillar = NewPillar(4, 10)
	allEarth.MonthlyLuck.Pillar = NewPillar(5, 1)
	allEarth.DailyLuck.Pillar = NewPillar(5, 7)
	low := ScoreFortune(f.fp, f.fav, allEarth, f.profile)
	require.Equal(t, 12, low.Score)
	require.Equal(t, "bad", low.Tier.Level)
}

func TestTierBoundaries(t *testing.T) {
	cases := map[int]string{
		100: "excellent", 80: "excellent", 79: "good", 65: "good",
		64: "normal", 35: "normal", 34: "caution", 20: "caution", 19: "bad", 0: "bad",
	}
	for score, level := range cases {
		require.Equal(t, level, TierFor(score).Level, "score %d", score)
	}
}

func TestScoreDayAndCalendar(t *testing.T) {
	f := newReferenceFixture(t)
	great := f.snap.GreatLuck.Current.Pillar

	day := ScoreDay(referenceAsOf, f.fav, great)
	require.Equal(t, civilDate(2026, 10, 15), day.Date)
	requirePillar(t, day.Pillar, 8, 10)
	require.Equal(t, 70, day.Score) // water feeds the favorable wood
	require.Equal(t, "good", day.Tier.Level)
	require.Equal(t, 7, day.LuckyWindow.Ordinal)

	month := FortuneCalendar(2026, 2, f.fav, great)
	require.Len(t, month, 28)
	for i, d := range month {
		require.Equal(t, i+1, d.Date.Day())
		require.GreaterOrEqual(t, d.Score, 0)
		require.LessOrEqual(t, d.Score, 100)
	}
}

func TestCautionAdvice(t *testing.T) {
	require.NotEqual(t, CautionAdvice(10), CautionAdvice(40))
	require.NotEqual(t, CautionAdvice(40), CautionAdvice(90))
	require.Equal(t, CautionAdvice(50), CautionAdvice(100))
}
