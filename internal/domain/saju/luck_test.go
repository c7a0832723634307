package saju

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var referenceAsOf = time.Date(2026, 10, 15, 14, 30, 0, 0, time.UTC)

func TestComputeLuckSnapshotReference(t *testing.T) {
	birth := referenceBirth(t)
	fp := ComputeFourPillars(birth)
	snap := ComputeLuckSnapshot(fp, birth, referenceAsOf, Male)

	require.Equal(t, civilDate(2026, 10, 15), snap.AsOf)
	require.True(t, snap.GreatLuck.Forward)
	require.Equal(t, 37, snap.GreatLuck.Age)
	require.Len(t, snap.GreatLuck.Pillars, GreatLuckDecades)
	require.Equal(t, 2, snap.GreatLuck.Current.Index)
	requirePillar(t, snap.GreatLuck.Current.Pillar, 0, 8) // 甲申
	require.Equal(t, 28, snap.GreatLuck.Current.StartAge)
	require.Equal(t, 37, snap.GreatLuck.Current.EndAge)

	require.Equal(t, 2026, snap.YearlyLuck.Year)
	requirePillar(t, snap.YearlyLuck.Pillar, 2, 6) // 丙午
	requirePillar(t, snap.MonthlyLuck.Pillar, 4, 10) // 戊戌
	require.Equal(t, 10, snap.MonthlyLuck.Month)
	requirePillar(t, snap.DailyLuck.Pillar, 8, 10) // 壬戌

	require.Equal(t, "한로", snap.SolarTerm.Current.Name)
	require.Equal(t, "상강", snap.SolarTerm.Next.Name)
	require.Equal(t, 8, snap.SolarTerm.DaysToNext)
}

func TestGreatLuckDirection(t *testing.T) {
	require.True(t, GreatLuckForward(Stem(0), Male))
	require.False(t, GreatLuckForward(Stem(0), Female))
	require.False(t, GreatLuckForward(Stem(1), Male))
	require.True(t, GreatLuckForward(Stem(1), Female))

	fp := ComputeFourPillars(referenceBirth(t))
	backward := ComputeGreatLuck(fp, Female, 12)
	require.False(t, backward.Forward)
	requirePillar(t, backward.Pillars[0].Pillar, 6, 4) // 辛巳 stepped back to 庚辰
	require.Equal(t, 0, backward.Current.Index)
}

func TestGreatLuckCurrentDecadeClamps(t *testing.T) {
	fp := ComputeFourPillars(referenceBirth(t))
	require.Equal(t, 0, ComputeGreatLuck(fp, Male, 1).Current.Index)
	require.Equal(t, 0, ComputeGreatLuck(fp, Male, 17).Current.Index)
	require.Equal(t, 1, ComputeGreatLuck(fp, Male, 18).Current.Index)
	require.Equal(t, GreatLuckDecades-1, ComputeGreatLuck(fp, Male, 120).Current.Index)
}

func TestCountingAge(t *testing.T) {
	require.Equal(t, 1, CountingAge(civilDate(2026, 12, 31), civilDate(2026, 12, 31)))
	require.Equal(t, 2, CountingAge(civilDate(2025, 12, 31), civilDate(2026, 1, 1)))
}

func TestTrackSolarTermWrapsYears(t *testing.T) {
	newYearsEve := TrackSolarTerm(civilDate(2025, 12, 31))
	require.Equal(t, "동지", newYearsEve.Current.Name)
	require.Equal(t, "소한", newYearsEve.Next.Name)
	require.Equal(t, civilDate(2026, 1, 5), newYearsEve.Next.Date)
	require.Equal(t, 5, newYearsEve.DaysToNext)

	early := TrackSolarTerm(civilDate(2026, 1, 2))
	require.Equal(t, "동지", early.Current.Name)
	require.Equal(t, civilDate(2025, 12, 22), early.Current.Date)
	require.True(t, early.InTransition(TransitionDays))

	onTerm := TrackSolarTerm(civilDate(2026, 2, 4))
	require.Equal(t, "입춘", onTerm.Current.Name)
	require.Equal(t, 15, onTerm.DaysToNext)
}

func TestLuckSnapshotIsIdempotent(t *testing.T) {
	birth := referenceBirth(t)
	fp := ComputeFourPillars(birth)
	first := ComputeLuckSnapshot(fp, birth, referenceAsOf, Male)
	second := ComputeLuckSnapshot(fp, birth, referenceAsOf, Male)
	require.Equal(t, first, second)
}
