package saju

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConsultReference(t *testing.T) {
	f := newReferenceFixture(t)
	c := Consult(f.fp, f.profile, f.fav, 37)

	require.Equal(t, []int{3, 8, 13, 18, 23, 28}, c.CoreNumbers)
	require.Equal(t, []int{14, 21, 28, 35, 42, 4}, c.CycleNumbers)
	require.Equal(t, []int{15, 24, 33, 42, 6, 39}, c.SpecialNumbers)
	require.Contains(t, c.Health, "목(木)")
	require.Contains(t, c.LuckPattern, "age 37")
	require.Contains(t, c.LuckPattern, "age 39")
	require.NotEmpty(t, c.Personality)
	require.NotEmpty(t, c.Career)
	require.NotEmpty(t, c.Wealth)
	require.NotEmpty(t, c.Relationship)
}

func TestReadDoesNotMutateChart(t *testing.T) {
	chart, err := NewChart(BirthInput{
		Year: 1990, Month: 5, Day: 15, Hour: 10, Calendar: Solar, Gender: Male,
	}, referenceAsOf)
	require.NoError(t, err)
	before := chart

	first := Read(chart, referenceAsOf, 2)
	second := Read(chart, referenceAsOf, 2)

	require.Equal(t, before, chart)
	require.Equal(t, first, second)
	require.Equal(t, 57, first.Fortune.Score)
	require.Len(t, first.NumberSets, 2)
	require.Equal(t, []int{13, 18, 32, 34, 38, 44}, first.NumberSets[0].Values())
	require.Equal(t, East, first.Direction)
	require.Equal(t, []string{"green", "teal"}, first.LuckyColors)
	require.Equal(t, CautionAdvice(57), first.Caution)
}

func TestNewChartPropagatesValidation(t *testing.T) {
	_, err := NewChart(BirthInput{Year: 1990, Month: 5, Day: 15, Hour: 30, Calendar: Solar, Gender: Male}, time.Time{})
	require.Error(t, err)
}
