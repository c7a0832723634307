package saju

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/space-cap/saju-lotto-firebase/pkg/errors"
)

func TestNormalizeBirthRejectsInvalidInput(t *testing.T) {
	asOf := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	valid := BirthInput{Year: 1990, Month: 5, Day: 15, Hour: 10, Calendar: Solar, Gender: Male}

	cases := []struct {
		name   string
		mutate func(*BirthInput)
	}{
		{"hour out of range", func(in *BirthInput) { in.Hour = 24 }},
		{"negative hour", func(in *BirthInput) { in.Hour = -1 }},
		{"month out of range", func(in *BirthInput) { in.Month = 13 }},
		{"day past month end", func(in *BirthInput) { in.Month, in.Day = 2, 30 }},
		{"non leap february", func(in *BirthInput) { in.Year, in.Month, in.Day = 1990, 2, 29 }},
		{"year before range", func(in *BirthInput) { in.Year = 1899 }},
		{"unknown calendar", func(in *BirthInput) { in.Calendar = "julian" }},
		{"unknown gender", func(in *BirthInput) { in.Gender = "" }},
		{"leap flag on solar", func(in *BirthInput) { in.LeapMonth = true }},
		{"future date", func(in *BirthInput) { in.Year, in.Month, in.Day = 2026, 10, 16 }},
		{"lunar day 31", func(in *BirthInput) { in.Calendar, in.Day = Lunar, 31 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			_, err := NormalizeBirth(in, asOf)
			require.Error(t, err)
			require.True(t, apperrors.IsCode(err, CodeInvalidBirthInput))
		})
	}
}

func TestNormalizeBirthSolar(t *testing.T) {
	birth := referenceBirth(t)
	require.Equal(t, civilDate(1990, 5, 15), birth.Date)
	require.Equal(t, 1990, birth.SexagenaryYear)
	require.Equal(t, 10, birth.Hour)
	require.False(t, birth.LunarUncertain)

	leap, err := NormalizeBirth(BirthInput{Year: 2024, Month: 2, Day: 29, Calendar: Solar, Gender: Female}, time.Time{})
	require.NoError(t, err)
	require.Equal(t, 2024, leap.SexagenaryYear)

	early, err := NormalizeBirth(BirthInput{Year: 2024, Month: 2, Day: 3, Calendar: Solar, Gender: Female}, time.Time{})
	require.NoError(t, err)
	require.Equal(t, 2023, early.SexagenaryYear)
}

func TestLunarToSolarNewYear(t *testing.T) {
	cases := []struct {
		year int
		want time.Time
	}{
		{2000, civilDate(2000, 2, 5)},
		{2023, civilDate(2023, 1, 22)},
		{2025, civilDate(2025, 1, 29)},
	}
	for _, tc := range cases {
		conv, err := LunarToSolar(tc.year, 1, 1, false)
		require.NoError(t, err)
		require.Equal(t, tc.want, conv.Date, "lunar new year %d", tc.year)
		require.False(t, conv.Uncertain)
		require.Equal(t, 1.0, conv.Confidence)
	}
}

func TestLunarToSolarFlagsUncertainty(t *testing.T) {
	conv, err := LunarToSolar(1990, 1, 1, false)
	require.NoError(t, err)
	require.True(t, conv.Uncertain)
	require.Less(t, conv.Confidence, 1.0)

	leap, err := LunarToSolar(2023, 2, 1, true)
	require.NoError(t, err)
	require.True(t, leap.Uncertain)
	require.LessOrEqual(t, leap.Confidence, 0.5)
}

func TestLunarToSolarIsDeterministic(t *testing.T) {
	first, err := LunarToSolar(1975, 8, 15, false)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := LunarToSolar(1975, 8, 15, false)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestNormalizeBirthLunar(t *testing.T) {
	birth, err := NormalizeBirth(BirthInput{Year: 2023, Month: 1, Day: 10, Hour: 8, Calendar: Lunar, Gender: Female}, time.Time{})
	require.NoError(t, err)
	require.Equal(t, civilDate(2023, 1, 31), birth.Date)
	require.Equal(t, 2022, birth.SexagenaryYear)
	require.Equal(t, Lunar, birth.Calendar)
}
