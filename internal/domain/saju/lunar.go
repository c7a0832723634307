package saju

import (
	"fmt"
	"math"
	"time"

	apperrors "github.com/space-cap/saju-lotto-firebase/pkg/errors"
)

// The lunar conversion works from mean new moons instead of an ephemeris or a
// published month table. True new moons drift up to ~14h from the mean, so a
// result can land one day off, and a leap month between month 11 and the
// target month shifts it by a whole lunation. Results near those hazards are
// flagged through LunarConversion.Uncertain.
const (
	synodicMonth = 29.530588853
	// uncertainWindow is the distance, in days, from a civil midnight within
	// which a mean new moon is considered ambiguous.
	uncertainWindow = 0.25
)

var (
	meanNewMoonEpoch = time.Date(2000, time.January, 6, 18, 14, 0, 0, time.UTC)
	koreaStandard    = time.FixedZone("KST", 9*60*60)
)

// LunarConversion is the outcome of a lunar-to-solar approximation.
type LunarConversion struct {
	Date       time.Time
	Uncertain  bool
	Confidence float64
}

// LunarToSolar converts a Korean lunar date to its approximate solar civil date.
func LunarToSolar(year, month, day int, leap bool) (LunarConversion, error) {
	if month < 1 || month > 12 || day < 1 || day > 30 {
		return LunarConversion{}, apperrors.Wrap(CodeInvalidBirthInput, fmt.Sprintf("lunar date %d-%d-%d is out of range", year, month, day), nil)
	}

	newYear := lunarNewYearLunation(year)
	k := newYear + (month - 1)
	if leap {
		k++
	}

	start, frac := newMoonCivil(k)
	next, _ := newMoonCivil(k + 1)
	if length := daysBetween(start, next); day > length {
		return LunarConversion{}, apperrors.Wrap(CodeInvalidBirthInput, fmt.Sprintf("lunar month %d of %d has only %d days", month, year, length), nil)
	}

	confidence := math.Min(frac, 1-frac) / uncertainWindow
	if confidence > 1 {
		confidence = 1
	}
	uncertain := confidence < 1 || leap
	if leap {
		confidence /= 2
	}

	return LunarConversion{
		Date:       start.AddDate(0, 0, day-1),
		Uncertain:  uncertain,
		Confidence: math.Round(confidence*100) / 100,
	}, nil
}

// lunarNewYearLunation returns the index of the mean new moon opening the
// first lunar month of year. Month 11 holds the winter solstice; the new year
// starts two lunations after it.
func lunarNewYearLunation(year int) int {
	solstice := civilDate(year-1, 12, 22)
	elapsed := solstice.Sub(meanNewMoonEpoch).Hours() / 24
	k := int(math.Floor(elapsed / synodicMonth))
	for {
		d, _ := newMoonCivil(k)
		if !d.After(solstice) {
			break
		}
		k--
	}
	for {
		d, _ := newMoonCivil(k + 1)
		if d.After(solstice) {
			break
		}
		k++
	}
	return k + 2
}

// newMoonCivil returns the KST civil date of mean new moon k and the fraction
// of that day already elapsed at the instant of the new moon.
func newMoonCivil(k int) (time.Time, float64) {
	offset := time.Duration(float64(k) * synodicMonth * float64(24*time.Hour))
	instant := meanNewMoonEpoch.Add(offset).In(koreaStandard)
	day := civilDay(instant)
	midnight := time.Date(instant.Year(), instant.Month(), instant.Day(), 0, 0, 0, 0, koreaStandard)
	frac := instant.Sub(midnight).Hours() / 24
	return day, frac
}
