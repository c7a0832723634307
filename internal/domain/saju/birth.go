package saju

import (
	"fmt"
	"time"

	apperrors "github.com/space-cap/saju-lotto-firebase/pkg/errors"
)

// Error codes surfaced by the engine.
const (
	CodeInvalidBirthInput        = "invalid_birth_input"
	CodeLunarConversionUncertain = "lunar_conversion_uncertain"
	CodeTableLookupGap           = "table_lookup_gap"
)

// Supported civil year range for birth input.
const (
	MinYear = 1900
	MaxYear = 2100
)

// CalendarType selects how the birth date was recorded.
type CalendarType string

const (
	Solar CalendarType = "solar"
	Lunar CalendarType = "lunar"
)

// Gender drives the great-luck direction.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// BirthInput is the raw birth data as entered by a user.
type BirthInput struct {
	Year     int          `json:"year"`
	Month    int          `json:"month"`
	Day      int          `json:"day"`
	Hour     int          `json:"hour"`
	Calendar CalendarType `json:"calendarType"`
	// LeapMonth marks a lunar date inside an intercalary month.
	LeapMonth bool   `json:"leapMonth,omitempty"`
	Gender    Gender `json:"gender"`
}

// NormalizedDate is the solar birth moment every pillar is derived from.
type NormalizedDate struct {
	// Date is the civil solar date at midnight UTC.
	Date           time.Time    `json:"date"`
	Hour           int          `json:"hour"`
	SexagenaryYear int          `json:"sexagenaryYear"`
	Gender         Gender       `json:"gender"`
	Calendar       CalendarType `json:"calendarType"`
	// LunarUncertain is set when the lunar approximation may be off by a day or a month.
	LunarUncertain  bool    `json:"lunarUncertain,omitempty"`
	LunarConfidence float64 `json:"lunarConfidence,omitempty"`
}

// Year, Month and Day expose the civil solar date parts.
func (n NormalizedDate) Year() int  { return n.Date.Year() }
func (n NormalizedDate) Month() int { return int(n.Date.Month()) }
func (n NormalizedDate) Day() int   { return n.Date.Day() }

// NormalizeBirth validates raw input, converts lunar dates and applies the
// Start-of-Spring year boundary. A zero asOf skips the future-date check.
func NormalizeBirth(in BirthInput, asOf time.Time) (NormalizedDate, error) {
	if err := in.validate(); err != nil {
		return NormalizedDate{}, apperrors.Wrap(CodeInvalidBirthInput, err.Error(), nil)
	}

	out := NormalizedDate{
		Hour:     in.Hour,
		Gender:   in.Gender,
		Calendar: in.Calendar,
	}

	switch in.Calendar {
	case Lunar:
		conv, err := LunarToSolar(in.Year, in.Month, in.Day, in.LeapMonth)
		if err != nil {
			return NormalizedDate{}, err
		}
		out.Date = conv.Date
		out.LunarUncertain = conv.Uncertain
		out.LunarConfidence = conv.Confidence
	default:
		out.Date = civilDate(in.Year, in.Month, in.Day)
	}

	if y := out.Date.Year(); y < MinYear || y > MaxYear {
		return NormalizedDate{}, apperrors.Wrap(CodeInvalidBirthInput, fmt.Sprintf("date %s is outside the supported range", out.Date.Format(time.DateOnly)), nil)
	}
	if !asOf.IsZero() && out.Date.After(civilDay(asOf)) {
		return NormalizedDate{}, apperrors.Wrap(CodeInvalidBirthInput, "birth date cannot be in the future", nil)
	}

	out.SexagenaryYear = SexagenaryYear(out.Date)
	return out, nil
}

func (in BirthInput) validate() error {
	switch in.Calendar {
	case Solar, Lunar:
	default:
		return fmt.Errorf("calendarType must be %q or %q", Solar, Lunar)
	}
	switch in.Gender {
	case Male, Female:
	default:
		return fmt.Errorf("gender must be %q or %q", Male, Female)
	}
	if in.Year < MinYear || in.Year > MaxYear {
		return fmt.Errorf("year must be between %d and %d", MinYear, MaxYear)
	}
	if in.Month < 1 || in.Month > 12 {
		return fmt.Errorf("month must be between 1 and 12")
	}
	if in.Hour < 0 || in.Hour > 23 {
		return fmt.Errorf("hour must be between 0 and 23")
	}
	maxDay := 30
	if in.Calendar == Solar {
		if in.LeapMonth {
			return fmt.Errorf("leapMonth only applies to lunar dates")
		}
		maxDay = daysIn(in.Year, in.Month)
	}
	if in.Day < 1 || in.Day > maxDay {
		return fmt.Errorf("day must be between 1 and %d", maxDay)
	}
	return nil
}

// SexagenaryYear returns the year whose cycle the date belongs to: dates
// before Start of Spring count toward the previous year.
func SexagenaryYear(date time.Time) int {
	y := date.Year()
	if beforeMonthDay(date, startOfSpring.Month, startOfSpring.Day) {
		return y - 1
	}
	return y
}

func beforeMonthDay(date time.Time, month, day int) bool {
	m := int(date.Month())
	return m < month || (m == month && date.Day() < day)
}

func civilDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// civilDay drops the clock and zone of t, keeping its local calendar date.
func civilDay(t time.Time) time.Time {
	return civilDate(t.Year(), int(t.Month()), t.Day())
}

func daysIn(year, month int) int {
	return civilDate(year, month+1, 0).Day()
}

// daysBetween counts whole days from a to b; both must be civil dates.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}
