package saju

import "time"

// DatedTerm is a solar term pinned to a concrete year.
type DatedTerm struct {
	SolarTerm
	Date time.Time `json:"date"`
}

// SolarTermWindow locates a day between two solar terms.
type SolarTermWindow struct {
	Current    DatedTerm `json:"current"`
	Next       DatedTerm `json:"next"`
	DaysToNext int       `json:"daysToNext"`
}

// InTransition reports whether the next term is at most days away.
func (w SolarTermWindow) InTransition(days int) bool {
	return w.DaysToNext <= days
}

// TrackSolarTerm finds the most recent term on or before date and the first
// term after it, wrapping into the adjacent years at either end of the table.
func TrackSolarTerm(date time.Time) SolarTermWindow {
	day := civilDay(date)
	year := day.Year()

	current := dated(solarTerms[len(solarTerms)-1], year-1)
	for i := len(solarTerms) - 1; i >= 0; i-- {
		term := solarTerms[i]
		if !beforeMonthDay(day, term.Month, term.Day) {
			current = dated(term, year)
			break
		}
	}

	next := dated(solarTerms[0], year+1)
	for _, term := range solarTerms {
		if beforeMonthDay(day, term.Month, term.Day) {
			next = dated(term, year)
			break
		}
	}

	return SolarTermWindow{
		Current:    current,
		Next:       next,
		DaysToNext: daysBetween(day, next.Date),
	}
}

func dated(term SolarTerm, year int) DatedTerm {
	return DatedTerm{SolarTerm: term, Date: civilDate(year, term.Month, term.Day)}
}
