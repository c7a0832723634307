package saju

import "time"

// Reference points of the sexagenary cycle. Both are 甲子 (stem 0, branch 0).
const (
	EpochYear = 1984
)

// EpochDay is a 甲子 day; day pillars count from it.
var EpochDay = civilDate(1949, 10, 1)

// Pillar pairs a stem with a branch for one temporal unit.
type Pillar struct {
	Stem   HeavenlyStem  `json:"stem"`
	Branch EarthlyBranch `json:"branch"`
}

// NewPillar builds a pillar from raw ordinals, wrapping both.
func NewPillar(stem, branch int) Pillar {
	return Pillar{Stem: Stem(stem), Branch: Branch(branch)}
}

// Label renders the pillar as "경오(庚午)".
func (p Pillar) Label() string {
	return p.Stem.Name + p.Branch.Name + "(" + p.Stem.Hanja + p.Branch.Hanja + ")"
}

// Elements returns the stem and branch elements.
func (p Pillar) Elements() (Element, Element) {
	return p.Stem.Element, p.Branch.Element
}

// Has reports whether either half of the pillar carries e.
func (p Pillar) Has(e Element) bool {
	return p.Stem.Element == e || p.Branch.Element == e
}

// CycleIndex returns the position 0..59 in the sexagenary cycle.
func (p Pillar) CycleIndex() int {
	// The unique n with n%10 == stem and n%12 == branch.
	for n := p.Stem.Ordinal; n < 60; n += 10 {
		if n%12 == p.Branch.Ordinal {
			return n
		}
	}
	return -1
}

// FourPillars is the birth chart.
type FourPillars struct {
	Year  Pillar `json:"year"`
	Month Pillar `json:"month"`
	Day   Pillar `json:"day"`
	Hour  Pillar `json:"hour"`
}

// Pillars returns the chart in year, month, day, hour order.
func (fp FourPillars) Pillars() [4]Pillar {
	return [4]Pillar{fp.Year, fp.Month, fp.Day, fp.Hour}
}

var pillarNames = [4]string{"year", "month", "day", "hour"}

// ComputeFourPillars derives the chart from a normalized birth date.
func ComputeFourPillars(n NormalizedDate) FourPillars {
	year := YearPillarOf(n.SexagenaryYear)
	day := DayPillar(n.Date)
	return FourPillars{
		Year:  year,
		Month: MonthPillar(n.Date, year),
		Day:   day,
		Hour:  HourPillar(n.Hour, day),
	}
}

// YearPillar returns the pillar of the sexagenary year containing date.
func YearPillar(date time.Time) Pillar {
	return YearPillarOf(SexagenaryYear(date))
}

// YearPillarOf returns the pillar of an already resolved sexagenary year.
func YearPillarOf(sexagenaryYear int) Pillar {
	offset := sexagenaryYear - EpochYear
	return NewPillar(floorMod(offset, 10), floorMod(offset, 12))
}

// MonthOffset returns the month index counted from the 寅 month that opens at
// Start of Spring: 0 for 寅 through 11 for 丑. Month boundaries are the
// sectional solar terms.
func MonthOffset(date time.Time) int {
	branch := 0 // before 소한 the date still sits in the previous 子 month
	for _, term := range solarTerms {
		if !term.Sectional {
			continue
		}
		if beforeMonthDay(date, term.Month, term.Day) {
			break
		}
		branch = sectionalBranch(term)
	}
	return floorMod(branch-2, 12)
}

// sectionalBranch maps a sectional term to the branch of the month it opens:
// 소한 opens 丑, 입춘 opens 寅 and so on.
func sectionalBranch(term SolarTerm) int {
	return floorMod(term.Index/2+1, 12)
}

// MonthPillar applies the five-tiger rule: the year stem fixes the stem of
// the 寅 month and later months advance one stem each.
func MonthPillar(date time.Time, year Pillar) Pillar {
	offset := MonthOffset(date)
	return NewPillar(tigerMonthStem(year.Stem.Ordinal)+offset, offset+2)
}

// tigerMonthStem returns the stem of the 寅 month for a year stem:
// 甲己→丙, 乙庚→戊, 丙辛→庚, 丁壬→壬, 戊癸→甲.
func tigerMonthStem(yearStem int) int {
	return floorMod(floorMod(yearStem, 5)*2+2, 10)
}

// DayPillar counts days from EpochDay.
func DayPillar(date time.Time) Pillar {
	n := daysBetween(EpochDay, civilDay(date))
	return NewPillar(floorMod(n, 10), floorMod(n, 12))
}

// HourBranch maps a clock hour to its two-hour branch; 23:00-00:59 is 子.
func HourBranch(hour int) EarthlyBranch {
	return Branch(floorMod((hour+1)/2, 12))
}

// HourPillar applies the five-rat rule: the day stem fixes the stem of the
// 子 hour and later hours advance one stem each.
func HourPillar(hour int, day Pillar) Pillar {
	branch := HourBranch(hour).Ordinal
	return NewPillar(ratHourStem(day.Stem.Ordinal)+branch, branch)
}

// ratHourStem returns the stem of the 子 hour for a day stem:
// 甲己→甲, 乙庚→丙, 丙辛→戊, 丁壬→庚, 戊癸→壬.
func ratHourStem(dayStem int) int {
	return floorMod(dayStem, 5) * 2
}
