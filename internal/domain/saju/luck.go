package saju

import "time"

// Great-luck layout: eight decades starting at a fixed age.
const (
	GreatLuckStartAge = 8
	GreatLuckDecades  = 8
)

// GreatLuckPillar is one decade-long luck pillar.
type GreatLuckPillar struct {
	Pillar
	Index    int `json:"index"`
	StartAge int `json:"startAge"`
	EndAge   int `json:"endAge"`
}

// GreatLuck is the decade-scale luck layer.
type GreatLuck struct {
	Forward bool              `json:"forward"`
	Age     int               `json:"age"`
	Pillars []GreatLuckPillar `json:"pillars"`
	Current GreatLuckPillar   `json:"current"`
}

// YearlyLuck is the pillar of the sexagenary year containing the as-of date.
type YearlyLuck struct {
	Pillar
	Year int `json:"year"`
}

// MonthlyLuck is the pillar of the sexagenary month containing the as-of date.
type MonthlyLuck struct {
	Pillar
	Year  int `json:"year"`
	Month int `json:"month"`
}

// DailyLuck is the pillar of the as-of date.
type DailyLuck struct {
	Pillar
	Date time.Time `json:"date"`
}

// LuckSnapshot layers time-scoped pillars over a birth chart at one moment.
type LuckSnapshot struct {
	AsOf        time.Time       `json:"asOf"`
	GreatLuck   GreatLuck       `json:"greatLuck"`
	YearlyLuck  YearlyLuck      `json:"yearlyLuck"`
	MonthlyLuck MonthlyLuck     `json:"monthlyLuck"`
	DailyLuck   DailyLuck       `json:"dailyLuck"`
	SolarTerm   SolarTermWindow `json:"solarTerm"`
}

// Layers returns the four luck pillars from coarsest to finest.
func (s LuckSnapshot) Layers() [4]Pillar {
	return [4]Pillar{s.GreatLuck.Current.Pillar, s.YearlyLuck.Pillar, s.MonthlyLuck.Pillar, s.DailyLuck.Pillar}
}

var layerNames = [4]string{"great luck", "yearly luck", "monthly luck", "daily luck"}

// ComputeLuckSnapshot evaluates every luck layer for the civil date of asOf.
// This is the only entry point where the current moment influences results.
func ComputeLuckSnapshot(fp FourPillars, birth NormalizedDate, asOf time.Time, gender Gender) LuckSnapshot {
	day := civilDay(asOf)
	yearly := YearPillar(day)
	return LuckSnapshot{
		AsOf:      day,
		GreatLuck: ComputeGreatLuck(fp, gender, CountingAge(birth.Date, day)),
		YearlyLuck: YearlyLuck{
			Pillar: yearly,
			Year:   SexagenaryYear(day),
		},
		MonthlyLuck: MonthlyLuck{
			Pillar: MonthPillar(day, yearly),
			Year:   day.Year(),
			Month:  int(day.Month()),
		},
		DailyLuck: DailyLuck{
			Pillar: DayPillar(day),
			Date:   day,
		},
		SolarTerm: TrackSolarTerm(day),
	}
}

// CountingAge is the Korean count age: one at birth, plus one every civil year.
func CountingAge(birth, asOf time.Time) int {
	return asOf.Year() - birth.Year() + 1
}

// GreatLuckForward reports whether decade pillars advance through the cycle:
// yang years for men and yin years for women run forward.
func GreatLuckForward(yearStem HeavenlyStem, gender Gender) bool {
	return (gender == Male && yearStem.Polarity == Yang) || (gender == Female && yearStem.Polarity == Yin)
}

// ComputeGreatLuck lays out the decade pillars by stepping from the month
// pillar and marks the one covering age.
func ComputeGreatLuck(fp FourPillars, gender Gender, age int) GreatLuck {
	forward := GreatLuckForward(fp.Year.Stem, gender)
	step := -1
	if forward {
		step = 1
	}

	pillars := make([]GreatLuckPillar, GreatLuckDecades)
	for i := range pillars {
		n := (i + 1) * step
		start := GreatLuckStartAge + i*10
		pillars[i] = GreatLuckPillar{
			Pillar:   NewPillar(fp.Month.Stem.Ordinal+n, fp.Month.Branch.Ordinal+n),
			Index:    i,
			StartAge: start,
			EndAge:   start + 9,
		}
	}

	return GreatLuck{
		Forward: forward,
		Age:     age,
		Pillars: pillars,
		Current: pillars[currentDecade(age)],
	}
}

func currentDecade(age int) int {
	if age < GreatLuckStartAge {
		return 0
	}
	idx := (age - GreatLuckStartAge) / 10
	if idx >= GreatLuckDecades {
		return GreatLuckDecades - 1
	}
	return idx
}
