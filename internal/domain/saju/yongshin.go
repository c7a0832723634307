package saju

import "fmt"

// FavorableElements is the yongshin set: what to lean on and what to avoid.
type FavorableElements struct {
	DayMaster Element `json:"dayMaster"`
	Strong    bool    `json:"strong"`
	Primary   Element `json:"primary"`
	Secondary Element `json:"secondary"`
	Avoid     Element `json:"avoid"`
	Reasoning string  `json:"reasoning"`
}

// ResolveFavorableElements judges the day master's strength and picks the
// supporting and draining elements accordingly.
func ResolveFavorableElements(fp FourPillars, profile ElementProfile) FavorableElements {
	d := fp.Day.Stem.Element
	own := profile.Totals.Of(d)
	other := profile.Totals.Sum() - own

	if own < other/4 {
		return FavorableElements{
			DayMaster: d,
			Primary:   GeneratorOf(d),
			Secondary: d,
			Avoid:     DestroyerOf(d),
			Reasoning: fmt.Sprintf("day master %s is weak (%.1f against %.1f): strengthen it with %s, which generates it, and keep away from %s, which suppresses it",
				d, own, other, GeneratorOf(d), DestroyerOf(d)),
		}
	}
	return FavorableElements{
		DayMaster: d,
		Strong:    true,
		Primary:   d.Controls(),
		Secondary: d.Generates(),
		Avoid:     GeneratorOf(d),
		Reasoning: fmt.Sprintf("day master %s is strong (%.1f against %.1f): spend its energy on %s, which it controls, and %s, which it generates, and avoid feeding it with %s",
			d, own, other, d.Controls(), d.Generates(), GeneratorOf(d)),
	}
}
