package saju

import "time"

// Chart is everything derivable from birth data alone.
type Chart struct {
	Birth     NormalizedDate    `json:"birth"`
	Pillars   FourPillars       `json:"pillars"`
	Profile   ElementProfile    `json:"profile"`
	Favorable FavorableElements `json:"favorable"`
}

// NewChart normalizes the input and runs the birth-only stages.
func NewChart(in BirthInput, asOf time.Time) (Chart, error) {
	birth, err := NormalizeBirth(in, asOf)
	if err != nil {
		return Chart{}, err
	}
	fp := ComputeFourPillars(birth)
	profile := ComputeElementProfile(fp)
	return Chart{
		Birth:     birth,
		Pillars:   fp,
		Profile:   profile,
		Favorable: ResolveFavorableElements(fp, profile),
	}, nil
}

// Reading layers the moment-dependent results over a chart.
type Reading struct {
	Chart
	Luck           LuckSnapshot      `json:"luck"`
	Fortune        FortuneScore      `json:"fortune"`
	NumberSets     []NumberSelection `json:"numberSets"`
	FortuneNumbers NumberSelection   `json:"fortuneNumbers"`
	Direction      Direction         `json:"direction"`
	LuckyColors    []string          `json:"luckyColors"`
	Caution        string            `json:"caution"`
}

// Read builds a new Reading for asOf; the chart is not modified.
func Read(c Chart, asOf time.Time, sets int) Reading {
	snap := ComputeLuckSnapshot(c.Pillars, c.Birth, asOf, c.Birth.Gender)
	score := ScoreFortune(c.Pillars, c.Favorable, snap, c.Profile)
	return Reading{
		Chart:          c,
		Luck:           snap,
		Fortune:        score,
		NumberSets:     DeriveNumberSets(c.Pillars, c.Favorable, c.Profile, c.Birth, sets),
		FortuneNumbers: DeriveFortuneNumbers(snap, score, c.Favorable),
		Direction:      FavorableDirection(c.Favorable, snap.DailyLuck.Pillar),
		LuckyColors:    LuckyColors(c.Favorable.Primary),
		Caution:        CautionAdvice(score.Score),
	}
}
