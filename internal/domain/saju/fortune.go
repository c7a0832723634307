package saju

import (
	"fmt"
	"math"
	"time"
)

const baseScore = 50

// Per-layer adjustments, coarsest layer first.
var (
	layerBonus   = [4]float64{20, 15, 10, 8}
	layerPenalty = [4]float64{15, 10, 8, 5}
)

// BalanceWeight scales ElementProfile.Balance into score points.
const BalanceWeight = 20

// Tier is a named score band.
type Tier struct {
	Level       string `json:"level"`
	Label       string `json:"label"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

var tiers = []struct {
	min  int
	tier Tier
}{
	{80, Tier{"excellent", "대길", "#2e7d32", "A highly auspicious stretch; good for new starts and important decisions."}},
	{65, Tier{"good", "길", "#689f38", "Favorable energy; an active approach and meeting people pay off."}},
	{35, Tier{"normal", "평", "#f9a825", "A steady period; keep to routine work and review your plans."}},
	{20, Tier{"caution", "주의", "#ef6c00", "Mixed signals; judge carefully and tidy up what is already underway."}},
	{math.MinInt, Tier{"bad", "흉", "#c62828", "Draining energy; rest, recharge and avoid overloading your schedule."}},
}

// TierFor maps a score to its band.
func TierFor(score int) Tier {
	for _, t := range tiers {
		if score >= t.min {
			return t.tier
		}
	}
	return tiers[len(tiers)-1].tier
}

// FortuneScore is the combined reading of luck layers against the yongshin.
type FortuneScore struct {
	Score          int      `json:"score"`
	Tier           Tier     `json:"tier"`
	Influences     []string `json:"influences"`
	Recommendation string   `json:"recommendation"`
	// Balance is the profile balance that fed the stabilizing bonus.
	Balance float64 `json:"balance"`
}

// ScoreFortune starts from a neutral score and adjusts it per luck layer,
// then adds a stabilizing bonus for an even element spread.
func ScoreFortune(fp FourPillars, fav FavorableElements, snap LuckSnapshot, profile ElementProfile) FortuneScore {
	score := float64(baseScore)
	influences := make([]string, 0, 8)

	for i, layer := range snap.Layers() {
		if layer.Has(fav.Primary) {
			score += layerBonus[i]
			influences = append(influences, fmt.Sprintf("%s %s carries %s, your favorable element (+%g)",
				layerNames[i], layer.Label(), fav.Primary, layerBonus[i]))
		}
		if layer.Has(fav.Avoid) {
			score -= layerPenalty[i]
			influences = append(influences, fmt.Sprintf("%s %s carries %s, the element to avoid (-%g)",
				layerNames[i], layer.Label(), fav.Avoid, layerPenalty[i]))
		}
	}
	if layer := snap.DailyLuck.Pillar; layer.Stem.Element == fp.Day.Stem.Element {
		influences = append(influences, fmt.Sprintf("today's stem %s mirrors your day master", layer.Stem.Label()))
	}

	score += profile.Balance * BalanceWeight
	final := int(math.Round(clamp(score, 0, 100)))
	tier := TierFor(final)

	return FortuneScore{
		Score:          final,
		Tier:           tier,
		Influences:     influences,
		Recommendation: recommendation(tier, fav),
		Balance:        profile.Balance,
	}
}

func recommendation(tier Tier, fav FavorableElements) string {
	switch tier.Level {
	case "excellent", "good":
		return fmt.Sprintf("Your favorable element %s is flowing strongly; act on plans that draw on %s energy and face %s.",
			fav.Primary.Label(), fav.Primary, fav.Primary.Direction())
	case "normal":
		return fmt.Sprintf("Keep a steady pace and bring in %s energy through colors such as %s to lift the day.",
			fav.Primary.Label(), LuckyColors(fav.Primary)[0])
	default:
		return fmt.Sprintf("Hold off on big decisions; rebuild with %s energy and keep %s influences at a distance.",
			fav.Primary.Label(), fav.Avoid)
	}
}

// CautionAdvice is the short warning shown next to a score.
func CautionAdvice(score int) string {
	switch {
	case score < 30:
		return "Postpone important decisions and act with care."
	case score < 50:
		return "Keep an even temper and stay consistent."
	default:
		return "Do not let good chances slip by; act with confidence."
	}
}

// DayFortune is the calendar view of a single day.
type DayFortune struct {
	Date        time.Time     `json:"date"`
	Pillar      Pillar        `json:"pillar"`
	Score       int           `json:"score"`
	Tier        Tier          `json:"tier"`
	Action      string        `json:"action"`
	Caution     string        `json:"caution"`
	LuckyWindow EarthlyBranch `json:"luckyWindow"`
}

// ScoreDay rates a single date against the yongshin and the current
// great-luck pillar. The score is clamped to [0,100].
func ScoreDay(date time.Time, fav FavorableElements, greatLuck Pillar) DayFortune {
	day := civilDay(date)
	pillar := DayPillar(day)
	e := pillar.Stem.Element

	score := baseScore
	switch {
	case e == fav.Primary:
		score += 30
	case e.Generates() == fav.Primary:
		score += 20
	case fav.Primary.Generates() == e:
		score += 15
	case e == fav.Avoid:
		score -= 20
	}
	if greatLuck.Stem.Element == e {
		score += 15
	}
	score = int(clamp(float64(score), 0, 100))

	return DayFortune{
		Date:        day,
		Pillar:      pillar,
		Score:       score,
		Tier:        TierFor(score),
		Action:      actionAdvice(score),
		Caution:     dateCaution(score),
		LuckyWindow: HourBranch(floorMod((day.Day()%12)*2+7, 24)),
	}
}

// FortuneCalendar scores every day of a civil month.
func FortuneCalendar(year, month int, fav FavorableElements, greatLuck Pillar) []DayFortune {
	n := daysIn(year, month)
	days := make([]DayFortune, 0, n)
	for d := 1; d <= n; d++ {
		days = append(days, ScoreDay(civilDate(year, month, d), fav, greatLuck))
	}
	return days
}

func actionAdvice(score int) string {
	switch {
	case score >= 80:
		return "Start new projects and make important decisions."
	case score >= 65:
		return "Be active and meet people."
	case score >= 35:
		return "Keep up steady work and review your plans."
	case score >= 20:
		return "Judge carefully and wrap up existing work."
	default:
		return "Rest and recharge; avoid an overloaded schedule."
	}
}

func dateCaution(score int) string {
	switch {
	case score >= 65:
		return "Beware of overconfidence."
	case score >= 35:
		return "Keep your judgement realistic."
	default:
		return "Avoid emotional decisions."
	}
}
