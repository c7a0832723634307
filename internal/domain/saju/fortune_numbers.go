package saju

import (
	"fmt"
	"time"
)

// TransitionDays is how close a solar-term change must be to cost confidence.
const TransitionDays = 3

const (
	fortunePrimaryDraws = 2
	transitionPenalty   = 10
)

// FavorableDirection is the compass point to face today: the primary
// element's direction unless the day stem carries the element to avoid.
func FavorableDirection(fav FavorableElements, daily Pillar) Direction {
	if daily.Stem.Element == fav.Avoid {
		return fav.Secondary.Direction()
	}
	return fav.Primary.Direction()
}

// DeriveFortuneNumbers selects six numbers from the current luck instead of
// the birth chart, and reports how confident the reading is.
func DeriveFortuneNumbers(snap LuckSnapshot, score FortuneScore, fav FavorableElements) NumberSelection {
	p := newPicker(Count)
	daily := snap.DailyLuck.Pillar

	base := daily.Stem.Ordinal*dayStemFactor + daily.Branch.Ordinal*hourBranchFactor
	for i := 0; i < fortunePrimaryDraws; i++ {
		p.draw(fav.Primary, base+i*drawStep, fmt.Sprintf("favorable element %s", fav.Primary.Label()))
	}

	dir := FavorableDirection(fav, daily)
	if e, ok := ElementOfDirection(dir); ok {
		p.draw(e, daily.Branch.Ordinal, fmt.Sprintf("favorable direction %s (%s)", dir, e))
	}

	term := snap.SolarTerm.Current
	p.draw(term.Element, term.Index, fmt.Sprintf("solar term %s(%s) (%s)", term.Name, term.Hanja, term.Element))

	for i, layer := range snap.Layers() {
		if p.full() {
			break
		}
		p.draw(layer.Stem.Element, layer.Stem.Ordinal+i,
			fmt.Sprintf("%s %s stem (%s)", layerNames[i], layer.Label(), layer.Stem.Element))
		p.draw(layer.Branch.Element, layer.Branch.Ordinal+i,
			fmt.Sprintf("%s %s branch (%s)", layerNames[i], layer.Label(), layer.Branch.Element))
	}

	p.fill(fav.Primary, func(e Element) string {
		return fmt.Sprintf("rounding out from %s", e.Label())
	})

	sel := p.selection()
	sel.Confidence = FortuneConfidence(score, snap.SolarTerm)
	return sel
}

// FortuneConfidence is the fortune score plus a balance bonus, less a penalty
// near a solar-term change, clamped to [0,100].
func FortuneConfidence(score FortuneScore, term SolarTermWindow) int {
	c := score.Score + int(score.Balance*10)
	if term.InTransition(TransitionDays) {
		c -= transitionPenalty
	}
	return int(clamp(float64(c), 0, 100))
}

// QuickPick is a light suggestion keyed to the current two-hour window.
type QuickPick struct {
	Branch  EarthlyBranch  `json:"branch"`
	Numbers []PickedNumber `json:"numbers"`
	Message string         `json:"message"`
}

// Values returns the picked numbers in draw order.
func (q QuickPick) Values() []int {
	out := make([]int, len(q.Numbers))
	for i, p := range q.Numbers {
		out[i] = p.Number
	}
	return out
}

// QuickPickCount is how many numbers a branch window yields, 1..6.
func QuickPickCount(b EarthlyBranch) int {
	return b.Ordinal%Count + 1
}

// NewQuickPick draws from the element of the branch window containing at's
// clock hour. The result depends on the hour only.
func NewQuickPick(at time.Time) QuickPick {
	b := HourBranch(at.Hour())
	n := QuickPickCount(b)
	p := newPicker(n)
	for i := 0; i < n; i++ {
		p.draw(b.Element, b.Ordinal*drawStep+i*2, fmt.Sprintf("%s hour window (%s)", b.Label(), b.Element))
	}
	return QuickPick{
		Branch:  b,
		Numbers: p.picks,
		Message: fmt.Sprintf("%s energy of the %s window (%s) favors %d number(s) from %s",
			b.Zodiac, b.Label(), b.Window(), n, b.Element.Label()),
	}
}
