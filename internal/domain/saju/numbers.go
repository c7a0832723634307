package saju

import (
	"fmt"
	"sort"
)

// Lottery shape: pick Count distinct numbers from 1..MaxNumber.
const (
	MaxNumber = 45
	Count     = 6
)

// Constants of the primary-element draw index.
const (
	dayStemFactor    = 7
	hourBranchFactor = 3
	drawStep         = 4
	primaryDraws     = 3
)

// Each element owns the numbers whose last digit belongs to it on the He-tu
// pairs: 1,6 water; 2,7 fire; 3,8 wood; 4,9 metal; 5,0 earth. That gives nine
// numbers per element over 1..45.
var lastDigitElement = [10]Element{Earth, Water, Fire, Wood, Metal, Earth, Water, Fire, Wood, Metal}

var numberSets = func() [5][]int {
	var sets [5][]int
	for n := 1; n <= MaxNumber; n++ {
		e := lastDigitElement[n%10]
		sets[e] = append(sets[e], n)
	}
	return sets
}()

// NumbersOf returns the ascending number set owned by e.
func NumbersOf(e Element) []int {
	set := numberSets[floorMod(int(e), 5)]
	out := make([]int, len(set))
	copy(out, set)
	return out
}

// ElementOfNumber reports which element owns n.
func ElementOfNumber(n int) (Element, bool) {
	if n < 1 || n > MaxNumber {
		return 0, false
	}
	return lastDigitElement[n%10], true
}

// PickedNumber is one selected number with its provenance.
type PickedNumber struct {
	Number  int     `json:"number"`
	Element Element `json:"element"`
	Reason  string  `json:"reason"`
}

// NumberSelection is a sorted set of Count distinct numbers.
type NumberSelection struct {
	Numbers       []PickedNumber  `json:"numbers"`
	ElementCounts map[Element]int `json:"elementCounts"`
	// Confidence is only set by the fortune-driven variant.
	Confidence int `json:"confidence,omitempty"`
}

// Values returns just the numbers, ascending.
func (s NumberSelection) Values() []int {
	out := make([]int, len(s.Numbers))
	for i, p := range s.Numbers {
		out[i] = p.Number
	}
	return out
}

// picker accumulates unique numbers until the selection is full.
type picker struct {
	used  [MaxNumber + 1]bool
	picks []PickedNumber
	limit int
}

func newPicker(limit int) *picker {
	return &picker{picks: make([]PickedNumber, 0, limit), limit: limit}
}

func (p *picker) full() bool { return len(p.picks) >= p.limit }

func (p *picker) take(n int, reason string) bool {
	e, ok := ElementOfNumber(n)
	if !ok || p.used[n] || p.full() {
		return false
	}
	p.used[n] = true
	p.picks = append(p.picks, PickedNumber{Number: n, Element: e, Reason: reason})
	return true
}

// draw takes the first unused number of e's set, scanning cyclically from start.
func (p *picker) draw(e Element, start int, reason string) bool {
	set := numberSets[floorMod(int(e), 5)]
	for i := range set {
		if p.take(set[floorMod(start+i, len(set))], reason) {
			return true
		}
	}
	return false
}

// fill rotates through every number, beginning with the set of from, until
// the selection is full. It visits each number at most once.
func (p *picker) fill(from Element, reason func(Element) string) {
	for k := 0; !p.full() && k < MaxNumber; k++ {
		e := Element(floorMod(int(from)+k/9, 5))
		set := numberSets[e]
		p.take(set[k%len(set)], reason(e))
	}
}

func (p *picker) selection() NumberSelection {
	picks := make([]PickedNumber, len(p.picks))
	copy(picks, p.picks)
	sort.Slice(picks, func(i, j int) bool { return picks[i].Number < picks[j].Number })

	counts := make(map[Element]int, 5)
	for _, pk := range picks {
		counts[pk.Element]++
	}
	return NumberSelection{Numbers: picks, ElementCounts: counts}
}

// DeriveNumbers selects six numbers from the birth chart: the favorable
// element first, then the pillar elements, then birth-date numbers, then the
// weakest element to round out the set.
func DeriveNumbers(fp FourPillars, fav FavorableElements, profile ElementProfile, birth NormalizedDate) NumberSelection {
	return deriveVariant(fp, fav, profile, birth, 0)
}

// DeriveNumberSets returns count selections. The first equals DeriveNumbers;
// later ones shift every draw index by the set number.
func DeriveNumberSets(fp FourPillars, fav FavorableElements, profile ElementProfile, birth NormalizedDate, count int) []NumberSelection {
	if count < 1 {
		count = 1
	}
	sets := make([]NumberSelection, count)
	for v := range sets {
		sets[v] = deriveVariant(fp, fav, profile, birth, v)
	}
	return sets
}

func deriveVariant(fp FourPillars, fav FavorableElements, profile ElementProfile, birth NormalizedDate, variant int) NumberSelection {
	p := newPicker(Count)

	base := fp.Day.Stem.Ordinal*dayStemFactor + fp.Hour.Branch.Ordinal*hourBranchFactor + variant
	for i := 0; i < primaryDraws; i++ {
		p.draw(fav.Primary, base+i*drawStep, fmt.Sprintf("favorable element %s", fav.Primary.Label()))
	}

	for i, pillar := range fp.Pillars() {
		if p.full() {
			break
		}
		p.draw(pillar.Stem.Element, pillar.Stem.Ordinal+i+variant,
			fmt.Sprintf("%s pillar stem %s (%s)", pillarNames[i], pillar.Stem.Label(), pillar.Stem.Element))
		p.draw(pillar.Branch.Element, pillar.Branch.Ordinal+i+variant,
			fmt.Sprintf("%s pillar branch %s (%s)", pillarNames[i], pillar.Branch.Label(), pillar.Branch.Element))
	}

	for _, bn := range birthNumbers(birth) {
		p.take(bn.n, bn.reason)
	}

	p.fill(profile.Weakest, func(e Element) string {
		return fmt.Sprintf("balancing toward the weak element %s", e.Label())
	})
	return p.selection()
}

type birthNumber struct {
	n      int
	reason string
}

func birthNumbers(birth NormalizedDate) []birthNumber {
	yy := birth.Year() % 100
	sum := (yy + birth.Month() + birth.Day()) % MaxNumber
	if sum <= 0 {
		sum = 1
	}
	return []birthNumber{
		{yy, fmt.Sprintf("birth year %d", birth.Year())},
		{birth.Month(), "birth month"},
		{birth.Day(), "birth day"},
		{sum, "sum of birth year, month and day"},
	}
}
