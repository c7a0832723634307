package saju

import (
	"encoding/json"
	"math"
)

// Weights applied per pillar when tallying elements.
const (
	StemWeight   = 1.5
	BranchWeight = 1.0
)

// ElementTotals holds one weighted total per element, indexed by Element.
type ElementTotals [5]float64

// Of returns the total for e.
func (t ElementTotals) Of(e Element) float64 {
	return t[floorMod(int(e), 5)]
}

// Sum adds the five totals.
func (t ElementTotals) Sum() float64 {
	var sum float64
	for _, v := range t {
		sum += v
	}
	return sum
}

// MarshalJSON renders the totals as an object keyed by element name.
func (t ElementTotals) MarshalJSON() ([]byte, error) {
	out := make(map[string]float64, len(t))
	for _, e := range Elements {
		out[e.String()] = t[e]
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the object form produced by MarshalJSON.
func (t *ElementTotals) UnmarshalJSON(data []byte) error {
	var in map[string]float64
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	var out ElementTotals
	for name, v := range in {
		e, err := ParseElement(name)
		if err != nil {
			return err
		}
		out[e] = v
	}
	*t = out
	return nil
}

// ElementProfile summarizes how the five elements are spread over a chart.
type ElementProfile struct {
	Totals    ElementTotals `json:"totals"`
	Strongest Element       `json:"strongest"`
	Weakest   Element       `json:"weakest"`
	Balance   float64       `json:"balance"`
}

// ComputeElementProfile tallies stem and branch elements of all four pillars.
func ComputeElementProfile(fp FourPillars) ElementProfile {
	var totals ElementTotals
	for _, p := range fp.Pillars() {
		totals[p.Stem.Element] += StemWeight
		totals[p.Branch.Element] += BranchWeight
	}
	return profileFromTotals(totals)
}

func profileFromTotals(totals ElementTotals) ElementProfile {
	strongest, weakest := Wood, Wood
	for _, e := range Elements[1:] {
		if totals[e] > totals[strongest] {
			strongest = e
		}
		if totals[e] < totals[weakest] {
			weakest = e
		}
	}
	return ElementProfile{
		Totals:    totals,
		Strongest: strongest,
		Weakest:   weakest,
		Balance:   balanceOf(totals),
	}
}

// balanceOf is 1 for a perfectly even spread and falls toward 0 as the
// variance grows relative to the squared mean.
func balanceOf(totals ElementTotals) float64 {
	mean := totals.Sum() / float64(len(totals))
	if mean == 0 {
		return 0
	}
	var variance float64
	for _, v := range totals {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(totals))
	return clamp(1-variance/(mean*mean), 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
