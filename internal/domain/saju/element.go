package saju

import "fmt"

// Element is one of the five phases. The ordinal order doubles as the
// generation ring: each element generates the next one.
type Element int

const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

// Elements lists the five phases in canonical order. Tie breaks everywhere in
// the engine follow this order.
var Elements = [5]Element{Wood, Fire, Earth, Metal, Water}

var elementNames = [5]string{"wood", "fire", "earth", "metal", "water"}

var elementLabels = [5]string{"목(木)", "화(火)", "토(土)", "금(金)", "수(水)"}

func (e Element) String() string {
	if e < Wood || e > Water {
		return fmt.Sprintf("element(%d)", int(e))
	}
	return elementNames[e]
}

// Label returns the Korean display label, e.g. "목(木)".
func (e Element) Label() string {
	if e < Wood || e > Water {
		return e.String()
	}
	return elementLabels[e]
}

// MarshalText renders the element as its lowercase name.
func (e Element) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText accepts the lowercase names produced by MarshalText.
func (e *Element) UnmarshalText(text []byte) error {
	parsed, err := ParseElement(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// ParseElement resolves a lowercase element name.
func ParseElement(name string) (Element, error) {
	for i, n := range elementNames {
		if n == name {
			return Element(i), nil
		}
	}
	return 0, fmt.Errorf("unknown element %q", name)
}

// Generates returns the element this one produces (wood → fire → earth → metal → water → wood).
func (e Element) Generates() Element {
	return Element(floorMod(int(e)+1, 5))
}

// GeneratorOf returns the element that produces e.
func GeneratorOf(e Element) Element {
	return Element(floorMod(int(e)-1, 5))
}

// Controls returns the element this one suppresses (wood → earth → water → fire → metal → wood).
func (e Element) Controls() Element {
	return Element(floorMod(int(e)+2, 5))
}

// DestroyerOf returns the element that suppresses e.
func DestroyerOf(e Element) Element {
	return Element(floorMod(int(e)-2, 5))
}

// Relation classifies how element b stands relative to element a.
type Relation string

const (
	RelationSame         Relation = "same"
	RelationGenerates    Relation = "generates"
	RelationGeneratedBy  Relation = "generated_by"
	RelationControls     Relation = "controls"
	RelationControlledBy Relation = "controlled_by"
)

// RelationOf reports the relationship of b as seen from a. Every ordered pair
// of distinct elements is either a generation or a control edge, so the result
// is always one of the five relations.
func RelationOf(a, b Element) Relation {
	switch {
	case a == b:
		return RelationSame
	case a.Generates() == b:
		return RelationGenerates
	case b.Generates() == a:
		return RelationGeneratedBy
	case a.Controls() == b:
		return RelationControls
	default:
		return RelationControlledBy
	}
}

// Compatibility scores a relation in [0,1], higher meaning more supportive.
func Compatibility(a, b Element) float64 {
	switch RelationOf(a, b) {
	case RelationSame:
		return 1.0
	case RelationGenerates:
		return 0.8
	case RelationGeneratedBy:
		return 0.7
	case RelationControls:
		return 0.3
	default:
		return 0.2
	}
}

// Direction is a compass point associated with an element.
type Direction string

const (
	East   Direction = "east"
	South  Direction = "south"
	Center Direction = "center"
	West   Direction = "west"
	North  Direction = "north"
)

var elementDirections = [5]Direction{East, South, Center, West, North}

// Direction returns the compass point traditionally bound to e.
func (e Element) Direction() Direction {
	return elementDirections[floorMod(int(e), 5)]
}

// ElementOfDirection maps a compass point back to its element.
func ElementOfDirection(d Direction) (Element, bool) {
	for i, dir := range elementDirections {
		if dir == d {
			return Element(i), true
		}
	}
	return 0, false
}

var luckyColors = [5][]string{
	{"green", "teal"},
	{"red", "purple"},
	{"yellow", "brown"},
	{"white", "gold"},
	{"black", "navy"},
}

// LuckyColors returns the colors associated with e.
func LuckyColors(e Element) []string {
	colors := luckyColors[floorMod(int(e), 5)]
	out := make([]string, len(colors))
	copy(out, colors)
	return out
}

// floorMod returns a mod n in [0, n) for any sign of a.
func floorMod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
