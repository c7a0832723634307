package saju

import "fmt"

// Consultation is the long-form personal reading.
type Consultation struct {
	Personality  string `json:"personality"`
	Career       string `json:"career"`
	Wealth       string `json:"wealth"`
	Relationship string `json:"relationship"`
	Health       string `json:"health"`
	LuckPattern  string `json:"luckPattern"`

	CoreNumbers    []int `json:"coreNumbers"`
	CycleNumbers   []int `json:"cycleNumbers"`
	SpecialNumbers []int `json:"specialNumbers"`
}

var (
	personalityTraits = [5]string{
		"Creative and growth-minded; enjoys new challenges and steady progress.",
		"Passionate and active; enjoys company and carries a bright energy.",
		"Stable and dependable; practical in judgement and patient.",
		"Logical and methodical; leans toward perfectionism with a strong will.",
		"Flexible and adaptable; thinks deeply and judges wisely.",
	}
	careerFields = [5]string{
		"education, the arts, environment and growth industries",
		"media, entertainment, services and sales",
		"real estate, construction, agriculture and finance",
		"engineering, manufacturing, law and medicine",
		"research, distribution, shipping and IT",
	}
	relationshipStyles = [5]string{
		"Generous and well liked; values long-term bonds.",
		"Sociable with a wide network; enjoys spontaneous meetings.",
		"Seeks trust; holds family and friends dear.",
		"Selective but deep; prefers principled company.",
		"Reads people intuitively and enjoys deep conversation.",
	}
	healthFocus = [5]string{
		"liver and nervous system; keep regular exercise and manage stress",
		"heart and digestion; rest well and keep a regular routine",
		"digestion and muscles; eat a balanced diet and move moderately",
		"lungs and skin; seek clean air and drink enough water",
		"kidneys; stay hydrated and keep warm",
	}
	luckPhases = [3]string{
		"a phase of growth in which new opportunities arrive",
		"a phase of consolidation in which strengthening your base matters most",
		"a phase of change in which a new direction is worth exploring",
	}
)

var (
	cycleBase   = [Count]int{7, 14, 21, 28, 35, 42}
	specialBase = [Count]int{9, 18, 27, 36, 45, 33}
)

// Consult builds the personal reading for a chart at the given counting age.
func Consult(fp FourPillars, profile ElementProfile, fav FavorableElements, age int) Consultation {
	d := fp.Day.Stem.Element

	harmony := "a many-sided character"
	if profile.Balance > 0.6 {
		harmony = "a harmonious character"
	}

	var wealth string
	switch {
	case profile.Balance > 0.7:
		wealth = "An even spread of elements supports steady finances."
	case profile.Strongest == fav.Primary:
		wealth = "A strong favorable element rewards active investment and business."
	default:
		wealth = "Careful money management and long-term plans work best."
	}

	core := NumbersOf(fav.Primary)[:Count]

	return Consultation{
		Personality: fmt.Sprintf("%s Element balance is %.0f%%, suggesting %s.",
			personalityTraits[d], profile.Balance*100, harmony),
		Career: fmt.Sprintf("Likely to stand out in %s. Fields tied to %s bring better results still.",
			careerFields[d], fav.Primary.Label()),
		Wealth: fmt.Sprintf("%s Fortune tends to rise in periods and fields tied to %s.",
			wealth, fav.Primary.Label()),
		Relationship: relationshipStyles[d],
		Health: fmt.Sprintf("%s is the weakest element: look after the %s.",
			profile.Weakest.Label(), healthFocus[profile.Weakest]),
		LuckPattern: fmt.Sprintf("At age %d you are in %s; expect an important turn around age %d.",
			age, luckPhases[(age/10)%3], age+2),
		CoreNumbers:    core,
		CycleNumbers:   shifted(cycleBase, fp.Day.Stem.Ordinal+1),
		SpecialNumbers: shifted(specialBase, fp.Month.Branch.Ordinal+1),
	}
}

func shifted(base [Count]int, by int) []int {
	out := make([]int, len(base))
	for i, n := range base {
		out[i] = floorMod(n+by-1, MaxNumber) + 1
	}
	return out
}
