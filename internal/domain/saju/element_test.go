package saju

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestElementCyclesArePermutations(t *testing.T) {
	for _, start := range Elements {
		gen, des := start, start
		seenGen := map[Element]bool{}
		seenDes := map[Element]bool{}
		for i := 0; i < 5; i++ {
			seenGen[gen] = true
			seenDes[des] = true
			gen = GeneratorOf(gen)
			des = DestroyerOf(des)
		}
		require.Equal(t, start, gen)
		require.Equal(t, start, des)
		require.Len(t, seenGen, 5)
		require.Len(t, seenDes, 5)
		require.Equal(t, start, GeneratorOf(start.Generates()))
		require.Equal(t, start, DestroyerOf(start.Controls()))
	}
}

func TestElementRelations(t *testing.T) {
	require.Equal(t, Fire, Wood.Generates())
	require.Equal(t, Earth, Wood.Controls())
	require.Equal(t, Water, GeneratorOf(Wood))
	require.Equal(t, Metal, DestroyerOf(Wood))

	require.Equal(t, RelationSame, RelationOf(Fire, Fire))
	require.Equal(t, RelationGenerates, RelationOf(Water, Wood))
	require.Equal(t, RelationGeneratedBy, RelationOf(Wood, Water))
	require.Equal(t, RelationControls, RelationOf(Metal, Wood))
	require.Equal(t, RelationControlledBy, RelationOf(Wood, Metal))
	require.Greater(t, Compatibility(Water, Wood), Compatibility(Metal, Wood))
}

func TestElementTextRoundTrip(t *testing.T) {
	raw, err := json.Marshal(map[string]Element{"e": Metal})
	require.NoError(t, err)
	require.JSONEq(t, `{"e":"metal"}`, string(raw))

	var back map[string]Element
	require.NoError(t, json.Unmarshal(raw, &back))
	require.Equal(t, Metal, back["e"])

	_, err = ParseElement("aether")
	require.Error(t, err)
}

func TestDirectionsMapBothWays(t *testing.T) {
	for _, e := range Elements {
		got, ok := ElementOfDirection(e.Direction())
		require.True(t, ok)
		require.Equal(t, e, got)
	}
	_, ok := ElementOfDirection("up")
	require.False(t, ok)
}

func TestLuckyColorsReturnsCopy(t *testing.T) {
	colors := LuckyColors(Wood)
	colors[0] = "changed"
	require.Equal(t, "green", LuckyColors(Wood)[0])
}
