package quiz

import (
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/barquiz/spec-trainer/internal/recipe"
)

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func TestBuildOptionPoolNoDuplicatesExactlyOneCorrect(t *testing.T) {
	r := testRand(7)
	for _, size := range []int{5, 6, 7} {
		options := BuildOptionPool("Sexy Rocks", ExtraGlassware, size, r)
		assert.Len(t, options, size)

		seen := map[string]int{}
		for _, opt := range options {
			seen[opt]++
		}
		for opt, n := range seen {
			assert.Equal(t, 1, n, "duplicate option %q at size %d", opt, size)
		}
		assert.Equal(t, 1, seen["Sexy Rocks"])
	}
}

func TestBuildOptionPoolCorrectNotInCandidates(t *testing.T) {
	options := BuildOptionPool("Copper Mug", ExtraGlassware, 7, testRand(11))
	assert.Len(t, options, 7)
	assert.Contains(t, options, "Copper Mug")
}

func TestBuildOptionPoolDegradesOnShortPool(t *testing.T) {
	options := BuildOptionPool("None", ExtraIce, 10, testRand(3))
	// ExtraIce has 6 entries, one of which is the correct answer itself.
	assert.Len(t, options, len(ExtraIce))
	assert.Contains(t, options, "None")

	single := BuildOptionPool("Cubed", nil, 7, testRand(3))
	assert.Equal(t, []string{"Cubed"}, single)
}

func TestBuildOptionPoolDropsDuplicateCandidates(t *testing.T) {
	candidates := []string{"Coupe", "Coupe", "Rocks", "Rocks", "Highball"}
	options := BuildOptionPool("Tubo", candidates, 7, testRand(5))
	assert.Len(t, options, 4) // 3 distinct distractors + correct
	seen := map[string]int{}
	for _, opt := range options {
		seen[opt]++
	}
	for opt, n := range seen {
		assert.Equal(t, 1, n, "duplicate %q", opt)
	}
}

func TestIngredientUniverseDeterministicSorted(t *testing.T) {
	scope := []recipe.Recipe{
		{Ingredients: []recipe.IngredientSpec{
			{Ingredient: "Zubrowka", Quantity: "2 Counts"},
			{Ingredient: "Apple Juice", Quantity: "4 Counts"},
		}},
		{Ingredients: []recipe.IngredientSpec{
			{Ingredient: "Apple Juice", Quantity: "2 Counts"}, // same name, different quantity
		}},
	}

	first := IngredientUniverse(scope, ExtraIngredients)
	second := IngredientUniverse(scope, ExtraIngredients)
	assert.Equal(t, first, second)
	assert.True(t, sort.StringsAreSorted(first))
	assert.Contains(t, first, "Zubrowka")

	seen := map[string]int{}
	for _, name := range first {
		seen[name]++
	}
	assert.Equal(t, 1, seen["Apple Juice"])
}

func TestQuantityUniverseSortedDeduplicated(t *testing.T) {
	universe := QuantityUniverse(ExtraQuantities)
	assert.True(t, sort.StringsAreSorted(universe))
	assert.Len(t, universe, len(ExtraQuantities)) // source list has no duplicates

	withDup := QuantityUniverse(append([]string{"Top", "Top"}, ExtraQuantities...))
	assert.Equal(t, universe, withDup)
}
