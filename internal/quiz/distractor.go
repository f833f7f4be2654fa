package quiz

import (
	"math/rand/v2"
	"sort"

	"github.com/barquiz/spec-trainer/internal/recipe"
)

// BuildOptionPool assembles a shuffled option set for a single-choice
// question: size-1 distinct distractors drawn from candidates plus exactly one
// occurrence of correct. When the candidate pool cannot supply enough
// distractors the set degrades to whatever is available rather than failing.
// Shuffling is a uniform Fisher-Yates permutation driven by r, so calls are
// stateless apart from the caller-owned source.
func BuildOptionPool(correct string, candidates []string, size int, r *rand.Rand) []string {
	distractors := make([]string, 0, len(candidates))
	seen := map[string]struct{}{correct: {}}
	for _, c := range candidates {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		distractors = append(distractors, c)
	}

	r.Shuffle(len(distractors), func(i, j int) {
		distractors[i], distractors[j] = distractors[j], distractors[i]
	})

	want := size - 1
	if want < 0 {
		want = 0
	}
	if want > len(distractors) {
		want = len(distractors)
	}

	options := append(distractors[:want:want], correct)
	r.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

// IngredientUniverse is the dropdown content for ingredient slots: every
// ingredient appearing in the scope's recipes unioned with the static extras,
// deduplicated and in stable lexicographic order so a given scope always
// renders the same list.
func IngredientUniverse(scope []recipe.Recipe, extras []string) []string {
	seen := map[string]struct{}{}
	var universe []string
	add := func(name string) {
		if name == "" {
			return
		}
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		universe = append(universe, name)
	}

	for _, rec := range scope {
		for _, spec := range rec.Ingredients {
			add(spec.Ingredient)
		}
	}
	for _, extra := range extras {
		add(extra)
	}

	sort.Strings(universe)
	return universe
}

// QuantityUniverse is the dropdown content for quantity slots: the static
// list deduplicated and sorted the same way as the ingredient universe.
func QuantityUniverse(extras []string) []string {
	return IngredientUniverse(nil, extras)
}
