package quiz

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/barquiz/spec-trainer/internal/recipe"
)

// DefaultChoiceSetSize is the house default: six distractors plus the correct
// answer per single-choice question.
const DefaultChoiceSetSize = 7

var choicePrompts = map[QuestionType]string{
	TypeGlass:   "Which glass is used?",
	TypeMethod:  "What's the method?",
	TypeGarnish: "Which garnish is used?",
	TypeIce:     "Which ice is used?",
}

// BuildOptions tunes question-set construction.
type BuildOptions struct {
	// ChoiceSetSize is the total option count per single-choice question,
	// correct answer included. Zero means DefaultChoiceSetSize.
	ChoiceSetSize int
	// Rand drives shuffling. Nil gets a time-seeded source; tests pass a
	// fixed seed for deterministic sets.
	Rand *rand.Rand
}

// BuildQuestionSet produces the full question spec for one recipe: one slot
// per required ingredient (duplicates kept as independent slots), the shared
// dropdown universes for the scope, and the four single-choice questions.
// An empty ingredient list yields zero slots; the choice questions remain.
func BuildQuestionSet(rec recipe.Recipe, scope []recipe.Recipe, opts BuildOptions) QuestionSet {
	size := opts.ChoiceSetSize
	if size <= 0 {
		size = DefaultChoiceSetSize
	}
	r := opts.Rand
	if r == nil {
		r = rand.New(rand.NewPCG(rand.Uint64(), uint64(time.Now().UnixNano())))
	}

	slots := make([]IngredientSlot, rec.SlotCount())
	for i := range slots {
		slots[i] = IngredientSlot{ID: uuid.New(), Position: i}
	}

	choices := make([]ChoiceQuestion, 0, len(ChoiceDimensions))
	for _, dim := range ChoiceDimensions {
		choices = append(choices, ChoiceQuestion{
			Dimension: dim,
			Prompt:    choicePrompts[dim],
			Options:   BuildOptionPool(correctValue(rec, dim), choicePool(dim), size, r),
		})
	}

	return QuestionSet{
		RecipeName:        rec.Name,
		Page:              rec.Page,
		Slots:             slots,
		IngredientOptions: IngredientUniverse(scope, ExtraIngredients),
		QuantityOptions:   QuantityUniverse(ExtraQuantities),
		Choices:           choices,
	}
}

func correctValue(rec recipe.Recipe, t QuestionType) string {
	switch t {
	case TypeGlass:
		return rec.Glass
	case TypeMethod:
		return rec.Method
	case TypeGarnish:
		return rec.Garnish
	case TypeIce:
		return rec.Ice
	}
	return ""
}
