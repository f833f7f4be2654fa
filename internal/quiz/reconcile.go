package quiz

import (
	"fmt"

	"github.com/barquiz/spec-trainer/internal/recipe"
)

// noAnswer is the reported value for a blank field.
const noAnswer = "none"

// Reconcile grades one submission against a recipe. Ingredient pairs are
// matched order-independently through three greedy passes over a mutable
// multiset copy of the recipe's requirements:
//
//  1. exact pair match (ingredient and quantity) consumes the matching entry;
//  2. ingredient-only match consumes the first remaining entry with the same
//     ingredient and reports the quantity correction;
//  3. everything left (wrong ingredient or blank) is charged against the
//     positionally next unconsumed requirement, "N/A" once exhausted.
//
// The pass-3 FIFO pop is a deterministic tie-break, not a semantic pairing.
// Exactly one ingredient AnswerRecord is emitted per submitted pair. The four
// choice answers are graded by exact string equality, no partial credit.
func Reconcile(rec recipe.Recipe, pairs []UserPair, choices ChoiceAnswers) Outcome {
	out := Outcome{Answers: make([]AnswerRecord, 0, len(pairs)+len(ChoiceDimensions))}

	remaining := make([]recipe.IngredientSpec, len(rec.Ingredients))
	copy(remaining, rec.Ingredients)

	var pending, wrongOrBlank []UserPair

	// Pass 1: exact pair matches.
	for _, up := range pairs {
		if up.Ingredient == "" || up.Quantity == "" {
			wrongOrBlank = append(wrongOrBlank, up)
			continue
		}
		idx := -1
		for i, spec := range remaining {
			if spec.Ingredient == up.Ingredient && spec.Quantity == up.Quantity {
				idx = i
				break
			}
		}
		if idx == -1 {
			pending = append(pending, up)
			continue
		}
		remaining = append(remaining[:idx], remaining[idx+1:]...)
		out.Answers = append(out.Answers, AnswerRecord{Correct: true, Type: TypeIngredient})
		out.CorrectCount++
	}

	// Pass 2: right ingredient, wrong quantity.
	for _, up := range pending {
		idx := -1
		for i, spec := range remaining {
			if spec.Ingredient == up.Ingredient {
				idx = i
				break
			}
		}
		if idx == -1 {
			wrongOrBlank = append(wrongOrBlank, up)
			continue
		}
		right := remaining[idx]
		remaining = append(remaining[:idx], remaining[idx+1:]...)
		out.Answers = append(out.Answers, AnswerRecord{
			Correct:       false,
			Type:          TypeIngredient,
			User:          pairLabel(up.Ingredient, up.Quantity),
			CorrectAnswer: pairLabel(right.Ingredient, right.Quantity),
		})
	}

	// Pass 3: wrong ingredient or blank, charged FIFO against what is left.
	for _, up := range wrongOrBlank {
		correctAnswer := "N/A"
		if len(remaining) > 0 {
			right := remaining[0]
			remaining = remaining[1:]
			correctAnswer = pairLabel(right.Ingredient, right.Quantity)
		}
		out.Answers = append(out.Answers, AnswerRecord{
			Correct:       false,
			Type:          TypeIngredient,
			User:          pairLabel(orNone(up.Ingredient), orNone(up.Quantity)),
			CorrectAnswer: correctAnswer,
		})
	}

	// Single-choice dimensions, exact equality.
	for _, dim := range ChoiceDimensions {
		selected := choices.Value(dim)
		correct := correctValue(rec, dim)
		if selected == correct {
			out.Answers = append(out.Answers, AnswerRecord{Correct: true, Type: dim})
			out.CorrectCount++
			continue
		}
		out.Answers = append(out.Answers, AnswerRecord{
			Correct:       false,
			Type:          dim,
			User:          orNone(selected),
			CorrectAnswer: correct,
		})
	}

	return out
}

func pairLabel(ingredient, quantity string) string {
	return fmt.Sprintf("%s - %s", ingredient, quantity)
}

func orNone(v string) string {
	if v == "" {
		return noAnswer
	}
	return v
}
