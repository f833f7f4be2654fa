package quiz

import (
	"github.com/google/uuid"

	"github.com/barquiz/spec-trainer/internal/recipe"
)

// QuestionType identifies which dimension of the spec an answer grades.
type QuestionType string

const (
	TypeIngredient QuestionType = "ingredient"
	TypeGlass      QuestionType = "glass"
	TypeMethod     QuestionType = "method"
	TypeGarnish    QuestionType = "garnish"
	TypeIce        QuestionType = "ice"
)

// ChoiceDimensions lists the four single-choice questions every recipe gets,
// in render order.
var ChoiceDimensions = []QuestionType{TypeGlass, TypeMethod, TypeGarnish, TypeIce}

// UserPair is one submitted ingredient slot. Either field may be empty,
// meaning the slot was left unanswered.
type UserPair struct {
	SlotID     uuid.UUID `json:"slot_id"`
	Ingredient string    `json:"ingredient"`
	Quantity   string    `json:"quantity"`
}

// ChoiceAnswers carries the selected value per single-choice dimension.
// A missing selection is the empty string.
type ChoiceAnswers struct {
	Glass   string `json:"glass"`
	Method  string `json:"method"`
	Garnish string `json:"garnish"`
	Ice     string `json:"ice"`
}

// Value returns the selection for a dimension.
func (c ChoiceAnswers) Value(t QuestionType) string {
	switch t {
	case TypeGlass:
		return c.Glass
	case TypeMethod:
		return c.Method
	case TypeGarnish:
		return c.Garnish
	case TypeIce:
		return c.Ice
	}
	return ""
}

// AnswerRecord is one graded unit. User and CorrectAnswer are populated only
// on incorrect answers; the report renders them as "user → correct" feedback.
type AnswerRecord struct {
	Correct       bool         `json:"correct"`
	Type          QuestionType `json:"type"`
	User          string       `json:"user,omitempty"`
	CorrectAnswer string       `json:"correct_answer,omitempty"`
}

// RecipeResult aggregates the graded answers for one cocktail.
// FullyCorrect holds iff every slot and all four choice questions were right.
type RecipeResult struct {
	RecipeName   string         `json:"recipe_name"`
	Page         int            `json:"page"`
	Answers      []AnswerRecord `json:"answers"`
	CorrectCount int            `json:"correct_count"`
	FullyCorrect bool           `json:"fully_correct"`
}

// IngredientSlot is one ingredient answer position. Slots carry explicit IDs
// so submissions bind to positions without relying on render order.
type IngredientSlot struct {
	ID       uuid.UUID `json:"id"`
	Position int       `json:"position"`
}

// ChoiceQuestion is one of the four fixed single-choice questions.
type ChoiceQuestion struct {
	Dimension QuestionType `json:"dimension"`
	Prompt    string       `json:"prompt"`
	Options   []string     `json:"options"`
}

// QuestionSet is the full renderable question spec for one recipe.
// Construction is pure data assembly; rendering belongs to the caller.
type QuestionSet struct {
	RecipeName        string           `json:"recipe_name"`
	Page              int              `json:"page"`
	Slots             []IngredientSlot `json:"slots"`
	IngredientOptions []string         `json:"ingredient_options"`
	QuantityOptions   []string         `json:"quantity_options"`
	Choices           []ChoiceQuestion `json:"choices"`
}

// Outcome is the result of reconciling one submission against a recipe.
type Outcome struct {
	Answers      []AnswerRecord
	CorrectCount int
}

// BuildResult assembles a RecipeResult from a reconciliation outcome.
func BuildResult(rec recipe.Recipe, out Outcome) RecipeResult {
	return RecipeResult{
		RecipeName:   rec.Name,
		Page:         rec.Page,
		Answers:      out.Answers,
		CorrectCount: out.CorrectCount,
		FullyCorrect: out.CorrectCount == rec.SlotCount()+len(ChoiceDimensions),
	}
}
