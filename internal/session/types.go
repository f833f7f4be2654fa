package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/barquiz/spec-trainer/internal/quiz"
	"github.com/barquiz/spec-trainer/internal/recipe"
)

// Mode selects the session flavor.
type Mode string

const (
	ModeStudy Mode = "study" // one page, per-question timer
	ModeExam  Mode = "exam"  // all pages of a category, one global timer
)

// Phase is the state machine position.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseStudying Phase = "studying"
	PhaseExam     Phase = "exam"
	PhaseOnBreak  Phase = "on_break"
	PhaseFinished Phase = "finished"
)

// State is the complete per-session record. One instance per session key,
// never shared; everything here is JSON-serializable for the Redis store.
type State struct {
	ID         uuid.UUID `json:"id"`
	PlayerName string    `json:"player_name"`
	Mode       Mode      `json:"mode"`
	Phase      Phase     `json:"phase"`
	Category   string    `json:"category"`
	Page       int       `json:"page"` // zero in exam mode

	// Scope is the ordered recipe list the session runs over, snapshotted at
	// start so mid-session catalog edits cannot shift grading.
	Scope        []recipe.Recipe `json:"scope"`
	CurrentIndex int             `json:"current_index"`

	// Current question set, kept so submissions can be validated against the
	// slot IDs that were actually issued.
	Current *quiz.QuestionSet `json:"current,omitempty"`

	Results        []quiz.RecipeResult `json:"results"`
	TotalQuestions int                 `json:"total_questions"`
	TotalCorrect   int                 `json:"total_correct"`
	HasAnswered    bool                `json:"has_answered"`

	BreakUsed bool `json:"break_used"`
	OnBreak   bool `json:"on_break"`

	// Deadlines are wall-clock; the host polls them. ExamRemaining freezes
	// the exam clock while on break so break time is never deducted.
	QuestionDeadline time.Time     `json:"question_deadline,omitempty"`
	ExamDeadline     time.Time     `json:"exam_deadline,omitempty"`
	BreakDeadline    time.Time     `json:"break_deadline,omitempty"`
	ExamRemaining    time.Duration `json:"exam_remaining,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Active reports whether the session is mid-quiz (timers should run).
func (s *State) Active() bool {
	switch s.Phase {
	case PhaseStudying, PhaseExam, PhaseOnBreak:
		return true
	}
	return false
}

// Finished reports terminal phase.
func (s *State) Finished() bool {
	return s.Phase == PhaseFinished
}

// CurrentRecipe returns the recipe under question, or false past the end.
func (s *State) CurrentRecipe() (recipe.Recipe, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Scope) {
		return recipe.Recipe{}, false
	}
	return s.Scope[s.CurrentIndex], true
}

// Submission is one graded unit of user input for the current recipe.
type Submission struct {
	Pairs   []quiz.UserPair    `json:"pairs"`
	Choices quiz.ChoiceAnswers `json:"choices"`
}
