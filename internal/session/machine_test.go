package session

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/barquiz/spec-trainer/internal/quiz"
	"github.com/barquiz/spec-trainer/internal/recipe"
)

const supervisorPassword = "The Alchemist"

func testMachine(t *testing.T) *Machine {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(supervisorPassword), bcrypt.MinCost)
	require.NoError(t, err)
	return NewMachine(Config{
		QuestionTime:        5 * time.Minute,
		ExamTime:            6 * time.Hour,
		BreakTime:           30 * time.Minute,
		PassPercent:         85,
		ChoiceSetSize:       7,
		BreakCredentialHash: string(hash),
	}, zerolog.Nop())
}

func testScope() []recipe.Recipe {
	return []recipe.Recipe{
		{
			Name: "Old Fashioned", Category: "classics", Page: 1,
			Ingredients: []recipe.IngredientSpec{
				{Ingredient: "Buffalo Trace", Quantity: "8 Counts"},
				{Ingredient: "Demerara Sugar", Quantity: "2 Barspns"},
			},
			Glass: "Sexy Rocks", Method: "Stir & Strain", Garnish: "Orange Zest", Ice: "Cubed",
		},
		{
			Name: "Daiquiri", Category: "classics", Page: 1,
			Ingredients: []recipe.IngredientSpec{
				{Ingredient: "Bacardi Carta Blanca", Quantity: "4 Counts"},
				{Ingredient: "Lime Juice", Quantity: "2 Counts"},
				{Ingredient: "BSC Simple 1:1", Quantity: "1 Count"},
			},
			Glass: "Coupe", Method: "Shake & Fine Strain", Garnish: "None", Ice: "None",
		},
	}
}

// correctSubmission answers the current question perfectly, echoing slot IDs.
func correctSubmission(s *State) Submission {
	rec, _ := s.CurrentRecipe()
	pairs := make([]quiz.UserPair, 0, len(s.Current.Slots))
	for i, slot := range s.Current.Slots {
		pairs = append(pairs, quiz.UserPair{
			SlotID:     slot.ID,
			Ingredient: rec.Ingredients[i].Ingredient,
			Quantity:   rec.Ingredients[i].Quantity,
		})
	}
	return Submission{
		Pairs:   pairs,
		Choices: quiz.ChoiceAnswers{Glass: rec.Glass, Method: rec.Method, Garnish: rec.Garnish, Ice: rec.Ice},
	}
}

func TestStartStudySession(t *testing.T) {
	m := testMachine(t)
	s := m.Start("Rita", ModeStudy, "classics", 1, testScope())

	assert.Equal(t, PhaseStudying, s.Phase)
	assert.Equal(t, "Rita", s.PlayerName)
	require.NotNil(t, s.Current)
	assert.Len(t, s.Current.Slots, 2)
	assert.False(t, s.QuestionDeadline.IsZero())
	assert.True(t, s.ExamDeadline.IsZero())
}

func TestStartDefaultsGuestName(t *testing.T) {
	m := testMachine(t)
	s := m.Start("", ModeStudy, "classics", 1, testScope())
	assert.Equal(t, "Guest", s.PlayerName)
}

func TestStudyFlowToFinished(t *testing.T) {
	m := testMachine(t)
	s := m.Start("Rita", ModeStudy, "classics", 1, testScope())

	first, err := m.Submit(s, correctSubmission(s))
	require.NoError(t, err)
	assert.True(t, first.FullyCorrect)
	assert.Equal(t, 1, s.CurrentIndex)
	require.NotNil(t, s.Current)
	assert.Equal(t, "Daiquiri", s.Current.RecipeName)

	second, err := m.Submit(s, correctSubmission(s))
	require.NoError(t, err)
	assert.True(t, second.FullyCorrect)

	assert.True(t, s.Finished())
	assert.Nil(t, s.Current)
	assert.Equal(t, 8, s.TotalQuestions)  // 4 per recipe
	assert.Equal(t, 13, s.TotalCorrect)   // 2+4 and 3+4

	_, err = m.Submit(s, Submission{})
	assert.ErrorIs(t, err, ErrSessionInactive)
}

func TestSubmitAcceptsPairsInAnySlotOrder(t *testing.T) {
	m := testMachine(t)
	s := m.Start("Rita", ModeStudy, "classics", 1, testScope())

	sub := correctSubmission(s)
	sub.Pairs[0], sub.Pairs[1] = sub.Pairs[1], sub.Pairs[0]

	result, err := m.Submit(s, sub)
	require.NoError(t, err)
	assert.True(t, result.FullyCorrect)
}

func TestSubmitRejectsUnknownSlot(t *testing.T) {
	m := testMachine(t)
	s := m.Start("Rita", ModeStudy, "classics", 1, testScope())

	sub := correctSubmission(s)
	sub.Pairs[0].SlotID = uuid.New()

	_, err := m.Submit(s, sub)
	assert.ErrorIs(t, err, ErrUnknownSlot)
	assert.Empty(t, s.Results, "rejected submission must not be recorded")
}

func TestSubmitGradesMissingSlotAsBlank(t *testing.T) {
	m := testMachine(t)
	s := m.Start("Rita", ModeStudy, "classics", 1, testScope())

	sub := correctSubmission(s)
	sub.Pairs = sub.Pairs[:1] // second slot never submitted

	result, err := m.Submit(s, sub)
	require.NoError(t, err)
	assert.False(t, result.FullyCorrect)
	assert.Equal(t, 5, result.CorrectCount)
}

func TestOnQuestionTimeoutGradesBlank(t *testing.T) {
	m := testMachine(t)
	s := m.Start("Rita", ModeStudy, "classics", 1, testScope())

	result, err := m.OnQuestionTimeout(s)
	require.NoError(t, err)
	assert.Equal(t, 0, result.CorrectCount)
	assert.Equal(t, 1, s.CurrentIndex)
	assert.True(t, s.HasAnswered)
}

func TestBreakLifecycle(t *testing.T) {
	m := testMachine(t)
	s := m.Start("Rita", ModeExam, "classics", 0, testScope())
	require.Equal(t, PhaseExam, s.Phase)

	// Wrong password: soft rejection, break still available.
	err := m.StartBreak(s, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredential)
	assert.False(t, s.BreakUsed)
	assert.Equal(t, PhaseExam, s.Phase)

	require.NoError(t, m.StartBreak(s, supervisorPassword))
	assert.Equal(t, PhaseOnBreak, s.Phase)
	assert.True(t, s.BreakUsed)
	assert.True(t, s.OnBreak)
	assert.False(t, s.BreakDeadline.IsZero())

	frozen := s.ExamRemaining
	assert.Greater(t, frozen, time.Duration(0))

	m.EndBreak(s)
	assert.Equal(t, PhaseExam, s.Phase)
	assert.False(t, s.OnBreak)
	// Resumed deadline restores the frozen remainder, not the original one.
	assert.WithinDuration(t, time.Now().Add(frozen), s.ExamDeadline, 2*time.Second)

	err = m.StartBreak(s, supervisorPassword)
	assert.ErrorIs(t, err, ErrBreakUsed)
}

func TestBreakUnavailableInStudyMode(t *testing.T) {
	m := testMachine(t)
	s := m.Start("Rita", ModeStudy, "classics", 1, testScope())
	assert.ErrorIs(t, m.StartBreak(s, supervisorPassword), ErrBreakUnavailable)
}

func TestEndForcesEvaluationAndIsIdempotent(t *testing.T) {
	m := testMachine(t)
	s := m.Start("Rita", ModeExam, "classics", 0, testScope())

	_, err := m.Submit(s, correctSubmission(s))
	require.NoError(t, err)

	m.End(s)
	assert.True(t, s.Finished())
	// First recipe answered plus the in-progress one force-graded blank.
	assert.Len(t, s.Results, 2)
	totalQuestions := s.TotalQuestions
	totalCorrect := s.TotalCorrect

	m.End(s)
	assert.Len(t, s.Results, 2, "second end must not double-count")
	assert.Equal(t, totalQuestions, s.TotalQuestions)
	assert.Equal(t, totalCorrect, s.TotalCorrect)
}

func TestEndBeforeAnyAnswerKeepsReportEmpty(t *testing.T) {
	m := testMachine(t)
	s := m.Start("Rita", ModeExam, "classics", 0, testScope())

	m.End(s)
	assert.True(t, s.Finished())
	assert.False(t, s.HasAnswered)
	assert.Empty(t, s.Results)
}

func TestEndDuringBreakResumesThenFinishes(t *testing.T) {
	m := testMachine(t)
	s := m.Start("Rita", ModeExam, "classics", 0, testScope())
	_, err := m.Submit(s, correctSubmission(s))
	require.NoError(t, err)
	require.NoError(t, m.StartBreak(s, supervisorPassword))

	m.OnGlobalTimeout(s)
	assert.True(t, s.Finished())
	assert.False(t, s.OnBreak)
}

func TestRetryResetsCountersKeepsScope(t *testing.T) {
	m := testMachine(t)
	s := m.Start("Rita", ModeStudy, "classics", 1, testScope())

	assert.ErrorIs(t, m.Retry(s), ErrSessionInactive)

	_, err := m.Submit(s, correctSubmission(s))
	require.NoError(t, err)
	m.End(s)
	require.True(t, s.Finished())

	require.NoError(t, m.Retry(s))
	assert.Equal(t, PhaseStudying, s.Phase)
	assert.Equal(t, 0, s.CurrentIndex)
	assert.Zero(t, s.TotalQuestions)
	assert.Zero(t, s.TotalCorrect)
	assert.Empty(t, s.Results)
	assert.Len(t, s.Scope, 2)
	require.NotNil(t, s.Current)
	assert.Equal(t, "Old Fashioned", s.Current.RecipeName)
}

func TestHomeReturnsToIdle(t *testing.T) {
	m := testMachine(t)
	s := m.Start("Rita", ModeExam, "classics", 0, testScope())

	m.Home(s)
	assert.Equal(t, PhaseIdle, s.Phase)
	assert.False(t, s.Active())
	assert.Zero(t, s.TotalQuestions)
	assert.Nil(t, s.Current)
}
