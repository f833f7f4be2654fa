package session

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/barquiz/spec-trainer/internal/quiz"
	"github.com/barquiz/spec-trainer/internal/recipe"
)

var (
	// ErrInvalidCredential is a soft rejection: state is unchanged and the
	// break stays available for another attempt.
	ErrInvalidCredential = errors.New("invalid break credential")
	ErrBreakUsed         = errors.New("break already used")
	ErrBreakUnavailable  = errors.New("break only available during the exam")
	ErrSessionFinished   = errors.New("session already finished")
	ErrSessionInactive   = errors.New("session not active")
	ErrUnknownSlot       = errors.New("submission references unknown slot")
)

// Config carries the externally overridable gameplay constants.
type Config struct {
	QuestionTime        time.Duration
	ExamTime            time.Duration
	BreakTime           time.Duration
	PassPercent         int
	ChoiceSetSize       int
	BreakCredentialHash string // bcrypt
}

// Machine applies the session lifecycle transitions. All methods are
// synchronous pure-ish functions over an explicit *State; the machine holds
// no per-session data and never starts timers, so one instance serves every
// session. The timer host invokes the timeout checkpoints.
type Machine struct {
	cfg    Config
	logger zerolog.Logger
}

func NewMachine(cfg Config, logger zerolog.Logger) *Machine {
	if cfg.ChoiceSetSize <= 0 {
		cfg.ChoiceSetSize = quiz.DefaultChoiceSetSize
	}
	return &Machine{cfg: cfg, logger: logger.With().Str("component", "session_machine").Logger()}
}

// Start creates a fresh session over the given scope. Counters reset, first
// question armed.
func (m *Machine) Start(playerName string, mode Mode, category string, page int, scope []recipe.Recipe) *State {
	if playerName == "" {
		playerName = "Guest"
	}
	now := time.Now()
	s := &State{
		ID:         uuid.New(),
		PlayerName: playerName,
		Mode:       mode,
		Category:   category,
		Page:       page,
		Scope:      scope,
		CreatedAt:  now,
	}
	m.arm(s, now)
	return s
}

// Retry restarts a finished session over the same scope with counters reset.
func (m *Machine) Retry(s *State) error {
	if !s.Finished() {
		return ErrSessionInactive
	}
	m.arm(s, time.Now())
	return nil
}

// Home abandons the session back to idle. Idempotent.
func (m *Machine) Home(s *State) {
	m.reset(s)
	s.Phase = PhaseIdle
	s.Current = nil
	s.QuestionDeadline = time.Time{}
	s.ExamDeadline = time.Time{}
	s.BreakDeadline = time.Time{}
	s.touch()
}

func (m *Machine) arm(s *State, now time.Time) {
	m.reset(s)
	switch s.Mode {
	case ModeExam:
		s.Phase = PhaseExam
		s.ExamDeadline = now.Add(m.cfg.ExamTime)
		s.ExamRemaining = m.cfg.ExamTime
	default:
		s.Phase = PhaseStudying
		s.QuestionDeadline = now.Add(m.cfg.QuestionTime)
	}
	s.Current = m.buildCurrent(s)
	s.touch()
}

func (m *Machine) reset(s *State) {
	s.CurrentIndex = 0
	s.Results = nil
	s.TotalQuestions = 0
	s.TotalCorrect = 0
	s.HasAnswered = false
	s.BreakUsed = false
	s.OnBreak = false
}

// QuestionSet returns the current question spec, rebuilding it if absent.
func (m *Machine) QuestionSet(s *State) (*quiz.QuestionSet, error) {
	if !s.Active() {
		return nil, ErrSessionInactive
	}
	if s.Current == nil {
		s.Current = m.buildCurrent(s)
		s.touch()
	}
	if s.Current == nil {
		return nil, ErrSessionFinished
	}
	return s.Current, nil
}

// Submit grades the submission against the current recipe, advances the
// index, and arms the next question. The userNext checkpoint.
func (m *Machine) Submit(s *State, sub Submission) (quiz.RecipeResult, error) {
	if !s.Active() || s.OnBreak {
		return quiz.RecipeResult{}, ErrSessionInactive
	}
	rec, ok := s.CurrentRecipe()
	if !ok {
		return quiz.RecipeResult{}, ErrSessionFinished
	}

	pairs, err := m.orderPairs(s, sub.Pairs)
	if err != nil {
		return quiz.RecipeResult{}, err
	}

	result := quiz.BuildResult(rec, quiz.Reconcile(rec, pairs, sub.Choices))
	recordResult(s, result)
	m.advance(s)
	return result, nil
}

// OnQuestionTimeout grades the current recipe as unanswered and advances.
// Study-mode checkpoint driven by the host's per-question countdown.
func (m *Machine) OnQuestionTimeout(s *State) (quiz.RecipeResult, error) {
	return m.Submit(s, m.blankSubmission(s))
}

// StartBreak pauses the exam clock after verifying the supervisor
// credential. Allowed once per session; elapsed break time is not deducted
// from the exam.
func (m *Machine) StartBreak(s *State, credential string) error {
	if s.Phase != PhaseExam {
		return ErrBreakUnavailable
	}
	if s.BreakUsed {
		return ErrBreakUsed
	}
	if err := bcrypt.CompareHashAndPassword([]byte(m.cfg.BreakCredentialHash), []byte(credential)); err != nil {
		return ErrInvalidCredential
	}

	now := time.Now()
	s.ExamRemaining = time.Until(s.ExamDeadline)
	if s.ExamRemaining < 0 {
		s.ExamRemaining = 0
	}
	s.BreakUsed = true
	s.OnBreak = true
	s.Phase = PhaseOnBreak
	s.BreakDeadline = now.Add(m.cfg.BreakTime)
	s.touch()

	m.logger.Info().Str("session_id", s.ID.String()).Msg("exam break started")
	return nil
}

// EndBreak resumes the exam clock. The host's breakTimeExpired checkpoint;
// idempotent when not on break.
func (m *Machine) EndBreak(s *State) {
	if s.Phase != PhaseOnBreak {
		return
	}
	s.OnBreak = false
	s.Phase = PhaseExam
	s.ExamDeadline = time.Now().Add(s.ExamRemaining)
	s.BreakDeadline = time.Time{}
	s.touch()
}

// End finishes the session: the in-progress question, if any, is evaluated
// (blank) so an expired exam still accounts for the cocktail on screen, then
// the index jumps to the end. Safe to invoke repeatedly; a finished session
// is left untouched so results are never double-counted.
func (m *Machine) End(s *State) {
	if s.Finished() || s.Phase == PhaseIdle {
		return
	}
	if s.OnBreak {
		m.EndBreak(s)
	}
	if _, ok := s.CurrentRecipe(); ok && s.HasAnswered {
		result, err := m.Submit(s, m.blankSubmission(s))
		if err == nil {
			m.logger.Debug().Str("recipe", result.RecipeName).Msg("in-progress question force-evaluated")
		}
	}
	s.CurrentIndex = len(s.Scope)
	m.finish(s)
}

// OnGlobalTimeout is the exam-clock expiry checkpoint.
func (m *Machine) OnGlobalTimeout(s *State) {
	m.End(s)
}

func (m *Machine) advance(s *State) {
	s.CurrentIndex++
	if s.CurrentIndex >= len(s.Scope) {
		m.finish(s)
		return
	}
	if s.Mode == ModeStudy {
		s.QuestionDeadline = time.Now().Add(m.cfg.QuestionTime)
	}
	s.Current = m.buildCurrent(s)
	s.touch()
}

func (m *Machine) finish(s *State) {
	if s.Finished() {
		return
	}
	s.Phase = PhaseFinished
	s.OnBreak = false
	s.Current = nil
	s.QuestionDeadline = time.Time{}
	s.ExamDeadline = time.Time{}
	s.BreakDeadline = time.Time{}
	s.touch()
}

func (m *Machine) buildCurrent(s *State) *quiz.QuestionSet {
	rec, ok := s.CurrentRecipe()
	if !ok {
		return nil
	}
	scope := s.Scope
	if s.Mode == ModeStudy {
		// Study dropdowns only reveal ingredients of the current page.
		scope = pageScope(s.Scope, rec.Page)
	}
	set := quiz.BuildQuestionSet(rec, scope, quiz.BuildOptions{
		ChoiceSetSize: m.cfg.ChoiceSetSize,
		Rand:          rand.New(rand.NewPCG(rand.Uint64(), uint64(time.Now().UnixNano()))),
	})
	return &set
}

// orderPairs maps submitted pairs onto the issued slots by slot ID; slots
// without a matching pair grade as blank, unknown slot IDs are rejected.
func (m *Machine) orderPairs(s *State, pairs []quiz.UserPair) ([]quiz.UserPair, error) {
	if s.Current == nil || len(s.Current.Slots) == 0 {
		if len(pairs) > 0 && s.Current == nil {
			return nil, ErrUnknownSlot
		}
		return pairs, nil
	}

	byID := map[uuid.UUID]quiz.UserPair{}
	for _, p := range pairs {
		if p.SlotID == uuid.Nil {
			return nil, ErrUnknownSlot
		}
		byID[p.SlotID] = p
	}

	ordered := make([]quiz.UserPair, 0, len(s.Current.Slots))
	for _, slot := range s.Current.Slots {
		p, ok := byID[slot.ID]
		if ok {
			delete(byID, slot.ID)
		}
		p.SlotID = slot.ID
		ordered = append(ordered, p)
	}
	if len(byID) > 0 {
		return nil, ErrUnknownSlot
	}
	return ordered, nil
}

func (m *Machine) blankSubmission(s *State) Submission {
	var pairs []quiz.UserPair
	if s.Current != nil {
		for _, slot := range s.Current.Slots {
			pairs = append(pairs, quiz.UserPair{SlotID: slot.ID})
		}
	}
	return Submission{Pairs: pairs}
}

// PassPercent exposes the configured threshold for report building.
func (m *Machine) PassPercent() int {
	return m.cfg.PassPercent
}

func pageScope(scope []recipe.Recipe, page int) []recipe.Recipe {
	var out []recipe.Recipe
	for _, rec := range scope {
		if rec.Page == page {
			out = append(out, rec)
		}
	}
	return out
}

func (s *State) touch() {
	s.UpdatedAt = time.Now()
}
