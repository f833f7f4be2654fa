package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/barquiz/spec-trainer/internal/quiz"
	"github.com/barquiz/spec-trainer/internal/recipe"
	httperrors "github.com/barquiz/spec-trainer/pkg/http/errors"
	"github.com/barquiz/spec-trainer/pkg/http/ws"
)

// HTTPHandlers provides the REST surface for quiz sessions. Handlers only
// shuttle engine data structures as JSON; rendering stays client-side.
type HTTPHandlers struct {
	lifecycle context.Context // governs watcher goroutines spawned per session
	recipes   *recipe.Service
	machine   *Machine
	store     *Store
	host      *Host
	hub       *ws.Hub
	logger    zerolog.Logger
}

func NewHTTPHandlers(lifecycle context.Context, recipes *recipe.Service, machine *Machine, store *Store, host *Host, hub *ws.Hub, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		lifecycle: lifecycle,
		recipes:   recipes,
		machine:   machine,
		store:     store,
		host:      host,
		hub:       hub,
		logger:    logger.With().Str("component", "session_http").Logger(),
	}
}

// CreateSessionRequest starts a study or exam session.
type CreateSessionRequest struct {
	PlayerName string `json:"player_name"`
	Mode       string `json:"mode"`     // "study" or "exam"
	Category   string `json:"category"` // defaults to the configured category
	Page       int    `json:"page"`     // required for study mode
}

type sessionResponse struct {
	SessionID   string            `json:"session_id"`
	Phase       string            `json:"phase"`
	Mode        string            `json:"mode"`
	RecipeCount int               `json:"recipe_count"`
	Question    *quiz.QuestionSet `json:"question,omitempty"`
}

type submitResponse struct {
	Result   quiz.RecipeResult `json:"result"`
	Phase    string            `json:"phase"`
	Question *quiz.QuestionSet `json:"question,omitempty"`
	Report   *Report           `json:"report,omitempty"`
}

// Create handles POST /v1/sessions
func (h *HTTPHandlers) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	mode := Mode(req.Mode)
	switch mode {
	case ModeStudy, ModeExam:
	default:
		httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, "mode must be \"study\" or \"exam\"", "mode")
		return
	}
	if mode == ModeStudy && req.Page <= 0 {
		httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, "page must be a positive integer", "page")
		return
	}

	var (
		scope []recipe.Recipe
		err   error
	)
	if mode == ModeStudy {
		scope, err = h.recipes.Page(r.Context(), req.Category, req.Page)
	} else {
		scope, err = h.recipes.Category(r.Context(), req.Category)
	}
	if err != nil {
		if errors.Is(err, recipe.ErrNoRecipes) {
			httperrors.RespondNotFound(w, httperrors.ErrCodeNoRecipes, "No recipes for this selection")
			return
		}
		h.logger.Error().Err(err).Msg("scope load failed")
		httperrors.RespondError(w, http.StatusBadGateway, httperrors.ErrCodeUpstreamError, "Recipe catalog unavailable")
		return
	}

	state := h.machine.Start(req.PlayerName, mode, req.Category, req.Page, scope)
	if err := h.store.Save(r.Context(), state); err != nil {
		h.logger.Error().Err(err).Msg("session save failed")
		httperrors.RespondInternalError(w, "Could not start session")
		return
	}
	h.host.Watch(h.lifecycle, state.ID)
	metricSessionsStarted.WithLabelValues(string(mode)).Inc()

	h.logger.Info().
		Str("session_id", state.ID.String()).
		Str("mode", string(mode)).
		Int("recipes", len(scope)).
		Msg("session started")

	h.respondJSON(w, http.StatusCreated, sessionResponse{
		SessionID:   state.ID.String(),
		Phase:       string(state.Phase),
		Mode:        string(state.Mode),
		RecipeCount: len(state.Scope),
		Question:    state.Current,
	})
}

// Question handles GET /v1/sessions/{id}/question
func (h *HTTPHandlers) Question(w http.ResponseWriter, r *http.Request) {
	state, unlock, ok := h.lockAndLoad(w, r)
	if !ok {
		return
	}
	defer unlock()

	set, err := h.machine.QuestionSet(state)
	if err != nil {
		h.respondTransitionError(w, err)
		return
	}
	if err := h.store.Save(r.Context(), state); err != nil {
		httperrors.RespondInternalError(w, "Could not persist session")
		return
	}
	h.respondJSON(w, http.StatusOK, sessionResponse{
		SessionID:   state.ID.String(),
		Phase:       string(state.Phase),
		Mode:        string(state.Mode),
		RecipeCount: len(state.Scope),
		Question:    set,
	})
}

// Submit handles POST /v1/sessions/{id}/answers: grade the current recipe
// and advance.
func (h *HTTPHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var sub Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	state, unlock, ok := h.lockAndLoad(w, r)
	if !ok {
		return
	}
	defer unlock()

	result, err := h.machine.Submit(state, sub)
	if err != nil {
		h.respondTransitionError(w, err)
		return
	}
	if err := h.store.Save(r.Context(), state); err != nil {
		httperrors.RespondInternalError(w, "Could not persist session")
		return
	}
	metricRecipesGraded.Inc()

	resp := submitResponse{Result: result, Phase: string(state.Phase), Question: state.Current}
	if state.Finished() {
		metricSessionsFinished.Inc()
		report := BuildReport(state, h.machine.PassPercent())
		resp.Report = &report
		h.hub.Broadcast(state.ID, ws.NewEvent(ws.EventFinished, state.ID.String(), nil))
	} else {
		h.hub.Broadcast(state.ID, ws.NewEvent(ws.EventPhase, state.ID.String(), ws.PhasePayload{Phase: string(state.Phase)}))
	}
	h.respondJSON(w, http.StatusOK, resp)
}

type breakRequest struct {
	Credential string `json:"credential"`
}

// Break handles POST /v1/sessions/{id}/break
func (h *HTTPHandlers) Break(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req breakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	state, unlock, ok := h.lockAndLoad(w, r)
	if !ok {
		return
	}
	defer unlock()

	if err := h.machine.StartBreak(state, req.Credential); err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredential):
			httperrors.RespondForbidden(w, httperrors.ErrCodeInvalidCredential, "Wrong supervisor password")
		case errors.Is(err, ErrBreakUsed):
			httperrors.RespondConflict(w, httperrors.ErrCodeBreakUsed, "Break already used")
		case errors.Is(err, ErrBreakUnavailable):
			httperrors.RespondConflict(w, httperrors.ErrCodeBreakUnavailable, "Break is only available during the exam")
		default:
			httperrors.RespondInternalError(w, "Could not start break")
		}
		return
	}
	if err := h.store.Save(r.Context(), state); err != nil {
		httperrors.RespondInternalError(w, "Could not persist session")
		return
	}
	h.hub.Broadcast(state.ID, ws.NewEvent(ws.EventBreak, state.ID.String(), ws.PhasePayload{Phase: string(state.Phase)}))
	h.respondJSON(w, http.StatusOK, map[string]any{
		"phase":          state.Phase,
		"break_deadline": state.BreakDeadline,
	})
}

// End handles POST /v1/sessions/{id}/end: finish early and return the report.
func (h *HTTPHandlers) End(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state, unlock, ok := h.lockAndLoad(w, r)
	if !ok {
		return
	}
	defer unlock()

	wasFinished := state.Finished()
	h.machine.End(state)
	if err := h.store.Save(r.Context(), state); err != nil {
		httperrors.RespondInternalError(w, "Could not persist session")
		return
	}
	if !wasFinished && state.Finished() {
		metricSessionsFinished.Inc()
		h.hub.Broadcast(state.ID, ws.NewEvent(ws.EventFinished, state.ID.String(), nil))
	}

	report := BuildReport(state, h.machine.PassPercent())
	h.respondJSON(w, http.StatusOK, report)
}

// Report handles GET /v1/sessions/{id}/report
func (h *HTTPHandlers) Report(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	state, err := h.store.Load(r.Context(), id)
	if err != nil {
		h.respondLoadError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, BuildReport(state, h.machine.PassPercent()))
}

// Retry handles POST /v1/sessions/{id}/retry: same scope, counters reset.
func (h *HTTPHandlers) Retry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	state, unlock, ok := h.lockAndLoad(w, r)
	if !ok {
		return
	}
	defer unlock()

	if err := h.machine.Retry(state); err != nil {
		h.respondTransitionError(w, err)
		return
	}
	if err := h.store.Save(r.Context(), state); err != nil {
		httperrors.RespondInternalError(w, "Could not persist session")
		return
	}
	h.host.Watch(h.lifecycle, state.ID)
	metricSessionsStarted.WithLabelValues(string(state.Mode)).Inc()

	h.respondJSON(w, http.StatusOK, sessionResponse{
		SessionID:   state.ID.String(),
		Phase:       string(state.Phase),
		Mode:        string(state.Mode),
		RecipeCount: len(state.Scope),
		Question:    state.Current,
	})
}

// Home handles POST /v1/sessions/{id}/home: abandon and discard the session.
func (h *HTTPHandlers) Home(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	h.host.Stop(id)
	h.hub.CloseSession(id)
	if err := h.store.Delete(r.Context(), id); err != nil {
		h.logger.Warn().Err(err).Str("session_id", id.String()).Msg("session delete failed")
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *HTTPHandlers) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeValidationFailed, "session id must be a UUID", "id")
		return uuid.Nil, false
	}
	return id, true
}

// lockAndLoad serializes handler transitions against the timer host.
func (h *HTTPHandlers) lockAndLoad(w http.ResponseWriter, r *http.Request) (*State, func(), bool) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return nil, nil, false
	}

	unlock, err := h.store.Lock(r.Context(), id)
	if err != nil {
		httperrors.RespondConflict(w, httperrors.ErrCodeServiceUnavailable, "Session busy, retry")
		return nil, nil, false
	}
	release := func() {
		if err := unlock(); err != nil {
			h.logger.Warn().Err(err).Str("session_id", id.String()).Msg("unlock failed")
		}
	}

	state, err := h.store.Load(r.Context(), id)
	if err != nil {
		release()
		h.respondLoadError(w, err)
		return nil, nil, false
	}
	return state, release, true
}

func (h *HTTPHandlers) respondLoadError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrSessionNotFound) {
		httperrors.RespondNotFound(w, httperrors.ErrCodeSessionNotFound, "Unknown or expired session")
		return
	}
	h.logger.Error().Err(err).Msg("session load failed")
	httperrors.RespondInternalError(w, "Could not load session")
}

func (h *HTTPHandlers) respondTransitionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUnknownSlot):
		httperrors.RespondBadRequest(w, httperrors.ErrCodeUnknownSlot, "Submission references a slot that was not issued")
	case errors.Is(err, ErrSessionFinished):
		httperrors.RespondConflict(w, httperrors.ErrCodeSessionFinished, "Session already finished")
	case errors.Is(err, ErrSessionInactive):
		httperrors.RespondConflict(w, httperrors.ErrCodeSessionInactive, "Session is not accepting answers")
	default:
		h.logger.Error().Err(err).Msg("transition failed")
		httperrors.RespondInternalError(w, "Could not apply transition")
	}
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Warn().Err(err).Msg("response encode failed")
	}
}
