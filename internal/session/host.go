package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/barquiz/spec-trainer/pkg/http/ws"
)

const defaultTickInterval = time.Second

// Host is the cooperative timer driver. It owns one watcher goroutine per
// active session, broadcasts the visible countdown over the hub, and invokes
// the machine's synchronous checkpoints when a deadline passes. The machine
// itself never ticks.
type Host struct {
	store   *Store
	machine *Machine
	hub     *ws.Hub
	logger  zerolog.Logger
	tick    time.Duration

	mu       sync.Mutex
	watchers map[uuid.UUID]*watcher
}

type watcher struct {
	cancel context.CancelFunc
}

func NewHost(store *Store, machine *Machine, hub *ws.Hub, logger zerolog.Logger, tick time.Duration) *Host {
	if tick <= 0 {
		tick = defaultTickInterval
	}
	return &Host{
		store:    store,
		machine:  machine,
		hub:      hub,
		logger:   logger.With().Str("component", "session_host").Logger(),
		tick:     tick,
		watchers: make(map[uuid.UUID]*watcher),
	}
}

// Watch starts (or restarts) the countdown watcher for a session.
func (h *Host) Watch(ctx context.Context, sessionID uuid.UUID) {
	h.mu.Lock()
	if prev, ok := h.watchers[sessionID]; ok {
		prev.cancel()
	}
	watchCtx, cancel := context.WithCancel(ctx)
	w := &watcher{cancel: cancel}
	h.watchers[sessionID] = w
	h.mu.Unlock()

	go h.run(watchCtx, sessionID, w)
}

// Stop halts the watcher for one session.
func (h *Host) Stop(sessionID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if w, ok := h.watchers[sessionID]; ok {
		w.cancel()
		delete(h.watchers, sessionID)
	}
}

// StopAll halts every watcher (shutdown path).
func (h *Host) StopAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, w := range h.watchers {
		w.cancel()
		delete(h.watchers, id)
	}
}

// retire removes the watcher entry unless a restart already replaced it.
func (h *Host) retire(sessionID uuid.UUID, w *watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if cur, ok := h.watchers[sessionID]; ok && cur == w {
		cur.cancel()
		delete(h.watchers, sessionID)
	}
}

func (h *Host) run(ctx context.Context, sessionID uuid.UUID, w *watcher) {
	defer h.retire(sessionID, w)

	ticker := time.NewTicker(h.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if done := h.step(ctx, sessionID); done {
				return
			}
		}
	}
}

// step emits one tick and fires any due checkpoint. Returns true when the
// watcher should retire.
func (h *Host) step(ctx context.Context, sessionID uuid.UUID) bool {
	state, err := h.store.Load(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			h.logger.Warn().Err(err).Str("session_id", sessionID.String()).Msg("load failed")
		}
		return true
	}
	if !state.Active() {
		return true
	}

	deadline := h.deadlineFor(state)
	remaining := time.Until(deadline)
	if remaining < 0 {
		remaining = 0
	}

	h.hub.Broadcast(sessionID, ws.NewEvent(ws.EventTick, sessionID.String(), ws.TickPayload{
		Phase:            string(state.Phase),
		RemainingSeconds: int(remaining / time.Second),
	}))

	if remaining > 0 {
		return false
	}
	return h.fireCheckpoint(ctx, sessionID, state.Phase)
}

func (h *Host) deadlineFor(s *State) time.Time {
	switch s.Phase {
	case PhaseOnBreak:
		return s.BreakDeadline
	case PhaseExam:
		return s.ExamDeadline
	default:
		return s.QuestionDeadline
	}
}

// fireCheckpoint reloads the state under the store lock before applying a
// timeout transition, so a submission racing the tick wins or loses cleanly.
func (h *Host) fireCheckpoint(ctx context.Context, sessionID uuid.UUID, observed Phase) bool {
	unlock, err := h.store.Lock(ctx, sessionID)
	if err != nil {
		// Another actor is mid-transition; retry next tick.
		return false
	}
	defer func() {
		if err := unlock(); err != nil {
			h.logger.Warn().Err(err).Str("session_id", sessionID.String()).Msg("unlock failed")
		}
	}()

	state, err := h.store.Load(ctx, sessionID)
	if err != nil {
		return true
	}
	if state.Phase != observed || time.Until(h.deadlineFor(state)) > 0 {
		return false // a transition beat us to it
	}

	switch state.Phase {
	case PhaseStudying:
		if _, err := h.machine.OnQuestionTimeout(state); err != nil {
			h.logger.Warn().Err(err).Str("session_id", sessionID.String()).Msg("question timeout failed")
		}
	case PhaseOnBreak:
		h.machine.EndBreak(state)
		h.hub.Broadcast(sessionID, ws.NewEvent(ws.EventBreak, sessionID.String(), ws.PhasePayload{Phase: string(state.Phase)}))
	case PhaseExam:
		h.machine.OnGlobalTimeout(state)
	}

	if err := h.store.Save(ctx, state); err != nil {
		h.logger.Error().Err(err).Str("session_id", sessionID.String()).Msg("save after checkpoint failed")
		return true
	}

	h.hub.Broadcast(sessionID, ws.NewEvent(ws.EventPhase, sessionID.String(), ws.PhasePayload{Phase: string(state.Phase)}))
	if state.Finished() {
		h.hub.Broadcast(sessionID, ws.NewEvent(ws.EventFinished, sessionID.String(), nil))
		return true
	}
	return false
}
