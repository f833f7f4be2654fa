package ws

import "encoding/json"

// Event types pushed to session subscribers.
const (
	EventTick     = "tick"     // countdown heartbeat
	EventPhase    = "phase"    // state machine transition
	EventBreak    = "break"    // break started / finished
	EventFinished = "finished" // session reached the report
	EventError    = "error"    // host-side failure notice
)

// Envelope is the wire format for every pushed event.
type Envelope struct {
	Type      string          `json:"type"`
	SessionID string          `json:"session_id"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// TickPayload carries the visible countdown.
type TickPayload struct {
	Phase            string `json:"phase"`
	RemainingSeconds int    `json:"remaining_seconds"`
}

// PhasePayload announces a transition.
type PhasePayload struct {
	Phase string `json:"phase"`
}

// NewEvent marshals a payload into an Envelope. Marshal failures degrade to
// an empty payload rather than dropping the event.
func NewEvent(eventType, sessionID string, payload any) Envelope {
	env := Envelope{Type: eventType, SessionID: sessionID}
	if payload != nil {
		if data, err := json.Marshal(payload); err == nil {
			env.Payload = data
		}
	}
	return env
}
