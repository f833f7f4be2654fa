package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrSessionNotFound signals an unknown or expired session key.
var ErrSessionNotFound = errors.New("session not found")

const defaultSessionTTL = 8 * time.Hour

// Store keeps per-session state in Redis, one blob per session key, so
// concurrent sessions stay isolated and a restarted API node can pick a
// session back up.
type Store struct {
	redis  *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func NewStore(redisClient *redis.Client, ttl time.Duration, logger zerolog.Logger) *Store {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &Store{
		redis:  redisClient,
		ttl:    ttl,
		logger: logger.With().Str("component", "session_store").Logger(),
	}
}

func stateKey(id uuid.UUID) string {
	return fmt.Sprintf("session:state:%s", id.String())
}

// Save persists the session state, refreshing its TTL.
func (st *Store) Save(ctx context.Context, s *State) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return st.redis.Set(ctx, stateKey(s.ID), data, st.ttl).Err()
}

// Load retrieves a session state by ID.
func (st *Store) Load(ctx context.Context, id uuid.UUID) (*State, error) {
	data, err := st.redis.Get(ctx, stateKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &s, nil
}

// Delete removes a session outright (return-to-home).
func (st *Store) Delete(ctx context.Context, id uuid.UUID) error {
	return st.redis.Del(ctx, stateKey(id)).Err()
}

// Lock acquires a short distributed lock for a session's state transitions,
// serializing the HTTP handlers against the timer host. Returns an unlock
// function. The lock expires after 30s as a crash guard.
func (st *Store) Lock(ctx context.Context, id uuid.UUID) (func() error, error) {
	key := fmt.Sprintf("session:lock:%s", id.String())
	lockValue := uuid.New().String()

	acquired, err := st.redis.SetNX(ctx, key, lockValue, 30*time.Second).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !acquired {
		return nil, fmt.Errorf("lock already held")
	}

	unlock := func() error {
		// Lua script ensures we only delete our own lock
		script := `
			if redis.call("get", KEYS[1]) == ARGV[1] then
				return redis.call("del", KEYS[1])
			else
				return 0
			end
		`
		return st.redis.Eval(ctx, script, []string{key}, lockValue).Err()
	}

	return unlock, nil
}
