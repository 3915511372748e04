package managers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/flowbaker/alloybridge/pkg/domain"
	"github.com/google/uuid"
)

const sessionKeyPrefix = "session:"

type sessionManager struct {
	store domain.KeyValueStore
	ttl   time.Duration
	now   func() time.Time
}

type SessionManagerDependencies struct {
	Store domain.KeyValueStore
	TTL   time.Duration
}

func NewSessionManager(deps SessionManagerDependencies) domain.OAuthSessionManager {
	return &sessionManager{
		store: deps.Store,
		ttl:   deps.TTL,
		now:   time.Now,
	}
}

// Create assigns a fresh opaque id and persists the session with its tokens.
func (m *sessionManager) Create(ctx context.Context, session domain.OAuthSession) (domain.OAuthSession, error) {
	session.ID = uuid.NewString()
	session.CreatedAt = m.now().UTC()

	encoded, err := json.Marshal(session)
	if err != nil {
		return domain.OAuthSession{}, fmt.Errorf("failed to encode session: %w", err)
	}

	if err := m.store.Set(ctx, sessionKeyPrefix+session.ID, string(encoded), m.ttl); err != nil {
		return domain.OAuthSession{}, fmt.Errorf("failed to store session: %w", err)
	}

	return session, nil
}

func (m *sessionManager) Get(ctx context.Context, id string) (domain.OAuthSession, error) {
	if id == "" {
		return domain.OAuthSession{}, domain.NewValidationError("Session ID is required")
	}

	encoded, ok, err := m.store.Get(ctx, sessionKeyPrefix+id)
	if err != nil {
		return domain.OAuthSession{}, fmt.Errorf("failed to load session: %w", err)
	}

	if !ok {
		return domain.OAuthSession{}, domain.NewNotFoundError("Session not found or expired")
	}

	var session domain.OAuthSession
	if err := json.Unmarshal([]byte(encoded), &session); err != nil {
		return domain.OAuthSession{}, fmt.Errorf("failed to decode session: %w", err)
	}

	return session, nil
}
