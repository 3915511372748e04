package domain

import (
	"context"
	"time"
)

// OAuthSession keeps provider tokens on the server; clients only ever see ID.
type OAuthSession struct {
	ID           string    `json:"id"`
	Provider     string    `json:"provider"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type,omitempty"`
	ExpiresAt    time.Time `json:"expires_at,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// OAuthSessionView is the token-free projection returned over HTTP.
type OAuthSessionView struct {
	ID        string     `json:"id"`
	Provider  string     `json:"provider"`
	TokenType string     `json:"tokenType,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (s OAuthSession) View() OAuthSessionView {
	view := OAuthSessionView{
		ID:        s.ID,
		Provider:  s.Provider,
		TokenType: s.TokenType,
		CreatedAt: s.CreatedAt,
	}

	if !s.ExpiresAt.IsZero() {
		expiresAt := s.ExpiresAt
		view.ExpiresAt = &expiresAt
	}

	return view
}

type OAuthSessionManager interface {
	Create(ctx context.Context, session OAuthSession) (OAuthSession, error)
	Get(ctx context.Context, id string) (OAuthSession, error)
}
