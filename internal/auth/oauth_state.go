package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"
)

const DefaultStateTTL = 10 * time.Minute

var ErrEmptyStateSecret = errors.New("oauth state secret is empty")

// OAuthStateSigner issues and checks the state parameter of an authorization
// redirect. States are HS256 tokens bound to one provider with a short expiry.
type OAuthStateSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewOAuthStateSigner(secret string, ttl time.Duration) (*OAuthStateSigner, error) {
	if secret == "" {
		return nil, ErrEmptyStateSecret
	}

	if ttl <= 0 {
		ttl = DefaultStateTTL
	}

	return &OAuthStateSigner{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (s *OAuthStateSigner) Issue(provider string) (string, error) {
	issuedAt := s.now()

	claims := jwt.RegisteredClaims{
		ID:        xid.New().String(),
		Subject:   provider,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
	}

	state, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign oauth state: %w", err)
	}

	return state, nil
}

func (s *OAuthStateSigner) Verify(state, provider string) error {
	var claims jwt.RegisteredClaims

	_, err := jwt.ParseWithClaims(state, &claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithSubject(provider),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return fmt.Errorf("invalid oauth state: %w", err)
	}

	return nil
}
