// Package dashboard builds signed links to the per-user web dashboard.
package dashboard

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNotConfigured = errors.New("dashboard url not configured")
	ErrInvalidToken  = errors.New("invalid dashboard token")
)

// Signer issues dashboard links. With an empty secret links carry the
// owner in plain text as ?user=.
type Signer struct {
	baseURL string
	secret  []byte
	ttl     time.Duration
	now     func() time.Time
}

func NewSigner(baseURL, secret string, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Signer{
		baseURL: strings.TrimSpace(baseURL),
		secret:  []byte(secret),
		ttl:     ttl,
		now:     time.Now,
	}
}

// WithClock replaces the time source; used in tests.
func (s *Signer) WithClock(now func() time.Time) *Signer {
	s.now = now
	return s
}

// DashboardLink returns the dashboard URL for owner.
func (s *Signer) DashboardLink(owner string) (string, error) {
	if s.baseURL == "" {
		return "", ErrNotConfigured
	}
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse dashboard url: %w", err)
	}

	q := u.Query()
	if len(s.secret) == 0 {
		q.Set("user", owner)
	} else {
		token, err := s.Token(owner)
		if err != nil {
			return "", err
		}
		q.Set("token", token)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Token signs an HS256 token whose subject is owner.
func (s *Signer) Token(owner string) (string, error) {
	if len(s.secret) == 0 {
		return "", errors.New("sign dashboard token: missing secret")
	}
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   owner,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign dashboard token: %w", err)
	}
	return signed, nil
}

// Verify returns the owner a token was issued for.
func (s *Signer) Verify(token string) (string, error) {
	if len(s.secret) == 0 {
		return "", fmt.Errorf("%w: signing disabled", ErrInvalidToken)
	}
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// Enabled reports whether links are signed.
func (s *Signer) Enabled() bool { return len(s.secret) > 0 }
