package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenKind distinguishes short-lived access tokens from refresh tokens.
type TokenKind string

const (
	AccessToken  TokenKind = "access"
	RefreshToken TokenKind = "refresh"
)

var (
	// ErrInvalidToken covers bad signatures, malformed input, wrong signing
	// method and wrong token kind.
	ErrInvalidToken = errors.New("auth: invalid token")
	// ErrTokenExpired wraps ErrInvalidToken so callers may treat both alike.
	ErrTokenExpired = fmt.Errorf("%w: expired", ErrInvalidToken)
)

// Claims holds the typed JWT payload. Subject carries the username.
type Claims struct {
	Kind TokenKind `json:"typ"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 tokens.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenService builds a TokenService. now may be nil to use time.Now.
func NewTokenService(secret string, accessTTL, refreshTTL time.Duration, now func() time.Time) *TokenService {
	if now == nil {
		now = time.Now
	}
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        now,
	}
}

// IssueAccessToken creates a signed access token for subject.
func (s *TokenService) IssueAccessToken(subject string) (string, error) {
	return s.issue(subject, AccessToken, s.accessTTL)
}

// IssueRefreshToken creates a longer-lived token used to mint access tokens.
func (s *TokenService) IssueRefreshToken(subject string) (string, error) {
	return s.issue(subject, RefreshToken, s.refreshTTL)
}

func (s *TokenService) issue(subject string, kind TokenKind, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign %s token: %w", kind, err)
	}
	return signed, nil
}

// Verify parses raw, checks signature, expiry and kind, and returns the
// subject.
func (s *TokenService) Verify(raw string, kind TokenKind) (string, error) {
	if raw == "" {
		return "", ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Kind != kind || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
