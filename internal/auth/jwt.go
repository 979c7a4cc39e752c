package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vladimiradmaev/drink-helper/internal/common/clock"
)

// ErrInvalidToken is returned for malformed, expired or foreign tokens.
var ErrInvalidToken = errors.New("invalid token")

// TokenIssuer signs and verifies HS256 bearer tokens whose subject is the
// user id.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

// TokenIssuerConfig holds the dependencies of a TokenIssuer.
type TokenIssuerConfig struct {
	Secret string
	TTL    time.Duration
	Clock  clock.Clock
}

// NewTokenIssuer creates a TokenIssuer.
func NewTokenIssuer(cfg *TokenIssuerConfig) (*TokenIssuer, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Secret == "" {
		return nil, errors.New("secret cannot be empty")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("ttl must be positive")
	}
	c := cfg.Clock
	if c == nil {
		c = &clock.DefaultClock{}
	}
	return &TokenIssuer{secret: []byte(cfg.Secret), ttl: cfg.TTL, clock: c}, nil
}

// Issue signs a token for userID.
func (i *TokenIssuer) Issue(userID string) (string, time.Time, error) {
	if userID == "" {
		return "", time.Time{}, errors.New("user id cannot be empty")
	}
	now := i.clock.Now()
	expires := now.Add(i.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	})
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expires, nil
}

// Verify validates tokenString and returns its subject.
func (i *TokenIssuer) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.clock.Now))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
