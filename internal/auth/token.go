package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUnauthorized is returned for any token that is missing, malformed, forged or expired
var ErrUnauthorized = errors.New("unauthorized access")

const EmailClaim = "email"

type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*TokenService)

// WithClock replaces time.Now, used by tests to move past expiry
func WithClock(now func() time.Time) Option {
	return func(s *TokenService) {
		s.now = now
	}
}

func NewTokenService(secret string, ttl time.Duration, opts ...Option) *TokenService {
	s := &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue signs the caller's claims with HS256. exp and iat are always set by the service.
func (s *TokenService) Issue(claims map[string]interface{}) (string, error) {
	now := s.now()

	mapClaims := jwt.MapClaims{}
	for k, v := range claims {
		mapClaims[k] = v
	}
	mapClaims["iat"] = jwt.NewNumericDate(now)
	mapClaims["exp"] = jwt.NewNumericDate(now.Add(s.ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the decoded claims
func (s *TokenService) Verify(tokenString string) (map[string]interface{}, error) {
	if tokenString == "" {
		return nil, ErrUnauthorized
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrUnauthorized
	}

	return claims, nil
}

// EmailFromClaims extracts a non-empty email claim
func EmailFromClaims(claims map[string]interface{}) (string, bool) {
	email, ok := claims[EmailClaim].(string)
	if !ok || email == "" {
		return "", false
	}
	return email, true
}
