package auth

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	errs "github.com/softzcar/ninesys-msg/internal/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// TokenManager creates and verifies the HS256 bearer tokens used by the
// dashboard and external API callers.
type TokenManager struct {
	secret []byte
	expiry time.Duration
}

func NewTokenManager(secret string, expiry time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("[auth NewTokenManager] JWT_SECRET is not set")
	}
	if expiry <= 0 {
		expiry = time.Hour
	}
	return &TokenManager{secret: []byte(secret), expiry: expiry}, nil
}

// Create signs a token for the given username.
func (m *TokenManager) Create(username string) (string, error) {
	now := NowTimeFunc()
	claims := jwtlib.MapClaims{
		"username": username,
		"iat":      now.Unix(),
		"exp":      now.Add(m.expiry).Unix(),
		"jti":      uuid.New().String(),
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning the username claim.
func (m *TokenManager) Verify(rawToken string) (string, error) {
	token, err := jwtlib.Parse(rawToken, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return m.secret, nil
	}, jwtlib.WithTimeFunc(func() time.Time { return NowTimeFunc() }))
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: %v", errs.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return "", fmt.Errorf("%w: error extracting claims", errs.ErrInvalidToken)
	}
	username, _ := claims["username"].(string)
	if username == "" {
		return "", fmt.Errorf("%w: missing username claim", errs.ErrInvalidToken)
	}
	return username, nil
}
