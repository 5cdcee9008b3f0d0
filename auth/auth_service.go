package auth

import (
	"context"
	"fmt"

	errs "github.com/softzcar/ninesys-msg/internal/errors"
)

// CredentialsVerifier checks a username/password pair against the system of
// record. The production implementation calls the main business API.
type CredentialsVerifier interface {
	// Verify returns whether the credentials grant access to this system.
	Verify(ctx context.Context, username, password string) (bool, error)
}

// Service authenticates dashboard users and issues the bearer tokens the
// API routes require.
type Service struct {
	verifier CredentialsVerifier
	tokens   *TokenManager
}

func NewService(verifier CredentialsVerifier, tokens *TokenManager) (*Service, error) {
	if verifier == nil {
		return nil, fmt.Errorf("[auth NewService] credentials verifier is required")
	}
	if tokens == nil {
		return nil, fmt.Errorf("[auth NewService] token manager is required")
	}
	return &Service{verifier: verifier, tokens: tokens}, nil
}

// Login verifies the credentials against the main API and returns a signed
// token. Users the main API knows but does not grant access to are rejected
// with ErrAccessDenied.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", fmt.Errorf("%w: username and password are required", errs.ErrInvalidCredentials)
	}

	access, err := s.verifier.Verify(ctx, username, password)
	if err != nil {
		return "", errs.Wrapf(err, "verifying credentials for %q", username)
	}
	if !access {
		return "", fmt.Errorf("%w: user %q is not an administrator", errs.ErrAccessDenied, username)
	}

	token, err := s.tokens.Create(username)
	if err != nil {
		return "", errs.Wrapf(err, "creating token for %q", username)
	}
	return token, nil
}

// Authenticate validates a bearer token and returns the username it was
// issued to.
func (s *Service) Authenticate(token string) (string, error) {
	return s.tokens.Verify(token)
}
