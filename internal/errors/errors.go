package errors

import (
	"errors"
	"fmt"
)

// Common error types for the messaging gateway
var (
	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrNotReady        = errors.New("session not ready")

	// Adapter errors
	ErrAdapterStartFailure = errors.New("adapter failed to start")
	ErrAuthFailure         = errors.New("authentication failed")
	ErrDisconnected        = errors.New("session disconnected")
	ErrSendFailure         = errors.New("failed to send message")

	// Status query errors
	ErrTimeout = errors.New("timed out waiting for session status")

	// Credential storage errors
	ErrStorageFailure = errors.New("credential storage failure")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccessDenied       = errors.New("access denied")
	ErrInvalidToken       = errors.New("invalid token")

	// General errors
	ErrInvalidRequest   = errors.New("invalid request")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInternal         = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
