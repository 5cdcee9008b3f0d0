package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softzcar/ninesys-msg/auth"
	errs "github.com/softzcar/ninesys-msg/internal/errors"
)

const (
	secretStr    = "test-secret-1234"
	testUsername = "admin"
	testPassword = "password123"
)

// fakeVerifier is a scripted CredentialsVerifier
type fakeVerifier struct {
	access bool
	err    error
	calls  int
}

func (f *fakeVerifier) Verify(ctx context.Context, username, password string) (bool, error) {
	f.calls++
	return f.access, f.err
}

func newService(t *testing.T, v *fakeVerifier) *auth.Service {
	t.Helper()
	tm, err := auth.NewTokenManager(secretStr, time.Hour)
	require.NoError(t, err)
	svc, err := auth.NewService(v, tm)
	require.NoError(t, err)
	return svc
}

func TestLoginIssuesToken(t *testing.T) {
	v := &fakeVerifier{access: true}
	svc := newService(t, v)

	token, err := svc.Login(context.Background(), testUsername, testPassword)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, 1, v.calls)

	username, err := svc.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, testUsername, username)
}

func TestLoginRejectsMissingCredentials(t *testing.T) {
	svc := newService(t, &fakeVerifier{access: true})

	_, err := svc.Login(context.Background(), "", testPassword)
	require.ErrorIs(t, err, errs.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), testUsername, "")
	require.ErrorIs(t, err, errs.ErrInvalidCredentials)
}

func TestLoginRejectsNonAdministrators(t *testing.T) {
	svc := newService(t, &fakeVerifier{access: false})

	_, err := svc.Login(context.Background(), testUsername, testPassword)
	require.ErrorIs(t, err, errs.ErrAccessDenied)
}

func TestLoginPropagatesVerifierFailure(t *testing.T) {
	verifierErr := errors.New("main API unreachable")
	svc := newService(t, &fakeVerifier{err: verifierErr})

	_, err := svc.Login(context.Background(), testUsername, testPassword)
	require.ErrorIs(t, err, verifierErr)
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	svc := newService(t, &fakeVerifier{access: true})

	_, err := svc.Authenticate("not-a-token")
	require.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestAuthenticateRejectsWrongSecret(t *testing.T) {
	otherTM, err := auth.NewTokenManager("other-secret", time.Hour)
	require.NoError(t, err)
	token, err := otherTM.Create(testUsername)
	require.NoError(t, err)

	svc := newService(t, &fakeVerifier{access: true})
	_, err = svc.Authenticate(token)
	require.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestAuthenticateRejectsExpiredToken(t *testing.T) {
	issued := time.Now().Add(-2 * time.Hour)
	auth.NowTimeFunc = func() time.Time { return issued }
	t.Cleanup(func() { auth.NowTimeFunc = time.Now })

	tm, err := auth.NewTokenManager(secretStr, time.Hour)
	require.NoError(t, err)
	token, err := tm.Create(testUsername)
	require.NoError(t, err)

	auth.NowTimeFunc = time.Now
	_, err = tm.Verify(token)
	require.ErrorIs(t, err, errs.ErrInvalidToken)
}

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	_, err := auth.NewTokenManager("", time.Hour)
	require.Error(t, err)
}
