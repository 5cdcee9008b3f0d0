package mainapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softzcar/ninesys-msg/internal/mainapi"
)

func TestVerifyCredentials(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/verify-credentials", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "admin", r.FormValue("username"))
		assert.Equal(t, "secret", r.FormValue("password"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access":true,"username":"admin"}`))
	}))
	defer srv.Close()

	client := mainapi.New(srv.URL + "/")
	resp, err := client.VerifyCredentials(context.Background(), "admin", "secret")
	require.NoError(t, err)
	assert.True(t, resp.Access)
	assert.Equal(t, "admin", resp.Username)
}

func TestVerifyCredentialsDenied(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access":false,"message":"not an administrator"}`))
	}))
	defer srv.Close()

	resp, err := mainapi.New(srv.URL).VerifyCredentials(context.Background(), "user", "secret")
	require.NoError(t, err)
	assert.False(t, resp.Access)
	assert.Equal(t, "not an administrator", resp.Message)
}

func TestVerifyCredentialsUnexpectedStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := mainapi.New(srv.URL).VerifyCredentials(context.Background(), "admin", "secret")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 500")
}
