package whatsapp_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/softzcar/ninesys-msg/internal/errors"
	"github.com/softzcar/ninesys-msg/sessions"
	"github.com/softzcar/ninesys-msg/whatsapp/fakes"
)

func TestSendRequiresReadySession(t *testing.T) {
	t.Parallel()
	f := setupTestFixture(t)

	err := f.manager.Send(context.Background(), "acme", "+15551234567", "hi")
	require.ErrorIs(t, err, errs.ErrSessionNotFound)

	require.NoError(t, f.manager.Initialize(context.Background(), "acme"))
	err = f.manager.Send(context.Background(), "acme", "+15551234567", "hi")
	require.ErrorIs(t, err, errs.ErrNotReady)
	assert.Contains(t, err.Error(), string(sessions.StateInitializing), "not-ready error must carry the current state")

	f.factory.Last("acme").EmitReady()
	require.NoError(t, f.manager.Send(context.Background(), "acme", "+15551234567", "hi"))

	sent := f.factory.Last("acme").Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "+15551234567", sent[0].To)
	assert.Equal(t, "hi", sent[0].Body)
}

func TestSendReportsAdapterFailure(t *testing.T) {
	t.Parallel()
	f := setupTestFixture(t)
	f.factory.Configure = func(c *fakes.FakeClient) {
		c.SendErr = errors.New("serialization glitch")
	}

	require.NoError(t, f.manager.Initialize(context.Background(), "acme"))
	f.factory.Last("acme").EmitReady()

	err := f.manager.Send(context.Background(), "acme", "+15551234567", "hi")
	require.ErrorIs(t, err, errs.ErrSendFailure)
	assert.Contains(t, err.Error(), "serialization glitch")
}

func TestSendAsyncAcceptsAndDeliversInBackground(t *testing.T) {
	t.Parallel()
	f := setupTestFixture(t)

	require.NoError(t, f.manager.Initialize(context.Background(), "acme"))
	f.factory.Last("acme").EmitReady()

	require.NoError(t, f.manager.SendAsync(context.Background(), "acme", "+15551234567", "hola"))

	require.Eventually(t, func() bool {
		return len(f.factory.Last("acme").Sent()) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestSendAsyncStillRequiresReadySession(t *testing.T) {
	t.Parallel()
	f := setupTestFixture(t)

	require.NoError(t, f.manager.Initialize(context.Background(), "acme"))
	err := f.manager.SendAsync(context.Background(), "acme", "+15551234567", "hola")
	require.ErrorIs(t, err, errs.ErrNotReady)
}

func TestChats(t *testing.T) {
	t.Parallel()
	f := setupTestFixture(t)
	f.factory.Configure = func(c *fakes.FakeClient) {
		c.Chats = []sessions.Chat{{ID: "123@g.us", Name: "Produccion"}}
	}

	_, err := f.manager.Chats(context.Background(), "acme")
	require.ErrorIs(t, err, errs.ErrSessionNotFound)

	require.NoError(t, f.manager.Initialize(context.Background(), "acme"))
	_, err = f.manager.Chats(context.Background(), "acme")
	require.ErrorIs(t, err, errs.ErrNotReady)

	f.factory.Last("acme").EmitReady()
	chats, err := f.manager.Chats(context.Background(), "acme")
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, "Produccion", chats[0].Name)
}
