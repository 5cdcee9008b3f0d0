package whatsapp_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/softzcar/ninesys-msg/internal/errors"
	"github.com/softzcar/ninesys-msg/sessions"
)

func TestAwaitStatusInitializesUnknownTenant(t *testing.T) {
	t.Parallel()
	f := setupTestFixture(t)

	done := make(chan struct{})
	go func() {
		defer close(done)
		f.manager.AwaitStatus(context.Background(), "acme", 500*time.Millisecond)
	}()

	require.Eventually(t, func() bool {
		return f.factory.Created("acme") == 1
	}, time.Second, 5*time.Millisecond)
	<-done
}

func TestAwaitStatusTimesOutWhenAdapterStaysSilent(t *testing.T) {
	t.Parallel()
	f := setupTestFixture(t)

	start := time.Now()
	snap := f.manager.AwaitStatus(context.Background(), "acme", 200*time.Millisecond)
	elapsed := time.Since(start)

	assert.False(t, snap.Ready)
	assert.Equal(t, errs.ErrTimeout.Error(), snap.Error)
	assert.Equal(t, sessions.StateInitializing, snap.State)
	assert.GreaterOrEqual(t, elapsed, 200*time.Millisecond)
	assert.Less(t, elapsed, time.Second, "await must not overshoot the bound by much")
}

func TestAwaitStatusReturnsQRSnapshot(t *testing.T) {
	t.Parallel()
	f := setupTestFixture(t)

	require.NoError(t, f.manager.Initialize(context.Background(), "acme"))
	go func() {
		time.Sleep(30 * time.Millisecond)
		f.factory.Last("acme").EmitQR("QR123")
	}()

	snap := f.manager.AwaitStatus(context.Background(), "acme", 2*time.Second)
	assert.False(t, snap.Ready)
	assert.Equal(t, "QR123", snap.QR)
	assert.Equal(t, sessions.StateAwaitingScan, snap.State)
	assert.Empty(t, snap.Error)
}

func TestAwaitStatusReturnsReadySnapshot(t *testing.T) {
	t.Parallel()
	f := setupTestFixture(t)

	require.NoError(t, f.manager.Initialize(context.Background(), "acme"))
	f.factory.Last("acme").EmitQR("QR123")
	f.factory.Last("acme").EmitReady()

	start := time.Now()
	snap := f.manager.AwaitStatus(context.Background(), "acme", 2*time.Second)

	assert.True(t, snap.Ready)
	assert.Empty(t, snap.QR, "ready snapshot must not carry a QR payload")
	assert.Empty(t, snap.Error)
	assert.Less(t, time.Since(start), 100*time.Millisecond, "terminal state must be reported within one sampling interval")
}

func TestAwaitStatusReturnsErrorSnapshot(t *testing.T) {
	t.Parallel()
	f := setupTestFixture(t)

	require.NoError(t, f.manager.Initialize(context.Background(), "acme"))
	f.factory.Last("acme").EmitAuthFailed("device banned")

	snap := f.manager.AwaitStatus(context.Background(), "acme", 2*time.Second)
	assert.False(t, snap.Ready)
	assert.Equal(t, sessions.StateAuthFailed, snap.State)
	assert.Contains(t, snap.Error, "device banned")
}

func TestAwaitStatusHonoursContextCancellation(t *testing.T) {
	t.Parallel()
	f := setupTestFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	snap := f.manager.AwaitStatus(ctx, "acme", 5*time.Second)

	assert.NotEmpty(t, snap.Error)
	assert.Less(t, time.Since(start), time.Second)
}

func TestAwaitStatusInvalidTenant(t *testing.T) {
	t.Parallel()
	f := setupTestFixture(t)

	snap := f.manager.AwaitStatus(context.Background(), "", time.Second)
	assert.NotEmpty(t, snap.Error)
	assert.Zero(t, f.factory.Created(""))
}

func TestStatusWithoutWaiting(t *testing.T) {
	t.Parallel()
	f := setupTestFixture(t)

	snap := f.manager.Status("ghost")
	assert.Equal(t, errs.ErrSessionNotFound.Error(), snap.Error)

	require.NoError(t, f.manager.Initialize(context.Background(), "acme"))
	f.factory.Last("acme").EmitReady()

	snap = f.manager.Status("acme")
	assert.True(t, snap.Ready)
	assert.Equal(t, sessions.StateReady, snap.State)
}
