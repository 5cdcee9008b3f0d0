package whatsapp

import (
	"context"
	"fmt"
	"time"

	errs "github.com/softzcar/ninesys-msg/internal/errors"
	"github.com/softzcar/ninesys-msg/sessions"
)

// readyClient returns the tenant's live client when the session is READY,
// or a not-ready error carrying the current state for diagnostics.
func (m *Manager) readyClient(tenantID string) (sessions.Client, error) {
	rec, err := m.repo.Get(tenantID)
	if err != nil {
		return nil, err
	}
	if rec.State != sessions.StateReady || rec.Client == nil {
		return nil, fmt.Errorf("%w: tenant %q is %s", errs.ErrNotReady, tenantID, rec.State)
	}
	return rec.Client, nil
}

// Send delivers a message through the tenant's session and waits for the
// adapter's outcome. The session must be READY.
func (m *Manager) Send(ctx context.Context, tenantID, to, body string) error {
	client, err := m.readyClient(tenantID)
	if err != nil {
		return err
	}

	if m.cfg.SendDelay > 0 {
		// Settle delay carried over from operating on underpowered hosts,
		// where sends immediately after reconnect were unreliable.
		select {
		case <-time.After(m.cfg.SendDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if err := client.SendMessage(ctx, to, body); err != nil {
		m.log.Error().Err(err).Str("tenant", tenantID).Str("to", to).Msg("send failed")
		return fmt.Errorf("%w: %v", errs.ErrSendFailure, err)
	}
	m.log.Info().Str("tenant", tenantID).Str("to", to).Msg("message sent")
	return nil
}

// SendAsync checks the session is READY and dispatches the message without
// waiting for the adapter's delivery outcome. The caller is told dispatch
// was accepted; delivery failures are only logged. Callers that need an
// authoritative outcome should use Send.
func (m *Manager) SendAsync(ctx context.Context, tenantID, to, body string) error {
	if _, err := m.readyClient(tenantID); err != nil {
		return err
	}

	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		if err := m.Send(sendCtx, tenantID, to, body); err != nil {
			m.log.Error().Err(err).Str("tenant", tenantID).Str("to", to).Msg("async send failed")
		}
	}()
	return nil
}

// Chats lists the conversations visible to the tenant's session. The
// session must be READY.
func (m *Manager) Chats(ctx context.Context, tenantID string) ([]sessions.Chat, error) {
	client, err := m.readyClient(tenantID)
	if err != nil {
		return nil, err
	}
	chats, err := client.FetchChats(ctx)
	if err != nil {
		return nil, errs.Wrapf(err, "fetching chats for %q", tenantID)
	}
	return chats, nil
}
