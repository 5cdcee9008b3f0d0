package whatsapp

import (
	"context"
	"time"

	errs "github.com/softzcar/ninesys-msg/internal/errors"
	"github.com/softzcar/ninesys-msg/sessions"
)

// StatusSnapshot is the structured answer to a status query. It is always
// returned, never an error, so polling clients can render a stable status.
type StatusSnapshot struct {
	TenantID string         `json:"tenant"`
	Ready    bool           `json:"ready"`
	QR       string         `json:"qr,omitempty"`
	State    sessions.State `json:"state"`
	Detail   string         `json:"detail,omitempty"`
	Message  string         `json:"message"`
	Error    string         `json:"error,omitempty"`
}

// AwaitStatus waits for the tenant's session to reach a reportable state:
// ready, scan payload available, a terminal error, or the timeout. Unknown
// tenants are initialized first. The wait samples the registry every poll
// interval; latency is bounded by that interval. A timeout never cancels
// the underlying initialization, which keeps running in the background.
func (m *Manager) AwaitStatus(ctx context.Context, tenantID string, timeout time.Duration) StatusSnapshot {
	if err := validTenantID(tenantID); err != nil {
		return StatusSnapshot{TenantID: tenantID, Message: "invalid tenant id", Error: err.Error()}
	}
	if timeout <= 0 {
		timeout = m.cfg.StatusTimeout
	}

	if _, err := m.repo.Get(tenantID); err != nil {
		if err := m.Initialize(ctx, tenantID); err != nil {
			return StatusSnapshot{TenantID: tenantID, Message: "failed to initialize session", Error: err.Error()}
		}
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	tick := time.NewTicker(m.cfg.PollInterval)
	defer tick.Stop()

	for {
		rec, err := m.repo.Get(tenantID)
		if err == nil {
			if snap, done := snapshotOf(rec); done {
				return snap
			}
		}

		select {
		case <-ctx.Done():
			return StatusSnapshot{
				TenantID: tenantID,
				State:    stateOf(m.repo, tenantID),
				Message:  "status query cancelled",
				Error:    ctx.Err().Error(),
			}
		case <-deadline.C:
			return StatusSnapshot{
				TenantID: tenantID,
				State:    stateOf(m.repo, tenantID),
				Message:  "session did not become ready in time",
				Error:    errs.ErrTimeout.Error(),
			}
		case <-tick.C:
		}
	}
}

// Status returns the current snapshot without waiting.
func (m *Manager) Status(tenantID string) StatusSnapshot {
	rec, err := m.repo.Get(tenantID)
	if err != nil {
		return StatusSnapshot{TenantID: tenantID, Message: "no session for tenant", Error: errs.ErrSessionNotFound.Error()}
	}
	snap, _ := snapshotOf(rec)
	return snap
}

// snapshotOf maps a record to a snapshot and reports whether the state is
// terminal for a status wait.
func snapshotOf(rec sessions.Record) (StatusSnapshot, bool) {
	snap := StatusSnapshot{
		TenantID: rec.TenantID,
		State:    rec.State,
		Detail:   rec.Detail,
	}
	switch rec.State {
	case sessions.StateReady:
		snap.Ready = true
		snap.Message = "session ready, messages can be sent"
		return snap, true
	case sessions.StateAwaitingScan:
		snap.QR = rec.QR
		snap.Message = "scan the QR code to link the device"
		return snap, true
	case sessions.StateAuthFailed, sessions.StateError:
		snap.Message = "session failed"
		snap.Error = rec.LastError
		return snap, true
	case sessions.StateDisconnected:
		snap.Message = "session disconnected"
		snap.Error = rec.LastError
		return snap, false
	default:
		snap.Message = "session is initializing"
		return snap, false
	}
}

func stateOf(repo sessions.Repo, tenantID string) sessions.State {
	rec, err := repo.Get(tenantID)
	if err != nil {
		return ""
	}
	return rec.State
}
