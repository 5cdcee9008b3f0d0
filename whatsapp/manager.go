package whatsapp

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	errs "github.com/softzcar/ninesys-msg/internal/errors"
	"github.com/softzcar/ninesys-msg/sessions"
)

// Timing defaults, overridable through ManagerConfig.
const (
	defaultPollInterval  = 500 * time.Millisecond
	defaultStatusTimeout = 30 * time.Second
	defaultRecoveryDelay = 2 * time.Second
	teardownTimeout      = 10 * time.Second
)

// ManagerConfig carries the timing knobs for the lifecycle manager.
type ManagerConfig struct {
	PollInterval  time.Duration // status sampling interval
	StatusTimeout time.Duration // default bound for AwaitStatus
	RecoveryDelay time.Duration // pacing between bulk-recovery starts
	SendDelay     time.Duration // optional settle delay before each send
}

func (c *ManagerConfig) applyDefaults() {
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.StatusTimeout <= 0 {
		c.StatusTimeout = defaultStatusTimeout
	}
	if c.RecoveryDelay <= 0 {
		c.RecoveryDelay = defaultRecoveryDelay
	}
}

// Manager orchestrates per-tenant session lifecycles against the registry
// and the client adapter. It is the only component that starts, stops, or
// replaces adapter instances.
type Manager struct {
	repo    sessions.Repo
	factory sessions.Factory
	store   CredentialStore
	cfg     ManagerConfig
	log     zerolog.Logger
}

// NewManager creates a lifecycle manager over the given registry, adapter
// factory, and credential store.
func NewManager(repo sessions.Repo, factory sessions.Factory, store CredentialStore, cfg ManagerConfig, log zerolog.Logger) *Manager {
	cfg.applyDefaults()
	return &Manager{
		repo:    repo,
		factory: factory,
		store:   store,
		cfg:     cfg,
		log:     log.With().Str("component", "whatsapp-manager").Logger(),
	}
}

// Initialize creates the tenant's session record and starts its adapter.
// It is idempotent and non-blocking: when the tenant already has a live
// adapter, or a start is already in flight, the call returns immediately
// without side effects. Adapter start failures are recorded on the session,
// not returned.
func (m *Manager) Initialize(ctx context.Context, tenantID string) error {
	if err := validTenantID(tenantID); err != nil {
		return err
	}

	// Claim the single initialization slot atomically: a record in
	// INITIALIZING, or holding a live client, is already taken care of.
	claimed := false
	m.repo.Upsert(tenantID, func(r *sessions.Record) {
		if r.Client != nil || r.State == sessions.StateInitializing {
			return
		}
		claimed = true
		r.State = sessions.StateInitializing
		r.QR = ""
		r.LastError = ""
	})
	if !claimed {
		return nil
	}

	m.log.Info().Str("tenant", tenantID).Msg("initializing session")
	m.spawn(tenantID)
	return nil
}

// ownerRef lets event handlers identify the adapter they belong to. It is
// filled in once the factory returns, before the adapter is started, so
// events from a replaced adapter can be recognized and dropped.
type ownerRef struct {
	client sessions.Client
}

// spawn builds a fresh adapter for the tenant, attaches it to the record,
// and issues the asynchronous start. The caller must already hold the
// INITIALIZING claim for the tenant.
func (m *Manager) spawn(tenantID string) {
	owner := &ownerRef{}
	client, err := m.factory(tenantID, m.handlers(tenantID, owner))
	if err != nil {
		m.log.Error().Err(err).Str("tenant", tenantID).Msg("failed to construct adapter")
		_ = m.repo.Update(tenantID, func(r *sessions.Record) {
			r.State = sessions.StateError
			r.LastError = fmt.Sprintf("adapter construction failed: %v", err)
			r.Client = nil
			r.QR = ""
		})
		return
	}

	owner.client = client
	if err := m.repo.Update(tenantID, func(r *sessions.Record) {
		r.Client = client
	}); err != nil {
		// Record deleted between the claim and the attach; don't start.
		return
	}

	go func() {
		if err := client.Start(context.Background()); err != nil {
			m.log.Error().Err(err).Str("tenant", tenantID).Msg("adapter start failed")
			_ = m.repo.Update(tenantID, func(r *sessions.Record) {
				if r.Client != client {
					return // already replaced by a restart
				}
				r.Client = nil
				r.State = sessions.StateError
				r.LastError = fmt.Sprintf("%v: %v", errs.ErrAdapterStartFailure, err)
				r.QR = ""
			})
		}
	}()
}

// handlers wires the adapter's lifecycle events to registry mutations for
// one tenant. Each callback is a fast critical section. Events from an
// adapter that is no longer attached to the record (replaced by restart,
// dropped by disconnect) are ignored.
func (m *Manager) handlers(tenantID string, owner *ownerRef) sessions.Handlers {
	// apply runs mutate only while the event's adapter is still the one
	// attached to the record. Update never creates a record, so events
	// arriving after a delete are dropped.
	apply := func(mutate func(*sessions.Record)) {
		_ = m.repo.Update(tenantID, func(r *sessions.Record) {
			if owner.client == nil || r.Client != owner.client {
				return
			}
			mutate(r)
		})
	}

	var h sessions.Handlers
	h.QR = func(payload string) {
		m.log.Debug().Str("tenant", tenantID).Msg("scan payload received")
		apply(func(r *sessions.Record) {
			if r.State != sessions.StateInitializing && r.State != sessions.StateAwaitingScan {
				return
			}
			r.State = sessions.StateAwaitingScan
			r.QR = payload
		})
	}
	h.Authenticated = func() {
		m.log.Info().Str("tenant", tenantID).Msg("session authenticated")
		apply(func(r *sessions.Record) {
			r.Detail = "authenticated"
		})
	}
	h.Ready = func() {
		m.log.Info().Str("tenant", tenantID).Msg("session ready")
		apply(func(r *sessions.Record) {
			r.State = sessions.StateReady
			r.QR = ""
			r.LastError = ""
		})
	}
	h.AuthFailed = func(reason string) {
		m.log.Warn().Str("tenant", tenantID).Str("reason", reason).Msg("session auth failed")
		apply(func(r *sessions.Record) {
			r.State = sessions.StateAuthFailed
			r.LastError = fmt.Sprintf("%v: %s", errs.ErrAuthFailure, reason)
			r.QR = ""
		})
	}
	h.Disconnected = func(reason string) {
		m.log.Warn().Str("tenant", tenantID).Str("reason", reason).Msg("session disconnected")
		apply(func(r *sessions.Record) {
			if r.State != sessions.StateReady && r.State != sessions.StateAwaitingScan {
				return
			}
			r.State = sessions.StateDisconnected
			r.LastError = fmt.Sprintf("%v: %s", errs.ErrDisconnected, reason)
			r.QR = ""
		})
	}
	h.StateChanged = func(detail string) {
		apply(func(r *sessions.Record) {
			r.Detail = detail
		})
	}
	return h
}

// Restart tears down the tenant's adapter (best effort) and starts a fresh
// one in place, keeping the record. Returns ErrSessionNotFound for unknown
// tenants; the new session's progress is observed via AwaitStatus.
func (m *Manager) Restart(ctx context.Context, tenantID string) error {
	if err := validTenantID(tenantID); err != nil {
		return err
	}
	if _, err := m.repo.Get(tenantID); err != nil {
		return err
	}

	var old sessions.Client
	m.repo.Upsert(tenantID, func(r *sessions.Record) {
		old = r.Client
		r.Client = nil
		r.State = sessions.StateInitializing
		r.QR = ""
		r.LastError = ""
	})

	m.log.Info().Str("tenant", tenantID).Msg("restarting session")
	m.teardown(tenantID, old, false)
	m.spawn(tenantID)
	return nil
}

// Disconnect logs the tenant out and drops the adapter handle. The record
// survives in DISCONNECTED and can be re-initialized later.
func (m *Manager) Disconnect(ctx context.Context, tenantID string) error {
	if err := validTenantID(tenantID); err != nil {
		return err
	}
	if _, err := m.repo.Get(tenantID); err != nil {
		return err
	}

	var old sessions.Client
	m.repo.Upsert(tenantID, func(r *sessions.Record) {
		old = r.Client
		r.Client = nil
		r.State = sessions.StateDisconnected
		r.QR = ""
		r.LastError = ""
	})

	m.log.Info().Str("tenant", tenantID).Msg("disconnecting session")
	m.teardown(tenantID, old, true)
	return nil
}

// Delete disconnects the tenant, removes its record, and erases its
// persisted credentials. Works even when the adapter was never started.
// Unexpected storage failures are surfaced to the caller.
func (m *Manager) Delete(ctx context.Context, tenantID string) error {
	if err := validTenantID(tenantID); err != nil {
		return err
	}

	rec, err := m.repo.Get(tenantID)
	if err == nil && rec.Client != nil {
		// Detach first so concurrent commands observe a dying session.
		var old sessions.Client
		m.repo.Upsert(tenantID, func(r *sessions.Record) {
			old = r.Client
			r.Client = nil
			r.State = sessions.StateDisconnected
			r.QR = ""
		})
		m.teardown(tenantID, old, true)
	}

	m.repo.Remove(tenantID)
	if err := m.store.Remove(tenantID); err != nil {
		return err
	}
	m.log.Info().Str("tenant", tenantID).Msg("session deleted")
	return nil
}

// ListAll returns a snapshot of every session record.
func (m *Manager) ListAll() []sessions.Record {
	return m.repo.List()
}

// Shutdown stops every live adapter, keeping device links so sessions can
// be recovered on the next boot. Used on process exit.
func (m *Manager) Shutdown(ctx context.Context) {
	for _, rec := range m.repo.List() {
		if rec.Client == nil {
			continue
		}
		tenantID := rec.TenantID
		var old sessions.Client
		m.repo.Upsert(tenantID, func(r *sessions.Record) {
			old = r.Client
			r.Client = nil
			r.State = sessions.StateDisconnected
		})
		if old == nil {
			continue
		}
		if err := old.Stop(ctx); err != nil {
			m.log.Warn().Err(err).Str("tenant", tenantID).Msg("adapter stop failed during shutdown")
		}
	}
}

// teardown stops or logs out an old adapter handle. Failures are logged and
// swallowed: forward progress takes priority over surfacing teardown errors.
func (m *Manager) teardown(tenantID string, old sessions.Client, logout bool) {
	if old == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), teardownTimeout)
	defer cancel()

	var err error
	if logout {
		err = old.Logout(ctx)
	} else {
		err = old.Stop(ctx)
	}
	if err != nil {
		m.log.Warn().Err(err).Str("tenant", tenantID).Bool("logout", logout).Msg("adapter teardown failed")
	}
}
