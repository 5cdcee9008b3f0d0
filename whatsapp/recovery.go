package whatsapp

import (
	"context"
	"time"
)

// RecoverAll initializes a session for every tenant with persisted
// credentials, sequentially with a fixed pacing delay so adapter starts do
// not pile up. A missing credential root means there is nothing to recover.
// Any other listing failure abandons recovery for this run; the process
// keeps serving. One tenant's failure never aborts the others.
func (m *Manager) RecoverAll(ctx context.Context) {
	tenants, err := m.store.ListTenants()
	if err != nil {
		m.log.Error().Err(err).Msg("bulk recovery abandoned: cannot list credential folders")
		return
	}
	if len(tenants) == 0 {
		m.log.Info().Msg("bulk recovery: no persisted sessions found")
		return
	}

	m.log.Info().Int("count", len(tenants)).Msg("bulk recovery: initializing persisted sessions")
	for i, tenantID := range tenants {
		if err := m.Initialize(ctx, tenantID); err != nil {
			m.log.Error().Err(err).Str("tenant", tenantID).Msg("bulk recovery: initialization failed")
		}
		if i == len(tenants)-1 {
			break
		}
		select {
		case <-time.After(m.cfg.RecoveryDelay):
		case <-ctx.Done():
			m.log.Warn().Err(ctx.Err()).Msg("bulk recovery interrupted")
			return
		}
	}
}
