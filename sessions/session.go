package sessions

import "time"

// State is the lifecycle state of a tenant's messaging session.
type State string

const (
	// StateInitializing means an adapter start has been issued and no
	// terminal event has arrived yet.
	StateInitializing State = "INITIALIZING"
	// StateAwaitingScan means the adapter produced a scan payload and is
	// waiting for the companion app to link the device.
	StateAwaitingScan State = "AWAITING_SCAN"
	// StateReady means the session is authenticated and can send messages.
	StateReady State = "READY"
	// StateAuthFailed means the messaging network rejected the credentials.
	StateAuthFailed State = "AUTH_FAILED"
	// StateError means the adapter could not be started.
	StateError State = "ERROR"
	// StateDisconnected means the session lost or gave up its connection.
	// The record survives and can be re-initialized.
	StateDisconnected State = "DISCONNECTED"
)

// Record tracks the in-memory session state for one tenant. A record is
// created on first initialization and lives until an explicit delete.
type Record struct {
	TenantID  string
	State     State
	QR        string // scan payload, only set while awaiting scan
	LastError string // cleared whenever initialization is (re)attempted
	Detail    string // free-form adapter-reported sub-state, observability only
	UpdatedAt time.Time

	// Client is the live adapter connection, nil when none is running.
	// The lifecycle manager exclusively owns it: other components may
	// invoke its send/query operations but must never store or replace it.
	Client Client
}
