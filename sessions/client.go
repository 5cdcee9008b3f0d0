package sessions

import "context"

// Chat is a conversation visible to a tenant's session.
type Chat struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Client is one tenant's connection to the messaging network. Start and the
// teardown operations may take seconds; callers must not invoke them while
// holding the registry lock.
type Client interface {
	// Start connects the client. For an unlinked device it triggers scan
	// payload generation; lifecycle progress is reported through Handlers.
	Start(ctx context.Context) error
	// Stop closes the connection but keeps the device link, so a later
	// Start resumes the same session.
	Stop(ctx context.Context) error
	// Logout unlinks the device and closes the connection. Best effort.
	Logout(ctx context.Context) error
	SendMessage(ctx context.Context, to, body string) error
	FetchChats(ctx context.Context) ([]Chat, error)
}

// Handlers receives lifecycle events from a Client. Callbacks are invoked
// from the client's own goroutines and must not block; nil callbacks are
// skipped by the client.
type Handlers struct {
	QR            func(payload string)
	Authenticated func()
	Ready         func()
	AuthFailed    func(reason string)
	Disconnected  func(reason string)
	StateChanged  func(detail string)
}

// Factory builds a Client for a tenant wired to the given event handlers.
type Factory func(tenantID string, h Handlers) (Client, error)
