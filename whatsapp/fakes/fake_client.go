package fakes

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/softzcar/ninesys-msg/sessions"
)

// FakeClient is a scripted stand-in for a messaging client. Tests drive the
// lifecycle by calling the Emit helpers, which invoke the handlers the
// lifecycle manager registered.
type FakeClient struct {
	TenantID string

	// Error injection, set before the client is used.
	StartErr error
	SendErr  error
	ChatsErr error
	Chats    []sessions.Chat

	handlers sessions.Handlers

	lock       sync.Mutex
	started    int
	stopped    int
	loggedOut  int
	sent       []SentMessage
	startedNow bool
}

type SentMessage struct {
	To   string
	Body string
}

var _ sessions.Client = (*FakeClient)(nil)

func (c *FakeClient) Start(ctx context.Context) error {
	c.lock.Lock()
	c.started++
	c.startedNow = c.StartErr == nil
	c.lock.Unlock()
	return c.StartErr
}

func (c *FakeClient) Stop(ctx context.Context) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.stopped++
	c.startedNow = false
	return nil
}

func (c *FakeClient) Logout(ctx context.Context) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.loggedOut++
	c.startedNow = false
	return nil
}

func (c *FakeClient) SendMessage(ctx context.Context, to, body string) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.SendErr != nil {
		return c.SendErr
	}
	if !c.startedNow {
		return errors.New("fake client not started")
	}
	c.sent = append(c.sent, SentMessage{To: to, Body: body})
	return nil
}

func (c *FakeClient) FetchChats(ctx context.Context) ([]sessions.Chat, error) {
	if c.ChatsErr != nil {
		return nil, c.ChatsErr
	}
	return c.Chats, nil
}

// Emit helpers drive the lifecycle from tests.

func (c *FakeClient) EmitQR(payload string) {
	if c.handlers.QR != nil {
		c.handlers.QR(payload)
	}
}

func (c *FakeClient) EmitAuthenticated() {
	if c.handlers.Authenticated != nil {
		c.handlers.Authenticated()
	}
}

func (c *FakeClient) EmitReady() {
	if c.handlers.Ready != nil {
		c.handlers.Ready()
	}
}

func (c *FakeClient) EmitAuthFailed(reason string) {
	if c.handlers.AuthFailed != nil {
		c.handlers.AuthFailed(reason)
	}
}

func (c *FakeClient) EmitDisconnected(reason string) {
	if c.handlers.Disconnected != nil {
		c.handlers.Disconnected(reason)
	}
}

func (c *FakeClient) EmitStateChanged(detail string) {
	if c.handlers.StateChanged != nil {
		c.handlers.StateChanged(detail)
	}
}

func (c *FakeClient) StartCalls() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.started
}

func (c *FakeClient) StopCalls() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.stopped
}

func (c *FakeClient) LogoutCalls() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.loggedOut
}

func (c *FakeClient) Sent() []SentMessage {
	c.lock.Lock()
	defer c.lock.Unlock()
	out := make([]SentMessage, len(c.sent))
	copy(out, c.sent)
	return out
}

// FakeFactory builds FakeClients and remembers every client it produced,
// so tests can assert how many adapters were started per tenant.
type FakeFactory struct {
	// ConstructErr makes the factory itself fail.
	ConstructErr error
	// Configure tweaks each new client before it is returned.
	Configure func(c *FakeClient)

	lock    sync.Mutex
	clients map[string][]*FakeClient
}

func NewFakeFactory() *FakeFactory {
	return &FakeFactory{clients: make(map[string][]*FakeClient)}
}

// New implements sessions.Factory.
func (f *FakeFactory) New(tenantID string, h sessions.Handlers) (sessions.Client, error) {
	if f.ConstructErr != nil {
		return nil, f.ConstructErr
	}
	c := &FakeClient{TenantID: tenantID, handlers: h}
	if f.Configure != nil {
		f.Configure(c)
	}
	f.lock.Lock()
	f.clients[tenantID] = append(f.clients[tenantID], c)
	f.lock.Unlock()
	return c, nil
}

// Clients returns every client created for a tenant, oldest first.
func (f *FakeFactory) Clients(tenantID string) []*FakeClient {
	f.lock.Lock()
	defer f.lock.Unlock()
	out := make([]*FakeClient, len(f.clients[tenantID]))
	copy(out, f.clients[tenantID])
	return out
}

// Created returns how many clients were built for a tenant.
func (f *FakeFactory) Created(tenantID string) int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return len(f.clients[tenantID])
}

// Last returns the most recently created client for a tenant, or nil.
func (f *FakeFactory) Last(tenantID string) *FakeClient {
	f.lock.Lock()
	defer f.lock.Unlock()
	cs := f.clients[tenantID]
	if len(cs) == 0 {
		return nil
	}
	return cs[len(cs)-1]
}
