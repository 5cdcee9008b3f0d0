// Package wmeow backs a session with a real WhatsApp connection through
// the whatsmeow library. Each tenant gets its own sqlite credential store
// under the credential folder, so a linked device survives restarts.
package wmeow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	"google.golang.org/protobuf/proto"

	errs "github.com/softzcar/ninesys-msg/internal/errors"
	"github.com/softzcar/ninesys-msg/sessions"
	"github.com/softzcar/ninesys-msg/whatsapp"
)

const credentialDBName = "whatsmeow.db"

// Client implements sessions.Client on top of a whatsmeow connection.
type Client struct {
	tenantID string
	handlers sessions.Handlers
	store    *whatsapp.FolderStore
	log      zerolog.Logger

	mu        sync.Mutex
	wa        *whatsmeow.Client
	container *sqlstore.Container
}

var _ sessions.Client = (*Client)(nil)

// NewFactory returns a session factory producing whatsmeow-backed clients
// that keep their credentials under the given folder store.
func NewFactory(store *whatsapp.FolderStore, log zerolog.Logger) sessions.Factory {
	return func(tenantID string, h sessions.Handlers) (sessions.Client, error) {
		if store == nil {
			return nil, fmt.Errorf("[wmeow NewFactory] folder store is required")
		}
		return &Client{
			tenantID: tenantID,
			handlers: h,
			store:    store,
			log:      log.With().Str("component", "wmeow").Str("tenant", tenantID).Logger(),
		}, nil
	}
}

// Start opens the tenant's credential store and connects. When no device is
// linked yet the QR channel is pumped into the QR handler until pairing
// succeeds or times out.
func (c *Client) Start(ctx context.Context) error {
	dir := c.store.Path(c.tenantID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errs.Wrapf(err, "creating credential folder for tenant %q", c.tenantID)
	}

	dsn := fmt.Sprintf("file:%s?_foreign_keys=on", filepath.Join(dir, credentialDBName))
	container, err := sqlstore.New("sqlite3", dsn, newDBLogger(c.log))
	if err != nil {
		return errs.Wrapf(err, "opening credential store for tenant %q", c.tenantID)
	}

	device, err := container.GetFirstDevice()
	if err != nil {
		_ = container.Close()
		return errs.Wrapf(err, "loading device for tenant %q", c.tenantID)
	}

	wa := whatsmeow.NewClient(device, newClientLogger(c.log))
	wa.AddEventHandler(c.handleEvent)

	c.mu.Lock()
	c.wa = wa
	c.container = container
	c.mu.Unlock()

	if wa.Store.ID == nil {
		// No linked device yet. The QR channel must be requested before
		// connecting.
		qrChan, err := wa.GetQRChannel(context.Background())
		if err != nil {
			return errs.Wrapf(err, "requesting QR channel for tenant %q", c.tenantID)
		}
		go c.pumpQR(qrChan)
	}

	if err := wa.Connect(); err != nil {
		return errs.Wrapf(err, "connecting tenant %q", c.tenantID)
	}
	return nil
}

func (c *Client) pumpQR(ch <-chan whatsmeow.QRChannelItem) {
	for item := range ch {
		switch item.Event {
		case "code":
			if c.handlers.QR != nil {
				c.handlers.QR(item.Code)
			}
		case "timeout":
			if c.handlers.AuthFailed != nil {
				c.handlers.AuthFailed("QR scan timed out")
			}
		case "success":
			// PairSuccess arrives through the event handler
		default:
			if c.handlers.StateChanged != nil {
				c.handlers.StateChanged(item.Event)
			}
		}
	}
}

func (c *Client) handleEvent(evt interface{}) {
	switch e := evt.(type) {
	case *events.Connected:
		if c.handlers.Ready != nil {
			c.handlers.Ready()
		}
	case *events.PairSuccess:
		if c.handlers.Authenticated != nil {
			c.handlers.Authenticated()
		}
	case *events.LoggedOut:
		if c.handlers.AuthFailed != nil {
			c.handlers.AuthFailed(fmt.Sprintf("logged out by the device (reason %d)", int(e.Reason)))
		}
	case *events.ConnectFailure:
		if c.handlers.AuthFailed != nil {
			c.handlers.AuthFailed(fmt.Sprintf("connect failure: %v", e.Reason))
		}
	case *events.StreamReplaced:
		if c.handlers.Disconnected != nil {
			c.handlers.Disconnected("stream replaced by another connection")
		}
	case *events.Disconnected:
		if c.handlers.Disconnected != nil {
			c.handlers.Disconnected("connection lost")
		}
	}
}

// Stop drops the connection but keeps the device link, so the next Start
// reconnects without a new QR scan.
func (c *Client) Stop(ctx context.Context) error {
	c.mu.Lock()
	wa, container := c.wa, c.container
	c.wa, c.container = nil, nil
	c.mu.Unlock()

	if wa != nil {
		wa.Disconnect()
	}
	if container != nil {
		if err := container.Close(); err != nil {
			return errs.Wrapf(err, "closing credential store for tenant %q", c.tenantID)
		}
	}
	return nil
}

// Logout unlinks the device on the WhatsApp side and drops the connection.
func (c *Client) Logout(ctx context.Context) error {
	c.mu.Lock()
	wa, container := c.wa, c.container
	c.wa, c.container = nil, nil
	c.mu.Unlock()

	if wa == nil {
		return nil
	}
	err := wa.Logout()
	wa.Disconnect()
	if container != nil {
		_ = container.Close()
	}
	if err != nil {
		return errs.Wrapf(err, "logging out tenant %q", c.tenantID)
	}
	return nil
}

// SendMessage delivers a plain text message to a phone number.
func (c *Client) SendMessage(ctx context.Context, to, body string) error {
	wa, err := c.connection()
	if err != nil {
		return err
	}

	phone := normalizePhone(to)
	if phone == "" {
		return fmt.Errorf("%w: empty recipient phone number", errs.ErrInvalidRequest)
	}

	jid := types.NewJID(phone, types.DefaultUserServer)
	_, err = wa.SendMessage(ctx, jid, &waE2E.Message{Conversation: proto.String(body)})
	if err != nil {
		return errs.Wrapf(err, "sending message to %s", jid)
	}
	return nil
}

// FetchChats lists the groups the linked device participates in.
func (c *Client) FetchChats(ctx context.Context) ([]sessions.Chat, error) {
	wa, err := c.connection()
	if err != nil {
		return nil, err
	}

	groups, err := wa.GetJoinedGroups()
	if err != nil {
		return nil, errs.Wrapf(err, "fetching groups for tenant %q", c.tenantID)
	}

	chats := make([]sessions.Chat, 0, len(groups))
	for _, g := range groups {
		chats = append(chats, sessions.Chat{ID: g.JID.String(), Name: g.Name})
	}
	return chats, nil
}

func (c *Client) connection() (*whatsmeow.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.wa == nil {
		return nil, fmt.Errorf("%w: tenant %q has no active connection", errs.ErrNotReady, c.tenantID)
	}
	return c.wa, nil
}

// normalizePhone strips the formatting characters commonly found in stored
// phone numbers ("+58 412-555.1234" becomes "584125551234").
func normalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '+', ' ', '-', '.', '(', ')':
			return -1
		}
		return r
	}, phone)
}
