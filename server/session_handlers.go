package server

import (
	"net/http"
	"time"

	"github.com/softzcar/ninesys-msg/internal/qr"
	"github.com/softzcar/ninesys-msg/sessions"
)

// StatusHandler waits for the tenant's session to reach a reportable state
// and returns the snapshot. An unknown tenant is initialized on first query,
// so clients can simply poll this endpoint until the QR code or READY
// appears. The wait can be shortened with a ?timeout= query parameter.
func (s *Server) StatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := r.PathValue("tenant")

		var timeout time.Duration
		if raw := r.URL.Query().Get("timeout"); raw != "" {
			parsed, err := time.ParseDuration(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid timeout value")
				return
			}
			timeout = parsed
		}

		snap := s.manager.AwaitStatus(r.Context(), tenantID, timeout)
		if snap.QR != "" {
			// The raw pairing payload is only useful rendered. Ship it as a
			// PNG data URI the frontend can drop into an <img> tag.
			if uri, err := qr.DataURI(snap.QR, 0); err == nil {
				snap.QR = uri
			}
		}
		writeJSON(w, http.StatusOK, snap)
	}
}

type sessionSummary struct {
	TenantID  string         `json:"tenant"`
	State     sessions.State `json:"state"`
	LastError string         `json:"last_error,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// SessionsListHandler lists every registered session and its state.
func (s *Server) SessionsListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records := s.manager.ListAll()
		summaries := make([]sessionSummary, 0, len(records))
		for _, rec := range records {
			summaries = append(summaries, sessionSummary{
				TenantID:  rec.TenantID,
				State:     rec.State,
				LastError: rec.LastError,
				UpdatedAt: rec.UpdatedAt,
			})
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"sessions": summaries})
	}
}

// SessionInitializeHandler starts a session for the tenant. Repeated calls
// while a session exists or is initializing are no-ops.
func (s *Server) SessionInitializeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := r.PathValue("tenant")
		if err := s.manager.Initialize(r.Context(), tenantID); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusAccepted, s.manager.Status(tenantID))
	}
}

// SessionRestartHandler tears down the tenant's current connection and
// starts a fresh one, keeping the device link.
func (s *Server) SessionRestartHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := r.PathValue("tenant")
		if err := s.manager.Restart(r.Context(), tenantID); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusAccepted, s.manager.Status(tenantID))
	}
}

// SessionDisconnectHandler logs the tenant's session out. The session record
// remains and can be re-initialized, which will require a new QR scan.
func (s *Server) SessionDisconnectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := r.PathValue("tenant")
		if err := s.manager.Disconnect(r.Context(), tenantID); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s.manager.Status(tenantID))
	}
}

// SessionDeleteHandler logs the session out and removes both the registry
// record and the stored credentials.
func (s *Server) SessionDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := r.PathValue("tenant")
		if err := s.manager.Delete(r.Context(), tenantID); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"tenant":  tenantID,
			"message": "session deleted",
		})
	}
}

// ChatsHandler lists the chats visible to the tenant's session.
func (s *Server) ChatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := r.PathValue("tenant")
		chats, err := s.manager.Chats(r.Context(), tenantID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"chats": chats})
	}
}
