package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/softzcar/ninesys-msg/internal/qr"
)

// HealthHandler reports process liveness.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
			"app":    s.config.GetAppName(),
		})
	}
}

// PreflightHandler answers OPTIONS requests that carry no Origin header.
// Cross-origin preflights are answered by the CORS middleware before the
// request reaches this handler.
func (s *Server) PreflightHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// LoginHandler exchanges administrator credentials for a Bearer token.
// Credentials are accepted as JSON or as a urlencoded form.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if strings.HasPrefix(r.Header.Get("Content-Type"), contentTypeJSONPrefix) {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
		} else {
			if err := r.ParseForm(); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			req.Username = r.FormValue("username")
			req.Password = r.FormValue("password")
		}

		token, err := s.auth.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, loginResponse{Token: token, Username: req.Username})
	}
}

const contentTypeJSONPrefix = "application/json"

const qrPageTmpl = `<!DOCTYPE html>
<html>
<head><title>%s</title></head>
<body style="text-align:center;font-family:sans-serif">
<h1>%s</h1>
%s
</body>
</html>`

// QRPageHandler serves a minimal HTML page showing the pairing QR code for a
// tenant, so the code can be scanned from any browser.
func (s *Server) QRPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := r.PathValue("tenant")
		snap := s.manager.Status(tenantID)

		var body string
		switch {
		case snap.QR != "":
			uri, err := qr.DataURI(snap.QR, 0)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "failed to render QR code")
				return
			}
			body = fmt.Sprintf(`<p>Scan the code with WhatsApp to link this device.</p><img src=%q alt="QR code">`, uri)
		case snap.Ready:
			body = "<p>This session is already linked and ready.</p>"
		default:
			body = fmt.Sprintf("<p>No QR code available yet (state: %s). Refresh in a few seconds.</p>", snap.State)
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprintf(w, qrPageTmpl, s.config.GetAppName(), s.config.GetAppName(), body)
	}
}
