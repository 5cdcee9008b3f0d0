package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/softzcar/ninesys-msg/templates"
)

type sendMessageRequest struct {
	Tenant  string `json:"tenant"`
	Phone   string `json:"phone"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (req sendMessageRequest) validate() string {
	switch {
	case req.Tenant == "":
		return "tenant is required"
	case req.Phone == "":
		return "phone is required"
	case req.Message == "":
		return "message is required"
	}
	return ""
}

// body prefixes the message with a greeting when a customer name is given.
func (req sendMessageRequest) body() string {
	if req.Name == "" {
		return req.Message
	}
	return fmt.Sprintf("Hola %s, %s", req.Name, req.Message)
}

// SendMessageHandler delivers a message through the tenant's session and
// waits for the result.
func (s *Server) SendMessageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		if err := s.manager.Send(r.Context(), req.Tenant, req.Phone, req.body()); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"tenant":  req.Tenant,
			"message": "message sent",
		})
	}
}

// SendMessageAsyncHandler verifies the session is ready, queues the message,
// and returns immediately.
func (s *Server) SendMessageAsyncHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		if err := s.manager.SendAsync(r.Context(), req.Tenant, req.Phone, req.body()); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusAccepted, map[string]string{
			"tenant":  req.Tenant,
			"message": "message queued",
		})
	}
}

type sendTemplateRequest struct {
	Tenant   string                 `json:"tenant"`
	Phone    string                 `json:"phone"`
	Template string                 `json:"template"`
	Data     map[string]interface{} `json:"data"`
}

// SendTemplateHandler renders a named message template with the request
// payload and delivers the result through the tenant's session.
func (s *Server) SendTemplateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sendTemplateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		switch {
		case req.Tenant == "":
			writeError(w, http.StatusBadRequest, "tenant is required")
			return
		case req.Phone == "":
			writeError(w, http.StatusBadRequest, "phone is required")
			return
		case req.Template == "":
			writeError(w, http.StatusBadRequest, "template is required")
			return
		}

		body, err := templates.Render(req.Template, req.Data)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		if err := s.manager.Send(r.Context(), req.Tenant, req.Phone, body); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"tenant":   req.Tenant,
			"template": req.Template,
			"message":  "message sent",
		})
	}
}
