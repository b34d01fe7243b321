package chatbot

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/awnationwide/lead-intake/pkg/logging"
)

// Handler handles HTTP requests for the chat widget.
type Handler struct {
	responder Responder
	fallback  Responder
	allowed   []string
	hasAI     bool
	bypass    bool
	logger    *logging.Logger
}

// NewHandler creates a new chat handler. The fallback responder answers when
// the primary responder errors so the widget never breaks mid-conversation.
func NewHandler(responder Responder, allowed []string, hasAI, bypass bool, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		responder: responder,
		fallback:  NewCannedResponder(),
		allowed:   allowed,
		hasAI:     hasAI,
		bypass:    bypass,
		logger:    logger,
	}
}

type chatRequest struct {
	History   []Message `json:"history"`
	ForceJSON bool      `json:"force_json"`
}

type chatResponse struct {
	Reply string `json:"reply"`
	Error string `json:"error,omitempty"`
}

// Status handles GET /chat requests. It reports enough to debug origin and
// backend configuration from the browser console.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"route":   "chat",
		"origin":  r.Header.Get("Origin"),
		"allowed": h.allowed,
		"env": map[string]bool{
			"hasAI":  h.hasAI,
			"bypass": h.bypass,
		},
	})
}

// Converse handles POST /chat requests. A malformed body is treated as an
// empty conversation rather than rejected, matching the widget's loose client.
func (h *Handler) Converse(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	reply, err := h.responder.Reply(r.Context(), req.History, req.ForceJSON)
	if err != nil {
		h.logger.Error("chat: responder failed, using fallback", "error", err)
		fallbackReply, fallbackErr := h.fallback.Reply(context.Background(), req.History, req.ForceJSON)
		if fallbackErr != nil {
			fallbackReply = "I'm having trouble reaching our AI right now, but I can still take your details. " +
				"Please share your move date and from/to ZIPs, and I'll queue this so a coordinator follows up within 24 hours."
		}
		writeJSON(w, http.StatusOK, chatResponse{Reply: fallbackReply, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
