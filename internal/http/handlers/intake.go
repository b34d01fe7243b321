package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/awnationwide/lead-intake/internal/delivery"
	"github.com/awnationwide/lead-intake/internal/intake"
	"github.com/awnationwide/lead-intake/internal/observability/metrics"
	"github.com/awnationwide/lead-intake/pkg/logging"
)

// Deliverer fans a normalized lead out to the configured channels.
type Deliverer interface {
	Deliver(ctx context.Context, lead *intake.NormalizedLead, meta delivery.Meta) delivery.Report
	ConfiguredChannels() []string
}

// IntakeHandler handles HTTP requests for lead intake
type IntakeHandler struct {
	deliverer      Deliverer
	allowedOrigins []string
	metrics        *metrics.DeliveryMetrics
	logger         *logging.Logger
}

// NewIntakeHandler creates a new intake handler
func NewIntakeHandler(deliverer Deliverer, allowedOrigins []string, m *metrics.DeliveryMetrics, logger *logging.Logger) *IntakeHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &IntakeHandler{
		deliverer:      deliverer,
		allowedOrigins: allowedOrigins,
		metrics:        m,
		logger:         logger,
	}
}

type submitRequest struct {
	Lead    *intake.RawLeadPayload `json:"lead"`
	UTM     map[string]string      `json:"utm"`
	PageURL string                 `json:"page_url"`
	IsTest  bool                   `json:"is_test"`
}

type submitResponse struct {
	Ok       bool               `json:"ok"`
	Channels map[string]bool    `json:"channels,omitempty"`
	Errors   map[string]*string `json:"errors,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// Status handles GET /intake requests. It never mutates state and is safe to
// probe from the browser console.
func (h *IntakeHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":                 true,
		"allowedOrigins":     h.allowedOrigins,
		"channelsConfigured": h.deliverer.ConfiguredChannels(),
	})
}

// Submit handles POST /intake requests: parse, normalize, fan out, report.
// Individual channel failures still yield HTTP 200 so the widget never shows
// the visitor a submission error for a partial backend outage.
func (h *IntakeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("intake: failed to decode request", "error", err)
		h.metrics.ObserveLead("missing_lead")
		writeJSON(w, http.StatusBadRequest, submitResponse{Error: "missing_lead"})
		return
	}
	if req.Lead == nil {
		h.metrics.ObserveLead("missing_lead")
		writeJSON(w, http.StatusBadRequest, submitResponse{Error: "missing_lead"})
		return
	}

	lead, err := intake.Normalize(req.Lead)
	if err != nil {
		if errors.Is(err, intake.ErrInvalidPhone) {
			h.logger.Info("intake: rejected lead with invalid phone")
			h.metrics.ObserveLead("invalid_phone")
			writeJSON(w, http.StatusBadRequest, submitResponse{Error: "invalid_phone"})
			return
		}
		h.logger.Error("intake: normalization failed", "error", err)
		h.metrics.ObserveLead("missing_lead")
		writeJSON(w, http.StatusBadRequest, submitResponse{Error: "missing_lead"})
		return
	}

	meta := delivery.Meta{
		PageURL: req.PageURL,
		UTM:     req.UTM,
		IsTest:  req.IsTest,
	}

	report := h.deliverer.Deliver(r.Context(), lead, meta)
	if report.Error == delivery.ErrorNoChannels {
		h.metrics.ObserveLead("no_channels_configured")
		writeJSON(w, http.StatusInternalServerError, submitResponse{Error: delivery.ErrorNoChannels})
		return
	}

	h.logger.Info("intake: lead relayed",
		"name", lead.ContactName,
		"ok", report.Ok,
		"is_test", req.IsTest,
	)
	h.metrics.ObserveLead("delivered")

	writeJSON(w, http.StatusOK, submitResponse{
		Ok:       report.Ok,
		Channels: report.ChannelOutcomes(),
		Errors:   report.ChannelErrors(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
