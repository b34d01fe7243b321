package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/awnationwide/lead-intake/internal/chatbot"
	"github.com/awnationwide/lead-intake/internal/delivery"
	"github.com/awnationwide/lead-intake/internal/http/handlers"
	httpmiddleware "github.com/awnationwide/lead-intake/internal/http/middleware"
	"github.com/awnationwide/lead-intake/internal/intake"
	"github.com/awnationwide/lead-intake/pkg/logging"
)

type routerDeliverer struct {
	report delivery.Report
}

func (d *routerDeliverer) Deliver(_ context.Context, _ *intake.NormalizedLead, _ delivery.Meta) delivery.Report {
	return d.report
}

func (d *routerDeliverer) ConfiguredChannels() []string { return []string{"crm"} }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.Default()
	deliverer := &routerDeliverer{
		report: delivery.Report{
			Ok:      true,
			Results: []delivery.ChannelResult{{Channel: "crm", Attempted: true, Success: true}},
		},
	}
	allowed := []string{"example.com"}
	intakeHandler := handlers.NewIntakeHandler(deliverer, allowed, nil, logger)
	chatHandler := chatbot.NewHandler(chatbot.NewCannedResponder(), allowed, false, true, logger)

	cfg := &Config{
		Logger:        logger,
		IntakeHandler: intakeHandler,
		ChatHandler:   chatHandler,
		Allowlist:     httpmiddleware.NewAllowlist(allowed),
	}

	return New(cfg)
}

func TestRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}

	if resp["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", resp["status"])
	}
}

func TestRouterIntakeSubmitFromAllowedOrigin(t *testing.T) {
	router := newTestRouter(t)

	body := `{"lead":{"phone":"404-555-1234"},"page_url":"https://www.example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/intake", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://www.example.com")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://www.example.com" {
		t.Errorf("expected origin echoed, got %q", got)
	}

	var resp struct {
		Ok       bool            `json:"ok"`
		Channels map[string]bool `json:"channels"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Ok || !resp.Channels["crm"] {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestRouterRejectsUnknownOrigin(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/intake", strings.NewReader(`{"lead":{"phone":"4045551234"}}`))
	req.Header.Set("Origin", "https://evil.example")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
	if rr.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("denied origin must not be echoed back")
	}
}

func TestRouterPreflight(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/intake", nil)
	req.Header.Set("Origin", "https://example.com")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204 preflight, got %d", rr.Code)
	}
	if !strings.Contains(rr.Header().Get("Access-Control-Allow-Methods"), "POST") {
		t.Error("preflight should advertise POST")
	}
}

func TestRouterChatEndpoints(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/chat", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 from chat status, got %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"history":[]}`))
	req.Header.Set("Origin", "https://example.com")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 from chat converse, got %d", rr.Code)
	}

	var resp struct {
		Reply string `json:"reply"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Reply == "" {
		t.Error("expected a canned reply")
	}
}

func TestRouterIntakeStatus(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/intake", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp struct {
		Ok bool `json:"ok"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Ok {
		t.Error("expected ok status")
	}
}
