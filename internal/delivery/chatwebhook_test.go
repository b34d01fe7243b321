package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestChatWebhookSendsSummary(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
	}))
	defer srv.Close()

	ch := NewChatWebhookChannel(srv.URL, srv.Client(), nil)
	if err := ch.Send(context.Background(), crmLead(), Meta{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := got["text"]
	for _, want := range []string{"Dana Ruiz", "4045551234", "2025-09-15", "30542 -> 30519"} {
		if !strings.Contains(text, want) {
			t.Errorf("summary missing %q:\n%s", want, text)
		}
	}
}

func TestChatWebhookMarksTestLeads(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
	}))
	defer srv.Close()

	ch := NewChatWebhookChannel(srv.URL, srv.Client(), nil)
	if err := ch.Send(context.Background(), crmLead(), Meta{IsTest: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got["text"], "(TEST)") {
		t.Errorf("test lead should be marked, got %q", got["text"])
	}
}

func TestChatWebhookUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ch := NewChatWebhookChannel(srv.URL, srv.Client(), nil)
	err := ch.Send(context.Background(), crmLead(), Meta{})

	var ue *UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
}

func TestChatWebhookUnconfigured(t *testing.T) {
	ch := NewChatWebhookChannel("", nil, nil)
	if ch.Configured() {
		t.Fatal("channel without URL must report unconfigured")
	}
}
