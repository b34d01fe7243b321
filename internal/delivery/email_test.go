package delivery

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/awnationwide/lead-intake/internal/notify"
)

type recordingSender struct {
	sent []notify.EmailMessage
	err  error
}

func (r *recordingSender) Send(ctx context.Context, msg notify.EmailMessage) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	r.sent = append(r.sent, msg)
	return r.err
}

func TestEmailChannelSendsToAllRecipients(t *testing.T) {
	sender := &recordingSender{}
	ch := NewEmailChannel(sender, []string{"ops@example.com", "sales@example.com"}, nil)

	err := ch.Send(context.Background(), crmLead(), Meta{PageURL: "https://example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.sent) != 2 {
		t.Fatalf("expected 2 emails, got %d", len(sender.sent))
	}

	msg := sender.sent[0]
	if !strings.Contains(msg.Subject, "Dana Ruiz") {
		t.Errorf("subject should name the lead, got %q", msg.Subject)
	}
	if !strings.Contains(msg.Body, "Phone: 4045551234") {
		t.Errorf("body should include the phone, got:\n%s", msg.Body)
	}
	if !strings.Contains(msg.HTML, "4045551234") {
		t.Error("HTML body should include the phone")
	}
}

func TestEmailChannelTestFlagInSubject(t *testing.T) {
	sender := &recordingSender{}
	ch := NewEmailChannel(sender, []string{"ops@example.com"}, nil)

	if err := ch.Send(context.Background(), crmLead(), Meta{IsTest: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(sender.sent[0].Subject, "[TEST] ") {
		t.Errorf("test submissions should be flagged, got %q", sender.sent[0].Subject)
	}
}

func TestEmailChannelProviderFailure(t *testing.T) {
	sender := &recordingSender{err: errors.New("provider down")}
	ch := NewEmailChannel(sender, []string{"ops@example.com"}, nil)

	err := ch.Send(context.Background(), crmLead(), Meta{})
	if err == nil {
		t.Fatal("expected provider failure to surface")
	}
	if !strings.Contains(err.Error(), "provider down") {
		t.Errorf("expected wrapped provider error, got %v", err)
	}
}

func TestEmailChannelUnconfigured(t *testing.T) {
	if NewEmailChannel(nil, []string{"ops@example.com"}, nil).Configured() {
		t.Error("nil sender must report unconfigured")
	}
	if NewEmailChannel(&recordingSender{}, nil, nil).Configured() {
		t.Error("empty recipient list must report unconfigured")
	}
}
