package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/awnationwide/lead-intake/internal/intake"
	"github.com/awnationwide/lead-intake/pkg/logging"
)

// ChatWebhookChannel posts a short lead summary to a team chat webhook
// (Slack-compatible: a JSON body with a single "text" field).
type ChatWebhookChannel struct {
	url    string
	client *http.Client
	logger *logging.Logger
}

// NewChatWebhookChannel creates the team chat channel. An empty URL leaves
// the channel unconfigured.
func NewChatWebhookChannel(url string, client *http.Client, logger *logging.Logger) *ChatWebhookChannel {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ChatWebhookChannel{url: url, client: client, logger: logger}
}

func (c *ChatWebhookChannel) Name() string { return "chat" }

func (c *ChatWebhookChannel) Configured() bool { return c.url != "" }

// Send posts the lead summary. Failure taxonomy matches the CRM channel.
func (c *ChatWebhookChannel) Send(ctx context.Context, lead *intake.NormalizedLead, meta Meta) error {
	if c.url == "" {
		return ErrMissingConfiguration
	}

	body, err := json.Marshal(map[string]string{"text": chatSummary(lead, meta)})
	if err != nil {
		return fmt.Errorf("chat: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("chat: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("NetworkError: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
		return NewUpstreamError(resp.StatusCode, respBody)
	}

	c.logger.Debug("chat: lead notification posted", "status", resp.StatusCode)
	return nil
}

func chatSummary(lead *intake.NormalizedLead, meta Meta) string {
	var b strings.Builder
	b.WriteString("New move lead")
	if meta.IsTest {
		b.WriteString(" (TEST)")
	}
	fmt.Fprintf(&b, ": %s, %s", displayName(lead), lead.Phone)
	if lead.MoveDate != "" {
		fmt.Fprintf(&b, ", moving %s", lead.MoveDate)
	}
	if lead.OriginZip != "" || lead.DestinationZip != "" {
		fmt.Fprintf(&b, ", %s -> %s", lead.OriginZip, lead.DestinationZip)
	}
	if lead.HomeSize != "" {
		fmt.Fprintf(&b, ", %s", lead.HomeSize)
	}
	return b.String()
}

func displayName(lead *intake.NormalizedLead) string {
	if lead.ContactName != "" {
		return lead.ContactName
	}
	return "Web visitor"
}

var _ Channel = (*ChatWebhookChannel)(nil)
