package delivery

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/awnationwide/lead-intake/internal/intake"
	"github.com/awnationwide/lead-intake/internal/notify"
	"github.com/awnationwide/lead-intake/pkg/logging"
)

// EmailChannel mails a lead summary to the sales team.
type EmailChannel struct {
	sender     notify.EmailSender
	recipients []string
	logger     *logging.Logger
}

// NewEmailChannel creates the email channel. A nil sender or empty recipient
// list leaves the channel unconfigured.
func NewEmailChannel(sender notify.EmailSender, recipients []string, logger *logging.Logger) *EmailChannel {
	if logger == nil {
		logger = logging.Default()
	}
	return &EmailChannel{sender: sender, recipients: recipients, logger: logger}
}

func (c *EmailChannel) Name() string { return "email" }

func (c *EmailChannel) Configured() bool {
	return c.sender != nil && len(c.recipients) > 0
}

// Send renders plain-text and HTML summaries and mails every recipient.
func (c *EmailChannel) Send(ctx context.Context, lead *intake.NormalizedLead, meta Meta) error {
	if !c.Configured() {
		return ErrMissingConfiguration
	}

	subject := fmt.Sprintf("New Move Lead - %s", displayName(lead))
	if meta.IsTest {
		subject = "[TEST] " + subject
	}
	body := emailBody(lead, meta)
	htmlBody := emailHTML(lead, meta)

	var errs []error
	for _, recipient := range c.recipients {
		msg := notify.EmailMessage{
			To:      recipient,
			Subject: subject,
			Body:    body,
			HTML:    htmlBody,
		}
		if err := c.sender.Send(ctx, msg); err != nil {
			c.logger.Error("email: failed to send lead summary", "error", err, "to", recipient)
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("email: %d of %d send(s) failed: %w", len(errs), len(c.recipients), errs[0])
	}
	return nil
}

func emailBody(lead *intake.NormalizedLead, meta Meta) string {
	lines := []string{
		"A new move lead has come in!",
		"",
		"Name: " + displayName(lead),
		"Phone: " + lead.Phone,
	}
	if lead.Email != "" {
		lines = append(lines, "Email: "+lead.Email)
	}
	if lead.MoveDate != "" {
		lines = append(lines, "Move date: "+lead.MoveDate)
	}
	if lead.OriginZip != "" || lead.DestinationZip != "" {
		lines = append(lines, fmt.Sprintf("Route: %s -> %s", lead.OriginZip, lead.DestinationZip))
	}
	if lead.HomeSize != "" {
		lines = append(lines, "Size: "+lead.HomeSize)
	}
	if lead.ServiceType != "" {
		lines = append(lines, "Service: "+lead.ServiceType)
	}
	if lead.PromoCode != "" {
		lines = append(lines, "Promo code: "+lead.PromoCode)
	}
	if lead.Notes != "" {
		lines = append(lines, "Details: "+lead.Notes)
	}
	if meta.PageURL != "" {
		lines = append(lines, "Submitted from: "+meta.PageURL)
	}
	lines = append(lines, "", "A coordinator should follow up within 24 hours.")
	return strings.Join(lines, "\n")
}

func emailHTML(lead *intake.NormalizedLead, meta Meta) string {
	row := func(label, value string) string {
		if value == "" {
			return ""
		}
		return fmt.Sprintf(`<tr><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;"><strong>%s:</strong></td><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;">%s</td></tr>`,
			label, html.EscapeString(value))
	}

	route := ""
	if lead.OriginZip != "" || lead.DestinationZip != "" {
		route = fmt.Sprintf("%s → %s", lead.OriginZip, lead.DestinationZip)
	}

	return fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px;">
<h2 style="color: #2563eb;">New Move Lead</h2>
<table style="border-collapse: collapse; margin: 20px 0;">
%s%s%s%s%s%s%s%s
</table>
<p style="background: #eff6ff; padding: 12px; border-radius: 8px; border-left: 4px solid #2563eb;">
  A coordinator should follow up within 24 hours to confirm the date and finalize a custom quote.
</p>
</div>`,
		row("Name", displayName(lead)),
		row("Phone", lead.Phone),
		row("Email", lead.Email),
		row("Move date", lead.MoveDate),
		row("Route", route),
		row("Size", lead.HomeSize),
		row("Details", lead.Notes),
		row("Page", meta.PageURL))
}

var _ Channel = (*EmailChannel)(nil)
