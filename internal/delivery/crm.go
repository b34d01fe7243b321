package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/awnationwide/lead-intake/internal/intake"
	"github.com/awnationwide/lead-intake/pkg/logging"
)

// crmPayload is the wire shape the Supermove "submit web inquiry" webhook
// expects. Empty optional fields are omitted.
type crmPayload struct {
	FullName           string `json:"full_name"`
	PhoneNumber        string `json:"phone_number"`
	Email              string `json:"email,omitempty"`
	Size               string `json:"size,omitempty"`
	Date               string `json:"date,omitempty"`
	OriginZipCode      string `json:"origin_zip_code,omitempty"`
	DestinationZipCode string `json:"destination_zip_code,omitempty"`
	AdditionalNotes    string `json:"additional_notes,omitempty"`
	ReferralSource     string `json:"referral_source"`
	ReferralDetails    string `json:"referral_details,omitempty"`
	UTMContent         string `json:"utm_content,omitempty"`
	UTMMedium          string `json:"utm_medium,omitempty"`
	UTMSource          string `json:"utm_source,omitempty"`
	UTMTerm            string `json:"utm_term,omitempty"`
	AdClickID          string `json:"ad_click_id,omitempty"`
	AdKind             string `json:"ad_kind,omitempty"`
	IsTest             bool   `json:"is_test"`
}

// CRMChannel posts leads to the moving-operations CRM webhook.
type CRMChannel struct {
	url    string
	client *http.Client
	logger *logging.Logger
}

// NewCRMChannel creates the CRM webhook channel. An empty URL leaves the
// channel unconfigured; it will be reported, not attempted.
func NewCRMChannel(url string, client *http.Client, logger *logging.Logger) *CRMChannel {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &CRMChannel{url: url, client: client, logger: logger}
}

func (c *CRMChannel) Name() string { return "crm" }

func (c *CRMChannel) Configured() bool { return c.url != "" }

// Send maps the lead to the CRM payload and issues a single JSON POST.
func (c *CRMChannel) Send(ctx context.Context, lead *intake.NormalizedLead, meta Meta) error {
	if c.url == "" {
		return ErrMissingConfiguration
	}

	clickID, adKind := adClickID(meta.UTM)
	payload := crmPayload{
		FullName:           lead.ContactName,
		PhoneNumber:        lead.Phone,
		Email:              lead.Email,
		Size:               lead.HomeSize,
		Date:               lead.MoveDate,
		OriginZipCode:      lead.OriginZip,
		DestinationZipCode: lead.DestinationZip,
		AdditionalNotes:    lead.Notes,
		ReferralSource:     "Web Chat",
		ReferralDetails:    "URL: " + meta.PageURL,
		UTMContent:         meta.UTM["utm_content"],
		UTMMedium:          meta.UTM["utm_medium"],
		UTMSource:          meta.UTM["utm_source"],
		UTMTerm:            meta.UTM["utm_term"],
		AdClickID:          clickID,
		AdKind:             adKind,
		IsTest:             meta.IsTest,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("crm: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("crm: build request: %w", err)
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

	c.logger.Debug("crm: lead accepted", "status", resp.StatusCode)
	return nil
}

var _ Channel = (*CRMChannel)(nil)
