package chatbot

import (
	"context"
	"encoding/json"
	"math/rand"
	"regexp"
	"strings"
)

var pricingPattern = regexp.MustCompile(`price|quote|cost|estimate`)

var greetingReplies = []string{
	"Hi! I'm the AW Nationwide Movers chatbot. I can check availability and collect details so a coordinator follows up within 24 hours to confirm your date and finalize a custom quote. " +
		"What's your move date and the ZIPs you're moving between? (We're fully licensed & insured. Financing via Affirm is available if helpful.)",
	"Hello! I'm here to help plan your move with AW Nationwide Movers. Share your move date and the ZIPs you're moving between and a coordinator will follow up within 24 hours with a custom quote. " +
		"(We're fully licensed & insured, and financing via Affirm is available.)",
}

const pricingReply = "I can't give exact pricing in chat, but I'll collect your info so a coordinator follows up within 24 hours with your personalized quote. " +
	"What's your move date, from ZIP, and to ZIP?"

// demoLead is the placeholder capture emitted when the widget requests the
// structured lead while the assistant is running without an AI backend.
var demoLead = map[string]any{
	"full_name":            "Web Visitor",
	"phone":                "0000000000",
	"email":                "visitor@example.com",
	"move_date":            "2025-09-15",
	"origin_zip":           "30542",
	"destination_zip":      "30519",
	"service_type":         "residential local",
	"home_size":            "2BR",
	"stairs_origin":        "none",
	"stairs_destination":   "none",
	"elevator_origin":      false,
	"elevator_destination": false,
	"packing_needed":       "partial",
	"special_items":        "",
	"promo_code":           "",
	"referral_code":        "",
	"notes":                "financing_interest: maybe",
}

// CannedResponder keeps the chat widget functional when no AI backend is
// configured or when the bypass flag is set. Replies never fail.
type CannedResponder struct {
	// pick selects a greeting variant index; replaceable in tests.
	pick func(n int) int
}

var _ Responder = (*CannedResponder)(nil)

// NewCannedResponder creates a responder with fixed replies.
func NewCannedResponder() *CannedResponder {
	return &CannedResponder{pick: rand.Intn}
}

// Reply returns a greeting, a pricing deflection when the visitor asks about
// cost, or the demo lead JSON when forceJSON is set.
func (c *CannedResponder) Reply(_ context.Context, history []Message, forceJSON bool) (string, error) {
	if forceJSON {
		encoded, err := json.Marshal(demoLead)
		if err != nil {
			return "", err
		}
		return string(encoded), nil
	}

	last := ""
	if len(history) > 0 {
		last = strings.ToLower(history[len(history)-1].Content)
	}
	if pricingPattern.MatchString(last) {
		return pricingReply, nil
	}
	return greetingReplies[c.pick(len(greetingReplies))], nil
}
