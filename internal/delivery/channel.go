package delivery

import (
	"context"

	"github.com/awnationwide/lead-intake/internal/intake"
)

// Meta carries the per-request submission context that channels may embed in
// their outbound payloads alongside the lead itself.
type Meta struct {
	PageURL string
	UTM     map[string]string
	IsTest  bool
}

// Channel is one external delivery target for a normalized lead. A channel
// whose configuration is absent reports Configured() == false and is skipped
// by the orchestrator instead of attempted.
type Channel interface {
	Name() string
	Configured() bool
	Send(ctx context.Context, lead *intake.NormalizedLead, meta Meta) error
}

// gclid/fbclid are the ad click identifiers the widget forwards in UTM params.
func adClickID(utm map[string]string) (id, kind string) {
	if v := utm["gclid"]; v != "" {
		return v, "GOOGLE_ADS"
	}
	if v := utm["fbclid"]; v != "" {
		return v, ""
	}
	return "", ""
}
