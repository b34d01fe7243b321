package intake

import (
	"bytes"
	"strconv"
	"strings"
)

// TruthyBool accepts the loose boolean shapes the chat widget has been seen
// sending: JSON true/false, "yes"/"no", "true"/"false", 0/1. Anything truthy
// decodes to true; absent, null or falsy values decode to false.
type TruthyBool bool

// UnmarshalJSON implements json.Unmarshaler.
func (b *TruthyBool) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(bytes.Trim(data, `"`)))
	switch strings.ToLower(s) {
	case "", "null", "false", "no", "n", "0", "off":
		*b = false
	default:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			*b = f != 0
			return nil
		}
		*b = true
	}
	return nil
}

// RawLeadPayload is the untrusted lead object submitted by the chat widget.
// Every field is optional; absence is an empty value, not an error.
type RawLeadPayload struct {
	FullName            string     `json:"full_name"`
	FirstName           string     `json:"first_name"`
	LastName            string     `json:"last_name"`
	Phone               string     `json:"phone"`
	Email               string     `json:"email"`
	MoveDate            string     `json:"move_date"`
	OriginZip           string     `json:"origin_zip"`
	DestinationZip      string     `json:"destination_zip"`
	ServiceType         string     `json:"service_type"`
	HomeSize            string     `json:"home_size"`
	StairsOrigin        string     `json:"stairs_origin"`
	StairsDestination   string     `json:"stairs_destination"`
	ElevatorOrigin      TruthyBool `json:"elevator_origin"`
	ElevatorDestination TruthyBool `json:"elevator_destination"`
	PackingNeeded       string     `json:"packing_needed"`
	SpecialItems        string     `json:"special_items"`
	PromoCode           string     `json:"promo_code"`
	ReferralCode        string     `json:"referral_code"`
	Notes               string     `json:"notes"`
}

// NormalizedLead is the validated internal representation of a lead. It is
// only constructed after the phone number passed normalization; every other
// field degrades to its zero value instead of failing the record.
type NormalizedLead struct {
	ContactName         string
	Phone               string // exactly 10 digits, NANP
	Email               string
	MoveDate            string // YYYY-MM-DD expected, passed through as received
	OriginZip           string
	DestinationZip      string
	ServiceType         string
	HomeSize            string // mapped label; empty when unmapped or absent
	StairsOrigin        string
	StairsDestination   string
	ElevatorOrigin      bool
	ElevatorDestination bool
	PackingNeeded       string
	SpecialItems        string
	PromoCode           string
	ReferralCode        string
	Notes               string // composite free-text summary, see composeNotes
}
