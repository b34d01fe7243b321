package intake

import (
	"strings"
)

// sizeLabels maps widget shorthand to the CRM's home size labels.
var sizeLabels = map[string]string{
	"studio": "Studio",
	"1br":    "1 bedroom",
	"2br":    "2 bedroom",
	"3br":    "3 bedroom",
	"house":  "3 bedroom+",
}

// NormalizePhone strips formatting from a submitted phone number and returns
// the ten NANP digits. An 11-digit number with a leading 1 loses the country
// code; any other digit count is ErrInvalidPhone.
func NormalizePhone(raw string) (string, error) {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	switch {
	case len(d) == 10:
		return d, nil
	case len(d) == 11 && strings.HasPrefix(d, "1"):
		return d[1:], nil
	default:
		return "", ErrInvalidPhone
	}
}

// MapHomeSize resolves a home size label case-insensitively. Unmapped or
// absent values return the empty string rather than an error.
func MapHomeSize(s string) string {
	return sizeLabels[strings.ToLower(strings.TrimSpace(s))]
}

// Normalize canonicalizes a raw lead into a NormalizedLead. Only a bad phone
// number fails the record; every other field degrades gracefully.
func Normalize(raw *RawLeadPayload) (*NormalizedLead, error) {
	if raw == nil {
		return nil, ErrMissingLead
	}

	phone, err := NormalizePhone(raw.Phone)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(raw.FullName)
	if name == "" {
		name = strings.TrimSpace(strings.TrimSpace(raw.FirstName) + " " + strings.TrimSpace(raw.LastName))
	}

	lead := &NormalizedLead{
		ContactName:         name,
		Phone:               phone,
		Email:               raw.Email,
		MoveDate:            raw.MoveDate,
		OriginZip:           raw.OriginZip,
		DestinationZip:      raw.DestinationZip,
		ServiceType:         raw.ServiceType,
		HomeSize:            MapHomeSize(raw.HomeSize),
		StairsOrigin:        raw.StairsOrigin,
		StairsDestination:   raw.StairsDestination,
		ElevatorOrigin:      bool(raw.ElevatorOrigin),
		ElevatorDestination: bool(raw.ElevatorDestination),
		PackingNeeded:       raw.PackingNeeded,
		SpecialItems:        raw.SpecialItems,
		PromoCode:           raw.PromoCode,
		ReferralCode:        raw.ReferralCode,
	}
	lead.Notes = composeNotes(raw)
	return lead, nil
}

// composeNotes folds the access, packing and special-item details into one
// free-text blob so downstream CRM note fields keep the structured detail
// without schema changes. Segments are joined with " | "; only the free
// notes segment may be empty and is then omitted.
func composeNotes(raw *RawLeadPayload) string {
	segments := []string{
		raw.Notes,
		"Stairs@Origin: " + orNA(raw.StairsOrigin),
		"Stairs@Dest: " + orNA(raw.StairsDestination),
		"Elevator@Origin: " + yesNo(bool(raw.ElevatorOrigin)),
		"Elevator@Dest: " + yesNo(bool(raw.ElevatorDestination)),
		"Packing: " + orNA(raw.PackingNeeded),
		"Special: " + orNA(raw.SpecialItems),
	}
	nonEmpty := segments[:0]
	for _, s := range segments {
		if s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	return strings.Join(nonEmpty, " | ")
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "n/a"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
