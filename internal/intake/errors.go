package intake

import "errors"

var (
	// ErrMissingLead indicates the request body carried no lead object.
	ErrMissingLead = errors.New("missing lead")

	// ErrInvalidPhone indicates the phone number could not be normalized to
	// ten NANP digits. This is the only validation failure that aborts the
	// whole lead.
	ErrInvalidPhone = errors.New("invalid phone")
)
