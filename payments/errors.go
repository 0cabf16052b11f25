package payments

import "errors"

var (
	ErrMissingSecret  = errors.New("shared secret not configured")
	ErrBadSignature   = errors.New("signature mismatch")
	ErrInvalidPayload = errors.New("invalid payload")
	ErrEventIgnored   = errors.New("event ignored")
	ErrUnknownPurpose = errors.New("unknown purpose")
	ErrNotFound       = errors.New("not found")
	ErrDuplicate      = errors.New("duplicate payment")
)
