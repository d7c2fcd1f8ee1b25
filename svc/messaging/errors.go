package messaging

import "errors"

// Resolution and channel errors.
var (
	ErrRecipientNotFound        = errors.New("messaging: recipient not found")
	ErrNoValidRecipients        = errors.New("messaging: none of the selected contacts could be resolved")
	ErrMissingRecipient         = errors.New("messaging: no recipient selected")
	ErrChannelUnavailable       = errors.New("messaging: channel unavailable for the selected recipients")
	ErrInvalidChannel           = errors.New("messaging: unknown channel")
	ErrUnsupportedRecipientKind = errors.New("messaging: recipient kind is not supported for dispatch")
)

// Draft validation errors.
var (
	ErrEmptyContent    = errors.New("messaging: content is empty")
	ErrContentTooLong  = errors.New("messaging: content is too long")
	ErrMissingSubject  = errors.New("messaging: subject is required for email")
	ErrSubjectTooLong  = errors.New("messaging: subject is too long")
	ErrMissingSender   = errors.New("messaging: sender is required for sms")
	ErrInvalidSchedule = errors.New("messaging: schedule time must be a valid time in the future")
)

// Remote call errors.
var (
	ErrTransportFailure         = errors.New("messaging: transport failure")
	ErrPartialAttachmentFailure = errors.New("messaging: some contacts could not be assigned")
)
