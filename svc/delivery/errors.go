package delivery

import "errors"

var (
	ErrInvalidConfig      = errors.New("delivery: invalid configuration")
	ErrUnsupportedPayload = errors.New("delivery: payload not supported by this backend")
	ErrMessageNotFound    = errors.New("delivery: message not found")
	ErrEmailRejected      = errors.New("delivery: email rejected by provider")
)
