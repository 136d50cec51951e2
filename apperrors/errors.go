package apperrors

import "errors"

// Sentinel errors for the order and payment workflows. Callers wrap these
// with fmt.Errorf("...: %w", Err...) and handlers match with errors.Is.
var (
	ErrNotFound               = errors.New("not found")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrValidation             = errors.New("validation failed")
	ErrPaymentFailed          = errors.New("payment failed")
	ErrRefundNotAllowed       = errors.New("refund not allowed")
	ErrNotConfigured          = errors.New("not configured")
	ErrConflict               = errors.New("concurrent modification")
)
