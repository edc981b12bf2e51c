package webhook

import "errors"

var (
	ErrSecretNotConfigured = errors.New("webhook secret not configured")
	ErrMissingSignature    = errors.New("no signature provided")
	ErrSignatureMismatch   = errors.New("signature verification failed")
	ErrIPNotAllowed        = errors.New("ip not whitelisted")
	ErrRateLimited         = errors.New("rate limit exceeded")
	ErrUnverified          = errors.New("envelope signature not verified")
	ErrInvalidPayload      = errors.New("invalid JSON payload")
)
