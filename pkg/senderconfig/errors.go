package senderconfig

import "errors"

var (
	ErrNoSource         = errors.New("senderconfig: source not configured")
	ErrFetchFailed      = errors.New("senderconfig: fetch failed")
	ErrUnexpectedStatus = errors.New("senderconfig: unexpected response status")
	ErrMalformedPayload = errors.New("senderconfig: malformed payload")
	ErrEmptyFromName    = errors.New("senderconfig: fromName is empty")
)
