package domain

import "errors"

var (
	// ErrUnauthorized means a missing or mismatched bearer token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredential means a password did not match the stored hash.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrInvalidInput means a malformed payload or a rejected upload.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotConfigured means SMTP settings are missing when a send is requested.
	ErrNotConfigured = errors.New("not configured")

	// ErrCorruptDocument means the persisted document could not be parsed.
	// The system never repairs it on its own.
	ErrCorruptDocument = errors.New("corrupt document")
)
