// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels shared between the client, session, and facade layers.
var (
	// ErrUnauthorized indicates the server rejected the caller's credentials (401).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrSessionExpired indicates the token pair could not be refreshed and the
	// session was forcibly ended.
	ErrSessionExpired = errors.New("session expired")

	// ErrForbidden indicates the caller lacks the role for the operation (403).
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates the requested entity does not exist (404).
	ErrNotFound = errors.New("not found")

	// ErrNoCredentials indicates no token pair is stored locally.
	ErrNoCredentials = errors.New("no credentials (login required)")
)
