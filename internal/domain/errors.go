package domain

import "errors"

var (
	// ErrInvalidArgument signals malformed caller-supplied parameters.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnauthorized signals that the caller context could not be established.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrStoreUnavailable signals an underlying data store failure.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrTimeout signals that the store did not answer within the request deadline.
	ErrTimeout = errors.New("timeout")
)
