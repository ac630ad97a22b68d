package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted    = errors.New("service not started")
	ErrNoExecutor    = errors.New("no query executor configured")
	ErrNotFound      = errors.New("competitor not found")
	ErrInvalidFilter = errors.New("invalid filter")
	ErrCacheDisabled = errors.New("query cache disabled")
)
