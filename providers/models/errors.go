package models

import (
	"context"
	"errors"
	"net"
)

// Backend failure taxonomy. Transient conditions are retried by the caller;
// credential failures propagate immediately.
var (
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrBackendTimeout     = errors.New("backend timeout")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// IsTransient reports whether a request that failed with err may succeed on
// retry.
func IsTransient(err error) bool {
	return errors.Is(err, ErrBackendUnavailable) || errors.Is(err, ErrBackendTimeout)
}

// ClassifyTransportError maps an http.Client error onto the backend taxonomy.
func ClassifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrBackendTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrBackendTimeout
	}
	return ErrBackendUnavailable
}
