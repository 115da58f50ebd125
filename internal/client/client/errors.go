package client

import "errors"

// Sentinel errors returned by Client implementations. gRPC status codes are
// mapped onto them so services never inspect transport details.
var (
	// ErrUnavailable means the server could not be reached. Timer actions
	// hitting it are queued and replayed later.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized means the access token was rejected and a refresh failed.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrLocalDataNotAvailable is returned by offline login when no cached
	// credentials exist on this device.
	ErrLocalDataNotAvailable = errors.New("local data unavailable")
)

// Retryable reports whether err is a transport outage worth queueing for
// replay rather than a rejection by the server.
func Retryable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
