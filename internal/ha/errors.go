package ha

import "errors"

// Domain errors for the ha package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, ha.ErrDiscovery) {
//	    // any discovery failure: auth, transport, protocol, timeout
//	}
var (
	// ErrDiscovery is the single error kind for all discovery failures:
	// missing token, non-200 REST responses, transport and timeout failures,
	// handshake rejection, response-id mismatch, and malformed results.
	// Wrapped errors carry the URL, status code or raw payload involved.
	ErrDiscovery = errors.New("ha: discovery failed")

	// ErrInvalidBaseURL is returned at construction time when the base URL
	// is empty or missing a scheme or host. No network access is attempted.
	ErrInvalidBaseURL = errors.New("ha: invalid base URL")
)
