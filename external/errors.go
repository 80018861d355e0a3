// external/errors.go
package external

import "errors"

// Failure taxonomy for outbound calls. Callers compare with errors.Is.
var (
	// ErrUpstreamUnavailable covers transport failures and non-200 responses.
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
	// ErrMalformedPayload covers undecodable bodies and missing required fields.
	ErrMalformedPayload = errors.New("malformed upstream payload")
	// ErrNoRecords means the upstream answered but had nothing for the query.
	ErrNoRecords = errors.New("no records found")
)
