package analysis

import "errors"

// ErrorKind classifies analysis failures for callers
type ErrorKind string

const (
	// KindInvalidAction means the caller sent an unrecognized action tag.
	// Returned before any outbound call is made.
	KindInvalidAction ErrorKind = "invalid_action"
	// KindRateLimited means the upstream model endpoint returned HTTP 429
	KindRateLimited ErrorKind = "rate_limited"
	// KindQuotaExhausted means the upstream model endpoint returned HTTP 402
	KindQuotaExhausted ErrorKind = "quota_exhausted"
	// KindTransport covers network failures, timeouts and any other
	// non-success upstream response
	KindTransport ErrorKind = "transport"
)

// Error is a structured analysis failure with a machine-checkable kind.
// None of the kinds are retried inside the router; retry policy belongs
// to the caller.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the error kind, defaulting to KindTransport for
// errors that did not originate in this package
func KindOf(err error) ErrorKind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindTransport
}

// RateLimitedError builds an upstream rate-limit failure
func RateLimitedError(err error) *Error {
	return &Error{Kind: KindRateLimited, Message: "rate limit exceeded, please try again later", Err: err}
}

// QuotaExhaustedError builds an upstream quota failure
func QuotaExhaustedError(err error) *Error {
	return &Error{Kind: KindQuotaExhausted, Message: "AI credits exhausted", Err: err}
}

// TransportError builds a generic upstream failure
func TransportError(err error) *Error {
	return &Error{Kind: KindTransport, Message: "AI gateway error", Err: err}
}
