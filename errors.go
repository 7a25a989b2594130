package homepage

import (
	"errors"
	"net/http"
)

// ErrFatal marks startup-time failures: a required file is missing or the
// certificate can not be loaded. The process must not start.
var ErrFatal = errors.New("homepage: fatal startup error")

// Kind classifies a per-request failure.
type Kind int

const (
	// KindBadRequest is malformed or missing input or content.
	KindBadRequest Kind = iota
	// KindNotFound is an absent resource with no fallback.
	KindNotFound
	// KindConversion is a failure to rebuild a request URI for HTTPS.
	KindConversion
)

// Status returns the HTTP status code for k.
func (k Kind) Status() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

// RequestError is the failure side of every resolver. Message is shown to
// the client as plain text; Err, if set, is only logged.
type RequestError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *RequestError) Unwrap() error { return e.Err }

// Status returns the HTTP status code for e.
func (e *RequestError) Status() int { return e.Kind.Status() }

// BadRequest returns a KindBadRequest error carrying msg.
func BadRequest(msg string) *RequestError {
	return &RequestError{Kind: KindBadRequest, Message: msg}
}

// NotFound returns a KindNotFound error carrying msg. cause is logged, not
// shown to the client, and may be nil.
func NotFound(msg string, cause error) *RequestError {
	return &RequestError{Kind: KindNotFound, Message: msg, Err: cause}
}
