package archive

import (
	"errors"
	"net/http"
)

// Kind classifies an archive error by failure site. The orchestrator
// dispatches on kind: errors before the per-message loop are fatal to the
// invocation, errors inside it are isolated and counted.
type Kind int

const (
	// KindUnknown is an unclassified error.
	KindUnknown Kind = iota

	// KindBadRequest is a client error: the invocation request is missing
	// the query or the destination folder identifier.
	KindBadRequest

	// KindConfig is a server configuration error: the refresh credential
	// is incomplete, so no token can ever be obtained.
	KindConfig

	// KindAuth is a failed token refresh exchange.
	KindAuth

	// KindList is a failed message listing call. Without the full message
	// set no processing can begin, so listing aborts the invocation.
	KindList

	// KindFetch is a failed per-message retrieval.
	KindFetch

	// KindDecode is a failed per-message body decode.
	KindDecode

	// KindWrite is a failed per-message archive write.
	KindWrite
)

// String returns the kind's name for logs.
func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindConfig:
		return "config"
	case KindAuth:
		return "auth"
	case KindList:
		return "list"
	case KindFetch:
		return "fetch"
	case KindDecode:
		return "decode"
	case KindWrite:
		return "write"
	default:
		return "unknown"
	}
}

// Error is a classified archive error.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// E wraps err with a kind and the name of the failed operation.
func E(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err, or KindUnknown if err carries none.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

// PerMessage reports whether the kind is isolated to a single message
// rather than fatal to the invocation.
func (k Kind) PerMessage() bool {
	switch k {
	case KindFetch, KindDecode, KindWrite:
		return true
	default:
		return false
	}
}

// HTTPStatus maps an error to the invocation status code: client errors are
// 400, everything else that went wrong is 500, nil is 200.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if KindOf(err) == KindBadRequest {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
