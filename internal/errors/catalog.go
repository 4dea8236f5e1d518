// Package errors holds the typed errors surfaced by the catalog client.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// Kind classifies why a catalog request produced no result.
type Kind int

const (
	// KindNetwork covers transport failures and timeouts: no response was received.
	KindNetwork Kind = iota + 1
	// KindHTTPStatus means the server answered with something other than 200.
	KindHTTPStatus
	// KindDecode means the body did not match the expected envelope.
	KindDecode
	// KindInvalidInput means a precondition failed and no request was issued.
	KindInvalidInput
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTPStatus:
		return "http status"
	case KindDecode:
		return "decode"
	case KindInvalidInput:
		return "invalid input"
	default:
		return "unknown"
	}
}

// CatalogError is the tagged error returned by every catalog operation.
type CatalogError struct {
	Kind       Kind
	Op         string
	StatusCode int
	Err        error
}

func (e *CatalogError) Error() string {
	switch {
	case e.Kind == KindHTTPStatus && e.Err != nil:
		return fmt.Sprintf("%s: unexpected status %d: %v", e.Op, e.StatusCode, e.Err)
	case e.Kind == KindHTTPStatus:
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	}
}

func (e *CatalogError) Unwrap() error {
	return e.Err
}

// NewNetworkError wraps a transport failure.
func NewNetworkError(op string, err error) *CatalogError {
	return &CatalogError{Kind: KindNetwork, Op: op, Err: err}
}

// NewStatusError records a non-200 answer. err may carry a short body excerpt or a RateLimitError.
func NewStatusError(op string, statusCode int, err error) *CatalogError {
	return &CatalogError{Kind: KindHTTPStatus, Op: op, StatusCode: statusCode, Err: err}
}

// NewDecodeError wraps a JSON decoding failure.
func NewDecodeError(op string, err error) *CatalogError {
	return &CatalogError{Kind: KindDecode, Op: op, Err: err}
}

// NewInvalidInputError reports a failed precondition.
func NewInvalidInputError(op string, reason string) *CatalogError {
	return &CatalogError{Kind: KindInvalidInput, Op: op, Err: stdErrors.New(reason)}
}

// KindOf returns the Kind of the first CatalogError in err's chain, or 0.
func KindOf(err error) Kind {
	var catalogErr *CatalogError
	if stdErrors.As(err, &catalogErr) {
		return catalogErr.Kind
	}
	return 0
}

// IsKind reports whether err is a CatalogError of the given kind (even when wrapped).
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// StatusCode returns the HTTP status carried by err, or 0 when there is none.
func StatusCode(err error) int {
	var catalogErr *CatalogError
	if stdErrors.As(err, &catalogErr) {
		return catalogErr.StatusCode
	}
	return 0
}
