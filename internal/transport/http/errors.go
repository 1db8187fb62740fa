package http

import (
	"errors"
	"fmt"

	"github.com/oshokin/advanced-http/internal/header"
)

// Static error definitions for better error handling.
var (
	// ErrUnexpectedHTTPStatus indicates an unexpected HTTP status code was received.
	ErrUnexpectedHTTPStatus = errors.New("unexpected HTTP status")
	// ErrUnknownAction indicates that the transport cannot perform the requested action.
	ErrUnknownAction = errors.New("unknown action")
	// ErrNoPinnedCertificates indicates that pinning was requested without any certificate to pin.
	ErrNoPinnedCertificates = errors.New("no pinned certificates found")
	// ErrPinnedCertificateMismatch indicates that the server certificate is not pinned.
	ErrPinnedCertificateMismatch = errors.New("server certificate does not match any pinned certificate")
	// ErrNoPeerCertificates indicates that the server presented no certificate.
	ErrNoPeerCertificates = errors.New("server presented no certificate")
	// ErrMissingFilePath indicates that an upload or download was requested without a file path.
	ErrMissingFilePath = errors.New("file path is empty")
)

// StatusError is reported for responses with a non-2xx status code.
type StatusError struct {
	// Status is the HTTP status code.
	Status int
	// URL is the final URL after redirects.
	URL string
	// Headers are the response headers.
	Headers header.Map
	// Data is the response body.
	Data []byte
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d", ErrUnexpectedHTTPStatus, e.Status)
}

// Unwrap lets errors.Is match ErrUnexpectedHTTPStatus.
func (e *StatusError) Unwrap() error {
	return ErrUnexpectedHTTPStatus
}
