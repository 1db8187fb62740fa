package http

import (
	"errors"
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/google/uuid"

	"github.com/oshokin/advanced-http/internal/config"
	"github.com/oshokin/advanced-http/internal/header"
	"github.com/oshokin/advanced-http/internal/logger"
	"github.com/oshokin/advanced-http/internal/utils"
)

// LogTransport is a custom http.RoundTripper that logs HTTP requests and responses.
// Each round trip gets a request ID so that its log lines can be correlated.
// Credentials (Authorization, Cookie, Set-Cookie) are redacted from the dumps.
type LogTransport struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// maxLogLength is the maximum length of logged request/response data.
	maxLogLength uint64
}

// Static error definitions for better error handling.
var (
	// ErrNilRequest indicates that the HTTP request is nil.
	ErrNilRequest = errors.New("request is nil")
)

// redactedHeaders lists the headers whose values never reach the logs.
//
//nolint:gochecknoglobals // Immutable list used as a constant.
var redactedHeaders = []string{header.Authorization, header.Cookie, header.SetCookie}

// NewLogTransport creates and returns a new instance of LogTransport.
// If maxLogLength is 0, it defaults to config.DefaultMaxLogLength.
func NewLogTransport(next http.RoundTripper, maxLogLength uint64) http.RoundTripper {
	if maxLogLength == 0 {
		maxLogLength = config.DefaultMaxLogLength
	}

	return &LogTransport{
		next:         next,
		maxLogLength: maxLogLength,
	}
}

// RoundTrip executes a single HTTP transaction and logs the request and response.
// It implements the http.RoundTripper interface.
func (t *LogTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	// Skip logging if the logger is not at debug level.
	if !logger.IsDebugLevel() {
		return t.next.RoundTrip(req)
	}

	ctx := logger.WithKV(req.Context(), "request_id", uuid.NewString())

	requestDump := t.dumpRequest(req)

	// Record the start time to measure the duration of the request.
	startTime := time.Now()

	// Forward the request to the underlying RoundTripper.
	resp, err := t.next.RoundTrip(req)

	// Calculate the duration of the request.
	duration := time.Since(startTime)

	if err != nil {
		logger.DebugKV(ctx, "Request failed",
			"method", req.Method,
			"url", req.URL.Redacted(),
			"duration", duration,
			"error", err)

		return nil, err
	}

	responseDump := t.dumpResponse(resp)

	logger.DebugKV(ctx, "Request completed",
		"method", req.Method,
		"url", req.URL.Redacted(),
		"status", resp.StatusCode,
		"duration", duration,
		"request", requestDump,
		"response", responseDump)

	return resp, nil
}

func (t *LogTransport) dumpRequest(req *http.Request) string {
	redacted := req.Clone(req.Context())
	redactHeaders(redacted.Header)

	// DumpRequest drains the body of the clone and leaves a replayable copy on it.
	dump, err := httputil.DumpRequest(redacted, utils.IsTextContentType(req.Header.Get("Content-Type")))
	req.Body = redacted.Body

	if err != nil {
		return err.Error()
	}

	return t.truncate(dump)
}

func (t *LogTransport) dumpResponse(resp *http.Response) string {
	// Check the Content-Type header to determine if the response body should be dumped.
	contentType := resp.Header.Get("Content-Type")

	saved := resp.Header
	resp.Header = saved.Clone()
	redactHeaders(resp.Header)

	dump, err := httputil.DumpResponse(resp, utils.IsTextContentType(contentType))

	resp.Header = saved

	if err != nil {
		return err.Error()
	}

	return t.truncate(dump)
}

func (t *LogTransport) truncate(data []byte) string {
	if uint64(len(data)) > t.maxLogLength {
		return string(data[:t.maxLogLength]) + "... [truncated]"
	}

	return string(data)
}

func redactHeaders(h http.Header) {
	for _, name := range redactedHeaders {
		if h.Get(name) != "" {
			h.Set(name, redactedValue)
		}
	}
}
