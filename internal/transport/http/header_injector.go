package http

import (
	"net/http"

	"github.com/oshokin/advanced-http/internal/utils"
)

const (
	// userAgentHeader is the HTTP header name for User-Agent.
	userAgentHeader = "User-Agent"
	// acceptHeader is the HTTP header name for Accept.
	acceptHeader = "Accept"
)

// HeaderInjector is a custom http.RoundTripper that fills in default headers.
// Headers already present on the request, including the User-Agent, are never replaced.
type HeaderInjector struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// userAgentProvider provides the User-Agent string to inject.
	userAgentProvider utils.UserAgentProvider
	// defaults are the headers added when missing.
	defaults http.Header
}

// NewHeaderInjector creates and returns a new instance of HeaderInjector.
// The User-Agent comes from userAgentProvider; defaults may be nil.
func NewHeaderInjector(
	next http.RoundTripper,
	userAgentProvider utils.UserAgentProvider,
	defaults http.Header,
) http.RoundTripper {
	return &HeaderInjector{
		next:              next,
		userAgentProvider: userAgentProvider,
		defaults:          defaults.Clone(),
	}
}

// RoundTrip executes a single HTTP transaction after injecting missing headers.
// It implements the http.RoundTripper interface.
func (t *HeaderInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	missingUserAgent := req.Header.Get(userAgentHeader) == "" && t.userAgentProvider != nil
	missingDefaults := t.missingDefaults(req.Header)

	if !missingUserAgent && len(missingDefaults) == 0 {
		return t.next.RoundTrip(req)
	}

	// RoundTrippers must not modify the caller's request.
	req = req.Clone(req.Context())

	if missingUserAgent {
		req.Header.Set(userAgentHeader, t.userAgentProvider.GetUserAgent())
	}

	for _, name := range missingDefaults {
		req.Header[name] = t.defaults[name]
	}

	return t.next.RoundTrip(req)
}

func (t *HeaderInjector) missingDefaults(h http.Header) []string {
	var missing []string

	for name := range t.defaults {
		if h.Get(name) == "" {
			missing = append(missing, name)
		}
	}

	return missing
}
