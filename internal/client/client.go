package client

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/oshokin/advanced-http/internal/cookie"
	"github.com/oshokin/advanced-http/internal/header"
	"github.com/oshokin/advanced-http/internal/logger"
	"github.com/oshokin/advanced-http/internal/serializer"
)

// Options configures a new Client.
type Options struct {
	// Headers are the initial session headers.
	Headers header.Map
	// DataSerializer is the initial body encoding name; empty means serializer.Default.
	DataSerializer string
	// StrictSerializer makes SetDataSerializer reject unknown encoding names.
	StrictSerializer bool
	// Cookies is the session cookie jar; a new one is created when nil.
	Cookies *cookie.Store
	// CookieJarSize bounds a newly created cookie jar.
	CookieJarSize int
	// FileEntryFactory translates download results; DefaultFileEntryFactory when nil.
	FileEntryFactory FileEntryFactory
}

// Client is an HTTP session: shared headers, body encoding and cookie jar
// applied to every request it sends through its Transport.
//
// Session settings are expected to be changed during setup, but every method
// is safe for concurrent use.
type Client struct {
	// transport performs the shaped requests.
	transport Transport
	// files builds download file handles.
	files FileEntryFactory
	// cookies is the session cookie jar.
	cookies *cookie.Store
	// strictSerializer rejects unknown encoding names.
	strictSerializer bool

	// mu guards the session settings below.
	mu sync.RWMutex
	// headers are applied to every request unless overridden per call.
	headers header.Map
	// dataSerializer is the body encoding of POST requests.
	dataSerializer serializer.Kind
	// sslPinning mirrors the last pinning state confirmed by the transport.
	sslPinning bool
}

// NewClient creates a Client sending requests through transport and runs the registered hooks.
func NewClient(transport Transport, opts Options) (*Client, error) {
	if transport == nil {
		return nil, ErrNilTransport
	}

	cookies := opts.Cookies
	if cookies == nil {
		var err error

		cookies, err = cookie.NewStore(opts.CookieJarSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
	}

	files := opts.FileEntryFactory
	if files == nil {
		files = DefaultFileEntryFactory{}
	}

	c := &Client{
		transport:        transport,
		files:            files,
		cookies:          cookies,
		strictSerializer: opts.StrictSerializer,
		headers:          uniqueHeaders(opts.Headers),
		dataSerializer:   serializer.Default,
	}

	if opts.DataSerializer != "" {
		if err := c.SetDataSerializer(opts.DataSerializer); err != nil {
			return nil, err
		}
	}

	runHooks(c)

	return c, nil
}

// SetHeader sets a session header sent with every request.
// A header whose name differs only in case is replaced, keeping its original spelling.
func (c *Client) SetHeader(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.headers.Set(name, value)
}

// Headers returns a copy of the session headers.
func (c *Client) Headers() header.Map {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.headers.Clone()
}

// SetDataSerializer selects the body encoding of POST requests.
// Unknown names are reduced to their first character, which the transport then
// rejects; in strict mode they are refused with serializer.ErrInvalidSerializer.
func (c *Client) SetDataSerializer(name string) error {
	kind := serializer.Select(name)

	if c.strictSerializer {
		var err error

		kind, err = serializer.SelectStrict(name)
		if err != nil {
			return err
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.dataSerializer = kind

	return nil
}

// DataSerializer returns the body encoding of POST requests.
func (c *Client) DataSerializer() serializer.Kind {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.dataSerializer
}

// SSLPinning reports whether the transport confirmed that pinning is enabled.
func (c *Client) SSLPinning() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.sslPinning
}

// Cookies returns the session cookie jar.
func (c *Client) Cookies() *cookie.Store {
	return c.cookies
}

// ClearCookies removes every cookie of the session.
func (c *Client) ClearCookies() {
	c.cookies.Clear()
}

func (c *Client) setSSLPinning(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sslPinning = enabled
}

// submit hands a shaped request to the transport.
func (c *Client) submit(ctx context.Context, request *Request, onSuccess SuccessFunc, onFailure FailureFunc) {
	logger.DebugKV(ctx, "Submitting request",
		"action", request.Action,
		"url", request.URL,
		"headers", len(request.Headers),
		"serializer", request.Serializer)

	c.transport.Invoke(ctx, request, onSuccess, onFailure)
}

// uniqueHeaders copies headers keeping one entry per case-insensitive name.
// Names are visited in sorted order, so the result does not depend on map iteration.
func uniqueHeaders(headers header.Map) header.Map {
	result := make(header.Map, len(headers))

	for _, name := range slices.Sorted(maps.Keys(headers)) {
		result.Set(name, headers[name])
	}

	return result
}
