package http

import (
	"context"
	"crypto/x509"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/oshokin/advanced-http/internal/client"
	"github.com/oshokin/advanced-http/internal/logger"
	"github.com/oshokin/advanced-http/internal/utils"
	"github.com/oshokin/advanced-http/internal/version"
)

// ProgressFunc creates a writer that tracks the body of a download.
// total is -1 when the server does not announce the length.
type ProgressFunc func(total int64, description string) io.Writer

// Options configures a Transport.
type Options struct {
	// Fs is the file system used for uploads, downloads and pinned certificates.
	// The OS file system is used when nil.
	Fs afero.Fs
	// CertificatesPath is the directory holding pinned certificates.
	CertificatesPath string
	// Timeout bounds a whole request; DefaultTimeout when zero.
	Timeout time.Duration
	// MaxLogLength bounds request/response dumps at debug level.
	MaxLogLength uint64
	// UserAgent is sent when no User-Agent header is set; DefaultUserAgent() when empty.
	UserAgent string
	// SSLPinning enables certificate pinning from the start.
	SSLPinning bool
	// AcceptAllCerts disables certificate verification from the start.
	AcceptAllCerts bool
	// SkipDomainNameValidation disables host name checks from the start.
	SkipDomainNameValidation bool
	// RootCAs replaces the system certificate pool.
	RootCAs *x509.CertPool
	// Progress tracks downloads when set.
	Progress ProgressFunc
}

// Transport performs client requests over net/http.
type Transport struct {
	// fs holds uploaded and downloaded files.
	fs afero.Fs
	// opts is the configuration the transport was created with.
	opts Options
	// inflight tracks requests still running.
	inflight sync.WaitGroup

	// mu guards the fields below.
	mu sync.RWMutex
	// security describes the current certificate checks.
	security securitySettings
	// httpClient is rebuilt whenever the certificate checks change.
	httpClient *http.Client
}

// NewTransport creates a Transport. When opts.SSLPinning is set the pinned
// certificates are loaded immediately and a missing certificate is an error.
func NewTransport(opts Options) (*Transport, error) {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}

	if opts.CertificatesPath == "" {
		opts.CertificatesPath = DefaultCertificatesPath
	}

	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	opts.UserAgent = utils.NewUserAgentProvider(opts.UserAgent, productName, version.Short()).GetUserAgent()

	t := &Transport{
		fs:   opts.Fs,
		opts: opts,
		security: securitySettings{
			acceptAllCerts:     opts.AcceptAllCerts,
			validateDomainName: !opts.SkipDomainNameValidation,
			roots:              opts.RootCAs,
		},
	}

	if opts.SSLPinning {
		pinned, err := loadPinnedCertificates(t.fs, opts.CertificatesPath)
		if err != nil {
			return nil, err
		}

		t.security.pinning = true
		t.security.pinned = pinned
	}

	t.httpClient = t.newHTTPClient(t.security)

	return t, nil
}

// Invoke performs the request in a new goroutine and reports through exactly one callback.
// It implements client.Transport.
func (t *Transport) Invoke(
	ctx context.Context,
	request *client.Request,
	onSuccess client.SuccessFunc,
	onFailure client.FailureFunc,
) {
	t.inflight.Add(1)

	go func() {
		defer t.inflight.Done()

		response, err := t.perform(ctx, request)
		if err != nil {
			logger.DebugKV(ctx, "Request failed", "action", request.Action, "url", request.URL, "error", err)
			onFailure(err)

			return
		}

		onSuccess(response)
	}()
}

// Wait blocks until every request started so far has reported.
func (t *Transport) Wait() {
	t.inflight.Wait()
}

func (t *Transport) perform(ctx context.Context, request *client.Request) (*client.Response, error) {
	switch request.Action {
	case client.ActionGet, client.ActionHead, client.ActionPost, client.ActionUploadFile:
		return t.send(ctx, request)
	case client.ActionDownloadFile:
		return t.download(ctx, request)
	case client.ActionEnableSSLPinning, client.ActionAcceptAllCerts, client.ActionValidateDomainName:
		return &client.Response{}, t.applyToggle(request.Action, request.Flag)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, request.Action)
	}
}

// applyToggle updates the certificate checks and rebuilds the HTTP client.
func (t *Transport) applyToggle(action client.Action, flag bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	settings := t.security

	switch action {
	case client.ActionEnableSSLPinning:
		settings.pinning = flag
		settings.pinned = nil

		if flag {
			pinned, err := loadPinnedCertificates(t.fs, t.opts.CertificatesPath)
			if err != nil {
				return err
			}

			settings.pinned = pinned
		}
	case client.ActionAcceptAllCerts:
		settings.acceptAllCerts = flag
	case client.ActionValidateDomainName:
		settings.validateDomainName = flag
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	previous := t.httpClient

	t.security = settings
	t.httpClient = t.newHTTPClient(settings)

	// Pooled connections were negotiated under the previous checks.
	previous.CloseIdleConnections()

	return nil
}

func (t *Transport) client() *http.Client {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.httpClient
}

// newHTTPClient builds the HTTP client stack. Cookies are handled by the session,
// so the client has no jar of its own.
func (t *Transport) newHTTPClient(settings securitySettings) *http.Client {
	base, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		base = &http.Transport{}
	}

	base = base.Clone()
	base.TLSClientConfig = settings.tlsConfig()

	return &http.Client{
		Transport: NewHeaderInjector(
			NewLogTransport(base, t.opts.MaxLogLength),
			utils.NewStaticUserAgentProvider(t.opts.UserAgent),
			http.Header{acceptHeader: {"*/*"}}),
		Timeout: t.opts.Timeout,
	}
}
