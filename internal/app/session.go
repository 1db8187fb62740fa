package app

import (
	"context"
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/oshokin/advanced-http/internal/client"
	"github.com/oshokin/advanced-http/internal/config"
	"github.com/oshokin/advanced-http/internal/cookie"
	"github.com/oshokin/advanced-http/internal/header"
	"github.com/oshokin/advanced-http/internal/logger"
	"github.com/oshokin/advanced-http/internal/session"
	transporthttp "github.com/oshokin/advanced-http/internal/transport/http"
)

// Session is a configured client whose cookie jar outlives the process.
type Session struct {
	// cfg is the validated application configuration.
	cfg *config.Config
	// fs holds the session file, uploads and downloads.
	fs afero.Fs
	// transport performs the requests of client.
	transport *transporthttp.Transport
	// client shapes the requests.
	client *client.Client
}

// NewSession creates the transport and the client described by cfg and restores
// the cookies saved in cfg.SessionFile.
func NewSession(cfg *config.Config, fs afero.Fs, progress transporthttp.ProgressFunc) (*Session, error) {
	transport, err := transporthttp.NewTransport(transporthttp.Options{
		Fs:               fs,
		CertificatesPath: cfg.CertificatesPath,
		Timeout:          cfg.ParsedTimeout,
		MaxLogLength:     cfg.ParsedMaxLogLength,
		UserAgent:        cfg.UserAgent,
		Progress:         progress,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create transport: %w", err)
	}

	jar, err := cookie.NewStore(cfg.CookieJarSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	stored, err := session.Load(fs, cfg.SessionFile)
	if err != nil {
		return nil, err
	}

	jar.Restore(stored)

	c, err := client.NewClient(transport, client.Options{
		Headers:          header.Map(cfg.Headers),
		DataSerializer:   string(cfg.ParsedDataSerializer),
		StrictSerializer: cfg.StrictSerializer,
		Cookies:          jar,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	if cfg.BasicAuth.Username != "" {
		c.UseBasicAuth(cfg.BasicAuth.Username, cfg.BasicAuth.Password)
	}

	return &Session{
		cfg:       cfg,
		fs:        fs,
		transport: transport,
		client:    c,
	}, nil
}

// Client returns the request-shaping client of the session.
func (s *Session) Client() *client.Client {
	return s.client
}

// ApplySecurity forwards the certificate settings of the configuration to the transport.
// Settings equal to the transport defaults are skipped.
func (s *Session) ApplySecurity(ctx context.Context) error {
	toggles := []struct {
		name    string
		enabled bool
		apply   func(ctx context.Context, onSuccess client.SuccessFunc, onFailure client.FailureFunc)
	}{
		{
			name:    "SSL pinning",
			enabled: s.cfg.SSLPinning,
			apply: func(ctx context.Context, onSuccess client.SuccessFunc, onFailure client.FailureFunc) {
				s.client.EnableSSLPinning(ctx, true, onSuccess, onFailure)
			},
		},
		{
			name:    "accept all certificates",
			enabled: s.cfg.AcceptAllCerts,
			apply: func(ctx context.Context, onSuccess client.SuccessFunc, onFailure client.FailureFunc) {
				s.client.AcceptAllCerts(ctx, true, onSuccess, onFailure)
			},
		},
		{
			name:    "skip domain name validation",
			enabled: !s.cfg.ValidateDomainName,
			apply: func(ctx context.Context, onSuccess client.SuccessFunc, onFailure client.FailureFunc) {
				s.client.ValidateDomainName(ctx, false, onSuccess, onFailure)
			},
		},
	}

	for _, toggle := range toggles {
		if !toggle.enabled {
			continue
		}

		_, err := client.Await(ctx, func(onSuccess func(*client.Response), onFailure client.FailureFunc) {
			toggle.apply(ctx, onSuccess, onFailure)
		})
		if err != nil {
			return fmt.Errorf("failed to enable %s: %w", toggle.name, err)
		}

		logger.Debugf(ctx, "Enabled %s", toggle.name)
	}

	return nil
}

// Close waits for pending requests and saves the cookie jar.
func (s *Session) Close() error {
	s.transport.Wait()

	return session.Save(s.fs, s.cfg.SessionFile, s.client.Cookies().Snapshot())
}

// newProgressBar shows download progress unless the logger is quieter than info.
func newProgressBar(total int64, description string) io.Writer {
	if logger.Level() > zap.InfoLevel {
		return io.Discard
	}

	return progressbar.DefaultBytes(total, description)
}
