package http

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"github.com/oshokin/advanced-http/internal/constants"
)

// certificateExtensions lists the file extensions loaded as pinned certificates.
//
//nolint:gochecknoglobals // Immutable list used as a constant.
var certificateExtensions = []string{
	constants.ExtensionCER,
	constants.ExtensionCRT,
	constants.ExtensionPEM,
	constants.ExtensionDER,
}

// securitySettings describes how server certificates are checked.
// Pinning takes priority over accept-all, which takes priority over host name validation.
type securitySettings struct {
	// pinning accepts only servers whose leaf certificate is pinned.
	pinning bool
	// acceptAllCerts skips certificate verification entirely.
	acceptAllCerts bool
	// validateDomainName checks that the certificate matches the requested host.
	validateDomainName bool
	// pinned are the certificates accepted while pinning.
	pinned []*x509.Certificate
	// roots replaces the system roots when set.
	roots *x509.CertPool
}

// tlsConfig builds the client TLS configuration for the settings.
func (s securitySettings) tlsConfig() *tls.Config {
	cfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		RootCAs:    s.roots,
	}

	switch {
	case s.pinning:
		pinned := s.pinned

		//nolint:gosec // Verification is replaced by the pinned certificate check.
		cfg.InsecureSkipVerify = true
		cfg.VerifyConnection = func(state tls.ConnectionState) error {
			return verifyPinned(state, pinned)
		}
	case s.acceptAllCerts:
		//nolint:gosec // Explicitly requested by the caller.
		cfg.InsecureSkipVerify = true
	case !s.validateDomainName:
		roots := s.roots

		//nolint:gosec // The chain is still verified, only the host name check is skipped.
		cfg.InsecureSkipVerify = true
		cfg.VerifyConnection = func(state tls.ConnectionState) error {
			return verifyChain(state, roots)
		}
	}

	return cfg
}

func verifyPinned(state tls.ConnectionState, pinned []*x509.Certificate) error {
	if len(state.PeerCertificates) == 0 {
		return ErrNoPeerCertificates
	}

	leaf := state.PeerCertificates[0]

	if slices.ContainsFunc(pinned, func(cert *x509.Certificate) bool {
		return bytes.Equal(cert.Raw, leaf.Raw)
	}) {
		return nil
	}

	return fmt.Errorf("%w: %s", ErrPinnedCertificateMismatch, leaf.Subject)
}

func verifyChain(state tls.ConnectionState, roots *x509.CertPool) error {
	if len(state.PeerCertificates) == 0 {
		return ErrNoPeerCertificates
	}

	intermediates := x509.NewCertPool()
	for _, cert := range state.PeerCertificates[1:] {
		intermediates.AddCert(cert)
	}

	_, err := state.PeerCertificates[0].Verify(x509.VerifyOptions{
		Roots:         roots,
		Intermediates: intermediates,
	})

	return err
}

// loadPinnedCertificates reads every certificate file in dir.
// Files may hold DER data or one or more PEM blocks.
func loadPinnedCertificates(fs afero.Fs, dir string) ([]*x509.Certificate, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read certificates directory: %w", err)
	}

	var certificates []*x509.Certificate

	for _, entry := range entries {
		if entry.IsDir() || !slices.Contains(certificateExtensions, strings.ToLower(filepath.Ext(entry.Name()))) {
			continue
		}

		data, err := afero.ReadFile(fs, filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read certificate %s: %w", entry.Name(), err)
		}

		parsed, err := parseCertificates(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse certificate %s: %w", entry.Name(), err)
		}

		certificates = append(certificates, parsed...)
	}

	if len(certificates) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoPinnedCertificates, dir)
	}

	return certificates, nil
}

func parseCertificates(data []byte) ([]*x509.Certificate, error) {
	var (
		certificates []*x509.Certificate
		rest         = data
	)

	for {
		var block *pem.Block

		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}

		if block.Type != "CERTIFICATE" {
			continue
		}

		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return nil, err
		}

		certificates = append(certificates, cert)
	}

	if len(certificates) > 0 {
		return certificates, nil
	}

	return x509.ParseCertificates(data)
}
