package http

import (
	"os"
	"time"

	"github.com/oshokin/advanced-http/internal/utils"
	"github.com/oshokin/advanced-http/internal/version"
)

const (
	// DefaultTimeout is the default timeout duration for HTTP requests.
	DefaultTimeout = 60 * time.Second

	// DefaultCertificatesPath is the directory scanned for pinned certificates.
	DefaultCertificatesPath = "certificates"

	// productName identifies the client in the default User-Agent.
	productName = "advanced-http"

	// redactedValue replaces credentials in request dumps.
	redactedValue = "[redacted]"
)

// DefaultUserAgent returns the User-Agent sent when neither the caller nor the session sets one.
func DefaultUserAgent() string {
	return utils.NewProductUserAgentProvider(productName, version.Short()).GetUserAgent()
}

// fileCreateFlags opens a download target for writing, replacing previous content.
const fileCreateFlags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
