package cookie

import (
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// Origin derives the jar key for rawURL: lower-cased "scheme://host[:port]".
// Hosts are converted to their ASCII form so that Unicode and punycode spellings
// share one entry. A URL without a scheme, such as "example.com:8080/a", is keyed by "host[:port]".
// The second value is false when no host can be derived.
func Origin(rawURL string) (string, bool) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", false
	}

	if hasBareHostPort(rawURL) {
		rawURL = "//" + rawURL
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}

	if parsed.Host == "" {
		// "example.com/path" parses as a bare path.
		if parsed.Scheme != "" || parsed.Opaque != "" {
			return "", false
		}

		host, _, _ := strings.Cut(parsed.Path, "/")
		if host == "" {
			return "", false
		}

		return normalizeHost(host), true
	}

	hostPort := parsed.Hostname()
	if strings.Contains(hostPort, ":") {
		hostPort = "[" + strings.ToLower(hostPort) + "]"
	} else {
		hostPort = normalizeHost(hostPort)
	}

	if port := parsed.Port(); port != "" {
		hostPort += ":" + port
	}

	if parsed.Scheme == "" {
		return hostPort, true
	}

	return strings.ToLower(parsed.Scheme) + "://" + hostPort, true
}

// hasBareHostPort reports whether rawURL starts with "host:port" and no scheme,
// which url.Parse would otherwise read as a scheme named after the host.
func hasBareHostPort(rawURL string) bool {
	if strings.Contains(rawURL, "://") || strings.HasPrefix(rawURL, "//") {
		return false
	}

	authority, _, _ := strings.Cut(rawURL, "/")

	host, port, found := strings.Cut(authority, ":")
	if !found || host == "" || port == "" {
		return false
	}

	return strings.Trim(port, "0123456789") == ""
}

func normalizeHost(host string) string {
	host = strings.ToLower(host)

	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return host
	}

	return ascii
}
