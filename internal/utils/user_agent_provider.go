package utils

import (
	"runtime"
	"strings"
)

//go:generate $MOCKGEN -source=user_agent_provider.go -destination=mocks/user_agent_provider_mock.go

// UserAgentProvider supplies the User-Agent sent when a request carries none.
type UserAgentProvider interface {
	// GetUserAgent returns a User-Agent string.
	GetUserAgent() string
}

// StaticUserAgentProvider returns a User-Agent configured by the user.
type StaticUserAgentProvider struct {
	userAgent string
}

// NewStaticUserAgentProvider returns a provider that always answers userAgent.
func NewStaticUserAgentProvider(userAgent string) *StaticUserAgentProvider {
	return &StaticUserAgentProvider{userAgent: strings.TrimSpace(userAgent)}
}

// GetUserAgent returns the configured User-Agent.
func (p *StaticUserAgentProvider) GetUserAgent() string {
	return p.userAgent
}

// ProductUserAgentProvider builds a "product/version (os; arch)" User-Agent.
type ProductUserAgentProvider struct {
	userAgent string
}

// NewProductUserAgentProvider returns a provider describing product and version on the running platform.
// An empty version is reported as "dev".
func NewProductUserAgentProvider(product, version string) *ProductUserAgentProvider {
	if version == "" {
		version = "dev"
	}

	return &ProductUserAgentProvider{
		userAgent: product + "/" + version + " (" + runtime.GOOS + "; " + runtime.GOARCH + ")",
	}
}

// GetUserAgent returns the product User-Agent.
func (p *ProductUserAgentProvider) GetUserAgent() string {
	return p.userAgent
}

// NewUserAgentProvider returns a static provider for a non-blank userAgent
// and falls back to the product provider otherwise.
func NewUserAgentProvider(userAgent, product, version string) UserAgentProvider {
	if strings.TrimSpace(userAgent) != "" {
		return NewStaticUserAgentProvider(userAgent)
	}

	return NewProductUserAgentProvider(product, version)
}
