package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/advanced-http/internal/constants"
	"github.com/oshokin/advanced-http/internal/logger"
	"github.com/oshokin/advanced-http/internal/serializer"
)

// Config holds all configuration settings.
type Config struct {
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`
	// DataSerializer is the body encoding of POST requests (urlencoded or json).
	DataSerializer string `mapstructure:"data_serializer"`
	// StrictSerializer rejects unknown serializer names instead of normalizing them.
	StrictSerializer bool `mapstructure:"strict_serializer"`
	// Headers are sent with every request unless overridden per request.
	Headers map[string]string `mapstructure:"headers"`
	// BasicAuth adds an Authorization header to the session headers when set.
	BasicAuth BasicAuth `mapstructure:"basic_auth"`
	// SSLPinning accepts only servers whose certificate is stored in CertificatesPath.
	SSLPinning bool `mapstructure:"ssl_pinning"`
	// AcceptAllCerts disables server certificate verification.
	AcceptAllCerts bool `mapstructure:"accept_all_certs"`
	// ValidateDomainName checks that the server certificate matches the host.
	ValidateDomainName bool `mapstructure:"validate_domain_name"`
	// CertificatesPath is the directory holding pinned certificates.
	CertificatesPath string `mapstructure:"certificates_path"`
	// Timeout bounds a whole request (e.g., "30s", "2m").
	Timeout string `mapstructure:"timeout"`
	// MaxLogLength bounds request/response dumps at debug level (e.g., "64KB", "1MiB").
	MaxLogLength string `mapstructure:"max_log_length"`
	// UserAgent is sent when a request has no User-Agent header.
	UserAgent string `mapstructure:"user_agent"`
	// CookieJarSize is the maximum number of origins kept in the cookie jar.
	CookieJarSize int `mapstructure:"cookie_jar_size"`
	// SessionFile keeps the cookie jar between runs.
	SessionFile string `mapstructure:"session_file"`
	// Filename is the file the configuration was read from.
	Filename string `mapstructure:"-"`
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level `mapstructure:"-"`
	// ParsedDataSerializer is the normalized serializer.
	ParsedDataSerializer serializer.Kind `mapstructure:"-"`
	// ParsedTimeout is the parsed request timeout.
	ParsedTimeout time.Duration `mapstructure:"-"`
	// ParsedMaxLogLength is the parsed dump limit in bytes.
	ParsedMaxLogLength uint64 `mapstructure:"-"`
}

// BasicAuth holds the credentials of the Authorization header.
type BasicAuth struct {
	// Username is the basic auth user name.
	Username string `mapstructure:"username"`
	// Password is the basic auth password.
	Password string `mapstructure:"password"`
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".advanced-http.yaml"

	// DefaultSessionFilename is the default name of the cookie session file.
	DefaultSessionFilename = ".advanced-http-session.yaml"

	// DefaultCertificatesPath is the default directory of pinned certificates.
	DefaultCertificatesPath = "certificates"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = "60s"

	// DefaultCookieJarSize is the default number of origins kept in the cookie jar.
	DefaultCookieJarSize = 1024

	// DefaultMaxLogLength is the default maximum size (in bytes) of logged request/response dumps.
	DefaultMaxLogLength = 1 * 1024 * 1024 // 1 MB

	// envPrefix prefixes environment variables overriding file settings.
	envPrefix = "ADVANCED_HTTP"

	// headersKey is the configuration key of the session headers.
	headersKey = "headers"
)

// Static error definitions for better error handling.
var (
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrInvalidTimeout indicates that the timeout setting is invalid.
	ErrInvalidTimeout = errors.New("timeout must be positive")
	// ErrInvalidCookieJarSize indicates that the cookie jar size is invalid.
	ErrInvalidCookieJarSize = errors.New("cookie_jar_size must be a positive integer")
	// ErrMissingBasicAuthUsername indicates that a basic auth password was given without a user name.
	ErrMissingBasicAuthUsername = errors.New("basic_auth.username cannot be empty when a password is set")
	// ErrEmptyHeaderName indicates that a session header has no name.
	ErrEmptyHeaderName = errors.New("header name cannot be empty")
)

// LoadConfig loads configuration settings from a YAML file.
// When configFilename is empty, DefaultConfigFilename is used and a missing
// file yields the defaults. Environment variables prefixed with ADVANCED_HTTP_
// override file settings.
func LoadConfig(configFilename string) (*Config, error) {
	isDefaultFile := configFilename == ""
	if isDefaultFile {
		configFilename = DefaultConfigFilename
	}

	v := newViper()
	v.SetConfigFile(configFilename)

	if err := v.ReadInConfig(); err != nil && (!isDefaultFile || !isNotFound(err)) {
		return nil, fmt.Errorf("failed to read config from file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Filename = configFilename

	return &cfg, nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError

	return errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound)
}

// newViper creates a viper instance with the default settings.
func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("data_serializer", string(serializer.Default))
	v.SetDefault("validate_domain_name", true)
	v.SetDefault("certificates_path", DefaultCertificatesPath)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("max_log_length", humanize.IBytes(DefaultMaxLogLength))
	v.SetDefault("cookie_jar_size", DefaultCookieJarSize)
	v.SetDefault("session_file", DefaultSessionFilename)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// ValidateConfig checks the configuration for validity and sets derived fields.
//
//nolint:cyclop // Validation functions naturally have high complexity due to sequential checks.
func ValidateConfig(cfg *Config) error {
	var err error

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	dataSerializer := strings.TrimSpace(cfg.DataSerializer)
	if dataSerializer == "" {
		dataSerializer = string(serializer.Default)
	}

	if cfg.StrictSerializer {
		cfg.ParsedDataSerializer, err = serializer.SelectStrict(dataSerializer)
		if err != nil {
			return fmt.Errorf("failed to parse data serializer: %w", err)
		}
	} else {
		cfg.ParsedDataSerializer = serializer.Select(dataSerializer)
	}

	timeout := strings.TrimSpace(cfg.Timeout)
	if timeout == "" {
		timeout = DefaultTimeout
	}

	cfg.ParsedTimeout, err = time.ParseDuration(timeout)
	if err != nil {
		return fmt.Errorf("failed to parse timeout: %w", err)
	}

	if cfg.ParsedTimeout <= 0 {
		return ErrInvalidTimeout
	}

	cfg.ParsedMaxLogLength = DefaultMaxLogLength

	if maxLogLength := strings.TrimSpace(cfg.MaxLogLength); maxLogLength != "" {
		cfg.ParsedMaxLogLength, err = humanize.ParseBytes(maxLogLength)
		if err != nil {
			return fmt.Errorf("failed to parse max log length: %w", err)
		}
	}

	if cfg.CookieJarSize <= 0 {
		return ErrInvalidCookieJarSize
	}

	if strings.TrimSpace(cfg.BasicAuth.Username) == "" && cfg.BasicAuth.Password != "" {
		return ErrMissingBasicAuthUsername
	}

	for name := range cfg.Headers {
		if strings.TrimSpace(name) == "" {
			return ErrEmptyHeaderName
		}
	}

	if strings.TrimSpace(cfg.SessionFile) == "" {
		cfg.SessionFile = DefaultSessionFilename
	}

	if strings.TrimSpace(cfg.CertificatesPath) == "" {
		cfg.CertificatesPath = DefaultCertificatesPath
	}

	return nil
}

// SaveConfig saves the session headers to the configuration file while preserving
// the original format and order of the other settings.
func SaveConfig(cfg *Config) error {
	configFile := cfg.Filename
	if configFile == "" {
		configFile = DefaultConfigFilename
	}

	// Read the original file content.
	originalContent, err := os.ReadFile(configFile)
	if err != nil {
		return handleMissingConfigFile(configFile, cfg.Headers, err)
	}

	// Parse YAML while preserving order using yaml.Node.
	var node yaml.Node
	if err = yaml.Unmarshal(originalContent, &node); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	updateHeadersInNode(&node, cfg.Headers)

	// Marshal back to YAML (preserves order).
	newContent, err := yaml.Marshal(&node)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err = os.WriteFile(configFile, newContent, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// handleMissingConfigFile creates a new config file if it doesn't exist.
func handleMissingConfigFile(configFile string, headers map[string]string, err error) error {
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// File doesn't exist, create it with viper.
	v := viper.New()
	v.Set(headersKey, headers)

	if err = v.SafeWriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	return nil
}

// updateHeadersInNode replaces the headers mapping in the YAML node tree,
// appending it when the document has none.
func updateHeadersInNode(node *yaml.Node, headers map[string]string) {
	// An empty document becomes a single mapping.
	if len(node.Content) == 0 {
		node.Kind = yaml.DocumentNode
		node.Content = []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}
	}

	// The root node is a document node, content[0] is the actual map.
	mapNode := node.Content[0]
	if mapNode.Kind != yaml.MappingNode {
		return
	}

	headersNode := newHeadersNode(headers)

	// Iterate through key-value pairs (stored as alternating nodes).
	for i := 0; i+1 < len(mapNode.Content); i += 2 {
		if mapNode.Content[i].Value == headersKey {
			mapNode.Content[i+1] = headersNode

			return
		}
	}

	mapNode.Content = append(mapNode.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: headersKey},
		headersNode)
}

// newHeadersNode builds a mapping node with header names in sorted order.
func newHeadersNode(headers map[string]string) *yaml.Node {
	names := make([]string, 0, len(headers))
	for name := range headers {
		names = append(names, name)
	}

	slices.Sort(names)

	result := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, name := range names {
		result.Content = append(result.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: headers[name], Style: yaml.DoubleQuotedStyle})
	}

	return result
}
