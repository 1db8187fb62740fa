package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/advanced-http/internal/constants"
	"github.com/oshokin/advanced-http/internal/serializer"
)

// validConfig returns a configuration that passes validation.
func validConfig() *Config {
	return &Config{
		LogLevel:           "info",
		DataSerializer:     "json",
		Headers:            map[string]string{"X-Client": "cli"},
		ValidateDomainName: true,
		CertificatesPath:   "certs",
		Timeout:            "30s",
		MaxLogLength:       "64KB",
		CookieJarSize:      16,
		SessionFile:        "session.yaml",
	}
}

// TestConstants tests the constants.
func TestConstants(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1024*1024, DefaultMaxLogLength)
	assert.Equal(t, 1024, DefaultCookieJarSize)
	assert.Equal(t, ".advanced-http.yaml", DefaultConfigFilename)
}

// TestLoadConfig tests the LoadConfig function.
func TestLoadConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		configFilename string
		configContent  string
		expectError    bool
		expectedError  string
	}{
		{
			name:           "valid config file",
			configFilename: "valid_config.yaml",
			configContent: `
log_level: "debug"
data_serializer: "json"
strict_serializer: true
headers:
  X-Api-Key: "secret"
basic_auth:
  username: "foo"
  password: "bar"
ssl_pinning: true
accept_all_certs: false
validate_domain_name: false
certificates_path: "/etc/pins"
timeout: "15s"
max_log_length: "10KB"
user_agent: "tests/1.0"
cookie_jar_size: 32
session_file: "/tmp/session.yaml"
`,
			expectError: false,
		},
		{
			name:           "non-existent file",
			configFilename: "non_existent.yaml",
			expectError:    true,
			expectedError:  "failed to read config from file",
		},
		{
			name:           "invalid yaml",
			configFilename: "invalid.yaml",
			configContent: `
invalid: yaml: content: [unclosed
`,
			expectError:   true,
			expectedError: "failed to read config from file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			configPath := filepath.Join(t.TempDir(), tt.configFilename)

			if tt.configContent != "" {
				err := os.WriteFile(configPath, []byte(tt.configContent), constants.DefaultFilePermissions)
				require.NoError(t, err)
			}

			cfg, err := LoadConfig(configPath)

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError)
				assert.Nil(t, cfg)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)

			assert.Equal(t, configPath, cfg.Filename)
			assert.Equal(t, "debug", cfg.LogLevel)
			assert.Equal(t, "json", cfg.DataSerializer)
			assert.True(t, cfg.StrictSerializer)
			// Viper lower-cases map keys; header names are case-insensitive anyway.
			assert.Equal(t, map[string]string{"x-api-key": "secret"}, cfg.Headers)
			assert.Equal(t, BasicAuth{Username: "foo", Password: "bar"}, cfg.BasicAuth)
			assert.True(t, cfg.SSLPinning)
			assert.False(t, cfg.AcceptAllCerts)
			assert.False(t, cfg.ValidateDomainName)
			assert.Equal(t, "/etc/pins", cfg.CertificatesPath)
			assert.Equal(t, "15s", cfg.Timeout)
			assert.Equal(t, "10KB", cfg.MaxLogLength)
			assert.Equal(t, "tests/1.0", cfg.UserAgent)
			assert.Equal(t, 32, cfg.CookieJarSize)
			assert.Equal(t, "/tmp/session.yaml", cfg.SessionFile)
		})
	}
}

// TestLoadConfig_Defaults tests that omitted settings get their defaults.
func TestLoadConfig_Defaults(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), "minimal.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("user_agent: \"min\"\n"), constants.DefaultFilePermissions))

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, string(serializer.URLEncoded), cfg.DataSerializer)
	assert.True(t, cfg.ValidateDomainName)
	assert.Equal(t, DefaultCertificatesPath, cfg.CertificatesPath)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultCookieJarSize, cfg.CookieJarSize)
	assert.Equal(t, DefaultSessionFilename, cfg.SessionFile)

	require.NoError(t, ValidateConfig(cfg))
	assert.Equal(t, uint64(DefaultMaxLogLength), cfg.ParsedMaxLogLength)
	assert.Equal(t, serializer.URLEncoded, cfg.ParsedDataSerializer)
	assert.Equal(t, 60*time.Second, cfg.ParsedTimeout)
}

// TestLoadConfig_Environment tests that environment variables override the file.
//
//nolint:paralleltest // t.Setenv cannot be used in parallel tests.
func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("ADVANCED_HTTP_DATA_SERIALIZER", "json")
	t.Setenv("ADVANCED_HTTP_BASIC_AUTH_USERNAME", "env-user")

	configPath := filepath.Join(t.TempDir(), "env.yaml")
	require.NoError(t, os.WriteFile(configPath,
		[]byte("data_serializer: urlencoded\nbasic_auth:\n  username: file-user\n"),
		constants.DefaultFilePermissions))

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.DataSerializer)
	assert.Equal(t, "env-user", cfg.BasicAuth.Username)
}

// TestValidateConfig tests the ValidateConfig function.
func TestValidateConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		modify      func(cfg *Config)
		expectError bool
		errorMsg    string
	}{
		{
			name:        "valid config",
			modify:      func(*Config) {},
			expectError: false,
		},
		{
			name:        "unknown log level",
			modify:      func(cfg *Config) { cfg.LogLevel = "loud" },
			expectError: true,
			errorMsg:    "unknown log level: 'loud'",
		},
		{
			name:        "degenerate serializer is normalized",
			modify:      func(cfg *Config) { cfg.DataSerializer = "XML" },
			expectError: false,
		},
		{
			name: "strict serializer rejects unknown names",
			modify: func(cfg *Config) {
				cfg.DataSerializer = "xml"
				cfg.StrictSerializer = true
			},
			expectError: true,
			errorMsg:    "failed to parse data serializer",
		},
		{
			name:        "invalid timeout format",
			modify:      func(cfg *Config) { cfg.Timeout = "soon" },
			expectError: true,
			errorMsg:    "failed to parse timeout",
		},
		{
			name:        "negative timeout",
			modify:      func(cfg *Config) { cfg.Timeout = "-1s" },
			expectError: true,
			errorMsg:    "timeout must be positive",
		},
		{
			name:        "invalid max log length",
			modify:      func(cfg *Config) { cfg.MaxLogLength = "lots" },
			expectError: true,
			errorMsg:    "failed to parse max log length",
		},
		{
			name:        "zero cookie jar size",
			modify:      func(cfg *Config) { cfg.CookieJarSize = 0 },
			expectError: true,
			errorMsg:    "cookie_jar_size must be a positive integer",
		},
		{
			name:        "password without username",
			modify:      func(cfg *Config) { cfg.BasicAuth.Password = "bar" },
			expectError: true,
			errorMsg:    "basic_auth.username cannot be empty",
		},
		{
			name:        "empty header name",
			modify:      func(cfg *Config) { cfg.Headers[" "] = "value" },
			expectError: true,
			errorMsg:    "header name cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.modify(cfg)

			err := ValidateConfig(cfg)

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)

				return
			}

			require.NoError(t, err)
		})
	}
}

// TestValidateConfig_ParsedFields tests the derived fields set by ValidateConfig.
func TestValidateConfig_ParsedFields(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.LogLevel = "DEBUG"
	cfg.DataSerializer = " Xml "
	cfg.SessionFile = ""
	cfg.CertificatesPath = ""

	require.NoError(t, ValidateConfig(cfg))

	assert.Equal(t, zapcore.DebugLevel, cfg.ParsedLogLevel)
	assert.Equal(t, serializer.Kind("x"), cfg.ParsedDataSerializer)
	assert.Equal(t, 30*time.Second, cfg.ParsedTimeout)
	assert.Equal(t, uint64(64000), cfg.ParsedMaxLogLength)
	assert.Equal(t, DefaultSessionFilename, cfg.SessionFile)
	assert.Equal(t, DefaultCertificatesPath, cfg.CertificatesPath)
}

// TestSaveConfig tests that SaveConfig rewrites only the headers.
func TestSaveConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		originalContent string
		expectedPrefix  string
	}{
		{
			name: "existing headers are replaced",
			originalContent: `log_level: info
headers:
  X-Old: "1"
timeout: 30s
`,
			expectedPrefix: "log_level: info\nheaders:",
		},
		{
			name:            "missing headers are appended",
			originalContent: "log_level: warn\n",
			expectedPrefix:  "log_level: warn\n",
		},
		{
			name:            "empty file",
			originalContent: "",
			expectedPrefix:  "headers:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			configPath := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(configPath, []byte(tt.originalContent), constants.DefaultFilePermissions))

			cfg := &Config{
				Filename: configPath,
				Headers:  map[string]string{"X-New": "2", "Authorization": "Basic Zm9v"},
			}

			require.NoError(t, SaveConfig(cfg))

			content, err := os.ReadFile(configPath)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(content), tt.expectedPrefix), string(content))
			assert.NotContains(t, string(content), "X-Old")

			var saved struct {
				Headers map[string]string `yaml:"headers"`
			}

			require.NoError(t, yaml.Unmarshal(content, &saved))
			assert.Equal(t, cfg.Headers, saved.Headers)
		})
	}
}

// TestSaveConfig_MissingFile tests that SaveConfig creates a missing file.
func TestSaveConfig_MissingFile(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), "new.yaml")

	require.NoError(t, SaveConfig(&Config{Filename: configPath, Headers: map[string]string{"x-token": "abc"}}))

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"x-token": "abc"}, cfg.Headers)
}

// TestUpdateHeadersInNode tests that header names are written in sorted order.
func TestUpdateHeadersInNode(t *testing.T) {
	t.Parallel()

	var node yaml.Node

	require.NoError(t, yaml.Unmarshal([]byte("a: 1\n"), &node))

	updateHeadersInNode(&node, map[string]string{"b": "2", "a": "1"})

	content, err := yaml.Marshal(&node)
	require.NoError(t, err)
	assert.Equal(t, "a: 1\nheaders:\n    a: \"1\"\n    b: \"2\"\n", string(content))
}
