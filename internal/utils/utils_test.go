//nolint:nolintlint,revive // utils is a common and acceptable package name for utility functions.
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSanitizeFilename tests the SanitizeFilename function.
func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "valid filename",
			input:    "test_file.txt",
			expected: "test_file.txt",
		},
		{
			name:     "invalid characters",
			input:    "test<file>.txt",
			expected: "test_file_.txt",
		},
		{
			name:     "Windows reserved name",
			input:    "CON",
			expected: "_CON",
		},
		{
			name:     "trailing dots",
			input:    "test...",
			expected: "test",
		},
		{
			name:     "only dots",
			input:    "...",
			expected: "_",
		},
		{
			name:     "control characters",
			input:    "test\x00file",
			expected: "test_file",
		},
		{
			name:     "root path segment",
			input:    "/",
			expected: "_",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := SanitizeFilename(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestIsTextContentType tests the IsTextContentType function.
func TestIsTextContentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		expected    bool
	}{
		{
			name:        "text/plain",
			contentType: "text/plain",
			expected:    true,
		},
		{
			name:        "text/html with charset",
			contentType: "text/html; charset=utf-8",
			expected:    true,
		},
		{
			name:        "application/json",
			contentType: "application/json",
			expected:    true,
		},
		{
			name:        "json suffix",
			contentType: "application/problem+json",
			expected:    true,
		},
		{
			name:        "application/samlmetadata+xml",
			contentType: "application/samlmetadata+xml",
			expected:    true,
		},
		{
			name:        "form body",
			contentType: "application/x-www-form-urlencoded",
			expected:    true,
		},
		{
			name:        "multipart body",
			contentType: "multipart/form-data; boundary=abc",
			expected:    false,
		},
		{
			name:        "image/jpeg",
			contentType: "image/jpeg",
			expected:    false,
		},
		{
			name:        "text with invalid charset",
			contentType: "text/plain; charset=invalid",
			expected:    false,
		},
		{
			name:        "invalid content type",
			contentType: "invalid/type",
			expected:    false,
		},
		{
			name:        "empty content type",
			contentType: "",
			expected:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := IsTextContentType(tt.contentType)
			assert.Equal(t, tt.expected, result)
		})
	}
}

// TestParseKeyValue tests the ParseKeyValue function.
func TestParseKeyValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		input         string
		expectedKey   string
		expectedValue string
		expectError   bool
	}{
		{
			name:          "simple pair",
			input:         "page=2",
			expectedKey:   "page",
			expectedValue: "2",
		},
		{
			name:          "value with separator",
			input:         "filter=a=b",
			expectedKey:   "filter",
			expectedValue: "a=b",
		},
		{
			name:          "empty value",
			input:         "flag=",
			expectedKey:   "flag",
			expectedValue: "",
		},
		{
			name:        "missing separator",
			input:       "flag",
			expectError: true,
		},
		{
			name:        "missing key",
			input:       "=value",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			key, value, err := ParseKeyValue(tt.input)

			if tt.expectError {
				require.ErrorIs(t, err, ErrInvalidKeyValue)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedKey, key)
			assert.Equal(t, tt.expectedValue, value)
		})
	}
}

// TestParseHeaderLine tests the ParseHeaderLine function.
func TestParseHeaderLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		input         string
		expectedName  string
		expectedValue string
		expectError   bool
	}{
		{
			name:          "simple header",
			input:         "Accept: application/json",
			expectedName:  "Accept",
			expectedValue: "application/json",
		},
		{
			name:          "value with colon",
			input:         "Referer:https://example.com",
			expectedName:  "Referer",
			expectedValue: "https://example.com",
		},
		{
			name:        "missing separator",
			input:       "Accept",
			expectError: true,
		},
		{
			name:        "missing name",
			input:       " : value",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			name, value, err := ParseHeaderLine(tt.input)

			if tt.expectError {
				require.ErrorIs(t, err, ErrInvalidHeaderLine)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedName, name)
			assert.Equal(t, tt.expectedValue, value)
		})
	}
}
