package serializer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSelect tests the Select function.
func TestSelect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		requested string
		expected  Kind
	}{
		{
			name:      "exact json",
			requested: "json",
			expected:  JSON,
		},
		{
			name:      "upper-case json with trailing space",
			requested: "JSON ",
			expected:  JSON,
		},
		{
			name:      "urlencoded",
			requested: "urlencoded",
			expected:  URLEncoded,
		},
		{
			name:      "unknown name keeps first character",
			requested: "xml",
			expected:  Kind("x"),
		},
		{
			name:      "unknown name is normalized first",
			requested: "  Multipart",
			expected:  Kind("m"),
		},
		{
			name:      "multi-byte first character",
			requested: "ёжик",
			expected:  Kind("ё"),
		},
		{
			name:      "empty string",
			requested: "",
			expected:  Kind(""),
		},
		{
			name:      "whitespace only",
			requested: "   ",
			expected:  Kind(""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.NotPanics(t, func() {
				assert.Equal(t, tt.expected, Select(tt.requested))
			})
		})
	}
}

// TestSelect_DegenerateIsInvalid tests that fallback values never pass validation.
func TestSelect_DegenerateIsInvalid(t *testing.T) {
	t.Parallel()

	for _, requested := range []string{"xml", "j", "u", ""} {
		assert.False(t, Select(requested).Valid(), requested)
	}
}

// TestSelectStrict tests the SelectStrict function.
func TestSelectStrict(t *testing.T) {
	t.Parallel()

	kind, err := SelectStrict(" Json")
	require.NoError(t, err)
	assert.Equal(t, JSON, kind)

	kind, err = SelectStrict("xml")
	require.ErrorIs(t, err, ErrInvalidSerializer)
	assert.Empty(t, kind)

	_, err = SelectStrict("")
	require.ErrorIs(t, err, ErrInvalidSerializer)
}

// TestEncode tests the Encode function.
func TestEncode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                string
		kind                Kind
		data                map[string]any
		expectedBody        string
		expectedContentType string
		expectedErr         error
		expectError         bool
	}{
		{
			name:                "urlencoded scalars",
			kind:                URLEncoded,
			data:                map[string]any{"k": 1, "name": "a b"},
			expectedBody:        "k=1&name=a+b",
			expectedContentType: ContentTypeURLEncoded,
		},
		{
			name:                "urlencoded slice repeats key",
			kind:                URLEncoded,
			data:                map[string]any{"id": []int{1, 2}, "skip": nil},
			expectedBody:        "id=1&id=2",
			expectedContentType: ContentTypeURLEncoded,
		},
		{
			name:                "json object",
			kind:                JSON,
			data:                map[string]any{"k": 1},
			expectedBody:        `{"k":1}`,
			expectedContentType: ContentTypeJSON,
		},
		{
			name:                "nil data as json",
			kind:                JSON,
			data:                nil,
			expectedBody:        `{}`,
			expectedContentType: ContentTypeJSON,
		},
		{
			name:        "degenerate kind",
			kind:        Kind("x"),
			data:        map[string]any{"k": 1},
			expectedErr: ErrUnsupportedSerializer,
		},
		{
			name:        "unencodable json value",
			kind:        JSON,
			data:        map[string]any{"ch": make(chan int)},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			body, contentType, err := Encode(tt.kind, tt.data)

			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)

				return
			}

			if tt.expectError {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedBody, string(body))
			assert.Equal(t, tt.expectedContentType, contentType)
		})
	}
}
