package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/advanced-http/internal/utils"
	mock_utils "github.com/oshokin/advanced-http/internal/utils/mocks"
)

// TestNewHeaderInjector tests the NewHeaderInjector function.
func TestNewHeaderInjector(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProvider := mock_utils.NewMockUserAgentProvider(ctrl)
	mockProvider.EXPECT().GetUserAgent().Return("TestAgent/1.0").AnyTimes()

	injector := NewHeaderInjector(http.DefaultTransport, mockProvider, nil)

	assert.NotNil(t, injector)
	assert.Implements(t, (*http.RoundTripper)(nil), injector)
}

// TestHeaderInjector_RoundTrip_WithExistingUserAgent tests RoundTrip when User-Agent header already exists.
func TestHeaderInjector_RoundTrip_WithExistingUserAgent(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProvider := mock_utils.NewMockUserAgentProvider(ctrl)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ExistingAgent/1.0", r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	injector := NewHeaderInjector(http.DefaultTransport, mockProvider, nil)

	req, err := http.NewRequest(http.MethodGet, server.URL, nil) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)
	req.Header.Set("User-Agent", "ExistingAgent/1.0")

	resp, err := injector.RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestHeaderInjector_RoundTrip_WithoutUserAgent tests RoundTrip when User-Agent header is missing.
func TestHeaderInjector_RoundTrip_WithoutUserAgent(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProvider := mock_utils.NewMockUserAgentProvider(ctrl)
	mockProvider.EXPECT().GetUserAgent().Return("TestAgent/1.0").Times(1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "TestAgent/1.0", r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	injector := NewHeaderInjector(http.DefaultTransport, mockProvider, nil)

	req, err := http.NewRequest(http.MethodGet, server.URL, nil) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)

	resp, err := injector.RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The caller's request is left untouched.
	assert.Empty(t, req.Header.Get("User-Agent"))
}

// TestHeaderInjector_RoundTrip_Defaults tests that default headers fill only missing values.
func TestHeaderInjector_RoundTrip_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		requestAccept  string
		expectedAccept string
	}{
		{
			name:           "missing accept gets default",
			requestAccept:  "",
			expectedAccept: "*/*",
		},
		{
			name:           "existing accept is kept",
			requestAccept:  "application/json",
			expectedAccept: "application/json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.expectedAccept, r.Header.Get("Accept"))
				assert.Equal(t, "Defaults/1.0", r.Header.Get("User-Agent"))
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			injector := NewHeaderInjector(
				http.DefaultTransport,
				utils.NewStaticUserAgentProvider("Defaults/1.0"),
				http.Header{"Accept": {"*/*"}})

			req, err := http.NewRequest(http.MethodGet, server.URL, nil) //nolint:noctx // Test code, context not needed.
			require.NoError(t, err)

			if tt.requestAccept != "" {
				req.Header.Set("Accept", tt.requestAccept)
			}

			resp, err := injector.RoundTrip(req)
			require.NoError(t, err)

			defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}

// TestHeaderInjector_RoundTrip_NilRequest tests that a nil request is rejected.
func TestHeaderInjector_RoundTrip_NilRequest(t *testing.T) {
	t.Parallel()

	injector := NewHeaderInjector(http.DefaultTransport, nil, nil)

	resp, err := injector.RoundTrip(nil) //nolint:bodyclose // No response on error.
	require.ErrorIs(t, err, ErrNilRequest)
	assert.Nil(t, resp)
}

// TestHeaderInjector_RoundTrip_ErrorHandling tests error handling in RoundTrip.
func TestHeaderInjector_RoundTrip_ErrorHandling(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockProvider := mock_utils.NewMockUserAgentProvider(ctrl)
	mockProvider.EXPECT().GetUserAgent().Return("TestAgent/1.0").AnyTimes()

	injector := NewHeaderInjector(http.DefaultTransport, mockProvider, nil)

	// Create request with invalid URL that will definitely fail.
	req, err := http.NewRequest(http.MethodGet, "http://[::1]:0", nil) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)

	resp, err := injector.RoundTrip(req) //nolint:bodyclose // Body is empty on error.
	require.Error(t, err)
	assert.Nil(t, resp)
}
