package client_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/advanced-http/internal/client"
	mock_client "github.com/oshokin/advanced-http/internal/client/mocks"
)

// TestRegisterHook tests that registered hooks run once for every new client.
func TestRegisterHook(t *testing.T) {
	// Don't run in parallel: hooks are global state.
	var (
		registered []*client.Client
		order      []string
	)

	client.RegisterHook("b-registry", func(c *client.Client) {
		registered = append(registered, c)
		order = append(order, "b")
	})
	client.RegisterHook("a-integration", func(*client.Client) {
		order = append(order, "a")
	})

	defer client.RegisterHook("b-registry", nil)
	defer client.RegisterHook("a-integration", nil)

	assert.Equal(t, []string{"a-integration", "b-registry"}, client.ListHooks())

	ctrl := gomock.NewController(t)

	first, err := client.NewClient(mock_client.NewMockTransport(ctrl), client.Options{})
	require.NoError(t, err)

	second, err := client.NewClient(mock_client.NewMockTransport(ctrl), client.Options{})
	require.NoError(t, err)

	assert.Equal(t, []*client.Client{first, second}, registered)
	assert.Equal(t, []string{"a", "b", "a", "b"}, order)
}

// TestRegisterHook_Remove tests that a nil hook unregisters the name.
func TestRegisterHook_Remove(t *testing.T) {
	// Don't run in parallel: hooks are global state.
	client.RegisterHook("temporary", func(*client.Client) {})
	assert.Contains(t, client.ListHooks(), "temporary")

	client.RegisterHook("temporary", nil)
	assert.NotContains(t, client.ListHooks(), "temporary")
}
