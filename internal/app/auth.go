package app

import (
	"context"

	"github.com/oshokin/advanced-http/internal/client"
	"github.com/oshokin/advanced-http/internal/config"
	"github.com/oshokin/advanced-http/internal/header"
	"github.com/oshokin/advanced-http/internal/logger"
)

// ExecuteAuthBasicCommand stores a Basic Authorization header for the given
// credentials in the configuration file.
func ExecuteAuthBasicCommand(ctx context.Context, cfg *config.Config, username, password string) {
	if err := SaveBasicAuth(cfg, username, password); err != nil {
		logger.Fatalf(ctx, "Failed to save credentials: %v", err)
	}

	logger.Info(ctx, "Configuration updated successfully!")
	logger.Infof(ctx, "Every request now carries an Authorization header for %s", username)
}

// SaveBasicAuth stores the Authorization header built from the credentials as a session header.
func SaveBasicAuth(cfg *config.Config, username, password string) error {
	credentials := client.GetBasicAuthHeader(username, password)

	value, _ := credentials.Get(header.Authorization)

	return SetHeader(cfg, header.Authorization, value)
}
