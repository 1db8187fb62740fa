package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/oshokin/advanced-http/internal/config"
	"github.com/oshokin/advanced-http/internal/header"
	"github.com/oshokin/advanced-http/internal/logger"
)

// ExecuteHeadersSetCommand stores a session header in the configuration file.
func ExecuteHeadersSetCommand(ctx context.Context, cfg *config.Config, name, value string) {
	if err := SetHeader(cfg, name, value); err != nil {
		logger.Fatalf(ctx, "Failed to set header: %v", err)
	}

	logger.Infof(ctx, "Header %s saved to %s", name, cfg.Filename)
}

// ExecuteHeadersListCommand prints the session headers of the configuration.
func ExecuteHeadersListCommand(ctx context.Context, cfg *config.Config) {
	if err := ListHeaders(cfg, os.Stdout); err != nil {
		logger.Fatalf(ctx, "Failed to list headers: %v", err)
	}
}

// SetHeader replaces the session header with the same name, ignoring case, and saves the configuration.
// An empty value removes the header.
func SetHeader(cfg *config.Config, name, value string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return config.ErrEmptyHeaderName
	}

	headers := make(header.Map, len(cfg.Headers)+1)

	for existing, existingValue := range cfg.Headers {
		if !strings.EqualFold(existing, name) {
			headers[existing] = existingValue
		}
	}

	if value != "" {
		headers[name] = value
	}

	cfg.Headers = headers

	return config.SaveConfig(cfg)
}

// ListHeaders writes the session headers as "Name: value" lines sorted by name.
func ListHeaders(cfg *config.Config, out io.Writer) error {
	names := make([]string, 0, len(cfg.Headers))
	for name := range cfg.Headers {
		names = append(names, name)
	}

	slices.Sort(names)

	for _, name := range names {
		if _, err := fmt.Fprintf(out, "%s: %s\n", name, cfg.Headers[name]); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	return nil
}
