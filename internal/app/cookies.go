package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/afero"

	"github.com/oshokin/advanced-http/internal/config"
	"github.com/oshokin/advanced-http/internal/logger"
)

// ExecuteCookiesListCommand prints the stored cookies, one origin per line.
func ExecuteCookiesListCommand(ctx context.Context, cfg *config.Config) {
	if err := ListCookies(cfg, afero.NewOsFs(), os.Stdout); err != nil {
		logger.Fatalf(ctx, "Failed to list cookies: %v", err)
	}
}

// ExecuteCookiesClearCommand removes every stored cookie.
func ExecuteCookiesClearCommand(ctx context.Context, cfg *config.Config) {
	if err := ClearCookies(cfg, afero.NewOsFs()); err != nil {
		logger.Fatalf(ctx, "Failed to clear cookies: %v", err)
	}

	logger.Info(ctx, "Cookies cleared")
}

// ListCookies writes the cookies of the session as "origin<TAB>cookie" lines sorted by origin.
func ListCookies(cfg *config.Config, fs afero.Fs, out io.Writer) error {
	s, err := NewSession(cfg, fs, nil)
	if err != nil {
		return err
	}

	cookies := s.Client().Cookies().Snapshot()

	origins := make([]string, 0, len(cookies))
	for origin := range cookies {
		origins = append(origins, origin)
	}

	slices.Sort(origins)

	for _, origin := range origins {
		if _, err = fmt.Fprintf(out, "%s\t%s\n", origin, cookies[origin]); err != nil {
			return fmt.Errorf("failed to write cookies: %w", err)
		}
	}

	return nil
}

// ClearCookies empties the cookie jar of the session and saves it.
func ClearCookies(cfg *config.Config, fs afero.Fs) error {
	s, err := NewSession(cfg, fs, nil)
	if err != nil {
		return err
	}

	s.Client().ClearCookies()

	return s.Close()
}
