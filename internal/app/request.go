package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"

	"github.com/oshokin/advanced-http/internal/client"
	"github.com/oshokin/advanced-http/internal/config"
	"github.com/oshokin/advanced-http/internal/header"
	"github.com/oshokin/advanced-http/internal/logger"
	"github.com/oshokin/advanced-http/internal/utils"
)

// RequestOptions describes a request given on the command line.
type RequestOptions struct {
	// Action is the client operation to run.
	Action client.Action
	// URL is the target URL.
	URL string
	// Params are "key=value" query parameters, or form fields for uploads.
	Params []string
	// Data are "key=value" body fields of a POST request.
	Data []string
	// Headers are "Name: value" request headers.
	Headers []string
	// Serializer overrides the configured body encoding when set.
	Serializer string
	// FilePath is the upload source or the download destination.
	FilePath string
	// Name is the multipart field name of an uploaded file.
	Name string
}

// ExecuteRequestCommand runs a single request and prints the response body to stdout.
func ExecuteRequestCommand(ctx context.Context, cfg *config.Config, opts RequestOptions) {
	s, err := NewSession(cfg, afero.NewOsFs(), newProgressBar)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize session: %v", err)
	}

	err = s.Run(ctx, opts, os.Stdout)

	if closeErr := s.Close(); closeErr != nil {
		logger.Errorf(ctx, "Failed to save session: %v", closeErr)
	}

	if err != nil {
		logger.Fatalf(ctx, "Request failed: %v", err)
	}
}

// Run sends the request described by opts and writes the response to out:
// the body for most requests, the headers for HEAD requests.
func (s *Session) Run(ctx context.Context, opts RequestOptions, out io.Writer) error {
	params, err := parsePairs(opts.Params)
	if err != nil {
		return err
	}

	data, err := parsePairs(opts.Data)
	if err != nil {
		return err
	}

	headers, err := parseHeaders(opts.Headers)
	if err != nil {
		return err
	}

	if opts.Serializer != "" {
		if err = s.client.SetDataSerializer(opts.Serializer); err != nil {
			return fmt.Errorf("failed to set data serializer: %w", err)
		}
	}

	if err = s.ApplySecurity(ctx); err != nil {
		return err
	}

	if opts.Action == client.ActionDownloadFile {
		return s.download(ctx, opts, params, headers)
	}

	response, err := client.Await(ctx, func(onSuccess func(*client.Response), onFailure client.FailureFunc) {
		switch opts.Action {
		case client.ActionGet:
			s.client.Get(ctx, opts.URL, params, headers, onSuccess, onFailure)
		case client.ActionHead:
			s.client.Head(ctx, opts.URL, params, headers, onSuccess, onFailure)
		case client.ActionPost:
			s.client.Post(ctx, opts.URL, data, headers, onSuccess, onFailure)
		case client.ActionUploadFile:
			s.client.UploadFile(ctx, opts.URL, params, headers, opts.FilePath, opts.Name, onSuccess, onFailure)
		default:
			onFailure(fmt.Errorf("%w: %q", ErrUnsupportedAction, opts.Action))
		}
	})
	if err != nil {
		return err
	}

	return writeResponse(ctx, opts.Action, response, out)
}

func (s *Session) download(ctx context.Context, opts RequestOptions, params map[string]any, headers header.Map) error {
	entry, err := client.Await(ctx, func(onSuccess func(*client.FileEntry), onFailure client.FailureFunc) {
		s.client.DownloadFile(ctx, opts.URL, params, headers, opts.FilePath, onSuccess, onFailure)
	})
	if err != nil {
		return err
	}

	size := "unknown size"
	if info, statErr := s.fs.Stat(entry.FullPath); statErr == nil {
		//nolint:gosec // File sizes are never negative.
		size = humanize.Bytes(uint64(info.Size()))
	}

	logger.Infof(ctx, "Saved %s (%s) to %s", entry.Name, size, entry.NativeURL)

	return nil
}

func writeResponse(ctx context.Context, action client.Action, response *client.Response, out io.Writer) error {
	logger.InfoKV(ctx, "Response received",
		"status", response.Status,
		"url", response.URL,
		"size", humanize.Bytes(uint64(len(response.Data))))

	if action != client.ActionHead {
		if _, err := out.Write(response.Data); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}

		return nil
	}

	names := make([]string, 0, len(response.Headers))
	for name := range response.Headers {
		names = append(names, name)
	}

	slices.Sort(names)

	for _, name := range names {
		if _, err := fmt.Fprintf(out, "%s: %s\n", name, response.Headers[name]); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}

	return nil
}

// parsePairs converts "key=value" arguments into request data.
// A key given more than once collects its values in order.
func parsePairs(pairs []string) (map[string]any, error) {
	result := make(map[string]any, len(pairs))

	for _, pair := range pairs {
		key, value, err := utils.ParseKeyValue(pair)
		if err != nil {
			return nil, err
		}

		switch existing := result[key].(type) {
		case nil:
			result[key] = value
		case string:
			result[key] = []string{existing, value}
		case []string:
			result[key] = append(existing, value)
		}
	}

	return result, nil
}

// parseHeaders converts "Name: value" arguments into request headers.
func parseHeaders(lines []string) (header.Map, error) {
	result := make(header.Map, len(lines))

	for _, line := range lines {
		name, value, err := utils.ParseHeaderLine(line)
		if err != nil {
			return nil, err
		}

		result.Set(name, value)
	}

	return result, nil
}
