package http

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/oshokin/advanced-http/internal/client"
	"github.com/oshokin/advanced-http/internal/constants"
	"github.com/oshokin/advanced-http/internal/logger"
	"github.com/oshokin/advanced-http/internal/utils"
)

// defaultDownloadName is used when neither the target path nor the URL names the file.
const defaultDownloadName = "download"

// download streams the response body of a GET request into request.FilePath.
// A path ending with a separator, or naming an existing directory, receives a file
// named after the last segment of the URL path.
func (t *Transport) download(ctx context.Context, request *client.Request) (*client.Response, error) {
	if request.FilePath == "" {
		return nil, ErrMissingFilePath
	}

	httpRequest, err := t.newHTTPRequest(ctx, request)
	if err != nil {
		return nil, err
	}

	httpResponse, err := t.client().Do(httpRequest)
	if err != nil {
		return nil, err
	}

	defer httpResponse.Body.Close() //nolint:errcheck // Error on close is not critical here.

	if !isSuccessStatus(httpResponse.StatusCode) {
		// Error bodies are reported to the caller, never stored.
		data, _ := io.ReadAll(httpResponse.Body)

		return toResponse(httpResponse, data)
	}

	response, err := toResponse(httpResponse, nil)
	if err != nil {
		return nil, err
	}

	target := t.downloadTarget(request.FilePath, httpRequest.URL)

	if err = t.fs.MkdirAll(filepath.Dir(target), constants.DefaultFolderPermissions); err != nil {
		return nil, fmt.Errorf("failed to create download folder: %w", err)
	}

	file, err := t.fs.OpenFile(target, fileCreateFlags, constants.DefaultFilePermissions)
	if err != nil {
		return nil, fmt.Errorf("failed to create download file: %w", err)
	}

	var sink io.Writer = file
	if t.opts.Progress != nil {
		sink = io.MultiWriter(file, t.opts.Progress(httpResponse.ContentLength, filepath.Base(target)))
	}

	written, copyErr := io.Copy(sink, httpResponse.Body)
	closeErr := file.Close()

	if copyErr == nil {
		copyErr = closeErr
	}

	if copyErr != nil {
		if removeErr := t.fs.Remove(target); removeErr != nil {
			logger.Warnf(ctx, "Failed to remove incomplete download %s: %v", target, removeErr)
		}

		return nil, fmt.Errorf("failed to write download file: %w", copyErr)
	}

	logger.DebugKV(ctx, "Download stored", "path", target, "bytes", written)

	response.File = &client.FileDescriptor{
		Name:       filepath.Base(target),
		FullPath:   target,
		Filesystem: client.PersistentFileSystem,
		NativeURL:  fileURL(target),
	}

	return response, nil
}

// downloadTarget resolves the file written for a download.
func (t *Transport) downloadTarget(filePath string, source *url.URL) string {
	isDirectory := strings.HasSuffix(filePath, "/") || strings.HasSuffix(filePath, string(filepath.Separator))
	if !isDirectory {
		if info, err := t.fs.Stat(filePath); err == nil && info.IsDir() {
			isDirectory = true
		}
	}

	if !isDirectory {
		return filepath.Clean(filePath)
	}

	name := utils.SanitizeFilename(path.Base(source.Path))
	if name == "" || name == "_" || name == "." {
		name = defaultDownloadName
	}

	return filepath.Join(filePath, name)
}

// fileURL returns the file:// URL of a local path.
func fileURL(localPath string) string {
	if absolute, err := filepath.Abs(localPath); err == nil {
		localPath = absolute
	}

	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(localPath)}).String()
}
