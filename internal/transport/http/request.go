package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/oshokin/advanced-http/internal/client"
	"github.com/oshokin/advanced-http/internal/header"
	"github.com/oshokin/advanced-http/internal/serializer"
)

// send performs get, head, post and upload requests and reads the whole response body.
func (t *Transport) send(ctx context.Context, request *client.Request) (*client.Response, error) {
	httpRequest, err := t.newHTTPRequest(ctx, request)
	if err != nil {
		return nil, err
	}

	httpResponse, err := t.client().Do(httpRequest)
	if err != nil {
		return nil, err
	}

	defer httpResponse.Body.Close() //nolint:errcheck // Error on close is not critical here.

	data, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return toResponse(httpResponse, data)
}

// newHTTPRequest converts a shaped request into a net/http request.
func (t *Transport) newHTTPRequest(ctx context.Context, request *client.Request) (*http.Request, error) {
	var (
		body        io.Reader = http.NoBody
		contentType string
		target      = request.URL
		err         error
	)

	switch request.Action {
	case client.ActionPost:
		var encoded []byte

		encoded, contentType, err = serializer.Encode(request.Serializer, request.Data)
		if err != nil {
			return nil, err
		}

		body = bytes.NewReader(encoded)
	case client.ActionUploadFile:
		body, contentType, err = t.multipartBody(request)
		if err != nil {
			return nil, err
		}
	default:
		target, err = withQuery(request.URL, request.Params)
		if err != nil {
			return nil, err
		}
	}

	httpRequest, err := http.NewRequestWithContext(ctx, request.Action.Method(), target, body)
	if err != nil {
		return nil, err
	}

	httpRequest.Header = request.Headers.HTTPHeader()

	if contentType != "" && !request.Headers.Has(header.ContentType) {
		httpRequest.Header.Set(header.ContentType, contentType)
	}

	return httpRequest, nil
}

// multipartBody builds an upload body: params as form fields, then the file part.
func (t *Transport) multipartBody(request *client.Request) (io.Reader, string, error) {
	if request.FilePath == "" {
		return nil, "", ErrMissingFilePath
	}

	file, err := t.fs.Open(request.FilePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open upload file: %w", err)
	}

	defer file.Close() //nolint:errcheck // Read-only file, error on close is not critical.

	var (
		buffer bytes.Buffer
		writer = multipart.NewWriter(&buffer)
	)

	for name, values := range serializer.FormValues(request.Params) {
		for _, value := range values {
			if err = writer.WriteField(name, value); err != nil {
				return nil, "", fmt.Errorf("failed to write form field: %w", err)
			}
		}
	}

	fieldName := request.Name
	if fieldName == "" {
		fieldName = "file"
	}

	part, err := writer.CreateFormFile(fieldName, filepath.Base(request.FilePath))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file part: %w", err)
	}

	if _, err = io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("failed to read upload file: %w", err)
	}

	if err = writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish multipart body: %w", err)
	}

	return &buffer, writer.FormDataContentType(), nil
}

// withQuery appends params to the query string of rawURL, keeping existing parameters.
func withQuery(rawURL string, params map[string]any) (string, error) {
	if len(params) == 0 {
		return rawURL, nil
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	query := parsed.Query()

	for name, values := range serializer.FormValues(params) {
		for _, value := range values {
			query.Add(name, value)
		}
	}

	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}

// toResponse converts a 2xx response, or reports any other status as a StatusError.
func toResponse(httpResponse *http.Response, data []byte) (*client.Response, error) {
	headers := header.FromHTTPHeader(httpResponse.Header)
	finalURL := httpResponse.Request.URL.String()

	if !isSuccessStatus(httpResponse.StatusCode) {
		return nil, &StatusError{
			Status:  httpResponse.StatusCode,
			URL:     finalURL,
			Headers: headers,
			Data:    data,
		}
	}

	return &client.Response{
		Status:  httpResponse.StatusCode,
		URL:     finalURL,
		Headers: headers,
		Data:    data,
	}, nil
}

func isSuccessStatus(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}
