package client

import (
	"context"

	"github.com/oshokin/advanced-http/internal/header"
	"github.com/oshokin/advanced-http/internal/serializer"
)

// Get sends a GET request with params as the query string.
func (c *Client) Get(
	ctx context.Context,
	url string,
	params map[string]any,
	headers header.Map,
	onSuccess SuccessFunc,
	onFailure FailureFunc,
) {
	c.send(ctx, &Request{
		Action: ActionGet,
		URL:    url,
		Params: orEmpty(params),
	}, headers, onSuccess, onFailure)
}

// Post sends data encoded with the session body encoding.
func (c *Client) Post(
	ctx context.Context,
	url string,
	data map[string]any,
	headers header.Map,
	onSuccess SuccessFunc,
	onFailure FailureFunc,
) {
	c.send(ctx, &Request{
		Action:     ActionPost,
		URL:        url,
		Data:       orEmpty(data),
		Serializer: serializer.Select(string(c.DataSerializer())),
	}, headers, onSuccess, onFailure)
}

// Head sends a HEAD request with params as the query string.
func (c *Client) Head(
	ctx context.Context,
	url string,
	params map[string]any,
	headers header.Map,
	onSuccess SuccessFunc,
	onFailure FailureFunc,
) {
	c.send(ctx, &Request{
		Action: ActionHead,
		URL:    url,
		Params: orEmpty(params),
	}, headers, onSuccess, onFailure)
}

// UploadFile sends the file at filePath as the multipart part called name,
// with params as additional form fields.
func (c *Client) UploadFile(
	ctx context.Context,
	url string,
	params map[string]any,
	headers header.Map,
	filePath string,
	name string,
	onSuccess SuccessFunc,
	onFailure FailureFunc,
) {
	c.send(ctx, &Request{
		Action:   ActionUploadFile,
		URL:      url,
		Params:   orEmpty(params),
		FilePath: filePath,
		Name:     name,
	}, headers, onSuccess, onFailure)
}

// DownloadFile stores the body of a GET request at filePath and reports the file handle.
func (c *Client) DownloadFile(
	ctx context.Context,
	url string,
	params map[string]any,
	headers header.Map,
	filePath string,
	onSuccess FileFunc,
	onFailure FailureFunc,
) {
	if onSuccess == nil {
		onSuccess = func(*FileEntry) {}
	}

	toEntry := func(response *Response) {
		var descriptor *FileDescriptor
		if response != nil {
			descriptor = response.File
		}

		onSuccess(c.files.NewFileEntry(descriptor))
	}

	c.send(ctx, &Request{
		Action:   ActionDownloadFile,
		URL:      url,
		Params:   orEmpty(params),
		FilePath: filePath,
	}, headers, toEntry, onFailure)
}

// send completes the request headers and submits it with an intercepted success callback.
func (c *Client) send(
	ctx context.Context,
	request *Request,
	headers header.Map,
	onSuccess SuccessFunc,
	onFailure FailureFunc,
) {
	if ctx == nil {
		ctx = context.Background()
	}

	request.Headers = c.composeHeaders(request.URL, headers)

	c.submit(ctx, request, c.intercept(request.URL, onSuccess), orNoopFailure(onFailure))
}

// composeHeaders layers the headers of a request: per-call headers first,
// then session headers, then the stored cookie.
// The caller's map is copied, never modified.
func (c *Client) composeHeaders(url string, perCall header.Map) header.Map {
	result := header.Merge(c.Headers(), perCall.Clone())

	return header.Merge(c.cookieHeader(url), result)
}

// cookieHeader returns the Cookie header for url, or an empty Map when the jar has none.
func (c *Client) cookieHeader(url string) header.Map {
	value, ok := c.cookies.Get(url)
	if !ok {
		return header.Map{}
	}

	return header.Map{header.Cookie: value}
}

func orEmpty(values map[string]any) map[string]any {
	if values == nil {
		return map[string]any{}
	}

	return values
}

func orNoopFailure(onFailure FailureFunc) FailureFunc {
	if onFailure == nil {
		return func(error) {}
	}

	return onFailure
}
