// Package http performs shaped requests over net/http.
// Transport implements client.Transport: every request runs in its own goroutine
// and reports through the callbacks it was given. Downloads and uploads go through
// an afero file system, and certificate checks (pinning, accept-all, host name
// validation) can be switched at runtime.
// The package also provides the RoundTripper decorators used underneath:
// request/response logging and default header injection.
package http
