// Package app provides the command executors of the advanced-http command line client.
// Each command opens a Session that wires the request-shaping client to the net/http
// transport, restores the cookie jar saved by previous runs and stores it again on close.
package app
