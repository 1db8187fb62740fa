// Package client shapes outgoing HTTP requests before a Transport performs them.
//
// For every call the Client merges per-call headers with the session headers and the
// stored cookie, picks the body encoding for POST requests and hands an immutable
// Request to the Transport. Successful responses pass through an interceptor that
// records any Set-Cookie value in the session jar before the caller sees them.
//
// Completion is callback based: each operation reports exactly once through either
// its success or its failure callback. Await adapts a call into a blocking result.
package client
