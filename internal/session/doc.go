// Package session keeps the cookie jar between runs of the command line client.
package session
