// Package serializer selects and applies the body encoding of POST requests.
package serializer
