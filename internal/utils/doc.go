// Package utils provides small helpers shared by the transport and the command line:
// file name sanitizing, content type checks and parsing of "key=value" and header arguments.
package utils
