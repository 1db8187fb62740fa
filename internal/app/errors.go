package app

import "errors"

// Static error definitions for better error handling.
var (
	// ErrUnsupportedAction indicates that a command asked for an action the client cannot run.
	ErrUnsupportedAction = errors.New("unsupported action")
)
