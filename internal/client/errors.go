package client

import "errors"

// ErrNilTransport indicates that a Client was created without a Transport.
var ErrNilTransport = errors.New("transport is nil")
