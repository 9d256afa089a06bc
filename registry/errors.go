package registry

import "errors"

var (
	// ErrClosed is returned by operations on a closed Registry.
	ErrClosed = errors.New("registry: closed")
	// ErrUnknownFormat is returned when a blob is neither a binary nor a
	// protobuf dictionary.
	ErrUnknownFormat = errors.New("registry: unknown dictionary format")
)
