package catalog

import "errors"

var (
	ErrIDMismatch      = errors.New("id in body does not match path")
	ErrUnknownActivity = errors.New("activity does not exist")
	ErrStaleCacheWrite = errors.New("cache invalidated since the read")
)
