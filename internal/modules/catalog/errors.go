package catalog

import "errors"

var (
	ErrEmptyQuery      = errors.New("search query is empty")
	ErrUnknownSession  = errors.New("unknown session")
	ErrInvalidID       = errors.New("invalid id")
	ErrServiceShutdown = errors.New("catalog is shut down")
)
