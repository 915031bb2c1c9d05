package paging

import "errors"

var (
	ErrSessionClosed  = errors.New("paging: session closed")
	ErrInvalidCursor  = errors.New("paging: invalid cursor")
	ErrNothingToRetry = errors.New("paging: no failed page to retry")
)
