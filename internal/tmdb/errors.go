package tmdb

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNetwork
	KindProtocol
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindProtocol:
		return "protocol"
	default:
		return "unknown"
	}
}

var (
	ErrNetwork  = errors.New("tmdb: network error")
	ErrProtocol = errors.New("tmdb: protocol error")
	ErrUnknown  = errors.New("tmdb: unknown error")
)

// FetchError is returned by every Client call that fails.
// Network covers connectivity problems and timeouts, Protocol a non-2xx
// answer from the API, Unknown everything else (request building, decoding).
type FetchError struct {
	Kind       ErrorKind
	Op         string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Kind == KindProtocol {
		return fmt.Sprintf("tmdb %s: %s error (status %d): %v", e.Op, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("tmdb %s: %s error: %v", e.Op, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrProtocol:
		return e.Kind == KindProtocol
	case ErrUnknown:
		return e.Kind == KindUnknown
	}
	return false
}

// KindOf reports the fetch error kind carried by err. Errors that did not
// come from the client are KindUnknown.
func KindOf(err error) ErrorKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}
