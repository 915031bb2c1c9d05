package repository

import (
	"context"
	"reflect"
)

// Result is one emission of a reactive read. Err is set when the read
// failed; Value is then the zero value.
type Result[T any] struct {
	Value T
	Err   error
}

// watch runs read once, then again after every signal on changes, and
// forwards the outcome. Successful values equal to the previous one are
// not re-emitted. The returned channel closes when ctx is done.
func watch[T any](ctx context.Context, changes <-chan struct{}, read func(context.Context) (T, error)) <-chan Result[T] {
	out := make(chan Result[T], 1)

	go func() {
		defer close(out)

		var (
			last    T
			emitted bool
		)
		emit := func() bool {
			v, err := read(ctx)
			if ctx.Err() != nil {
				return false
			}
			if err == nil && emitted && reflect.DeepEqual(v, last) {
				return true
			}
			if err == nil {
				last, emitted = v, true
			} else {
				emitted = false
			}
			select {
			case out <- Result[T]{Value: v, Err: err}:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !emit() {
			return
		}
		for range changes {
			if !emit() {
				return
			}
		}
	}()

	return out
}
