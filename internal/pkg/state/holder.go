package state

import (
	"context"
	"sync"

	"moviehub/internal/pkg/broadcast"
)

// Holder owns a single value of screen state. Update is the only way the
// value changes and calls are serialized; subscribers always converge on
// the latest value even if they skip intermediate ones.
type Holder[T any] struct {
	mu      sync.RWMutex
	value   T
	changed *broadcast.Hub[struct{}]
}

func NewHolder[T any](initial T) *Holder[T] {
	return &Holder[T]{
		value:   initial,
		changed: broadcast.NewHub[struct{}](),
	}
}

func (h *Holder[T]) Get() T {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.value
}

func (h *Holder[T]) Set(v T) {
	h.Update(func(T) T { return v })
}

// Update applies fn to the current value and returns the new one.
func (h *Holder[T]) Update(fn func(T) T) T {
	h.mu.Lock()
	h.value = fn(h.value)
	v := h.value
	h.mu.Unlock()

	h.changed.Publish(struct{}{})
	return v
}

// Subscribe emits the current value, then the latest value after every
// change, until ctx is done.
func (h *Holder[T]) Subscribe(ctx context.Context) <-chan T {
	signals := h.changed.Subscribe(ctx)
	out := make(chan T, 1)
	out <- h.Get()

	go func() {
		defer close(out)
		for range signals {
			select {
			case out <- h.Get():
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
