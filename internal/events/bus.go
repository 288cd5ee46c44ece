// Package events is an in-process typed publish/subscribe bus.
package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Bus delivers events of type T to every current subscriber.
// Subscribers run synchronously on the publishing goroutine, in
// subscription order. A panicking subscriber is logged and skipped.
type Bus[T any] struct {
	mu     sync.RWMutex
	nextID uint64
	subs   []subscription[T]
	logger *slog.Logger
}

type subscription[T any] struct {
	id uint64
	fn func(context.Context, T)
}

// NewBus creates an empty bus. A nil logger uses slog.Default().
func NewBus[T any](logger *slog.Logger) *Bus[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus[T]{logger: logger}
}

// Subscribe registers fn and returns a function that removes it.
// Calling the returned function more than once is a no-op.
func (b *Bus[T]) Subscribe(fn func(context.Context, T)) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription[T]{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus[T]) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish calls every subscriber registered at the time of the call.
func (b *Bus[T]) Publish(ctx context.Context, event T) {
	b.mu.RLock()
	subs := make([]subscription[T], len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	for _, s := range subs {
		b.deliver(ctx, s, event)
	}
}

func (b *Bus[T]) deliver(ctx context.Context, s subscription[T], event T) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.ErrorContext(ctx, "event subscriber panicked",
				slog.Uint64("subscriber", s.id),
				slog.String("panic", fmt.Sprint(r)),
			)
		}
	}()
	s.fn(ctx, event)
}

// Len returns the number of active subscribers.
func (b *Bus[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
