// Package bus is the in-process publish/subscribe registry repositories use
// to announce mutations so dependent state refreshes without polling.
package bus

import (
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Bus is a typed subject. Publish is synchronous and ordered; a panicking
// subscriber is logged and skipped without blocking the rest.
type Bus[T any] struct {
	mu     sync.Mutex
	subs   map[int]func(T)
	nextID int
	log    *zap.Logger
}

func New[T any](log *zap.Logger) *Bus[T] {
	return &Bus[T]{
		subs: make(map[int]func(T)),
		log:  log,
	}
}

// Subscribe registers fn and returns a closure removing exactly that
// listener. Unsubscribing twice is harmless.
func (b *Bus[T]) Subscribe(fn func(T)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

// Publish invokes every current subscriber with v.
func (b *Bus[T]) Publish(v T) {
	b.mu.Lock()
	ids := make([]int, 0, len(b.subs))
	for id := range b.subs {
		ids = append(ids, id)
	}
	// subscribers run in subscription order
	sort.Ints(ids)
	fns := make([]func(T), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, b.subs[id])
	}
	b.mu.Unlock()

	for _, fn := range fns {
		b.safeCall(fn, v)
	}
}

func (b *Bus[T]) safeCall(fn func(T), v T) {
	defer func() {
		if r := recover(); r != nil && b.log != nil {
			b.log.Error("bus subscriber panicked", zap.Any("panic", r))
		}
	}()
	fn(v)
}
