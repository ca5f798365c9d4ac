// Package signals holds reactive values that notify subscribers when they
// change. No build tags — fully testable outside WASM.
package signals

import (
	"sync"

	"github.com/vcrobe/clickcounter/events"
)

// Signal is a reactive value that notifies subscribers when changed.
type Signal[T any] struct {
	mu     sync.RWMutex
	value  T
	nextID uint64
	subs   map[uint64]func(T)
	order  []uint64
}

// NewSignal creates a Signal with an initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial, subs: make(map[uint64]func(T))}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the value and notifies all subscribers with it.
func (s *Signal[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	subs := s.snapshot()
	s.mu.Unlock()

	notify(subs, v)
}

// Update replaces the value with fn(current) under the write lock and
// notifies subscribers with the result. It returns the new value.
func (s *Signal[T]) Update(fn func(T) T) T {
	s.mu.Lock()
	v := fn(s.value)
	s.value = v
	subs := s.snapshot()
	s.mu.Unlock()

	notify(subs, v)
	return v
}

// Subscribe registers a callback fired with the new value on every change.
// Subscribers run in registration order. The callback is not invoked for
// the current value.
func (s *Signal[T]) Subscribe(fn func(T)) *events.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.order = append(s.order, id)

	return events.NewSubscription(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
		for i, o := range s.order {
			if o == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	})
}

// Subscribers reports how many callbacks are registered.
func (s *Signal[T]) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

// snapshot must be called with s.mu held.
func (s *Signal[T]) snapshot() []func(T) {
	subs := make([]func(T), 0, len(s.order))
	for _, id := range s.order {
		subs = append(subs, s.subs[id])
	}
	return subs
}

func notify[T any](subs []func(T), v T) {
	for _, fn := range subs {
		fn(v)
	}
}
