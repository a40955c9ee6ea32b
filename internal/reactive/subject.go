// Package reactive provides a replay-latest publish/subscribe primitive.
package reactive

import (
	"sort"
	"sync"
)

// Subject holds a current value and pushes it to subscribers.
// A new subscriber immediately receives the current value, then every later one.
// Callbacks run synchronously outside the lock, in subscription order. Values are
// delivered in the order they were set. A value set from inside a callback is
// delivered once that callback returns, so callbacks may publish again.
type Subject[T any] struct {
	mu          sync.RWMutex
	value       T
	subscribers map[int]func(T)
	nextID      int
	pending     []T
	delivering  bool
}

// NewSubject returns a subject seeded with initial.
func NewSubject[T any](initial T) *Subject[T] {
	return &Subject[T]{
		value:       initial,
		subscribers: make(map[int]func(T)),
	}
}

// Value returns the current value.
func (s *Subject[T]) Value() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Next replaces the current value and notifies subscribers.
func (s *Subject[T]) Next(value T) {
	s.Set(value)
	s.Flush()
}

// Set replaces the current value and queues it for delivery without notifying.
// Callers holding their own lock use Set under it and Flush after releasing it,
// so delivery order matches their lock order.
func (s *Subject[T]) Set(value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
	s.pending = append(s.pending, value)
}

// Flush delivers queued values. If another Flush is already delivering, it
// returns at once and the running Flush delivers the queued values.
func (s *Subject[T]) Flush() {
	s.mu.Lock()
	if s.delivering {
		s.mu.Unlock()
		return
	}
	s.delivering = true

	finished := false
	defer func() {
		if !finished {
			s.mu.Lock()
			s.delivering = false
			s.mu.Unlock()
		}
	}()

	for len(s.pending) > 0 {
		value := s.pending[0]
		s.pending = s.pending[1:]
		callbacks := s.snapshotLocked()
		s.mu.Unlock()

		for _, fn := range callbacks {
			fn(value)
		}

		s.mu.Lock()
	}
	s.pending = nil
	s.delivering = false
	finished = true
	s.mu.Unlock()
}

// Subscribe registers fn and returns a function that removes it.
// The returned function is safe to call more than once.
func (s *Subject[T]) Subscribe(fn func(T)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	current := s.value
	s.mu.Unlock()

	fn(current)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// SubscriberCount returns the number of active subscribers.
func (s *Subject[T]) SubscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers)
}

func (s *Subject[T]) snapshotLocked() []func(T) {
	ids := make([]int, 0, len(s.subscribers))
	for id := range s.subscribers {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]func(T), 0, len(ids))
	for _, id := range ids {
		out = append(out, s.subscribers[id])
	}
	return out
}
