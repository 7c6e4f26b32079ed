package nav

import "sync"

// Signal is a synchronous publish/subscribe channel for one derived
// state field.
//
// Publish runs every subscriber callback inline, in subscription order,
// before returning. Because mutations follow the single-writer contract,
// a subscriber therefore observes every state transition, fully applied
// and in order - no transition is conflated while an observer is
// attached.
//
// Subscriber callbacks must not mutate the publishing state machine;
// they run on the writer's goroutine.
//
// Thread-safety: Subscribe/Unsubscribe may be called from any goroutine.
// Publish is reserved for the single writer.
type Signal[T any] struct {
	mu   sync.Mutex
	next int
	subs []subscriber[T]
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

// NewSignal creates a signal with no subscribers.
func NewSignal[T any]() *Signal[T] {
	return &Signal[T]{}
}

// Subscribe registers fn and returns an unsubscribe function.
// Unsubscribing twice is a no-op.
func (s *Signal[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	id := s.next
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers v to every subscriber, in subscription order.
//
// The subscriber list is snapshotted under the lock and callbacks run
// outside it, so a callback may subscribe or unsubscribe without
// deadlocking. A callback added during Publish does not receive v.
func (s *Signal[T]) Publish(v T) {
	s.mu.Lock()
	snapshot := make([]subscriber[T], len(s.subs))
	copy(snapshot, s.subs)
	s.mu.Unlock()

	for _, sub := range snapshot {
		sub.fn(v)
	}
}

// Len returns the current subscriber count.
func (s *Signal[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
