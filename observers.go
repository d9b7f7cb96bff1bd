package authclient

import "sync"

// Subscription detaches a listener from the stream that produced it.
// Unsubscribe is idempotent.
type Subscription interface {
	Unsubscribe()
}

type subscription struct {
	once   sync.Once
	cancel func()
}

func (s *subscription) Unsubscribe() {
	s.once.Do(s.cancel)
}

type listener[T any] struct {
	id int
	fn func(T)
}

// Subject is a fire-and-forget broadcast stream. Publish delivers the value
// synchronously, in subscribe order, to the listeners registered at that
// moment. There is no buffering and no replay.
type Subject[T any] struct {
	mu        sync.Mutex
	nextID    int
	listeners []listener[T]
}

func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{}
}

func (s *Subject[T]) Subscribe(fn func(T)) Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, listener[T]{id: id, fn: fn})

	return &subscription{cancel: func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				break
			}
		}
	}}
}

func (s *Subject[T]) Publish(value T) {
	s.mu.Lock()
	fns := make([]func(T), 0, len(s.listeners))
	for _, l := range s.listeners {
		fns = append(fns, l.fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(value)
	}
}

// Cell is a current-value cell with change notification. Every Set
// publishes, including reassignment of an identical value; subscribers see
// the full assignment history, duplicates included.
type Cell[T any] struct {
	mu      sync.Mutex
	value   T
	changes *Subject[T]
}

func NewCell[T any]() *Cell[T] {
	return &Cell[T]{changes: NewSubject[T]()}
}

func (c *Cell[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

func (c *Cell[T]) Set(value T) {
	c.mu.Lock()
	c.value = value
	c.mu.Unlock()
	c.changes.Publish(value)
}

func (c *Cell[T]) Subscribe(fn func(T)) Subscription {
	return c.changes.Subscribe(fn)
}
