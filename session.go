package authclient

import (
	"context"
	"sync"
)

// UserSession owns the current user. The user record T is opaque to this
// package; a nil pointer means unauthenticated. Records are replaced
// wholesale on every transition, never mutated in place.
type UserSession[T any] struct {
	user           *Cell[*T]
	authenticated  *Subject[bool]
	requiredFailed *Subject[struct{}]
	gate           *ActivationGate
	logger         Logger
}

func NewUserSession[T any](gate *ActivationGate) *UserSession[T] {
	if gate == nil {
		gate = NewActivationGate()
	}
	return &UserSession[T]{
		user:           NewCell[*T](),
		authenticated:  NewSubject[bool](),
		requiredFailed: NewSubject[struct{}](),
		gate:           gate,
		logger:         defLogger{},
	}
}

func (s *UserSession[T]) WithLogger(logger Logger) *UserSession[T] {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// SetUser replaces the current user and publishes the new value to the
// user stream and the derived authenticated stream. Publication is
// unconditional: assigning the same value, or nil over nil, still emits.
func (s *UserSession[T]) SetUser(user *T) {
	s.user.Set(user)
	s.authenticated.Publish(user != nil)
}

// User returns the current user, nil when unauthenticated.
func (s *UserSession[T]) User() *T {
	return s.user.Get()
}

// Authenticated is always derived from the current user, never cached.
func (s *UserSession[T]) Authenticated() bool {
	return s.user.Get() != nil
}

// UserOrFail returns the current user or ErrMissingUser.
func (s *UserSession[T]) UserOrFail() (*T, error) {
	user := s.user.Get()
	if user == nil {
		return nil, ErrMissingUser
	}
	return user, nil
}

// Gate returns the activation gate this session waits on.
func (s *UserSession[T]) Gate() *ActivationGate {
	return s.gate
}

// OnUser subscribes to user assignments, duplicates included.
func (s *UserSession[T]) OnUser(fn func(*T)) Subscription {
	return s.user.Subscribe(fn)
}

// OnAuthenticated subscribes to the derived authenticated flag, emitted on
// every user assignment.
func (s *UserSession[T]) OnAuthenticated(fn func(bool)) Subscription {
	return s.authenticated.Subscribe(fn)
}

// OnUserRequiredFailed subscribes to the side channel fired whenever a
// required-user consumer observes a missing user.
func (s *UserSession[T]) OnUserRequiredFailed(fn func()) Subscription {
	return s.requiredFailed.Subscribe(func(struct{}) { fn() })
}

// RequiredUser blocks until activation has completed and a non-nil user is
// available, then returns it. A missing user never surfaces here: each nil
// observation fires the user-required-failed side channel and the wait
// continues. The only way out without a user is ctx cancellation.
func (s *UserSession[T]) RequiredUser(ctx context.Context) (*T, error) {
	if err := s.gate.WhenActivated(ctx); err != nil {
		return nil, err
	}

	got := make(chan *T, 1)
	sub := s.user.Subscribe(func(user *T) {
		if user == nil {
			s.requiredFailed.Publish(struct{}{})
			return
		}
		select {
		case got <- user:
		default:
		}
	})
	defer sub.Unsubscribe()

	if user := s.user.Get(); user != nil {
		return user, nil
	}
	s.requiredFailed.Publish(struct{}{})

	select {
	case user := <-got:
		return user, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// OnRequiredUser is the stream form of RequiredUser: once activation
// completes it delivers every non-nil user assignment to fn. Nil
// assignments (and the nil state observed at activation time) fire the
// user-required-failed side channel instead; fn never sees them.
func (s *UserSession[T]) OnRequiredUser(fn func(*T)) Subscription {
	var mu sync.Mutex
	var inner Subscription
	canceled := false
	done := make(chan struct{})

	go func() {
		select {
		case <-s.gate.opens():
		case <-done:
			return
		}

		mu.Lock()
		defer mu.Unlock()
		if canceled {
			return
		}
		if user := s.user.Get(); user != nil {
			fn(user)
		} else {
			s.requiredFailed.Publish(struct{}{})
		}
		inner = s.user.Subscribe(func(user *T) {
			if user == nil {
				s.requiredFailed.Publish(struct{}{})
				return
			}
			fn(user)
		})
	}()

	return &subscription{cancel: func() {
		close(done)
		mu.Lock()
		defer mu.Unlock()
		canceled = true
		if inner != nil {
			inner.Unsubscribe()
		}
	}}
}

// Check waits for activation and reports the authenticated flag as
// observed after the gate opens. It never returns an error: a canceled
// context is logged and the last known flag is reported.
func (s *UserSession[T]) Check(ctx context.Context) bool {
	if err := s.gate.WhenActivated(ctx); err != nil {
		s.logger.Warn("authenticated check interrupted: %v", err)
	}
	return s.Authenticated()
}
