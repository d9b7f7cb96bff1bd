package authclient

import (
	"context"
	"sync"
)

// ActivationGate is a one-shot latch that marks the session as ready: the
// startup restore step has run, whether or not it produced a user. The
// latch opens exactly once and never closes again.
type ActivationGate struct {
	mu     sync.Mutex
	opened bool
	ch     chan struct{}
}

func NewActivationGate() *ActivationGate {
	return &ActivationGate{ch: make(chan struct{})}
}

// Activated reports whether the latch is open.
func (g *ActivationGate) Activated() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.opened
}

// Open latches the gate. Idempotent; Activate calls it, and hosts with a
// custom restore flow may call it directly.
func (g *ActivationGate) Open() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.opened {
		return
	}
	g.opened = true
	close(g.ch)
}

// WhenActivated blocks until the latch opens. It returns immediately when
// the latch is already open, supports any number of concurrent waiters,
// and releases all of them on the single opening event.
func (g *ActivationGate) WhenActivated(ctx context.Context) error {
	select {
	case <-g.ch:
		return nil
	default:
	}
	select {
	case <-g.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// opens returns the latch channel, closed once the gate opens.
func (g *ActivationGate) opens() <-chan struct{} {
	return g.ch
}
