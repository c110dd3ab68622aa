package vm

import (
	"context"
	"sync"
)

// Subscription is one observer's view of the state stream. The first
// item is the state current at subscription time; every later
// transition follows in order.
type Subscription struct {
	id     uint64
	ch     chan State
	done   chan struct{}
	closed <-chan struct{} // closed when the owning ViewModel shuts down
	once   sync.Once
	detach func(id uint64)

	// mu serialises deliver against the drain in Cancel.
	mu sync.Mutex
}

// Updates exposes the raw delivery channel. It is never closed; select
// on Done as well when ranging over it. Once Cancel returns the channel
// is empty and receives nothing further.
func (s *Subscription) Updates() <-chan State {
	return s.ch
}

// Done is closed once the subscription is cancelled.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Next blocks until the next state arrives, the subscription is
// cancelled, the ViewModel is closed, or ctx ends. After Close, states
// already buffered are still returned before ErrClosed.
func (s *Subscription) Next(ctx context.Context) (State, error) {
	select {
	case <-s.done:
		return State{}, ErrCancelled
	default:
	}

	select {
	case st := <-s.ch:
		return st, nil
	case <-s.done:
		return State{}, ErrCancelled
	case <-s.closed:
		select {
		case st := <-s.ch:
			return st, nil
		default:
			return State{}, ErrClosed
		}
	case <-ctx.Done():
		return State{}, ctx.Err()
	}
}

// Cancel stops delivery to this subscription and discards anything still
// buffered. Safe to call repeatedly. Other subscriptions and any running
// computation are unaffected.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		close(s.done)
		if s.detach != nil {
			s.detach(s.id)
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		for {
			select {
			case <-s.ch:
			default:
				return
			}
		}
	})
}

// deliver hands st to the subscriber, waiting for buffer space. It gives
// up if the subscriber cancels or the owner stops.
func (s *Subscription) deliver(ctx context.Context, st State) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.ch <- st:
		return true
	case <-s.done:
		return false
	case <-ctx.Done():
		return false
	}
}
