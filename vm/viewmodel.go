// Package vm holds the application state machine and broadcasts every
// transition to its subscribers.
//
// A single owner goroutine serialises all writes: it accepts events from
// an inbox, starts the computation on its own goroutine, and folds the
// outcome back in. Each emission is handed to every subscriber before
// the next one starts, so all observers see the same relative order.
package vm

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/looplab/fsm"
	"go.uber.org/zap"
)

const (
	defaultBufferSize = 16
	defaultInboxSize  = 8
)

type outcome struct {
	result string
	err    error
}

// ViewModel owns the current State and the Launch transition.
type ViewModel struct {
	computation Computation
	logger      *zap.SugaredLogger
	machine     *fsm.FSM

	events   chan Event
	outcomes chan outcome

	mu      sync.RWMutex
	current State
	subs    map[uint64]*Subscription
	nextID  uint64

	bufferSize int
	inboxSize  int

	waitGroup sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// Option configures a ViewModel.
type Option func(*ViewModel)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(v *ViewModel) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithBufferSize sets the per-subscriber buffer. Values below 1 are
// raised to 1 so the replayed current state always fits.
func WithBufferSize(n int) Option {
	return func(v *ViewModel) {
		if n < 1 {
			n = 1
		}
		v.bufferSize = n
	}
}

// WithInboxSize sets how many events may be pending before OnEvent
// reports ErrBusy.
func WithInboxSize(n int) Option {
	return func(v *ViewModel) {
		if n < 1 {
			n = 1
		}
		v.inboxSize = n
	}
}

// New creates a ViewModel in the Waiting state and starts its owner
// goroutine. Call Close to release it.
func New(c Computation, opts ...Option) *ViewModel {
	ctx, cancel := context.WithCancel(context.Background())

	v := &ViewModel{
		computation: c,
		logger:      zap.NewNop().Sugar(),
		current:     Waiting,
		subs:        make(map[uint64]*Subscription),
		bufferSize:  defaultBufferSize,
		inboxSize:   defaultInboxSize,
		ctx:         ctx,
		cancel:      cancel,
	}
	for _, opt := range opts {
		opt(v)
	}

	v.machine = newMachine(v.logger)
	v.events = make(chan Event, v.inboxSize)
	v.outcomes = make(chan outcome, 1)

	v.waitGroup.Add(1)
	go v.run()

	return v
}

// State returns the latest emitted state. It never blocks on the owner.
func (v *ViewModel) State() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// Subscribe registers a new observer. The current state is queued as
// its first item.
func (v *ViewModel) Subscribe() *Subscription {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.nextID++
	s := &Subscription{
		id:     v.nextID,
		ch:     make(chan State, v.bufferSize),
		done:   make(chan struct{}),
		closed: v.ctx.Done(),
		detach: v.unsubscribe,
	}
	s.ch <- v.current

	if v.ctx.Err() == nil {
		v.subs[s.id] = s
	}
	v.logger.Debugf("observer %d subscribed at %s", s.id, v.current)
	return s
}

// OnEvent submits an event without waiting for it to be processed.
func (v *ViewModel) OnEvent(e Event) error {
	if v.ctx.Err() != nil {
		return ErrClosed
	}
	select {
	case v.events <- e:
		return nil
	case <-v.ctx.Done():
		return ErrClosed
	default:
		return fmt.Errorf("submit %s: %w", e, ErrBusy)
	}
}

// Close stops the owner goroutine and cancels any in-flight computation.
// It does not wait for the computation to return; an outcome that arrives
// after Close is discarded. Subscriptions complete with ErrClosed once
// drained.
func (v *ViewModel) Close() {
	v.closeOnce.Do(func() {
		v.cancel()
		v.waitGroup.Wait()

		v.mu.Lock()
		v.subs = make(map[uint64]*Subscription)
		v.mu.Unlock()
		v.logger.Debug("view model closed")
	})
}

func (v *ViewModel) unsubscribe(id uint64) {
	v.mu.Lock()
	delete(v.subs, id)
	v.mu.Unlock()
	v.logger.Debugf("observer %d unsubscribed", id)
}

func (v *ViewModel) run() {
	defer v.waitGroup.Done()

	for {
		select {
		case <-v.ctx.Done():
			return
		case e := <-v.events:
			v.handleEvent(e)
		case o := <-v.outcomes:
			v.handleOutcome(o)
		}
	}
}

func (v *ViewModel) handleEvent(e Event) {
	if e != Launch {
		v.logger.Warnf("unknown event %d", int(e))
		return
	}
	if !v.machine.Can(eventLaunch) {
		v.logger.Debugf("ignoring %s in state %s", e, v.machine.Current())
		return
	}
	if err := v.machine.Event(v.ctx, eventLaunch); err != nil {
		v.logger.Errorf("launch transition: %v", err)
		return
	}
	v.emit(Running)

	go v.compute()
}

// compute runs the computation off the owner goroutine and posts the
// outcome back to it. Close does not wait for it to return.
func (v *ViewModel) compute() {
	var o outcome
	func() {
		defer func() {
			if r := recover(); r != nil {
				v.logger.Errorf("computation panic: %v\n%s", r, debug.Stack())
				o = outcome{err: fmt.Errorf("%w: %v", ErrComputationPanicked, r)}
			}
		}()
		o.result, o.err = v.computation.Compute(v.ctx)
	}()

	select {
	case v.outcomes <- o:
	case <-v.ctx.Done():
	}
}

func (v *ViewModel) handleOutcome(o outcome) {
	if o.err != nil {
		v.logger.Warnf("computation failed: %v", o.err)
		v.transition(eventFail, Failed(o.err))
	} else {
		v.logger.Infof("computation finished: %q", o.result)
		v.transition(eventComplete, Finished(o.result))
	}
	v.transition(eventReset, Waiting)
}

func (v *ViewModel) transition(event string, next State) {
	if err := v.machine.Event(v.ctx, event); err != nil {
		v.logger.Errorf("%s transition from %s: %v", event, v.machine.Current(), err)
		return
	}
	v.emit(next)
}

// emit publishes st as the current state and hands it to every
// subscriber registered at that moment before returning.
func (v *ViewModel) emit(st State) {
	v.mu.Lock()
	v.current = st
	subs := make([]*Subscription, 0, len(v.subs))
	for _, s := range v.subs {
		subs = append(subs, s)
	}
	v.mu.Unlock()

	for _, s := range subs {
		if !s.deliver(v.ctx, st) {
			v.logger.Debugf("dropped %s for observer %d", st, s.id)
		}
	}
}
