package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/miosa/osa-launch/vm"
)

const headlessObservers = 2

// runHeadless drives cycles launches through holder and prints every
// state each observer receives. It returns the process exit code.
func runHeadless(holder *vm.ViewModel, cycles int, w io.Writer, log *zap.SugaredLogger) int {
	if cycles < 1 {
		cycles = 1
	}
	ctx := context.Background()

	var mu sync.Mutex
	emit := func(id int, s vm.State) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(w, "observer %d: %s\n", id, s)
	}

	subs := make([]*vm.Subscription, headlessObservers)
	for i := range subs {
		subs[i] = holder.Subscribe()
		defer subs[i].Cancel()

		// First item is the replayed current state.
		s, err := subs[i].Next(ctx)
		if err != nil {
			log.Errorf("observer %d: %v", i+1, err)
			return 1
		}
		emit(i+1, s)
	}

	failures := 0
	for c := 1; c <= cycles; c++ {
		if err := holder.OnEvent(vm.Launch); err != nil {
			log.Errorf("cycle %d: %v", c, err)
			return 1
		}

		outcomes := make([]vm.State, len(subs))
		g, gctx := errgroup.WithContext(ctx)
		for i, sub := range subs {
			g.Go(func() error {
				s, err := awaitCycle(gctx, sub, func(s vm.State) { emit(i+1, s) })
				outcomes[i] = s
				return err
			})
		}
		if err := g.Wait(); err != nil {
			log.Errorf("cycle %d: %v", c, err)
			return 1
		}

		if outcomes[0].Kind == vm.KindFailed {
			failures++
		}
		log.Infof("cycle %d/%d: %s", c, cycles, outcomes[0])
	}

	if failures > 0 {
		log.Warnf("%d of %d cycles failed", failures, cycles)
		return 1
	}
	return 0
}

// awaitCycle reads sub until the cycle returns to Waiting and reports the
// Finished or Failed state seen on the way.
func awaitCycle(ctx context.Context, sub *vm.Subscription, emit func(vm.State)) (vm.State, error) {
	var outcome vm.State
	settled := false
	for {
		s, err := sub.Next(ctx)
		if err != nil {
			return outcome, err
		}
		emit(s)
		switch s.Kind {
		case vm.KindFinished, vm.KindFailed:
			outcome = s
			settled = true
		case vm.KindWaiting:
			if settled {
				return outcome, nil
			}
		}
	}
}
