package vm

import (
	"context"

	"github.com/looplab/fsm"
	"go.uber.org/zap"
)

// Event is something an actor can send to the ViewModel.
type Event int

const (
	// Launch starts a computation cycle. Ignored unless Waiting.
	Launch Event = iota
)

func (e Event) String() string {
	switch e {
	case Launch:
		return "launch"
	default:
		return "unknown"
	}
}

// Machine event names. "launch" is the only one reachable from outside;
// the rest are driven by the computation outcome.
const (
	eventLaunch   = "launch"
	eventComplete = "complete"
	eventFail     = "fail"
	eventReset    = "reset"
)

func newMachine(logger *zap.SugaredLogger) *fsm.FSM {
	waiting := KindWaiting.String()
	running := KindRunning.String()
	finished := KindFinished.String()
	failed := KindFailed.String()

	return fsm.NewFSM(
		waiting,
		fsm.Events{
			{Name: eventLaunch, Src: []string{waiting}, Dst: running},
			{Name: eventComplete, Src: []string{running}, Dst: finished},
			{Name: eventFail, Src: []string{running}, Dst: failed},
			{Name: eventReset, Src: []string{finished, failed}, Dst: waiting},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				logger.Debugf("transition %s: %s -> %s", e.Event, e.Src, e.Dst)
			},
		},
	)
}
