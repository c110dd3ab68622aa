package vm

import "fmt"

// Kind tags the variant held by a State.
type Kind int

const (
	KindWaiting  Kind = iota // Idle, ready for Launch
	KindRunning              // Computation in flight
	KindFinished             // Computation returned a result
	KindFailed               // Computation returned an error
)

func (k Kind) String() string {
	switch k {
	case KindWaiting:
		return "waiting"
	case KindRunning:
		return "running"
	case KindFinished:
		return "finished"
	case KindFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is the value broadcast to observers. Result is set only for
// KindFinished and Err only for KindFailed.
type State struct {
	Kind   Kind
	Result string
	Err    error
}

// Waiting and Running carry no payload.
var (
	Waiting = State{Kind: KindWaiting}
	Running = State{Kind: KindRunning}
)

// Finished returns the state carrying a computation result.
func Finished(result string) State {
	return State{Kind: KindFinished, Result: result}
}

// Failed returns the state carrying a computation error.
func Failed(err error) State {
	return State{Kind: KindFailed, Err: err}
}

func (s State) String() string {
	switch s.Kind {
	case KindFinished:
		return fmt.Sprintf("finished(%q)", s.Result)
	case KindFailed:
		return fmt.Sprintf("failed(%v)", s.Err)
	default:
		return s.Kind.String()
	}
}
