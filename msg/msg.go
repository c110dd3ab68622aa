// Package msg defines the tea.Msg types dispatched within the launch TUI.
// It imports only the vm package to stay clear of import cycles.
package msg

import "github.com/miosa/osa-launch/vm"

// -- State stream --

// StateChanged carries one emission received by an observer. Sub
// identifies the subscription it came from so stale deliveries from a
// replaced subscription can be dropped.
type StateChanged struct {
	Observer int
	Sub      *vm.Subscription
	State    vm.State
}

// ObserverClosed when an observer's subscription ends (cancelled or
// the view model closed).
type ObserverClosed struct {
	Observer int
	Sub      *vm.Subscription
	Err      error
}

// -- User input --

// LaunchRequested asks the app to submit vm.Launch.
type LaunchRequested struct{}

// -- UI events --

// TickMsg for periodic timer updates.
type TickMsg struct{}
