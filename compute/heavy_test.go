package compute

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/miosa/osa-launch/vm"
)

var _ vm.Computation = (*Heavy)(nil)

func TestNewHeavy_DefaultsDelay(t *testing.T) {
	h := NewHeavy(0, "Result", nil)
	if h.Delay != DefaultDelay {
		t.Errorf("want delay %s, got %s", DefaultDelay, h.Delay)
	}
}

func TestCompute_ReturnsResultAfterDelay(t *testing.T) {
	h := NewHeavy(20*time.Millisecond, "Result", nil)

	start := time.Now()
	got, err := h.Compute(context.Background())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if got != "Result" {
		t.Errorf("want %q, got %q", "Result", got)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("returned after %v, before the delay", elapsed)
	}
	if h.Calls() != 1 {
		t.Errorf("want 1 call, got %d", h.Calls())
	}
}

func TestCompute_StopsOnCancel(t *testing.T) {
	h := NewHeavy(time.Hour, "never", nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Compute(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("want context.Canceled, got %v", err)
	}
}

func TestHeavy_DrivesViewModelCycle(t *testing.T) {
	h := NewHeavy(10*time.Millisecond, "Result", nil)
	v := vm.New(h)
	defer v.Close()

	sub := v.Subscribe()
	if err := v.OnEvent(vm.Launch); err != nil {
		t.Fatalf("OnEvent: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	want := []vm.State{vm.Waiting, vm.Running, vm.Finished("Result"), vm.Waiting}
	for i, w := range want {
		got, err := sub.Next(ctx)
		if err != nil {
			t.Fatalf("item %d: %v", i, err)
		}
		if got != w {
			t.Errorf("item %d: want %s, got %s", i, w, got)
		}
	}
}
