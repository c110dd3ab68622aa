package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"

	"github.com/miosa/osa-launch/vm"
)

func TestRunHeadless_PrintsBothObservers(t *testing.T) {
	var n atomic.Int32
	holder := vm.New(vm.ComputationFunc(func(context.Context) (string, error) {
		if n.Add(1) == 1 {
			return "first", nil
		}
		return "second", nil
	}))
	defer holder.Close()

	var out bytes.Buffer
	code := runHeadless(holder, 2, &out, zap.NewNop().Sugar())
	if code != 0 {
		t.Fatalf("want exit 0, got %d\n%s", code, out.String())
	}

	perObserver := map[string][]string{}
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		id, state, ok := strings.Cut(line, ": ")
		if !ok {
			t.Fatalf("malformed line %q", line)
		}
		perObserver[id] = append(perObserver[id], state)
	}

	want := []string{"waiting", "running", `finished("first")`, "waiting", "running", `finished("second")`, "waiting"}
	for _, id := range []string{"observer 1", "observer 2"} {
		got := perObserver[id]
		if strings.Join(got, ",") != strings.Join(want, ",") {
			t.Errorf("%s saw %v, want %v", id, got, want)
		}
	}
	if n.Load() != 2 {
		t.Errorf("want 2 computations, got %d", n.Load())
	}
}

func TestRunHeadless_FailedCycleExitsNonZero(t *testing.T) {
	holder := vm.New(vm.ComputationFunc(func(context.Context) (string, error) {
		return "", errors.New("boom")
	}))
	defer holder.Close()

	var out bytes.Buffer
	if code := runHeadless(holder, 1, &out, zap.NewNop().Sugar()); code != 1 {
		t.Errorf("want exit 1, got %d", code)
	}
	if !strings.Contains(out.String(), "failed(boom)") {
		t.Errorf("output should show the failure:\n%s", out.String())
	}
}

func TestRunHeadless_ClosedHolder(t *testing.T) {
	holder := vm.New(vm.ComputationFunc(func(context.Context) (string, error) { return "x", nil }))
	holder.Close()

	var out bytes.Buffer
	if code := runHeadless(holder, 1, &out, zap.NewNop().Sugar()); code != 1 {
		t.Errorf("want exit 1 for a closed holder, got %d", code)
	}
}
