package model

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/miosa/osa-launch/msg"
	"github.com/miosa/osa-launch/vm"
)

// ---------------------------------------------------------------------------
// ObserverModel
// ---------------------------------------------------------------------------

func TestObserver_RecordsOnlyOwnMessages(t *testing.T) {
	m := NewObserver(1)
	updated, _ := m.Update(msg.StateChanged{Observer: 1, State: vm.Running})
	m = updated.(ObserverModel)
	updated, _ = m.Update(msg.StateChanged{Observer: 2, State: vm.Finished("x")})
	m = updated.(ObserverModel)

	if m.Received() != 1 {
		t.Fatalf("want 1 received, got %d", m.Received())
	}
	if got := m.History()[0]; got != vm.Running {
		t.Errorf("want running, got %s", got)
	}
}

func TestObserver_HistoryIsBounded(t *testing.T) {
	m := NewObserver(1)
	for i := 0; i < maxHistory+5; i++ {
		m.Push(vm.Waiting)
	}
	if len(m.History()) != maxHistory {
		t.Errorf("want %d retained, got %d", maxHistory, len(m.History()))
	}
	if m.Received() != maxHistory+5 {
		t.Errorf("want %d received, got %d", maxHistory+5, m.Received())
	}
}

func TestObserver_ClosedMarksUnsubscribed(t *testing.T) {
	m := NewObserver(2)
	updated, _ := m.Update(msg.ObserverClosed{Observer: 2, Err: vm.ErrCancelled})
	m = updated.(ObserverModel)
	if m.IsSubscribed() {
		t.Error("observer should be unsubscribed")
	}
	if !strings.Contains(m.View(), "unsubscribed") {
		t.Errorf("view should show unsubscribed: %q", m.View())
	}
}

func TestRenderState_Labels(t *testing.T) {
	cases := []struct {
		state vm.State
		want  string
	}{
		{vm.Waiting, "waiting"},
		{vm.Running, "running"},
		{vm.Finished("Result"), "Result"},
		{vm.Failed(errors.New("boom")), "boom"},
	}
	for _, c := range cases {
		if got := RenderState(c.state); !strings.Contains(got, c.want) {
			t.Errorf("RenderState(%s) = %q, want it to contain %q", c.state, got, c.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("want unchanged, got %q", got)
	}
	if got := truncate("a much longer line of text", 10); got != "a much lo…" {
		t.Errorf("want truncated, got %q", got)
	}
}

// ---------------------------------------------------------------------------
// ToastsModel
// ---------------------------------------------------------------------------

func TestToasts_DropOldestBeyondMax(t *testing.T) {
	m := NewToasts()
	for i := 0; i < maxToasts+2; i++ {
		m.Add(fmt.Sprintf("t%d", i), ToastInfo)
	}
	if m.Len() != maxToasts {
		t.Errorf("want %d toasts, got %d", maxToasts, m.Len())
	}
	if strings.Contains(m.View(80), "t0") {
		t.Error("oldest toast should have been dropped")
	}
}

func TestToasts_RepeatsCoalesce(t *testing.T) {
	m := NewToasts()
	m.Add("Launch rejected", ToastWarning)
	m.Add("Launch rejected", ToastWarning)
	m.Add("Launch rejected", ToastWarning)
	if m.Len() != 1 {
		t.Fatalf("want 1 coalesced toast, got %d", m.Len())
	}
	if !strings.Contains(m.View(80), "\u00D73") {
		t.Errorf("repeat count missing: %q", m.View(80))
	}
}

func TestToasts_TickExpires(t *testing.T) {
	now := time.Now()
	m := NewToasts()
	m.now = func() time.Time { return now }
	m.Add("bye", ToastWarning)

	now = now.Add(ToastWarning.ttl() + time.Second)
	m.Tick()
	if m.Len() != 0 {
		t.Errorf("want expired toast pruned, got %d", m.Len())
	}
	if m.View(80) != "" {
		t.Error("empty queue should render nothing")
	}
}

func TestToasts_ErrorsOutliveInfo(t *testing.T) {
	now := time.Now()
	m := NewToasts()
	m.now = func() time.Time { return now }
	m.Add("Observer 1 subscribed", ToastInfo)
	m.Add("Computation failed: boom", ToastError)

	now = now.Add(ToastInfo.ttl() + time.Second)
	m.Tick()
	if m.Len() != 1 || !strings.Contains(m.View(80), "boom") {
		t.Errorf("want only the failure left, got %q", m.View(80))
	}
}

// ---------------------------------------------------------------------------
// ActivityModel / BannerModel
// ---------------------------------------------------------------------------

func TestActivity_ElapsedOnlyWhileActive(t *testing.T) {
	now := time.Now()
	m := NewActivity()
	m.now = func() time.Time { return now }

	if m.View() != "" {
		t.Error("inactive activity should render nothing")
	}
	m.Start()
	now = now.Add(3 * time.Second)
	if got := m.Elapsed(); got != 3*time.Second {
		t.Errorf("want 3s elapsed, got %s", got)
	}
	if !strings.Contains(m.View(), "3s") {
		t.Errorf("view should show elapsed: %q", m.View())
	}
	m.Stop()
	if m.Elapsed() != 0 {
		t.Error("stopped activity should report zero elapsed")
	}
}

func TestFormatElapsed(t *testing.T) {
	if got := formatElapsed(83 * time.Second); got != "1m 23s" {
		t.Errorf("want 1m 23s, got %s", got)
	}
}

func TestBanner_CountsCycles(t *testing.T) {
	b := NewBanner("")
	b.SetDelay(2 * time.Second)
	b.IncCycles()
	view := b.View()
	for _, want := range []string{"launch dev", "delay 2s", "1 cycle"} {
		if !strings.Contains(view, want) {
			t.Errorf("banner %q missing %q", view, want)
		}
	}
	if strings.Contains(view, "1 cycles") {
		t.Errorf("singular cycle expected: %q", view)
	}
}
