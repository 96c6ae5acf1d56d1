package task

import (
	"errors"
	"testing"

	"github.com/tickwalk/server/internal/core/ecs"
)

type owner ecs.EntityID

func (o owner) EntityID() ecs.EntityID { return ecs.EntityID(o) }

func mustTick(t *testing.T, u interface{ Tick() error }) {
	t.Helper()
	if err := u.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
}

func TestRecurringTaskFiresEveryDelayPlusOneTicks(t *testing.T) {
	var firedAt []int
	tick := 0
	tk := New(3, false, owner(1), struct{}{}, func(*Task[struct{}]) error {
		firedAt = append(firedAt, tick)
		return nil
	})

	for tick = 1; tick <= 12; tick++ {
		mustTick(t, tk)
	}

	want := []int{4, 8, 12}
	if len(firedAt) != len(want) {
		t.Fatalf("fired at %v, want %v", firedAt, want)
	}
	for i := range want {
		if firedAt[i] != want[i] {
			t.Fatalf("fired at %v, want %v", firedAt, want)
		}
	}
	if tk.Fired() != 3 || !tk.Active() {
		t.Fatalf("Fired=%d Active=%v", tk.Fired(), tk.Active())
	}
}

func TestZeroDelayFiresEveryTick(t *testing.T) {
	n := 0
	tk := New(0, false, nil, struct{}{}, func(*Task[struct{}]) error { n++; return nil })
	for i := 0; i < 5; i++ {
		mustTick(t, tk)
	}
	if n != 5 || tk.Fired() != 5 {
		t.Fatalf("n=%d fired=%d", n, tk.Fired())
	}
}

func TestRunOnceDeactivatesAfterFirstFiring(t *testing.T) {
	n := 0
	tk := Once(1, owner(2), func(*Task[struct{}]) error { n++; return nil })

	mustTick(t, tk)
	if n != 0 || !tk.Active() {
		t.Fatalf("fired early: n=%d", n)
	}
	mustTick(t, tk)
	if n != 1 || tk.Active() {
		t.Fatalf("after firing: n=%d active=%v", n, tk.Active())
	}
	for i := 0; i < 5; i++ {
		mustTick(t, tk)
	}
	if n != 1 || tk.Fired() != 1 {
		t.Fatalf("inactive task fired again: n=%d fired=%d", n, tk.Fired())
	}
}

func TestCancelBeforeExpiryPreventsFiring(t *testing.T) {
	n := 0
	tk := New(2, false, owner(3), struct{}{}, func(*Task[struct{}]) error { n++; return nil })
	mustTick(t, tk)
	tk.SetInactive()
	for i := 0; i < 10; i++ {
		mustTick(t, tk)
	}
	if n != 0 || tk.Fired() != 0 {
		t.Fatalf("cancelled task fired %d times", n)
	}
}

func TestCancelFromInsideActionCompletesFiring(t *testing.T) {
	tk := New(0, false, nil, struct{}{}, func(self *Task[struct{}]) error {
		self.SetInactive()
		return nil
	})
	mustTick(t, tk)
	if tk.Fired() != 1 || tk.Active() {
		t.Fatalf("Fired=%d Active=%v", tk.Fired(), tk.Active())
	}
	mustTick(t, tk)
	if tk.Fired() != 1 {
		t.Fatalf("fired after self-cancel: %d", tk.Fired())
	}
}

func TestActionErrorPropagatesAndRetries(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	tk := Once(0, owner(4), func(*Task[struct{}]) error {
		calls++
		if calls == 1 {
			return boom
		}
		return nil
	})

	err := tk.Tick()
	if !errors.Is(err, boom) {
		t.Fatalf("Tick error = %v, want wrapped boom", err)
	}
	if !tk.Active() || tk.Fired() != 0 {
		t.Fatalf("failed firing changed state: active=%v fired=%d", tk.Active(), tk.Fired())
	}

	mustTick(t, tk)
	if calls != 2 || tk.Fired() != 1 || tk.Active() {
		t.Fatalf("retry: calls=%d fired=%d active=%v", calls, tk.Fired(), tk.Active())
	}
}

type route struct {
	Waypoints []string
}

func TestParamsAndOwnerAreExposed(t *testing.T) {
	var seen []string
	tk := New(0, false, owner(9), route{Waypoints: []string{"a", "b"}}, func(self *Task[route]) error {
		wp := self.Params().Waypoints
		seen = append(seen, wp[self.Fired()%len(wp)])
		return nil
	})
	for i := 0; i < 3; i++ {
		mustTick(t, tk)
	}
	if len(seen) != 3 || seen[0] != "a" || seen[1] != "b" || seen[2] != "a" {
		t.Fatalf("seen = %v", seen)
	}
	if tk.Owner().EntityID() != 9 || tk.Delay() != 0 || tk.RunOnce() {
		t.Fatalf("accessors: owner=%v delay=%d once=%v", tk.Owner(), tk.Delay(), tk.RunOnce())
	}
}
