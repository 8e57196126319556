package movement

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// stubMover exercises Core without any kinematics attached.
type stubMover struct {
	Core
	ticks int
}

func newStubMover() *stubMover {
	m := &stubMover{}
	m.Core.init(m, m, 100, CompletionPersist)
	return m
}

func (m *stubMover) onStart()          {}
func (m *stubMover) onTick(dt float64) { m.ticks++ }
func (m *stubMover) onComplete()       {}

func TestStateObserverFiresOnChangeOnly(t *testing.T) {
	m := newStubMover()
	fired := 0
	m.NotifyStateChanged(func(Movement) { fired++ })

	m.StartMovement()
	if fired != 1 {
		t.Fatalf("fired = %d after start, want 1", fired)
	}
	m.setState(StateInitializing) // same value
	if fired != 1 {
		t.Fatalf("fired = %d after repeated state, want 1", fired)
	}
	m.setState(StateMovingHorizontal)
	if fired != 2 {
		t.Fatalf("fired = %d after transition, want 2", fired)
	}
}

func TestCompleteMovementIsIdempotent(t *testing.T) {
	m := newStubMover()
	done := 0
	m.NotifyComplete(func(Movement) { done++ })

	m.StartMovement()
	m.completeMovement()
	m.completeMovement()

	if done != 1 {
		t.Fatalf("completion fired %d times, want 1", done)
	}
	if m.IsActive() {
		t.Error("still active after completion")
	}
	if !m.IsComplete() {
		t.Error("not complete after completion")
	}
}

func TestTickGatedOnActive(t *testing.T) {
	m := newStubMover()
	m.Tick(0.1)
	if m.ticks != 0 {
		t.Fatalf("ticked %d times before start, want 0", m.ticks)
	}

	m.StartMovement()
	m.Tick(0.1)
	m.StopMovement()
	m.Tick(0.1)
	m.StopMovement() // repeated stop is a no-op

	if m.ticks != 1 {
		t.Fatalf("ticked %d times, want 1", m.ticks)
	}
}

func TestStopDoesNotFireCompletion(t *testing.T) {
	m := newStubMover()
	done := 0
	m.NotifyComplete(func(Movement) { done++ })

	m.StartMovement()
	m.StopMovement()

	if done != 0 {
		t.Fatalf("completion fired %d times after stop, want 0", done)
	}
	if m.IsComplete() {
		t.Error("stop must not mark the instance complete")
	}
}

func TestObserverPanicIsContained(t *testing.T) {
	m := newStubMover()
	after := 0
	m.NotifyStateChanged(func(Movement) { panic("observer bug") })
	m.NotifyStateChanged(func(Movement) { after++ })

	m.StartMovement()

	if after != 1 {
		t.Fatalf("observer after the panicking one fired %d times, want 1", after)
	}
	if !m.IsActive() {
		t.Error("panic in an observer must not deactivate the mover")
	}
}

func TestCoreAccessors(t *testing.T) {
	m := newStubMover()
	if m.CurrentState() != StateInactive {
		t.Errorf("initial state = %v", m.CurrentState())
	}
	if m.Completion() != CompletionPersist {
		t.Errorf("completion = %v", m.Completion())
	}
	if m.Radius() != 100 {
		t.Errorf("radius = %v", m.Radius())
	}
	if m.CurrentRotation() != mgl64.QuatIdent() {
		t.Errorf("initial rotation = %v, want identity", m.CurrentRotation())
	}
}
