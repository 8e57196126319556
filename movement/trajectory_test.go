package movement

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/jappenzeller/system-client-go/shared/gamemath"
)

const testRadius = 100.0

// bearingAt returns a surface point at the given angle from the north pole,
// leaning toward +X.
func bearingAt(angle float64) mgl64.Vec3 {
	return mgl64.Vec3{math.Sin(angle), math.Cos(angle), 0}.Mul(testRadius)
}

func tickFor(m Movement, seconds, dt float64) {
	steps := int(math.Round(seconds / dt))
	for i := 0; i < steps; i++ {
		m.Tick(dt)
	}
}

func wantNear(t *testing.T, what string, got, want, eps float64) {
	t.Helper()
	if math.Abs(got-want) > eps {
		t.Fatalf("%s = %v, want %v", what, got, want)
	}
}

func wantVecNear(t *testing.T, what string, got, want mgl64.Vec3, eps float64) {
	t.Helper()
	if got.Sub(want).Len() > eps {
		t.Fatalf("%s = %v, want %v", what, got, want)
	}
}

func TestDirectTrajectory(t *testing.T) {
	start := bearingAt(0)
	target := bearingAt(0.5) // 50 surface units away

	arrivals := 0
	tr := NewScriptedTrajectory(testRadius, CompletionDestroy)
	tr.InitializeDirect(start, target, 5, 1, func() { arrivals++ })

	if tr.Kind() != TrajectoryDirect {
		t.Fatalf("kind = %v", tr.Kind())
	}
	wantNear(t, "total duration", tr.TotalDuration(), 10, 1e-9)
	if tr.CurrentState() != StateMovingHorizontal {
		t.Fatalf("state = %v", tr.CurrentState())
	}
	wantVecNear(t, "initial position", tr.CurrentPosition(),
		gamemath.PlaceAtHeight(start, testRadius, 1), 1e-9)

	// Halfway in time is halfway along the arc, at the flight height.
	tickFor(tr, 5, 0.1)
	wantNear(t, "midpoint progress", tr.Progress(), 0.5, 1e-6)
	wantVecNear(t, "midpoint position", tr.CurrentPosition(),
		gamemath.PlaceAtHeight(bearingAt(0.25), testRadius, 1), 1e-6)
	wantNear(t, "midpoint shell distance", tr.CurrentPosition().Len(), testRadius+1, 1e-9)

	// Finish snaps exactly to the target pose and fires arrival once.
	tickFor(tr, 5.1, 0.1)
	if !tr.IsComplete() {
		t.Fatal("not complete after full duration")
	}
	if arrivals != 1 {
		t.Fatalf("arrival fired %d times, want 1", arrivals)
	}
	wantVecNear(t, "final position", tr.CurrentPosition(),
		gamemath.PlaceAtHeight(target, testRadius, 1), 1e-9)
	wantNear(t, "final progress", tr.Progress(), 1, 1e-12)

	// Ticking past completion changes nothing and never re-fires arrival.
	final := tr.CurrentPosition()
	tr.Tick(1)
	if arrivals != 1 {
		t.Fatalf("arrival re-fired, count %d", arrivals)
	}
	wantVecNear(t, "position after completion", tr.CurrentPosition(), final, 0)
}

func TestDescendingTransferPhases(t *testing.T) {
	start := bearingAt(0)
	target := bearingAt(0.3) // 30 surface units away

	tr := NewScriptedTrajectory(testRadius, CompletionDestroy)
	tr.InitializeTwoPhase(start, target, gamemath.SurfaceOrientation(target),
		6, 10, 1, nil)

	if tr.Kind() != TrajectoryHorizontalThenVertical {
		t.Fatalf("kind = %v", tr.Kind())
	}
	p1, p2 := tr.PhaseDurations()
	wantNear(t, "horizontal phase", p1, 5, 1e-9)
	wantNear(t, "vertical phase", p2, 1.5, 1e-9)
	if tr.CurrentState() != StateMovingHorizontal {
		t.Fatalf("state = %v", tr.CurrentState())
	}

	// Three quarters of a second into the descent.
	tickFor(tr, 5.75, 0.05)
	if tr.CurrentState() != StateMovingVertical {
		t.Fatalf("state = %v after handoff", tr.CurrentState())
	}
	wantNear(t, "progress in descent", tr.Progress(), 0.846, 1e-3)
	// Bearing pinned at the target while descending; only the height moves.
	wantVecNear(t, "descent bearing", tr.CurrentPosition().Normalize(), target.Normalize(), 1e-9)
	wantNear(t, "descent height", gamemath.HeightOf(tr.CurrentPosition(), testRadius),
		gamemath.Lerp(10, 1, 0.75/1.5), 1e-6)

	tickFor(tr, 1.1, 0.05)
	if !tr.IsComplete() {
		t.Fatal("not complete after both phases")
	}
	wantVecNear(t, "final position", tr.CurrentPosition(),
		gamemath.PlaceAtHeight(target, testRadius, 1), 1e-9)
}

func TestRisingTransferPinsBearingThenSlides(t *testing.T) {
	start := bearingAt(0)
	target := bearingAt(0.2) // 20 surface units away

	tr := NewScriptedTrajectory(testRadius, CompletionDestroy)
	tr.InitializeTwoPhase(start, target, gamemath.SurfaceOrientation(target),
		2, 1, 10, nil)

	if tr.Kind() != TrajectoryVerticalThenHorizontal {
		t.Fatalf("kind = %v", tr.Kind())
	}
	p1, p2 := tr.PhaseDurations()
	wantNear(t, "vertical phase", p1, 4.5, 1e-9)
	wantNear(t, "horizontal phase", p2, 10, 1e-9)
	if tr.CurrentState() != StateMovingVertical {
		t.Fatalf("state = %v", tr.CurrentState())
	}

	// Mid rise: bearing pinned at the start, height interpolating.
	tickFor(tr, 2.25, 0.05)
	wantVecNear(t, "rise bearing", tr.CurrentPosition().Normalize(), start.Normalize(), 1e-9)
	wantNear(t, "rise height", gamemath.HeightOf(tr.CurrentPosition(), testRadius), 5.5, 1e-6)

	// The phase handoff must not teleport: consecutive ticks around the
	// boundary stay within one tick's travel.
	const dt = 0.05
	prev := tr.CurrentPosition()
	for clock := 2.25; clock < 5.0; clock += dt {
		tr.Tick(dt)
		step := tr.CurrentPosition().Sub(prev).Len()
		if step > 2*2*dt+1e-6 {
			t.Fatalf("discontinuity at clock %.2f: moved %v in one tick", clock, step)
		}
		prev = tr.CurrentPosition()
	}
	if tr.CurrentState() != StateMovingHorizontal {
		t.Fatalf("state = %v after handoff", tr.CurrentState())
	}
	wantNear(t, "slide height", gamemath.HeightOf(tr.CurrentPosition(), testRadius), 10, 1e-6)
}

func TestEqualHeightsDegenerateToDirect(t *testing.T) {
	tr := NewScriptedTrajectory(testRadius, CompletionPersist)
	tr.InitializeTwoPhase(bearingAt(0), bearingAt(0.1), mgl64.QuatIdent(), 4, 3, 3, nil)

	if tr.Kind() != TrajectoryDirect {
		t.Fatalf("kind = %v", tr.Kind())
	}
	_, p2 := tr.PhaseDurations()
	wantNear(t, "second phase", p2, 0, 0)
	wantNear(t, "total duration", tr.TotalDuration(), 10.0/4.0, 1e-9)
}

func TestZeroSpeedCompletesImmediately(t *testing.T) {
	arrivals := 0
	tr := NewScriptedTrajectory(testRadius, CompletionDestroy)
	tr.InitializeDirect(bearingAt(0), bearingAt(0.5), 0, 1, func() { arrivals++ })

	tr.Tick(0.016)
	if !tr.IsComplete() {
		t.Fatal("zero-speed trajectory must complete on the first tick")
	}
	if arrivals != 1 {
		t.Fatalf("arrival fired %d times, want 1", arrivals)
	}
}

func TestStopMidFlight(t *testing.T) {
	arrivals := 0
	tr := NewScriptedTrajectory(testRadius, CompletionDestroy)
	tr.InitializeDirect(bearingAt(0), bearingAt(0.5), 5, 1, func() { arrivals++ })

	tickFor(tr, 2, 0.1)
	frozen := tr.CurrentPosition()
	tr.StopMovement()
	tickFor(tr, 20, 0.1)

	if arrivals != 0 {
		t.Fatalf("arrival fired %d times after stop, want 0", arrivals)
	}
	wantVecNear(t, "position after stop", tr.CurrentPosition(), frozen, 0)
	if tr.IsComplete() {
		t.Error("stopped trajectory must not report complete")
	}
}

func TestRotationReachesTargetOrientation(t *testing.T) {
	start := bearingAt(0)
	target := bearingAt(0.4)
	tr := NewScriptedTrajectory(testRadius, CompletionDestroy)
	tr.InitializeDirect(start, target, 8, 2, nil)

	tickFor(tr, 6, 0.1)
	want := gamemath.SurfaceOrientation(target)
	got := tr.CurrentRotation()
	if math.Abs(got.W-want.W) > 1e-9 || got.V.Sub(want.V).Len() > 1e-9 {
		t.Fatalf("final rotation = %v, want %v", got, want)
	}
}
