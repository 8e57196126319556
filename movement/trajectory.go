package movement

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/jappenzeller/system-client-go/shared/gamemath"
)

// TrajectoryKind classifies a scripted journey by its phase structure.
type TrajectoryKind int

const (
	// TrajectoryDirect slides along the great circle at a constant height.
	TrajectoryDirect TrajectoryKind = iota
	// TrajectoryVerticalThenHorizontal rises in place to the target height,
	// then slides along the great circle at that height.
	TrajectoryVerticalThenHorizontal
	// TrajectoryHorizontalThenVertical slides along the great circle at the
	// start height, then descends in place to the target height.
	TrajectoryHorizontalThenVertical
)

func (k TrajectoryKind) String() string {
	switch k {
	case TrajectoryDirect:
		return "Direct"
	case TrajectoryVerticalThenHorizontal:
		return "VerticalThenHorizontal"
	case TrajectoryHorizontalThenVertical:
		return "HorizontalThenVertical"
	}
	return "Unknown"
}

// ScriptedTrajectory animates a one-shot, fully client-computed journey. The
// entire trajectory is derived once from target and speed; each tick advances
// only the active phase's dimension, pinning the other to its boundary value,
// so the handoff between phases has no positional discontinuity.
type ScriptedTrajectory struct {
	Core

	kind TrajectoryKind

	start, target       mgl64.Vec3 // unit bearings
	startRot, targetRot mgl64.Quat
	startHeight         float64
	targetHeight        float64
	speed               float64

	phase1Duration float64
	phase2Duration float64
	clock          float64 // time within the current phase
	inPhase2       bool

	onArrival func()
}

// NewScriptedTrajectory creates an uninitialized scripted mover. Call one of
// the Initialize methods before ticking.
func NewScriptedTrajectory(radius float64, behavior CompletionBehavior) *ScriptedTrajectory {
	t := &ScriptedTrajectory{}
	t.Core.init(t, t, radius, behavior)
	return t
}

// InitializeDirect plans single-phase motion from start to target at a
// constant height. Duration is the surface great-circle distance over speed.
func (t *ScriptedTrajectory) InitializeDirect(start, target mgl64.Vec3, speed, height float64, onArrival func()) {
	t.kind = TrajectoryDirect
	t.plan(start, target, gamemath.SurfaceOrientation(target), speed, height, height, onArrival)
	t.phase1Duration = t.horizontalDuration()
	t.phase2Duration = 0
	t.StartMovement()
}

// InitializeTwoPhase plans motion between two heights, classifying the
// trajectory automatically: equal heights degenerate to Direct, a higher
// target rises first, a lower target descends last.
func (t *ScriptedTrajectory) InitializeTwoPhase(start, target mgl64.Vec3, targetRot mgl64.Quat, speed, startHeight, endHeight float64, onArrival func()) {
	t.plan(start, target, targetRot, speed, startHeight, endHeight, onArrival)

	switch {
	case math.Abs(endHeight-startHeight) < gamemath.Epsilon:
		t.kind = TrajectoryDirect
		t.targetHeight = startHeight
		t.phase1Duration = t.horizontalDuration()
		t.phase2Duration = 0
	case endHeight > startHeight:
		t.kind = TrajectoryVerticalThenHorizontal
		t.phase1Duration = t.verticalDuration()
		t.phase2Duration = t.horizontalDuration()
	default:
		t.kind = TrajectoryHorizontalThenVertical
		t.phase1Duration = t.horizontalDuration()
		t.phase2Duration = t.verticalDuration()
	}
	t.StartMovement()
}

// plan stores the shared trajectory fields and seeds position and rotation at
// the start pose.
func (t *ScriptedTrajectory) plan(start, target mgl64.Vec3, targetRot mgl64.Quat, speed, startHeight, endHeight float64, onArrival func()) {
	t.start = gamemath.SurfaceNormal(start)
	t.target = gamemath.SurfaceNormal(target)
	t.startRot = gamemath.SurfaceOrientation(start)
	t.targetRot = targetRot
	t.speed = speed
	t.startHeight = startHeight
	t.targetHeight = endHeight
	t.onArrival = onArrival
	t.clock = 0
	t.inPhase2 = false

	t.position = t.placeAtHeight(t.start, startHeight)
	t.rotation = t.startRot
}

func (t *ScriptedTrajectory) horizontalDuration() float64 {
	if t.speed < gamemath.Epsilon {
		return 0
	}
	return t.greatCircleDistance(t.start, t.target) / t.speed
}

func (t *ScriptedTrajectory) verticalDuration() float64 {
	if t.speed < gamemath.Epsilon {
		return 0
	}
	return math.Abs(t.targetHeight-t.startHeight) / t.speed
}

// Kind returns the derived trajectory classification.
func (t *ScriptedTrajectory) Kind() TrajectoryKind { return t.kind }

// PhaseDurations returns the derived durations of both phases in seconds.
// The second value is zero for Direct trajectories.
func (t *ScriptedTrajectory) PhaseDurations() (float64, float64) {
	return t.phase1Duration, t.phase2Duration
}

// TotalDuration returns the sum of the active phase durations.
func (t *ScriptedTrajectory) TotalDuration() float64 {
	return t.phase1Duration + t.phase2Duration
}

// Progress returns overall journey progress in [0,1] as a duration-weighted
// blend across phases.
func (t *ScriptedTrajectory) Progress() float64 {
	total := t.TotalDuration()
	if t.IsComplete() || total < gamemath.Epsilon {
		return 1
	}
	if !t.inPhase2 {
		return gamemath.Clamp01(t.clock / total)
	}
	p2 := 1.0
	if t.phase2Duration > gamemath.Epsilon {
		p2 = gamemath.Clamp01(t.clock / t.phase2Duration)
	}
	return gamemath.Clamp01((t.phase1Duration + p2) / total)
}

func (t *ScriptedTrajectory) onStart() {
	if t.kind == TrajectoryVerticalThenHorizontal {
		t.setState(StateMovingVertical)
	} else {
		t.setState(StateMovingHorizontal)
	}
}

func (t *ScriptedTrajectory) onTick(dt float64) {
	t.clock += dt

	if !t.inPhase2 {
		if t.clock < t.phase1Duration {
			t.applyPhase1(t.phaseProgress(t.clock, t.phase1Duration))
			return
		}
		if t.phase2Duration <= 0 {
			t.finish()
			return
		}
		// Phase handoff: carry the overshoot into a fresh phase clock so
		// phase 2 begins exactly where phase 1 ended.
		t.clock -= t.phase1Duration
		t.inPhase2 = true
		t.applyPhase1(1)
		if t.kind == TrajectoryVerticalThenHorizontal {
			t.setState(StateMovingHorizontal)
		} else {
			t.setState(StateMovingVertical)
		}
	}

	if t.clock >= t.phase2Duration {
		t.finish()
		return
	}
	t.applyPhase2(t.phaseProgress(t.clock, t.phase2Duration))
}

func (t *ScriptedTrajectory) phaseProgress(clock, duration float64) float64 {
	if duration < gamemath.Epsilon {
		return 1
	}
	return gamemath.Clamp01(clock / duration)
}

// applyPhase1 advances only the first phase's dimension by progress p.
func (t *ScriptedTrajectory) applyPhase1(p float64) {
	switch t.kind {
	case TrajectoryVerticalThenHorizontal:
		// Rise in place: bearing and orientation pinned to start.
		h := gamemath.Lerp(t.startHeight, t.targetHeight, p)
		t.position = t.placeAtHeight(t.start, h)
		t.rotation = t.startRot
	default:
		// Horizontal slide at the start height.
		bearing := gamemath.SlerpBearing(t.start, t.target, p)
		t.position = t.placeAtHeight(bearing, t.startHeight)
		t.rotation = mgl64.QuatSlerp(t.startRot, t.targetRot, p)
	}
}

// applyPhase2 advances only the second phase's dimension by progress p.
func (t *ScriptedTrajectory) applyPhase2(p float64) {
	switch t.kind {
	case TrajectoryVerticalThenHorizontal:
		// Horizontal slide at the target height.
		bearing := gamemath.SlerpBearing(t.start, t.target, p)
		t.position = t.placeAtHeight(bearing, t.targetHeight)
		t.rotation = mgl64.QuatSlerp(t.startRot, t.targetRot, p)
	case TrajectoryHorizontalThenVertical:
		// Descend in place at the target bearing.
		h := gamemath.Lerp(t.startHeight, t.targetHeight, p)
		t.position = t.placeAtHeight(t.target, h)
		t.rotation = t.targetRot
	}
}

// finish snaps exactly to the target pose regardless of accumulated floating
// error, fires the arrival callback, then completes.
func (t *ScriptedTrajectory) finish() {
	t.position = t.placeAtHeight(t.target, t.targetHeight)
	t.rotation = t.targetRot
	if t.onArrival != nil {
		safeInvoke(t.onArrival)
	}
	t.completeMovement()
}

func (t *ScriptedTrajectory) onComplete() {}
