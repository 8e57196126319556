package movement

import (
	"log"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/jappenzeller/system-client-go/shared/gamemath"
)

// AuthorityState is the discrete lifecycle code pushed by the server for a
// reconciled packet. The encoding is a fixed contract with the server schema;
// this package only compares codes ordinally against the terminal value.
type AuthorityState int32

const (
	AuthorityMoving      AuthorityState = 0 // moving horizontally
	AuthorityArrivedBase AuthorityState = 1 // arrived at destination, base height
	AuthorityRising      AuthorityState = 2 // rising to final height
	AuthorityStationary  AuthorityState = 3 // stationary, terminal
)

func (a AuthorityState) String() string {
	switch a {
	case AuthorityMoving:
		return "Moving"
	case AuthorityArrivedBase:
		return "ArrivedBase"
	case AuthorityRising:
		return "Rising"
	case AuthorityStationary:
		return "Stationary"
	}
	return "Unknown"
}

// Recommended opacity per authority state: lower while in motion, full at
// rest. Presentation hint only, not movement logic.
const (
	opacityMoving  = 0.6
	opacityArrived = 0.8
	opacityRising  = 0.8
	opacityRest    = 1.0
)

// ReconcileTuning groups the client-side tuning for a reconciled mover.
type ReconcileTuning struct {
	FinalHeight        float64 // hover height reached in the rising state
	RiseSpeed          float64
	InterpolationSpeed float64 // display smoothing factor, per second
}

// ServerReconciled animates an entity whose ground truth lives on a remote
// authority. Between snapshots it predicts from the last anchor; the
// displayed position chases the prediction with exponential smoothing, a
// deliberately lossy damping of network jitter. Orientation always follows
// the displayed position so visuals never desynchronize from what is shown.
type ServerReconciled struct {
	Core

	anchor  mgl64.Vec3 // prediction anchor, reset on every authority transition
	elapsed float64    // seconds since the anchor reset

	velocity    mgl64.Vec3
	destination mgl64.Vec3
	authority   AuthorityState

	displayed mgl64.Vec3

	tuning ReconcileTuning

	serverStateFns []func(m *ServerReconciled, old, new AuthorityState)
}

// NewServerReconciled creates an uninitialized reconciled mover. Call
// Initialize with the first server snapshot before ticking.
func NewServerReconciled(radius float64, tuning ReconcileTuning, behavior CompletionBehavior) *ServerReconciled {
	s := &ServerReconciled{tuning: tuning}
	s.Core.init(s, s, radius, behavior)
	return s
}

// NotifyServerStateChanged registers an observer for authority transitions.
// It fires on actual code changes only, carrying both codes; this is distinct
// from the generic state-changed event.
func (s *ServerReconciled) NotifyServerStateChanged(fn func(m *ServerReconciled, old, new AuthorityState)) {
	s.serverStateFns = append(s.serverStateFns, fn)
}

// Authority returns the last accepted authority state code.
func (s *ServerReconciled) Authority() AuthorityState { return s.authority }

// Initialize seeds the mover from the first authoritative snapshot and begins
// ticking, unless the state is already terminal, in which case the instance
// is marked Complete without ever activating.
func (s *ServerReconciled) Initialize(position, velocity, destination mgl64.Vec3, state AuthorityState) {
	s.anchor = position
	s.elapsed = 0
	s.velocity = velocity
	s.destination = destination
	s.displayed = position
	s.position = position
	s.rotation = s.surfaceOrientation(position)
	s.authority = state

	if state >= AuthorityStationary {
		s.active = false
		s.setState(StateComplete)
		return
	}
	s.StartMovement()
}

// UpdateFromServer reconciles against a fresh snapshot. Velocity and
// destination are always refreshed so predictions stay current without a
// visible snap. On an actual authority transition the prediction anchor
// resets to the received position, preventing compounding drift.
func (s *ServerReconciled) UpdateFromServer(position, velocity, destination mgl64.Vec3, newState AuthorityState) {
	s.velocity = velocity
	s.destination = destination

	if newState == s.authority {
		return
	}
	mapped, ok := mapAuthority(newState)
	if !ok {
		// Unrecognized code: keep the last mapped state, make no progress.
		log.Printf("[movement] unrecognized authority state %d, holding %s", newState, s.state)
		return
	}

	old := s.authority
	s.authority = newState
	s.anchor = position
	s.elapsed = 0

	for _, fn := range s.serverStateFns {
		safeInvoke(func() { fn(s, old, newState) })
	}

	if newState >= AuthorityStationary {
		if s.active {
			s.completeMovement()
		} else {
			s.setState(StateComplete)
		}
		return
	}

	s.setState(mapped)
	if !s.active {
		// Authority regressed below terminal: resume ticking.
		s.active = true
	}
}

// RecommendedOpacity returns the presentation opacity hint for the current
// authority state.
func (s *ServerReconciled) RecommendedOpacity() float64 {
	switch s.authority {
	case AuthorityMoving:
		return opacityMoving
	case AuthorityArrivedBase:
		return opacityArrived
	case AuthorityRising:
		return opacityRising
	default:
		return opacityRest
	}
}

func (s *ServerReconciled) onStart() {
	if mapped, ok := mapAuthority(s.authority); ok {
		s.setState(mapped)
	}
}

func (s *ServerReconciled) onTick(dt float64) {
	s.elapsed += dt
	predicted := s.predict()
	t := gamemath.Clamp01(dt * s.tuning.InterpolationSpeed)
	s.displayed = gamemath.LerpVec(s.displayed, predicted, t)
	s.position = s.displayed
	s.rotation = s.surfaceOrientation(s.displayed)
}

// onComplete snaps exactly to the destination bearing at final height,
// eliminating residual smoothing error.
func (s *ServerReconciled) onComplete() {
	p := s.placeAtHeight(s.destination, s.tuning.FinalHeight)
	s.displayed = p
	s.position = p
	s.rotation = s.surfaceOrientation(p)
}

// predict computes the authoritative position estimate for the elapsed time
// since the last anchor reset.
func (s *ServerReconciled) predict() mgl64.Vec3 {
	switch s.authority {
	case AuthorityMoving:
		speed := s.velocity.Len()
		if speed < gamemath.Epsilon {
			return s.anchor
		}
		axis := s.anchor.Cross(s.velocity)
		if axis.Len() < gamemath.Epsilon {
			// Velocity radial or zero-length anchor: nothing to rotate about.
			return s.anchor
		}
		angle := speed / s.radius * s.elapsed
		remaining := s.greatCircleDistance(s.anchor, s.destination)
		if remaining > gamemath.Epsilon && angle*s.radius >= remaining {
			// A single long tick would overshoot: snap to the destination
			// bearing at the anchor's height.
			return gamemath.PlaceAtHeight(s.destination, s.radius, s.heightOf(s.anchor))
		}
		return gamemath.RotateAboutAxis(s.anchor, axis.Normalize(), angle)

	case AuthorityArrivedBase:
		return s.constrainToSurface(s.destination)

	case AuthorityRising:
		h := math.Min(s.tuning.RiseSpeed*s.elapsed, s.tuning.FinalHeight)
		return s.placeAtHeight(s.anchor, h)

	default:
		return s.displayed
	}
}

// mapAuthority translates an authority code into the shared movement state.
func mapAuthority(a AuthorityState) (State, bool) {
	switch a {
	case AuthorityMoving:
		return StateMovingHorizontal, true
	case AuthorityArrivedBase:
		return StateArriving, true
	case AuthorityRising:
		return StateMovingVertical, true
	case AuthorityStationary:
		return StateComplete, true
	}
	return StateInactive, false
}
