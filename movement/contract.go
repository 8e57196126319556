// Package movement animates wave packets across the surface of a sphere
// world. Two strategies share a common kinematics base: ServerReconciled
// follows periodic authoritative snapshots, ScriptedTrajectory computes a
// one-shot journey client-side. A Factory binds each game scenario to the
// right strategy and tuning.
package movement

import "github.com/go-gl/mathgl/mgl64"

// State is the lifecycle state of a movement instance. Complete is terminal
// for a given instance; only server reconciliation may move an instance out
// of it again.
type State int

const (
	StateInactive State = iota
	StateInitializing
	StateMovingHorizontal
	StateMovingVertical
	StateArriving
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateInactive:
		return "Inactive"
	case StateInitializing:
		return "Initializing"
	case StateMovingHorizontal:
		return "MovingHorizontal"
	case StateMovingVertical:
		return "MovingVertical"
	case StateArriving:
		return "Arriving"
	case StateComplete:
		return "Complete"
	}
	return "Unknown"
}

// CompletionBehavior is the policy applied by the driver once a movement
// finishes.
type CompletionBehavior int

const (
	// CompletionPersist leaves the entity in place at its destination.
	CompletionPersist CompletionBehavior = iota
	// CompletionDestroy removes the entity once movement completes.
	CompletionDestroy
	// CompletionCallback leaves the decision to the completion observer.
	CompletionCallback
)

// Movement is the contract every movement strategy implements. Tick is a
// no-op while inactive. StopMovement deactivates without firing completion;
// it signals cancellation, distinct from arrival.
type Movement interface {
	CurrentState() State
	IsActive() bool
	IsComplete() bool
	CurrentPosition() mgl64.Vec3
	CurrentRotation() mgl64.Quat
	Completion() CompletionBehavior

	StartMovement()
	StopMovement()
	Tick(dt float64)

	// NotifyStateChanged registers an observer fired on every actual state
	// transition. NotifyComplete registers an observer fired exactly once
	// per completion.
	NotifyStateChanged(fn func(Movement))
	NotifyComplete(fn func(Movement))
}
