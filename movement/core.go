package movement

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/jappenzeller/system-client-go/shared/gamemath"
)

// strategy is the set of hooks a concrete movement kind plugs into Core's
// lifecycle plumbing.
type strategy interface {
	onStart()
	onTick(dt float64)
	onComplete()
}

// Core provides the state machine, observer plumbing, and sphere helpers
// shared by every movement strategy. Concrete strategies embed it and wire
// themselves in through init.
type Core struct {
	radius   float64
	behavior CompletionBehavior

	state    State
	active   bool
	position mgl64.Vec3
	rotation mgl64.Quat

	self     Movement
	strategy strategy

	stateChangedFns []func(Movement)
	completeFns     []func(Movement)
}

func (c *Core) init(self Movement, s strategy, radius float64, behavior CompletionBehavior) {
	c.self = self
	c.strategy = s
	c.radius = radius
	c.behavior = behavior
	c.rotation = mgl64.QuatIdent()
}

func (c *Core) CurrentState() State             { return c.state }
func (c *Core) IsActive() bool                  { return c.active }
func (c *Core) IsComplete() bool                { return c.state == StateComplete }
func (c *Core) CurrentPosition() mgl64.Vec3     { return c.position }
func (c *Core) CurrentRotation() mgl64.Quat     { return c.rotation }
func (c *Core) Completion() CompletionBehavior  { return c.behavior }
func (c *Core) Radius() float64                 { return c.radius }

func (c *Core) NotifyStateChanged(fn func(Movement)) {
	c.stateChangedFns = append(c.stateChangedFns, fn)
}

func (c *Core) NotifyComplete(fn func(Movement)) {
	c.completeFns = append(c.completeFns, fn)
}

// StartMovement activates the instance and hands control to the strategy's
// start hook.
func (c *Core) StartMovement() {
	c.active = true
	c.setState(StateInitializing)
	c.strategy.onStart()
}

// StopMovement deactivates immediately without firing completion. Calling it
// on an already stopped instance is a no-op.
func (c *Core) StopMovement() {
	c.active = false
}

// Tick advances the strategy by dt seconds. No-op while inactive.
func (c *Core) Tick(dt float64) {
	if !c.active {
		return
	}
	c.strategy.onTick(dt)
}

// setState transitions the state machine, firing observers only on an actual
// value change.
func (c *Core) setState(s State) {
	if c.state == s {
		return
	}
	log.Printf("[movement] state %s -> %s", c.state, s)
	c.state = s
	for _, fn := range c.stateChangedFns {
		safeInvoke(func() { fn(c.self) })
	}
}

// completeMovement finishes the instance: terminal state, deactivation,
// completion observers, then the strategy's completion hook. The driver that
// owns the entity applies the CompletionBehavior afterwards. Idempotent.
func (c *Core) completeMovement() {
	if c.state == StateComplete {
		return
	}
	c.setState(StateComplete)
	c.active = false
	for _, fn := range c.completeFns {
		safeInvoke(func() { fn(c.self) })
	}
	c.strategy.onComplete()
}

// safeInvoke shields the movement core from a throwing observer. External
// callbacks are fire-and-forget.
func safeInvoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[movement] observer panic recovered: %v", r)
		}
	}()
	fn()
}

// Sphere helpers bound to this instance's world radius.

func (c *Core) surfaceOrientation(p mgl64.Vec3) mgl64.Quat {
	return gamemath.SurfaceOrientation(p)
}

func (c *Core) placeAtHeight(p mgl64.Vec3, height float64) mgl64.Vec3 {
	return gamemath.PlaceAtHeight(p, c.radius, height)
}

func (c *Core) constrainToSurface(p mgl64.Vec3) mgl64.Vec3 {
	return gamemath.ConstrainToSurface(p, c.radius)
}

func (c *Core) heightOf(p mgl64.Vec3) float64 {
	return gamemath.HeightOf(p, c.radius)
}

func (c *Core) greatCircleDistance(a, b mgl64.Vec3) float64 {
	return gamemath.GreatCircleDistance(a, b, c.radius)
}
