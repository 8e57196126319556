package systems

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/jappenzeller/system-client-go/components"
	"github.com/jappenzeller/system-client-go/movement"
)

// MovementSystem ticks every movement instance once per frame and applies
// the completion behavior of finished movers. It must run after NetSyncSystem
// in the same frame so elapsed time is never counted against a stale anchor.
type MovementSystem struct {
	step float64 // seconds per frame
}

func NewMovementSystem(step float64) func(*ecs.ECS) {
	s := &MovementSystem{step: step}
	return s.Update
}

func (s *MovementSystem) Update(e *ecs.ECS) {
	var destroyed []*donburi.Entry
	components.Movement.Each(e.World, func(entry *donburi.Entry) {
		mover := components.Movement.Get(entry).Mover
		if mover == nil {
			return
		}
		mover.Tick(s.step)
		if mover.IsComplete() && mover.Completion() == movement.CompletionDestroy {
			destroyed = append(destroyed, entry)
		}
	})
	for _, entry := range destroyed {
		entry.Remove()
	}
}
