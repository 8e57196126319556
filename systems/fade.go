package systems

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/jappenzeller/system-client-go/components"
	cfg "github.com/jappenzeller/system-client-go/config"
	"github.com/jappenzeller/system-client-go/movement"
)

// FadeSystem tweens each packet's opacity toward the hint recommended by its
// reconciled mover: dimmer while moving, full at rest. Entities without a
// reconciled mover keep whatever target their factory set.
type FadeSystem struct {
	step float64
}

func NewFadeSystem(step float64) func(*ecs.ECS) {
	s := &FadeSystem{step: step}
	return s.Update
}

func (s *FadeSystem) Update(e *ecs.ECS) {
	components.Fade.Each(e.World, func(entry *donburi.Entry) {
		fade := components.Fade.Get(entry)

		target := fade.Target
		if entry.HasComponent(components.Movement) {
			if m, ok := components.Movement.Get(entry).Mover.(*movement.ServerReconciled); ok {
				target = m.RecommendedOpacity()
			}
		}
		if target != fade.Target {
			fade.Target = target
			fade.Tween = gween.New(float32(fade.Opacity), float32(target), float32(cfg.Fade.Duration), ease.Linear)
		}

		if fade.Tween != nil {
			v, done := fade.Tween.Update(float32(s.step))
			fade.Opacity = float64(v)
			if done {
				fade.Tween = nil
			}
		}
	})
}
