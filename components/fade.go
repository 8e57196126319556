package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// FadeData drives a packet's opacity toward the recommended value exposed by
// its movement instance. The tween is replaced whenever the target changes.
type FadeData struct {
	Opacity float64
	Target  float64
	Tween   *gween.Tween
}

var Fade = donburi.NewComponentType[FadeData]()
