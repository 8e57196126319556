package components

import (
	"github.com/yohamta/donburi"

	"github.com/jappenzeller/system-client-go/movement"
)

// MovementData owns one movement instance. Each instance belongs to exactly
// one entity; instances are never shared or aliased.
type MovementData struct {
	Mover movement.Movement
}

var Movement = donburi.NewComponentType[MovementData]()
