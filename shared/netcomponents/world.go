package netcomponents

import "github.com/yohamta/donburi"

// NetWorldData carries the sphere world parameters every client needs. The
// surface radius is the only shared input of the movement core; clients treat
// it as read-only configuration.
type NetWorldData struct {
	Name          string
	SurfaceRadius float64
}

var NetWorld = donburi.NewComponentType[NetWorldData]()
