package config

import "github.com/yohamta/donburi/ecs"

// Default is the single ECS layer used by the client world.
const Default ecs.LayerID = iota
