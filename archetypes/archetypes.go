package archetypes

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/jappenzeller/system-client-go/components"
	cfg "github.com/jappenzeller/system-client-go/config"
	"github.com/jappenzeller/system-client-go/tags"
)

var (
	RemotePacket = newArchetype(
		tags.WavePacket,
		tags.RemoteSource,
		components.Packet,
		components.Movement,
		components.Fade,
	)
	MiningPayload = newArchetype(
		tags.WavePacket,
		tags.MiningPayload,
		components.Packet,
		components.Movement,
		components.Fade,
	)
	TransferPacket = newArchetype(
		tags.WavePacket,
		tags.TransferPacket,
		components.Packet,
		components.Movement,
		components.Fade,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
