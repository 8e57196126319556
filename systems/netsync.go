package systems

import (
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/jappenzeller/system-client-go/components"
	"github.com/jappenzeller/system-client-go/movement"
	"github.com/jappenzeller/system-client-go/shared/netcomponents"
	"github.com/jappenzeller/system-client-go/systems/factory"
)

// NetSyncSystem applies the latest server world snapshot to the ECS world.
// It must run before MovementSystem in the same frame so every reconciled
// mover sees fresh authority data before its tick.
type NetSyncSystem struct {
	client  SnapshotSource
	factory *movement.Factory
	present map[esync.NetworkId]bool
}

// SnapshotSource yields the most recent authoritative snapshot, or nil.
type SnapshotSource interface {
	LatestSnapshot() *esync.WorldSnapshot
}

func NewNetSyncSystem(client SnapshotSource, mf *movement.Factory) func(*ecs.ECS) {
	s := &NetSyncSystem{
		client:  client,
		factory: mf,
		present: make(map[esync.NetworkId]bool),
	}
	return s.Update
}

func (s *NetSyncSystem) Update(e *ecs.ECS) {
	snap := s.client.LatestSnapshot()
	if snap == nil {
		return
	}
	s.apply(e, *snap)
}

func (s *NetSyncSystem) apply(e *ecs.ECS, snapshot esync.WorldSnapshot) {
	world := e.World
	clear(s.present)

	for _, ent := range snapshot {
		s.present[ent.Id] = true

		var packet *netcomponents.NetPacketData
		var worldInfo *netcomponents.NetWorldData
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				continue
			}
			switch v := instance.(type) {
			case netcomponents.NetPacketData:
				cp := v
				packet = &cp
			case netcomponents.NetWorldData:
				cp := v
				worldInfo = &cp
			}
		}

		if worldInfo != nil {
			s.applyWorldInfo(world, ent.Id, *worldInfo)
			continue
		}
		if packet == nil {
			continue
		}

		entity := esync.FindByNetworkId(world, ent.Id)
		if !world.Valid(entity) {
			factory.CreateRemotePacket(e, ent.Id, *packet, s.factory)
			continue
		}

		entry := world.Entry(entity)
		netcomponents.NetPacket.SetValue(entry, *packet)
		if entry.HasComponent(components.Movement) {
			if mover, ok := components.Movement.Get(entry).Mover.(*movement.ServerReconciled); ok {
				mover.UpdateFromServer(packet.Position(), packet.Velocity(), packet.Destination(),
					movement.AuthorityState(packet.State))
			}
		}
	}

	// Entities absent from the snapshot no longer exist on the authority.
	var stale []*donburi.Entry
	esync.NetworkEntityQuery.Each(world, func(entry *donburi.Entry) {
		id := esync.GetNetworkId(entry)
		if id == nil || s.present[*id] {
			return
		}
		stale = append(stale, entry)
	})
	for _, entry := range stale {
		entry.Remove()
	}
}

// applyWorldInfo mirrors the world parameter entity locally so systems can
// query the surface radius without touching the network layer.
func (s *NetSyncSystem) applyWorldInfo(world donburi.World, id esync.NetworkId, info netcomponents.NetWorldData) {
	entity := esync.FindByNetworkId(world, id)
	if !world.Valid(entity) {
		entity = world.Create(netcomponents.NetWorld)
		entry := world.Entry(entity)
		entry.AddComponent(esync.NetworkIdComponent)
		esync.NetworkIdComponent.SetValue(entry, id)
	}
	netcomponents.NetWorld.SetValue(world.Entry(entity), info)
}
