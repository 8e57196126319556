package factory

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/jappenzeller/system-client-go/archetypes"
	"github.com/jappenzeller/system-client-go/components"
	"github.com/jappenzeller/system-client-go/movement"
	"github.com/jappenzeller/system-client-go/shared/gamemath"
	"github.com/jappenzeller/system-client-go/shared/messages"
	"github.com/jappenzeller/system-client-go/shared/netcomponents"
	"github.com/jappenzeller/system-client-go/shared/quanta"
)

// CreateRemotePacket spawns an entity for a server-owned wave packet seen for
// the first time in a snapshot. The mover is initialized from the snapshot
// and reconciled against every later one.
func CreateRemotePacket(e *ecs.ECS, id esync.NetworkId, data netcomponents.NetPacketData, mf *movement.Factory) *donburi.Entry {
	entry := archetypes.RemotePacket.Spawn(e)

	entry.AddComponent(esync.NetworkIdComponent)
	esync.NetworkIdComponent.SetValue(entry, id)
	entry.AddComponent(netcomponents.NetPacket)
	netcomponents.NetPacket.SetValue(entry, data)

	mover := mf.NewRemoteSource(data.Position(), data.Velocity(), data.Destination(), movement.AuthorityState(data.State))
	components.Movement.SetValue(entry, components.MovementData{Mover: mover})
	components.Packet.SetValue(entry, components.PacketData{
		Signature: quanta.Signature{Frequency: data.Frequency, Resonance: data.Resonance},
		Amount:    data.Amount,
	})
	// Fade in from invisible toward the mover's recommended opacity.
	components.Fade.SetValue(entry, components.FadeData{Opacity: 0})

	return entry
}

// CreateMiningPayload spawns a payload for a granted extraction: direct
// flight at the mining height, destroyed on arrival after crediting.
func CreateMiningPayload(e *ecs.ECS, evt messages.ExtractionGrantedEvent, mf *movement.Factory, onArrival func()) *donburi.Entry {
	entry := archetypes.MiningPayload.Spawn(e)

	start := mgl64.Vec3{evt.StartX, evt.StartY, evt.StartZ}
	target := mgl64.Vec3{evt.TargetX, evt.TargetY, evt.TargetZ}
	mover := mf.NewMiningPayload(start, target, onArrival)

	components.Movement.SetValue(entry, components.MovementData{Mover: mover})
	components.Packet.SetValue(entry, components.PacketData{
		Signature: quanta.Signature{Frequency: evt.Frequency, Resonance: evt.Resonance},
		Amount:    evt.Amount,
	})
	components.Fade.SetValue(entry, components.FadeData{Opacity: 1, Target: 1})

	return entry
}

// CreateTransferPacket spawns a packet for an initiated transfer. The
// trajectory kind is classified from the event's height delta.
func CreateTransferPacket(e *ecs.ECS, evt messages.TransferInitiatedEvent, mf *movement.Factory, transferSpeed float64, onArrival func()) *donburi.Entry {
	entry := archetypes.TransferPacket.Spawn(e)

	start := mgl64.Vec3{evt.StartX, evt.StartY, evt.StartZ}
	target := mgl64.Vec3{evt.TargetX, evt.TargetY, evt.TargetZ}
	mover := mf.NewTransfer(start, target, gamemath.SurfaceOrientation(target),
		transferSpeed, evt.StartHeight, evt.EndHeight, movement.CompletionDestroy, onArrival)

	components.Movement.SetValue(entry, components.MovementData{Mover: mover})
	components.Packet.SetValue(entry, components.PacketData{
		Signature: quanta.Signature{Frequency: evt.Frequency, Resonance: evt.Resonance},
		Amount:    evt.Amount,
	})
	components.Fade.SetValue(entry, components.FadeData{Opacity: 1, Target: 1})

	return entry
}

// CreateDistributionPacket spawns a surface-to-surface distribution packet.
func CreateDistributionPacket(e *ecs.ECS, evt messages.DistributionEvent, mf *movement.Factory, onArrival func()) *donburi.Entry {
	entry := archetypes.TransferPacket.Spawn(e)

	start := mgl64.Vec3{evt.StartX, evt.StartY, evt.StartZ}
	target := mgl64.Vec3{evt.TargetX, evt.TargetY, evt.TargetZ}
	mover := mf.NewSurfaceDistribution(start, target, onArrival)

	components.Movement.SetValue(entry, components.MovementData{Mover: mover})
	components.Packet.SetValue(entry, components.PacketData{
		Signature: quanta.Signature{Frequency: evt.Frequency, Resonance: evt.Resonance},
		Amount:    evt.Amount,
	})
	components.Fade.SetValue(entry, components.FadeData{Opacity: 1, Target: 1})

	return entry
}
