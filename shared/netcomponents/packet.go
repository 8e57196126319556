package netcomponents

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// Discrete packet state codes. This table is the wire schema both ends obey;
// the client compares codes ordinally against PacketStateStationary.
const (
	PacketStateMoving     int32 = 0 // moving horizontally toward destination
	PacketStateArrived    int32 = 1 // at destination bearing, base height
	PacketStateRising     int32 = 2 // rising to final height
	PacketStateStationary int32 = 3 // terminal
)

// NetPacketData is the authoritative snapshot of a wave packet: position,
// velocity, destination, and the discrete authority state code. The encoding
// must match the server schema exactly.
type NetPacketData struct {
	PosX, PosY, PosZ    float64
	VelX, VelY, VelZ    float64
	DestX, DestY, DestZ float64
	State               int32

	// Quanta payload
	Frequency float64
	Resonance float64
	Amount    uint32
}

var NetPacket = donburi.NewComponentType[NetPacketData]()

// Position returns the snapshot position as a vector.
func (d NetPacketData) Position() mgl64.Vec3 {
	return mgl64.Vec3{d.PosX, d.PosY, d.PosZ}
}

// Velocity returns the snapshot velocity as a vector.
func (d NetPacketData) Velocity() mgl64.Vec3 {
	return mgl64.Vec3{d.VelX, d.VelY, d.VelZ}
}

// Destination returns the snapshot destination as a vector.
func (d NetPacketData) Destination() mgl64.Vec3 {
	return mgl64.Vec3{d.DestX, d.DestY, d.DestZ}
}

// LerpNetPacket interpolates position between snapshots; velocity,
// destination, and discrete fields snap to the newer snapshot.
func LerpNetPacket(from, to NetPacketData, t float64) *NetPacketData {
	return &NetPacketData{
		PosX: from.PosX + (to.PosX-from.PosX)*t,
		PosY: from.PosY + (to.PosY-from.PosY)*t,
		PosZ: from.PosZ + (to.PosZ-from.PosZ)*t,

		VelX: to.VelX, VelY: to.VelY, VelZ: to.VelZ,
		DestX: to.DestX, DestY: to.DestY, DestZ: to.DestZ,
		State: to.State,

		Frequency: to.Frequency,
		Resonance: to.Resonance,
		Amount:    to.Amount,
	}
}
