package netcomponents

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestLerpNetPacket(t *testing.T) {
	from := NetPacketData{PosX: 0, PosY: 100, PosZ: 0, State: PacketStateMoving}
	to := NetPacketData{
		PosX: 10, PosY: 100, PosZ: 0,
		VelX: 8,
		DestX: 50, DestY: 86, DestZ: 0,
		State:     PacketStateArrived,
		Frequency: 0.25, Resonance: 0.9, Amount: 12,
	}

	mid := LerpNetPacket(from, to, 0.5)

	if mid.Position() != (mgl64.Vec3{5, 100, 0}) {
		t.Errorf("position = %v", mid.Position())
	}
	// Everything but position snaps to the newer snapshot.
	if mid.Velocity() != to.Velocity() || mid.Destination() != to.Destination() {
		t.Errorf("kinematics did not snap: vel=%v dest=%v", mid.Velocity(), mid.Destination())
	}
	if mid.State != PacketStateArrived {
		t.Errorf("state = %d", mid.State)
	}
	if mid.Frequency != 0.25 || mid.Resonance != 0.9 || mid.Amount != 12 {
		t.Errorf("quanta payload did not snap: %+v", mid)
	}
}
