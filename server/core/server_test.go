package core

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"github.com/jappenzeller/system-client-go/shared/gamemath"
)

func TestNextDistributionEvent(t *testing.T) {
	s := &Server{sim: NewPacketSim(donburi.NewWorld(), 100, 0, 3, nil)}

	for i := 0; i < 20; i++ {
		evt := s.nextDistribution()
		start := mgl64.Vec3{evt.StartX, evt.StartY, evt.StartZ}
		target := mgl64.Vec3{evt.TargetX, evt.TargetY, evt.TargetZ}

		// Both endpoints sit on the surface shell; the client lifts the
		// flight into the travel lane itself.
		if math.Abs(start.Len()-100) > 1e-9 {
			t.Fatalf("start off the surface: %v", start)
		}
		if math.Abs(target.Len()-100) > 1e-9 {
			t.Fatalf("target off the surface: %v", target)
		}
		d := gamemath.GreatCircleDistance(start, target, 100)
		if math.Abs(d-distributionDistance) > 1e-6 {
			t.Fatalf("distribution distance %v, want %v", d, distributionDistance)
		}
		if evt.Frequency < 0 || evt.Frequency > 1 {
			t.Fatalf("frequency %v outside [0,1]", evt.Frequency)
		}
		if evt.Amount == 0 {
			t.Fatal("zero-quanta distribution")
		}
	}
}

func TestStepBroadcastClocksReset(t *testing.T) {
	s := &Server{sim: NewPacketSim(donburi.NewWorld(), 100, 0, 3, nil)}

	s.step(transferInterval + 1)
	if s.transferClock != 0 {
		t.Errorf("transfer clock = %v after broadcast, want 0", s.transferClock)
	}
	if s.distributionClock == 0 {
		t.Error("distribution clock reset early")
	}
	s.step(distributionInterval)
	if s.distributionClock != 0 {
		t.Errorf("distribution clock = %v after broadcast, want 0", s.distributionClock)
	}
}
