package systems

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/jappenzeller/system-client-go/components"
	"github.com/jappenzeller/system-client-go/movement"
	"github.com/jappenzeller/system-client-go/shared/gamemath"
)

const testRadius = 100.0

func testBearing(angle float64) mgl64.Vec3 {
	return mgl64.Vec3{math.Sin(angle) * testRadius, math.Cos(angle) * testRadius, 0}
}

func spawnMover(t *testing.T, w donburi.World, m movement.Movement) *donburi.Entry {
	t.Helper()
	entity := w.Create(components.Movement)
	entry := w.Entry(entity)
	components.Movement.SetValue(entry, components.MovementData{Mover: m})
	return entry
}

func TestMovementSystemDestroysFinishedPayloads(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	update := NewMovementSystem(0.1)

	tr := movement.NewScriptedTrajectory(testRadius, movement.CompletionDestroy)
	tr.InitializeDirect(testBearing(0), testBearing(0.05), 10, 1, nil) // 0.5s flight
	entry := spawnMover(t, e.World, tr)

	for i := 0; i < 4; i++ {
		update(e)
	}
	if !entry.Valid() {
		t.Fatal("entity removed before the trajectory finished")
	}

	for i := 0; i < 3; i++ {
		update(e)
	}
	if !tr.IsComplete() {
		t.Fatal("trajectory never completed")
	}
	if entry.Valid() {
		t.Fatal("finished destroy-on-complete entity not removed")
	}
}

func TestMovementSystemKeepsPersistentEntities(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	update := NewMovementSystem(0.1)

	tr := movement.NewScriptedTrajectory(testRadius, movement.CompletionPersist)
	tr.InitializeDirect(testBearing(0), testBearing(0.05), 10, 1, nil)
	entry := spawnMover(t, e.World, tr)

	for i := 0; i < 20; i++ {
		update(e)
	}
	if !tr.IsComplete() {
		t.Fatal("trajectory never completed")
	}
	if !entry.Valid() {
		t.Fatal("persistent entity was removed on completion")
	}
	want := gamemath.PlaceAtHeight(testBearing(0.05), testRadius, 1)
	if tr.CurrentPosition().Sub(want).Len() > 1e-9 {
		t.Errorf("final position %v, want %v", tr.CurrentPosition(), want)
	}
}

func TestMovementSystemSkipsNilMovers(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	update := NewMovementSystem(0.1)
	spawnMover(t, e.World, nil)

	// Must not panic.
	update(e)
}

func TestMovementSystemTicksManyMovers(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	update := NewMovementSystem(0.05)

	var movers []*movement.ScriptedTrajectory
	for i := 0; i < 8; i++ {
		tr := movement.NewScriptedTrajectory(testRadius, movement.CompletionDestroy)
		tr.InitializeDirect(testBearing(0), testBearing(0.02+0.01*float64(i)), 10, 1, nil)
		movers = append(movers, tr)
		spawnMover(t, e.World, tr)
	}

	for i := 0; i < 300; i++ {
		update(e)
	}
	for i, tr := range movers {
		if !tr.IsComplete() {
			t.Errorf("mover %d never completed", i)
		}
	}
	count := 0
	components.Movement.Each(e.World, func(*donburi.Entry) { count++ })
	if count != 0 {
		t.Errorf("%d destroy-on-complete entities survived", count)
	}
}
