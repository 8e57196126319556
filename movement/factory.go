package movement

import (
	"github.com/go-gl/mathgl/mgl64"

	cfg "github.com/jappenzeller/system-client-go/config"
	"github.com/jappenzeller/system-client-go/shared/gamemath"
)

// Factory is the single entry point for every movement use case in the
// surrounding game logic. Each helper fixes the semantic heights and
// completion behavior appropriate to its scenario; no helper adds movement
// logic of its own.
type Factory struct {
	radius float64
	cfg    cfg.MovementConfig
}

// NewFactory creates a factory for a world with the given surface radius.
func NewFactory(radius float64, mc cfg.MovementConfig) *Factory {
	return &Factory{radius: radius, cfg: mc}
}

func (f *Factory) tuning() ReconcileTuning {
	return ReconcileTuning{
		FinalHeight:        f.cfg.FinalHeight,
		RiseSpeed:          f.cfg.RiseSpeed,
		InterpolationSpeed: f.cfg.InterpolationSpeed,
	}
}

// NewRemoteSource wires a packet whose ground truth lives on the server. The
// entity persists at its destination once the authority reports terminal.
func (f *Factory) NewRemoteSource(position, velocity, destination mgl64.Vec3, state AuthorityState) *ServerReconciled {
	m := NewServerReconciled(f.radius, f.tuning(), CompletionPersist)
	m.Initialize(position, velocity, destination, state)
	return m
}

// NewMiningPayload wires an extraction payload: direct flight at the mining
// height, destroyed on arrival. The arrival callback typically credits an
// inventory; that side effect belongs to the caller.
func (f *Factory) NewMiningPayload(start, target mgl64.Vec3, onArrival func()) *ScriptedTrajectory {
	t := NewScriptedTrajectory(f.radius, CompletionDestroy)
	t.InitializeDirect(start, target, f.cfg.MiningPayloadSpeed, f.cfg.MiningHeight, onArrival)
	return t
}

// NewNodeToSurfaceTransfer wires a node-to-surface packet: rise from the node
// height, then slide at the surface travel height.
func (f *Factory) NewNodeToSurfaceTransfer(start, target mgl64.Vec3, onArrival func()) *ScriptedTrajectory {
	t := NewScriptedTrajectory(f.radius, CompletionDestroy)
	t.InitializeTwoPhase(start, target, gamemath.SurfaceOrientation(target),
		f.cfg.TransferSpeed, f.cfg.NodeHeight, f.cfg.SurfaceHeight, onArrival)
	return t
}

// NewSurfaceToNodeTransfer wires a surface-to-node packet: slide at the
// surface travel height, then descend onto the node.
func (f *Factory) NewSurfaceToNodeTransfer(start, target mgl64.Vec3, targetRot mgl64.Quat, onArrival func()) *ScriptedTrajectory {
	t := NewScriptedTrajectory(f.radius, CompletionDestroy)
	t.InitializeTwoPhase(start, target, targetRot,
		f.cfg.TransferSpeed, f.cfg.SurfaceHeight, f.cfg.NodeHeight, onArrival)
	return t
}

// NewTransfer wires a generic two-phase transfer with caller-supplied
// heights; the trajectory kind is classified from the height delta.
func (f *Factory) NewTransfer(start, target mgl64.Vec3, targetRot mgl64.Quat, speed, startHeight, endHeight float64, behavior CompletionBehavior, onArrival func()) *ScriptedTrajectory {
	t := NewScriptedTrajectory(f.radius, behavior)
	t.InitializeTwoPhase(start, target, targetRot, speed, startHeight, endHeight, onArrival)
	return t
}

// NewSurfaceDistribution wires surface-to-surface distribution: direct flight
// at the surface travel height, destroyed on arrival.
func (f *Factory) NewSurfaceDistribution(start, target mgl64.Vec3, onArrival func()) *ScriptedTrajectory {
	t := NewScriptedTrajectory(f.radius, CompletionDestroy)
	t.InitializeDirect(start, target, f.cfg.DistributionSpeed, f.cfg.SurfaceHeight, onArrival)
	return t
}

// NewDirect wires a fully generic direct flight with caller-supplied speed,
// height, and completion behavior.
func (f *Factory) NewDirect(start, target mgl64.Vec3, speed, height float64, behavior CompletionBehavior, onArrival func()) *ScriptedTrajectory {
	t := NewScriptedTrajectory(f.radius, behavior)
	t.InitializeDirect(start, target, speed, height, onArrival)
	return t
}
