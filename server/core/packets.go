package core

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"github.com/jappenzeller/system-client-go/shared/gamemath"
	"github.com/jappenzeller/system-client-go/shared/netcomponents"
)

// Simulation tuning for server-owned packets.
const (
	maxPackets    = 12
	spawnInterval = 4.0 // seconds between packet spawns
	packetSpeed   = 8.0 // units per second along the surface
	dwellDuration = 0.5 // pause at base height before rising
	finalHeight   = 1.5
	riseSpeed     = 2.0
	restDuration  = 6.0 // stationary time before picking a new destination
	nodeCount     = 16
)

// packetRecord is the authoritative record backing one synced wave packet.
// The discrete state steps 0→1→2→3 and wraps back to 0 when the packet is
// re-dispatched, which exercises client-side reactivation.
type packetRecord struct {
	entity      donburi.Entity
	position    mgl64.Vec3
	velocity    mgl64.Vec3
	destination mgl64.Vec3
	state       int32
	height      float64
	timer       float64
}

// PacketSim owns the authoritative wave packet population of one world.
type PacketSim struct {
	world      donburi.World
	radius     float64
	shellLevel uint8
	rng        *rand.Rand

	nodes      []mgl64.Vec3 // circuit node bearings (unit vectors)
	packets    []*packetRecord
	spawnClock float64

	networkSync func(entity *donburi.Entity) error
}

// NewPacketSim creates the simulation for a sphere world of the given radius.
// networkSync registers a freshly spawned entity for esync broadcast.
func NewPacketSim(world donburi.World, radius float64, shellLevel uint8, seed int64, networkSync func(*donburi.Entity) error) *PacketSim {
	return &PacketSim{
		world:       world,
		radius:      radius,
		shellLevel:  shellLevel,
		rng:         rand.New(rand.NewSource(seed)),
		nodes:       circuitNodes(nodeCount),
		networkSync: networkSync,
	}
}

// Nodes returns the circuit node bearings of this world.
func (s *PacketSim) Nodes() []mgl64.Vec3 { return s.nodes }

// Radius returns the world's surface radius.
func (s *PacketSim) Radius() float64 { return s.radius }

// Step advances every packet record by dt seconds and refreshes its synced
// component.
func (s *PacketSim) Step(dt float64) {
	s.spawnClock += dt
	if s.spawnClock >= spawnInterval && len(s.packets) < maxPackets {
		s.spawnClock = 0
		s.spawnPacket()
	}

	for _, p := range s.packets {
		s.stepPacket(p, dt)
		s.publish(p)
	}
}

func (s *PacketSim) stepPacket(p *packetRecord, dt float64) {
	switch p.state {
	case netcomponents.PacketStateMoving:
		remaining := gamemath.GreatCircleDistance(p.position, p.destination, s.radius)
		step := packetSpeed * dt
		if step >= remaining {
			p.position = gamemath.ConstrainToSurface(p.destination, s.radius)
			p.velocity = mgl64.Vec3{}
			p.state = netcomponents.PacketStateArrived
			p.timer = 0
			return
		}
		axis := p.position.Cross(p.destination)
		if axis.Len() < gamemath.Epsilon {
			// Destination coincident or antipodal: treat as arrived.
			p.state = netcomponents.PacketStateArrived
			p.timer = 0
			return
		}
		axis = axis.Normalize()
		p.position = gamemath.RotateAboutAxis(p.position, axis, step/s.radius)
		p.velocity = axis.Cross(gamemath.SurfaceNormal(p.position)).Normalize().Mul(packetSpeed)

	case netcomponents.PacketStateArrived:
		p.timer += dt
		if p.timer >= dwellDuration {
			p.state = netcomponents.PacketStateRising
			p.timer = 0
			p.height = 0
		}

	case netcomponents.PacketStateRising:
		p.height = math.Min(p.height+riseSpeed*dt, finalHeight)
		p.position = gamemath.PlaceAtHeight(p.destination, s.radius, p.height)
		if p.height >= finalHeight {
			p.state = netcomponents.PacketStateStationary
			p.timer = 0
		}

	case netcomponents.PacketStateStationary:
		p.timer += dt
		if p.timer >= restDuration {
			s.dispatch(p)
		}
	}
}

// dispatch sends a resting packet toward a new node at base height.
func (s *PacketSim) dispatch(p *packetRecord) {
	p.destination = s.randomNodeAway(p.position)
	p.position = gamemath.ConstrainToSurface(p.position, s.radius)
	p.height = 0
	p.timer = 0
	p.state = netcomponents.PacketStateMoving
}

func (s *PacketSim) spawnPacket() {
	start := s.nodes[s.rng.Intn(len(s.nodes))].Mul(s.radius)
	p := &packetRecord{
		position:    start,
		destination: s.randomNodeAway(start),
		state:       netcomponents.PacketStateMoving,
	}

	p.entity = s.world.Create(netcomponents.NetPacket)
	s.seedComponent(p)
	if s.networkSync != nil {
		if err := s.networkSync(&p.entity); err != nil {
			s.world.Remove(p.entity)
			return
		}
	}
	s.packets = append(s.packets, p)
}

func (s *PacketSim) seedComponent(p *packetRecord) {
	entry := s.world.Entry(p.entity)
	netcomponents.NetPacket.SetValue(entry, netcomponents.NetPacketData{
		Frequency: s.randomFrequency(),
		Resonance: 0.5 + s.rng.Float64()*0.5,
		Amount:    10 + uint32(s.rng.Intn(40)),
	})
	s.publish(p)
}

// publish copies the record's kinematic truth into the synced component.
func (s *PacketSim) publish(p *packetRecord) {
	if !s.world.Valid(p.entity) {
		return
	}
	entry := s.world.Entry(p.entity)
	data := netcomponents.NetPacket.Get(entry)
	data.PosX, data.PosY, data.PosZ = p.position.X(), p.position.Y(), p.position.Z()
	data.VelX, data.VelY, data.VelZ = p.velocity.X(), p.velocity.Y(), p.velocity.Z()
	data.DestX, data.DestY, data.DestZ = p.destination.X(), p.destination.Y(), p.destination.Z()
	data.State = p.state
}

// randomNodeAway picks a node bearing distinct from the given position's,
// scaled to the surface.
func (s *PacketSim) randomNodeAway(from mgl64.Vec3) mgl64.Vec3 {
	bearing := gamemath.SurfaceNormal(from)
	for i := 0; i < 8; i++ {
		n := s.nodes[s.rng.Intn(len(s.nodes))]
		if n.Dot(bearing) < 1-gamemath.Epsilon {
			return n.Mul(s.radius)
		}
	}
	return s.nodes[0].Mul(s.radius)
}

// randomFrequency mirrors the per-shell spectrum bias of the world schema:
// each shell level emits around a base frequency with small variance.
func (s *PacketSim) randomFrequency() float64 {
	base := 0.5
	switch s.shellLevel {
	case 1:
		base = 0.25
	case 2:
		base = 0.75
	case 3:
		base = 0.4
	case 4:
		base = 0.6
	case 5:
		base = 0.9
	}
	const variance = 0.15
	f := base + (s.rng.Float64()-0.5)*variance
	return gamemath.Clamp01(f)
}

// circuitNodes distributes n bearings evenly over the sphere with a Fibonacci
// lattice.
func circuitNodes(n int) []mgl64.Vec3 {
	golden := math.Pi * (3 - math.Sqrt(5))
	nodes := make([]mgl64.Vec3, 0, n)
	for i := 0; i < n; i++ {
		y := 1 - 2*(float64(i)+0.5)/float64(n)
		r := math.Sqrt(1 - y*y)
		theta := golden * float64(i)
		nodes = append(nodes, mgl64.Vec3{r * math.Cos(theta), y, r * math.Sin(theta)})
	}
	return nodes
}
