package core

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/yohamta/donburi"

	"github.com/jappenzeller/system-client-go/shared/gamemath"
	"github.com/jappenzeller/system-client-go/shared/messages"
	"github.com/jappenzeller/system-client-go/shared/netcomponents"
)

const (
	extractionDistance   = 50.0 // surface distance a granted payload travels
	transferInterval     = 10.0 // seconds between broadcast transfer events
	distributionInterval = 14.0 // seconds between broadcast distribution events
	distributionDistance = 40.0 // surface distance a distribution packet travels
	surfaceTravelLane    = 10.0
	nodeDockHeight       = 1.0
)

// Server owns one world's authoritative state and its client connections.
type Server struct {
	world     donburi.World
	loop      *GameLoop
	transport *transports.WsServerTransport

	name      string
	version   string
	tickRate  int
	worldName string

	sim               *PacketSim
	transferClock     float64
	distributionClock float64

	mu      sync.RWMutex
	clients map[*router.NetworkClient]string // client -> player name
	nextID  esync.NetworkId
}

// NewServer creates a world server simulating packets on a sphere of the
// given radius.
func NewServer(tickRate int, name, version, worldName string, radius float64, shellLevel uint8) *Server {
	world := donburi.NewWorld()

	s := &Server{
		world:     world,
		name:      name,
		version:   version,
		tickRate:  tickRate,
		worldName: worldName,
		clients:   make(map[*router.NetworkClient]string),
	}
	s.loop = NewGameLoop(tickRate, s.tick)

	// Set up the world for esync
	srvsync.UseEsync(world)

	s.sim = NewPacketSim(world, radius, shellLevel, time.Now().UnixNano(), func(entity *donburi.Entity) error {
		return srvsync.NetworkSync(world, entity, srvsync.WithInterp(netcomponents.NetPacket))
	})
	s.createWorldEntity(worldName, radius)
	s.setupRouterCallbacks()

	return s
}

// Start begins the server on the given port
func (s *Server) Start(port uint) error {
	go s.loop.Run()

	s.transport = transports.NewWsServerTransport(port, "", nil)
	return s.transport.Start()
}

// Stop gracefully shuts down the server
func (s *Server) Stop() {
	s.loop.Stop()
}

// World returns the ECS world
func (s *Server) World() donburi.World {
	return s.world
}

// ClientCount returns the number of joined clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// step advances the simulation by dt seconds. Called from the game loop.
func (s *Server) step(dt float64) {
	s.sim.Step(dt)

	s.transferClock += dt
	if s.transferClock >= transferInterval {
		s.transferClock = 0
		s.broadcastTransfer()
	}

	s.distributionClock += dt
	if s.distributionClock >= distributionInterval {
		s.distributionClock = 0
		s.broadcastEvent(s.nextDistribution())
	}
}

func (s *Server) createWorldEntity(worldName string, radius float64) {
	entity := s.world.Create(netcomponents.NetWorld)
	netcomponents.NetWorld.SetValue(s.world.Entry(entity), netcomponents.NetWorldData{
		Name:          worldName,
		SurfaceRadius: radius,
	})
	if err := srvsync.NetworkSync(s.world, &entity, netcomponents.NetWorld); err != nil {
		log.Printf("[server] failed to sync world entity: %v", err)
	}
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		log.Printf("[server] client connected: %s", client.Id())
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		if err != nil {
			log.Printf("[server] client %s disconnected with error: %v", client.Id(), err)
		} else {
			log.Printf("[server] client %s disconnected", client.Id())
		}
		s.mu.Lock()
		delete(s.clients, client)
		s.mu.Unlock()
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		s.onJoinRequest(client, req)
	})

	router.On(func(client *router.NetworkClient, req messages.ExtractionRequest) {
		s.onExtractionRequest(client, req)
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("[server] client error: %v", err)
	})
}

func (s *Server) onJoinRequest(client *router.NetworkClient, req messages.JoinRequest) {
	if s.version != "" && req.Version != s.version {
		s.send(client, messages.JoinRejected{Reason: "version mismatch, server requires " + s.version})
		return
	}

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.clients[client] = req.PlayerName
	s.mu.Unlock()

	log.Printf("[server] player %q joined world %s", req.PlayerName, s.worldName)
	s.send(client, messages.JoinAccepted{
		NetworkID:     id,
		ServerName:    s.name,
		TickRate:      s.tickRate,
		WorldName:     s.worldName,
		SurfaceRadius: s.sim.Radius(),
	})
}

// onExtractionRequest grants a mining extraction at the requested circuit
// node. The payload's journey is animated entirely client-side; the grant
// only fixes its endpoints and quanta.
func (s *Server) onExtractionRequest(client *router.NetworkClient, req messages.ExtractionRequest) {
	nodes := s.sim.Nodes()
	node := nodes[int(req.NodeIndex)%len(nodes)].Mul(s.sim.Radius())
	target := s.randomPointNear(node, extractionDistance)

	evt := messages.ExtractionGrantedEvent{
		StartX: node.X(), StartY: node.Y(), StartZ: node.Z(),
		TargetX: target.X(), TargetY: target.Y(), TargetZ: target.Z(),
		Frequency: s.sim.randomFrequency(),
		Resonance: 0.75,
		Amount:    25,
	}
	s.send(client, evt)
}

// broadcastTransfer emits a node-to-surface or surface-to-node transfer
// between two random circuit nodes.
func (s *Server) broadcastTransfer() {
	nodes := s.sim.Nodes()
	if len(nodes) < 2 {
		return
	}
	start := nodes[s.sim.rng.Intn(len(nodes))].Mul(s.sim.Radius())
	target := s.sim.randomNodeAway(start)

	evt := messages.TransferInitiatedEvent{
		StartX: start.X(), StartY: start.Y(), StartZ: start.Z(),
		TargetX: target.X(), TargetY: target.Y(), TargetZ: target.Z(),
		StartHeight: nodeDockHeight,
		EndHeight:   surfaceTravelLane,
		Frequency:   s.sim.randomFrequency(),
		Resonance:   0.6,
		Amount:      15,
	}
	if s.sim.rng.Intn(2) == 0 {
		// Reverse direction: surface lane down onto the node.
		evt.StartHeight, evt.EndHeight = surfaceTravelLane, nodeDockHeight
	}
	s.broadcastEvent(evt)
}

// nextDistribution builds a surface-to-surface distribution event: quanta
// leave a node's surroundings toward a random nearby surface point, animated
// client-side as a direct flight in the surface travel lane.
func (s *Server) nextDistribution() messages.DistributionEvent {
	nodes := s.sim.Nodes()
	start := nodes[s.sim.rng.Intn(len(nodes))].Mul(s.sim.Radius())
	target := s.randomPointNear(start, distributionDistance)

	return messages.DistributionEvent{
		StartX: start.X(), StartY: start.Y(), StartZ: start.Z(),
		TargetX: target.X(), TargetY: target.Y(), TargetZ: target.Z(),
		Frequency: s.sim.randomFrequency(),
		Resonance: 0.8,
		Amount:    20,
	}
}

func (s *Server) broadcastEvent(msg any) {
	s.mu.RLock()
	clients := make([]*router.NetworkClient, 0, len(s.clients))
	for client := range s.clients {
		clients = append(clients, client)
	}
	s.mu.RUnlock()

	for _, client := range clients {
		s.send(client, msg)
	}
}

func (s *Server) send(client *router.NetworkClient, msg any) {
	if err := client.SendMessage(msg); err != nil {
		log.Printf("[server] send to %s failed: %v", client.Id(), err)
	}
}

// randomPointNear returns a surface point the given arc distance away from p
// in a random direction.
func (s *Server) randomPointNear(p mgl64.Vec3, distance float64) mgl64.Vec3 {
	bearing := gamemath.SurfaceNormal(p)
	// Any axis orthogonal to the bearing works; perturb a fixed axis if the
	// bearing is too close to it.
	ref := mgl64.Vec3{0, 1, 0}
	if bearing.Cross(ref).Len() < gamemath.Epsilon {
		ref = mgl64.Vec3{1, 0, 0}
	}
	axis := bearing.Cross(ref).Normalize()
	axis = gamemath.RotateAboutAxis(axis, bearing, s.sim.rng.Float64()*2*math.Pi)
	rotated := gamemath.RotateAboutAxis(p, axis, distance/s.sim.Radius())
	return gamemath.ConstrainToSurface(rotated, s.sim.Radius())
}
