package core

import (
	"log"
	"time"

	"github.com/leap-fish/necs/esync/srvsync"
)

// GameLoop drives a tick function at a fixed rate until stopped. The dt
// passed to the tick is the nominal tick interval, not wall-clock delta; the
// simulation assumes a steady clock.
type GameLoop struct {
	tickRate int
	tick     func(dt float64)
	stopChan chan struct{}
}

func NewGameLoop(tickRate int, tick func(dt float64)) *GameLoop {
	return &GameLoop{
		tickRate: tickRate,
		tick:     tick,
		stopChan: make(chan struct{}),
	}
}

// Run blocks until Stop is called.
func (g *GameLoop) Run() {
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	log.Printf("[server] game loop started at %d ticks/second", g.tickRate)

	dt := 1.0 / float64(g.tickRate)
	for {
		select {
		case <-g.stopChan:
			log.Println("[server] game loop stopped")
			return
		case <-ticker.C:
			g.tick(dt)
		}
	}
}

func (g *GameLoop) Stop() {
	close(g.stopChan)
}

// tick is the server's per-frame body: advance the simulation, then flush
// component state to every connected client.
func (s *Server) tick(dt float64) {
	s.step(dt)

	if err := srvsync.DoSync(); err != nil {
		log.Printf("[server] sync error: %v", err)
	}
}
