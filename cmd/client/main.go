// Command client is a headless driver for the wave packet simulation: it
// joins a world server, mirrors the authoritative packets into a local ECS
// world, and animates them through the movement core at a fixed step.
// Rendering is someone else's job; this binary logs what it animates.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/jappenzeller/system-client-go/components"
	cfg "github.com/jappenzeller/system-client-go/config"
	"github.com/jappenzeller/system-client-go/movement"
	"github.com/jappenzeller/system-client-go/network"
	"github.com/jappenzeller/system-client-go/shared/messages"
	"github.com/jappenzeller/system-client-go/shared/protocol"
	"github.com/jappenzeller/system-client-go/shared/quanta"
	"github.com/jappenzeller/system-client-go/systems"
)

const frameRate = 60

func main() {
	address := flag.String("address", cfg.Network.DefaultAddress, "Server address")
	playerName := flag.String("name", "observer", "Player name")
	extractEvery := flag.Duration("extract", 15*time.Second, "Interval between extraction requests (0 = never)")
	flag.Parse()

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register components: %v", err)
	}

	if err := systems.InitPersistence(); err == nil {
		if saved, _ := systems.LoadSettings(); saved != nil {
			if saved.ServerAddress != "" && *address == cfg.Network.DefaultAddress {
				*address = saved.ServerAddress
			}
			if saved.InterpolationSpeed > 0 {
				cfg.Movement.InterpolationSpeed = saved.InterpolationSpeed
			}
		}
	}

	client := network.NewClient()
	client.Connect(*address, cfg.Network.Version, *playerName)
	defer client.Disconnect()

	if !waitForJoin(client) {
		log.Fatalf("Could not join %s: %v", *address, client.LastError())
	}

	radius := client.SurfaceRadius()
	if radius <= 0 {
		radius = cfg.World.SurfaceRadius
	}
	factory := movement.NewFactory(radius, cfg.Movement)

	world := ecs.NewECS(donburi.NewWorld())
	step := 1.0 / float64(frameRate)
	world.AddSystem(systems.NewNetSyncSystem(client, factory))
	world.AddSystem(systems.NewNetEventSystem(client, factory, creditQuanta))
	world.AddSystem(systems.NewMovementSystem(step))
	world.AddSystem(systems.NewFadeSystem(step))

	_ = systems.SaveSettings(&systems.SavedSettings{
		ServerAddress:      *address,
		PlayerName:         *playerName,
		InterpolationSpeed: cfg.Movement.InterpolationSpeed,
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	frame := time.NewTicker(time.Second / frameRate)
	defer frame.Stop()
	report := time.NewTicker(5 * time.Second)
	defer report.Stop()

	var extract <-chan time.Time
	if *extractEvery > 0 {
		t := time.NewTicker(*extractEvery)
		defer t.Stop()
		extract = t.C
	}

	nodeIndex := int32(0)
	for {
		select {
		case <-sigChan:
			log.Println("Shutting down client...")
			return
		case <-frame.C:
			if client.State() == network.StateDisconnected || client.State() == network.StateError {
				log.Printf("Connection lost: %v", client.LastError())
				return
			}
			world.Update()
		case <-report.C:
			reportPackets(world)
		case <-extract:
			nodeIndex++
			if err := client.SendMessage(messages.ExtractionRequest{NodeIndex: nodeIndex}); err != nil {
				log.Printf("[client] extraction request failed: %v", err)
			}
		}
	}
}

func waitForJoin(client *network.Client) bool {
	deadline := time.After(10 * time.Second)
	poll := time.NewTicker(50 * time.Millisecond)
	defer poll.Stop()
	for {
		select {
		case <-deadline:
			return false
		case <-poll.C:
			switch client.State() {
			case network.StateJoinedWorld:
				return true
			case network.StateError:
				return false
			}
		}
	}
}

func creditQuanta(sig quanta.Signature, amount uint32) {
	log.Printf("[inventory] credited %d quanta of %s (freq %.2f)", amount, sig.Band(), sig.Frequency)
}

func reportPackets(world *ecs.ECS) {
	count := 0
	components.Movement.Each(world.World, func(entry *donburi.Entry) {
		mover := components.Movement.Get(entry).Mover
		if mover == nil {
			return
		}
		count++
		pos := mover.CurrentPosition()
		opacity := 1.0
		if entry.HasComponent(components.Fade) {
			opacity = components.Fade.Get(entry).Opacity
		}
		log.Printf("[packets] %-16s pos=(%7.2f %7.2f %7.2f) opacity=%.2f",
			mover.CurrentState(), pos.X(), pos.Y(), pos.Z(), opacity)
	})
	log.Printf("[packets] %d active", count)
}
