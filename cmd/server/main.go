package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	cfg "github.com/jappenzeller/system-client-go/config"
	"github.com/jappenzeller/system-client-go/server/core"
	"github.com/jappenzeller/system-client-go/shared/protocol"
)

func main() {
	port := flag.Uint("port", 7373, "Server port")
	tickRate := flag.Int("tickrate", 20, "Server tick rate (updates per second)")
	name := flag.String("name", "SYSTEM World Server", "Server display name")
	version := flag.String("version", "", "Required client version (empty = accept any)")
	worldName := flag.String("world", cfg.World.Name, "World name")
	radius := flag.Float64("radius", cfg.World.SurfaceRadius, "World surface radius")
	shell := flag.Uint("shell", 1, "World shell level (biases quanta frequency)")
	flag.Parse()

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register components: %v", err)
	}

	server := core.NewServer(*tickRate, *name, *version, *worldName, *radius, uint8(*shell))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		server.Stop()
		os.Exit(0)
	}()

	log.Printf("Starting %q on port %d (world: %s, radius: %.1f, tick rate: %d/s)",
		*name, *port, *worldName, *radius, *tickRate)
	if err := server.Start(*port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
