package core

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestGameLoopTicksAndStops(t *testing.T) {
	var ticks atomic.Int64
	loop := NewGameLoop(200, func(dt float64) {
		if dt <= 0 {
			t.Errorf("non-positive dt %v", dt)
		}
		ticks.Add(1)
	})

	done := make(chan struct{})
	go func() {
		loop.Run()
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for ticks.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("loop never ticked")
		}
		time.Sleep(5 * time.Millisecond)
	}

	loop.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}
}
