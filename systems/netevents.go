package systems

import (
	"log"

	"github.com/yohamta/donburi/ecs"

	cfg "github.com/jappenzeller/system-client-go/config"
	"github.com/jappenzeller/system-client-go/movement"
	"github.com/jappenzeller/system-client-go/shared/messages"
	"github.com/jappenzeller/system-client-go/shared/quanta"
	"github.com/jappenzeller/system-client-go/systems/factory"
)

// EventSource yields pending game events from the server, non-blocking.
type EventSource interface {
	NextExtraction() (messages.ExtractionGrantedEvent, bool)
	NextTransfer() (messages.TransferInitiatedEvent, bool)
	NextDistribution() (messages.DistributionEvent, bool)
}

// CreditFunc receives the quanta payload of an arrived packet. Crediting an
// inventory is economy logic and belongs to the caller.
type CreditFunc func(sig quanta.Signature, amount uint32)

// NetEventSystem turns server game events into scripted packet entities.
type NetEventSystem struct {
	client  EventSource
	factory *movement.Factory
	credit  CreditFunc
}

func NewNetEventSystem(client EventSource, mf *movement.Factory, credit CreditFunc) func(*ecs.ECS) {
	s := &NetEventSystem{client: client, factory: mf, credit: credit}
	return s.Update
}

func (s *NetEventSystem) Update(e *ecs.ECS) {
	for {
		evt, ok := s.client.NextExtraction()
		if !ok {
			break
		}
		sig := quanta.Signature{Frequency: evt.Frequency, Resonance: evt.Resonance}
		amount := evt.Amount
		factory.CreateMiningPayload(e, evt, s.factory, func() {
			log.Printf("[packets] extraction payload arrived: %d quanta of %s", amount, sig.Band())
			s.credit(sig, amount)
		})
	}

	for {
		evt, ok := s.client.NextTransfer()
		if !ok {
			break
		}
		sig := quanta.Signature{Frequency: evt.Frequency, Resonance: evt.Resonance}
		amount := evt.Amount
		factory.CreateTransferPacket(e, evt, s.factory, cfg.Movement.TransferSpeed, func() {
			s.credit(sig, amount)
		})
	}

	for {
		evt, ok := s.client.NextDistribution()
		if !ok {
			break
		}
		sig := quanta.Signature{Frequency: evt.Frequency, Resonance: evt.Resonance}
		amount := evt.Amount
		factory.CreateDistributionPacket(e, evt, s.factory, func() {
			s.credit(sig, amount)
		})
	}
}
