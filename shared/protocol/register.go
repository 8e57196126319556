package protocol

import (
	"github.com/leap-fish/necs/esync"

	"github.com/jappenzeller/system-client-go/shared/netcomponents"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId
const (
	SyncIDNetPacket uint = 10
	SyncIDNetWorld  uint = 11
)

// Interpolation IDs (uint8 for WithInterpFn)
const (
	InterpIDNetPacket uint8 = 10
)

// RegisterComponents registers all network components with necs for
// serialization. Both server and client must call it before any network
// operation.
func RegisterComponents() error {
	if err := esync.RegisterComponent(
		SyncIDNetPacket,
		netcomponents.NetPacketData{},
		netcomponents.NetPacket,
		esync.WithInterpFn(InterpIDNetPacket, netcomponents.LerpNetPacket),
	); err != nil {
		return err
	}

	// World parameters: no interpolation (static configuration)
	return esync.RegisterComponent(
		SyncIDNetWorld,
		netcomponents.NetWorldData{},
		netcomponents.NetWorld,
	)
}
