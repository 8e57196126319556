package components

import (
	"github.com/yohamta/donburi"

	"github.com/jappenzeller/system-client-go/shared/quanta"
)

// PacketData is the quanta payload carried by a wave packet entity.
type PacketData struct {
	Signature quanta.Signature
	Amount    uint32
}

var Packet = donburi.NewComponentType[PacketData]()
