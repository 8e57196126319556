package tags

import "github.com/yohamta/donburi"

var (
	WavePacket     = donburi.NewTag().SetName("WavePacket")
	RemoteSource   = donburi.NewTag().SetName("RemoteSource")
	MiningPayload  = donburi.NewTag().SetName("MiningPayload")
	TransferPacket = donburi.NewTag().SetName("TransferPacket")
)
