package config

// WorldConfig describes the sphere world the client simulates. The surface
// radius is the only value shared by every movement instance; the server's
// JoinAccepted message overrides the default.
type WorldConfig struct {
	Name          string
	SurfaceRadius float64
}

// MovementConfig contains the semantic heights and speeds used by the
// movement factory scenarios, plus reconciliation tuning.
type MovementConfig struct {
	// Heights above the surface shell
	MiningHeight  float64 // mining payload travel lane
	SurfaceHeight float64 // packet travel lane between surface locations
	NodeHeight    float64 // docked at a circuit node

	// ServerReconciled tuning
	FinalHeight        float64 // hover height reached in the rising state
	RiseSpeed          float64
	InterpolationSpeed float64 // exponential smoothing factor (per second)

	// Scenario speeds (units per second along the surface)
	MiningPayloadSpeed float64
	TransferSpeed      float64
	DistributionSpeed  float64
}

// FadeConfig tunes the opacity tween applied when a packet's recommended
// opacity changes.
type FadeConfig struct {
	Duration float64 // seconds to reach the new opacity
}

// NetworkConfig holds client connection defaults.
type NetworkConfig struct {
	DefaultAddress  string
	DefaultTickRate int
	Version         string
}

var World = WorldConfig{
	Name:          "genesis",
	SurfaceRadius: 100.0,
}

var Movement = MovementConfig{
	MiningHeight:  1.0,
	SurfaceHeight: 10.0,
	NodeHeight:    1.0,

	FinalHeight:        1.5,
	RiseSpeed:          2.0,
	InterpolationSpeed: 5.0,

	MiningPayloadSpeed: 5.0,
	TransferSpeed:      6.0,
	DistributionSpeed:  8.0,
}

var Fade = FadeConfig{
	Duration: 0.4,
}

var Network = NetworkConfig{
	DefaultAddress:  "localhost:7373",
	DefaultTickRate: 20,
	Version:         "0.3.0",
}
