// Package quanta carries the quanta signature data attached to wave packets.
// The encoding mirrors the server schema: frequency in [0,1) mapped onto a
// color spectrum, resonance as stability, and a flux bit pattern for unique
// variations.
package quanta

// FrequencyBand classifies a signature's frequency into the seven spectrum
// bands used by the game.
type FrequencyBand int

const (
	Infrared FrequencyBand = iota // 0.0-0.15
	Red                           // 0.15-0.3
	Orange                        // 0.3-0.4
	Yellow                        // 0.4-0.5
	Green                         // 0.5-0.65
	Blue                          // 0.65-0.8
	Violet                        // 0.8-0.95
	Ultraviolet                   // 0.95-1.0
)

func (b FrequencyBand) String() string {
	switch b {
	case Infrared:
		return "Deep Red"
	case Red:
		return "Red"
	case Orange:
		return "Orange"
	case Yellow:
		return "Yellow"
	case Green:
		return "Green"
	case Blue:
		return "Blue"
	case Violet:
		return "Violet"
	case Ultraviolet:
		return "Ultra Violet"
	}
	return "Unknown"
}

// Signature identifies a quanta packet's spectral content.
type Signature struct {
	Frequency   float64 // 0.0-1.0, maps to color spectrum
	Resonance   float64 // 0.0-1.0, stability/purity
	FluxPattern uint16
}

// Band returns the frequency band the signature falls in.
func (s Signature) Band() FrequencyBand {
	switch f := s.Frequency; {
	case f < 0.15:
		return Infrared
	case f < 0.3:
		return Red
	case f < 0.4:
		return Orange
	case f < 0.5:
		return Yellow
	case f < 0.65:
		return Green
	case f < 0.8:
		return Blue
	case f < 0.95:
		return Violet
	default:
		return Ultraviolet
	}
}

// Hash packs the signature into a stable 32-bit value suitable for grouping
// storage by signature.
func (s Signature) Hash() uint32 {
	freqBits := uint32(s.Frequency * 1000.0)
	resBits := uint32(s.Resonance * 100.0)
	return freqBits<<16 | resBits<<8 | uint32(s.FluxPattern)&0xFF
}
