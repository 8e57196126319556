package messages

// ExtractionRequest is sent by a client to ask the authority for a mining
// extraction at one of the world's circuit nodes.
type ExtractionRequest struct {
	NodeIndex int32
}

// ExtractionGrantedEvent is broadcast when the authority grants an
// extraction. The receiving client animates a mining payload from start to
// target and credits the quanta on arrival.
type ExtractionGrantedEvent struct {
	StartX, StartY, StartZ    float64
	TargetX, TargetY, TargetZ float64
	Frequency                 float64
	Resonance                 float64
	Amount                    uint32
}

// TransferInitiatedEvent is broadcast when a packet transfer between two
// heights begins. The trajectory kind is classified client-side from the
// height delta.
type TransferInitiatedEvent struct {
	StartX, StartY, StartZ    float64
	TargetX, TargetY, TargetZ float64
	StartHeight               float64
	EndHeight                 float64
	Frequency                 float64
	Resonance                 float64
	Amount                    uint32
}

// DistributionEvent is broadcast for surface-to-surface quanta distribution,
// animated as a direct flight at the surface travel height.
type DistributionEvent struct {
	StartX, StartY, StartZ    float64
	TargetX, TargetY, TargetZ float64
	Frequency                 float64
	Resonance                 float64
	Amount                    uint32
}
