package quanta

import "testing"

func TestBandThresholds(t *testing.T) {
	cases := []struct {
		freq float64
		want FrequencyBand
	}{
		{0.0, Infrared},
		{0.149, Infrared},
		{0.15, Red},
		{0.3, Orange},
		{0.4, Yellow},
		{0.5, Green},
		{0.65, Blue},
		{0.8, Violet},
		{0.95, Ultraviolet},
		{1.0, Ultraviolet},
	}
	for _, c := range cases {
		got := Signature{Frequency: c.freq}.Band()
		if got != c.want {
			t.Errorf("Band(%v) = %v, want %v", c.freq, got, c.want)
		}
	}
}

func TestBandNames(t *testing.T) {
	if Infrared.String() != "Deep Red" {
		t.Errorf("Infrared = %q", Infrared.String())
	}
	if FrequencyBand(99).String() != "Unknown" {
		t.Errorf("out of range band = %q", FrequencyBand(99).String())
	}
}

func TestHashDistinguishesSignatures(t *testing.T) {
	a := Signature{Frequency: 0.25, Resonance: 0.5, FluxPattern: 3}
	b := Signature{Frequency: 0.25, Resonance: 0.5, FluxPattern: 4}
	c := Signature{Frequency: 0.26, Resonance: 0.5, FluxPattern: 3}
	if a.Hash() == b.Hash() || a.Hash() == c.Hash() {
		t.Errorf("hash collisions: %x %x %x", a.Hash(), b.Hash(), c.Hash())
	}
	if a.Hash() != a.Hash() {
		t.Error("hash not stable")
	}
}
