package envelope

import (
	"fmt"
	"math"
)

// decayFloor is the level reached after one decay time (-60 dB).
const decayFloor = 0.001

// Decay is an exponentially decaying curve that starts at 1 on Reset and
// reaches -60 dB after the configured decay time.
type Decay struct {
	sampleRate float64
	seconds    float64
	mul        float64
	value      float64
}

// NewDecay returns a decay envelope. The envelope starts at 0 until Reset.
func NewDecay(sampleRate, seconds float64) (*Decay, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("decay sample rate must be > 0 and finite: %f", sampleRate)
	}
	d := &Decay{sampleRate: sampleRate}
	if err := d.SetDecay(seconds); err != nil {
		return nil, err
	}
	return d, nil
}

// SetDecay sets the -60 dB time in seconds.
func (d *Decay) SetDecay(seconds float64) error {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return fmt.Errorf("decay time must be > 0 and finite: %f", seconds)
	}
	d.seconds = seconds
	d.mul = math.Exp(math.Log(decayFloor) / (seconds * d.sampleRate))
	return nil
}

// DecayTime returns the -60 dB time in seconds.
func (d *Decay) DecayTime() float64 {
	return d.seconds
}

// Next returns the current value and advances one sample.
func (d *Decay) Next() float64 {
	out := d.value
	d.value *= d.mul
	if d.value < 1e-30 {
		d.value = 0
	}
	return out
}

// Value returns the current value without advancing.
func (d *Decay) Value() float64 {
	return d.value
}

// Reset restarts the curve at 1.
func (d *Decay) Reset() {
	d.value = 1
}

// Done reports whether the curve has fallen below threshold.
func (d *Decay) Done(threshold float64) bool {
	return d.value < threshold
}
