package envelope

import (
	"fmt"
	"math"
)

// DefaultFollowerCutoff is the smoothing cutoff used for voice energy tracking.
const DefaultFollowerCutoff = 10.0

// Follower tracks signal level as a one-pole low-pass of |x|.
type Follower struct {
	coeff float64
	value float64
}

// NewFollower returns a follower with the given smoothing cutoff in Hz.
func NewFollower(sampleRate, cutoffHz float64) (*Follower, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("follower sample rate must be > 0 and finite: %f", sampleRate)
	}
	if cutoffHz <= 0 || cutoffHz >= sampleRate/2 || math.IsNaN(cutoffHz) {
		return nil, fmt.Errorf("follower cutoff must be in (0, %f): %f", sampleRate/2, cutoffHz)
	}
	return &Follower{coeff: math.Exp(-2 * math.Pi * cutoffHz / sampleRate)}, nil
}

// Process feeds one sample and returns the updated level.
func (f *Follower) Process(x float64) float64 {
	v := (1-f.coeff)*math.Abs(x) + f.coeff*f.value
	if v < 1e-30 {
		v = 0
	}
	f.value = v
	return v
}

// Value returns the current level.
func (f *Follower) Value() float64 {
	return f.value
}

// Reset clears the level to 0.
func (f *Follower) Reset() {
	f.value = 0
}
