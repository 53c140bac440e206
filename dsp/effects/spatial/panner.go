package spatial

import (
	"fmt"
	"math"
)

const (
	minPanPosition = -1.0
	maxPanPosition = 1.0
)

// Panner places a mono signal in the stereo field with a constant-power
// (sine/cosine) law. Position -1 is hard left, 0 is centre (both gains
// 1/sqrt(2)), +1 is hard right; left^2 + right^2 == 1 everywhere.
//
// This processor is real-time safe and not thread-safe.
type Panner struct {
	position float64
	gainL    float64
	gainR    float64
}

// NewPanner returns a panner at the given position, clamped to [-1, 1].
func NewPanner(position float64) *Panner {
	p := &Panner{position: math.NaN()}
	p.SetPosition(position)
	return p
}

// SetPosition moves the panner. Values outside [-1, 1] are clamped and NaN
// is treated as centre.
func (p *Panner) SetPosition(position float64) {
	switch {
	case math.IsNaN(position):
		position = 0
	case position < minPanPosition:
		position = minPanPosition
	case position > maxPanPosition:
		position = maxPanPosition
	}
	if position == p.position {
		return
	}
	p.position = position
	angle := (position + 1) * math.Pi / 4
	p.gainL = math.Cos(angle)
	p.gainR = math.Sin(angle)
}

// Position returns the current pan position.
func (p *Panner) Position() float64 {
	return p.position
}

// Gains returns the current left and right gains.
func (p *Panner) Gains() (left, right float64) {
	return p.gainL, p.gainR
}

// Process spreads one mono sample to left and right.
func (p *Panner) Process(x float64) (left, right float64) {
	return x * p.gainL, x * p.gainR
}

// ProcessBlockAdd pans in and adds the result into left and right. All three
// buffers must have the same length.
func (p *Panner) ProcessBlockAdd(in, left, right []float64) error {
	if len(left) != len(in) || len(right) != len(in) {
		return fmt.Errorf("panner: buffer lengths must match: in=%d left=%d right=%d",
			len(in), len(left), len(right))
	}
	for i, x := range in {
		left[i] += x * p.gainL
		right[i] += x * p.gainR
	}
	return nil
}
