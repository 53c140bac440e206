package moving

import "fmt"

// Average implements y[n] = (x[n] + x[n-1] + ... + x[n-N+1]) / N using a
// circular history buffer.
type Average struct {
	history []float64
	pos     int
	scale   float64
}

// New creates a moving average over taps samples.
func New(taps int) (*Average, error) {
	if taps <= 0 {
		return nil, fmt.Errorf("moving average taps must be > 0: %d", taps)
	}
	return &Average{
		history: make([]float64, taps),
		scale:   1 / float64(taps),
	}, nil
}

// Taps returns the averaging length.
func (a *Average) Taps() int {
	return len(a.history)
}

// ProcessSample filters one input sample.
func (a *Average) ProcessSample(x float64) float64 {
	a.history[a.pos] = x
	a.pos++
	if a.pos >= len(a.history) {
		a.pos = 0
	}
	var sum float64
	for _, v := range a.history {
		sum += v
	}
	return sum * a.scale
}

// ProcessBlock filters a block of samples in-place.
func (a *Average) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = a.ProcessSample(x)
	}
}

// Reset clears the history to zero.
func (a *Average) Reset() {
	for i := range a.history {
		a.history[i] = 0
	}
	a.pos = 0
}
